package parser

import (
	"fmt"
	"strings"

	"candidc/internal/diag"
	"candidc/internal/source"
	"candidc/internal/token"
)

// ParseError reports the first token that does not fit the grammar.
// Msg, when set, replaces the generated "expected ..." text.
type ParseError struct {
	Span     source.Span
	Expected []token.Kind
	Found    token.Token
	Msg      string
	code     diag.Code
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at %s: %s", e.Span, e.message())
}

func (e *ParseError) message() string {
	if e.Msg != "" {
		return e.Msg
	}
	return fmt.Sprintf("expected %s, found %s", joinKinds(e.Expected), e.Found.Describe())
}

// Expects reports whether k is among the expected kinds.
func (e *ParseError) Expects(k token.Kind) bool {
	for _, x := range e.Expected {
		if x == k {
			return true
		}
	}
	return false
}

func (e *ParseError) Diagnostic() diag.Diagnostic {
	code := e.code
	if code == diag.UnknownCode {
		code = diag.SynUnexpectedToken
	}
	return diag.NewError(code, e.Span, e.message())
}

// DepthExceededError is returned when type expressions nest deeper than Limit.
type DepthExceededError struct {
	Span  source.Span
	Limit int
}

func (e *DepthExceededError) Error() string {
	return fmt.Sprintf("parse error at %s: type nesting exceeds depth limit %d", e.Span, e.Limit)
}

func (e *DepthExceededError) Diagnostic() diag.Diagnostic {
	return diag.NewError(diag.SynDepthExceeded, e.Span,
		fmt.Sprintf("type nesting exceeds depth limit %d", e.Limit))
}

func joinKinds(kinds []token.Kind) string {
	switch len(kinds) {
	case 0:
		return "nothing"
	case 1:
		return kinds[0].String()
	}
	parts := make([]string, len(kinds))
	for i, k := range kinds {
		parts[i] = k.String()
	}
	return strings.Join(parts[:len(parts)-1], ", ") + " or " + parts[len(parts)-1]
}
