package lexer

import (
	"fmt"

	"candidc/internal/diag"
	"candidc/internal/source"
)

// LexError reports the first malformed piece of input.
// Char is the offending rune, or utf8.RuneError for invalid encodings and EOF.
type LexError struct {
	Span   source.Span
	Char   rune
	Reason string
	code   diag.Code
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lex error at %s: %s", e.Span, e.Reason)
}

// Code returns the diagnostic code of the failure.
func (e *LexError) Code() diag.Code {
	if e.code == diag.UnknownCode {
		return diag.LexUnknownChar
	}
	return e.code
}

func (e *LexError) Diagnostic() diag.Diagnostic {
	return diag.NewError(e.Code(), e.Span, e.Reason)
}

func (lx *Lexer) fail(code diag.Code, sp source.Span, ch rune, reason string) {
	if lx.err != nil {
		return
	}
	lx.err = &LexError{Span: sp, Char: ch, Reason: reason, code: code}
	if lx.opts.Reporter != nil {
		diag.ReportErr(lx.opts.Reporter, lx.err)
	}
}
