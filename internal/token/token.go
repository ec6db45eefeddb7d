package token

import (
	"candidc/internal/source"
)

// Token represents a single significant source token.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsLiteral reports whether the token is a text or numeric literal.
func (t Token) IsLiteral() bool {
	return t.Kind == TextLit || t.Kind == NatLit
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// Describe renders the token for diagnostics: kind plus quoted text where it helps.
func (t Token) Describe() string {
	switch t.Kind {
	case EOF:
		return "end of file"
	case Ident, NatLit, TextLit:
		return t.Kind.String() + " " + quote(t.Text)
	default:
		return t.Kind.String()
	}
}

func quote(s string) string {
	if len(s) > 0 && s[0] == '"' {
		return s
	}
	return "\"" + s + "\""
}
