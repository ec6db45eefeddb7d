package lexer

import (
	"candidc/internal/diag"
	"candidc/internal/token"
)

// Поддержка: 123, 1_000, 0xFF, 0xdead_beef.
// Без знака и без точки; '_' только между цифрами.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()

	digit := isDec
	if lx.cursor.Starts('0', 'x') || lx.cursor.Starts('0', 'X') {
		lx.cursor.Bump()
		lx.cursor.Bump()
		if !isHex(lx.cursor.Peek()) {
			sp := lx.cursor.SpanFrom(start)
			lx.fail(diag.LexBadNumber, sp, rune(lx.cursor.Peek()), "expected hex digit after '0x'")
			return token.Token{Kind: token.Invalid, Span: sp}
		}
		digit = isHex
	}

	last := byte(0)
	for {
		b := lx.cursor.Peek()
		if !digit(b) && b != '_' {
			break
		}
		last = lx.cursor.Bump()
	}

	sp := lx.cursor.SpanFrom(start)
	if last == '_' {
		lx.fail(diag.LexBadNumber, sp, '_', "numeric literal cannot end with '_'")
		return token.Token{Kind: token.Invalid, Span: sp}
	}
	return token.Token{Kind: token.NatLit, Span: sp, Text: lx.text(sp)}
}
