package lexer

import (
	"fmt"
	"unicode/utf8"

	"candidc/internal/diag"
	"candidc/internal/token"
)

func (lx *Lexer) scanPunct() token.Token {
	start := lx.cursor.Mark()
	emit := func(k token.Kind) token.Token {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: k, Span: sp, Text: lx.text(sp)}
	}

	switch b := lx.cursor.Bump(); b {
	case ';':
		return emit(token.Semicolon)
	case ':':
		return emit(token.Colon)
	case '=':
		return emit(token.Assign)
	case ',':
		return emit(token.Comma)
	case '{':
		return emit(token.LBrace)
	case '}':
		return emit(token.RBrace)
	case '(':
		return emit(token.LParen)
	case ')':
		return emit(token.RParen)
	case '-':
		if lx.cursor.Eat('>') {
			return emit(token.Arrow)
		}
	}

	// неизвестный символ: откатываемся, чтобы захватить всю руну
	lx.cursor.Reset(start)
	r, sz := lx.peekRune()
	lx.cursor.Advance(sz)
	sp := lx.cursor.SpanFrom(start)
	reason := fmt.Sprintf("unexpected character %q", r)
	if r == utf8.RuneError && sz == 1 {
		reason = "invalid UTF-8 encoding"
	}
	lx.fail(diag.LexUnknownChar, sp, r, reason)
	return token.Token{Kind: token.Invalid, Span: sp}
}
