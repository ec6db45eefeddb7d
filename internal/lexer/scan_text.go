package lexer

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"candidc/internal/diag"
	"candidc/internal/token"
)

// scanText сканирует "..." и проверяет содержимое.
// Разрешены руны классов L, M, N, P, S и Zs, а также escape-последовательности
// \n \r \t \\ \" \' \u{HEX} \HH. Текст токена содержит кавычки.
func (lx *Lexer) scanText() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '"'
	for !lx.cursor.EOF() {
		at := lx.cursor.Mark()
		r, sz := lx.peekRune()
		switch {
		case r == '"':
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.TextLit, Span: sp, Text: lx.text(sp)}
		case r == '\\':
			_, n, err := decodeEscape(lx.cursor.Rest())
			lx.cursor.Advance(max(n, 1))
			if err != nil {
				lx.fail(diag.LexBadEscape, lx.cursor.SpanFrom(at), '\\', err.Error())
				return token.Token{Kind: token.Invalid, Span: lx.cursor.SpanFrom(start)}
			}
		case r == '\n':
			lx.fail(diag.LexUnterminatedText, lx.cursor.SpanFrom(start), r, "newline in text literal")
			return token.Token{Kind: token.Invalid, Span: lx.cursor.SpanFrom(start)}
		case r == utf8.RuneError && sz == 1:
			lx.cursor.Bump()
			lx.fail(diag.LexBadTextChar, lx.cursor.SpanFrom(at), r, "invalid UTF-8 in text literal")
			return token.Token{Kind: token.Invalid, Span: lx.cursor.SpanFrom(start)}
		case !isTextRune(r):
			lx.cursor.Advance(sz)
			lx.fail(diag.LexBadTextChar, lx.cursor.SpanFrom(at), r, fmt.Sprintf("character %U not allowed in text literal", r))
			return token.Token{Kind: token.Invalid, Span: lx.cursor.SpanFrom(start)}
		default:
			lx.cursor.Advance(sz)
		}
	}
	lx.fail(diag.LexUnterminatedText, lx.cursor.SpanFrom(start), utf8.RuneError, "unterminated text literal")
	return token.Token{Kind: token.Invalid, Span: lx.cursor.SpanFrom(start)}
}

var textRangeTables = []*unicode.RangeTable{
	unicode.L, unicode.M, unicode.N, unicode.P, unicode.S, unicode.Zs,
}

func isTextRune(r rune) bool {
	return unicode.IsOneOf(textRangeTables, r)
}

var errBadEscape = errors.New("invalid escape sequence")

// decodeEscape разбирает одну escape-последовательность в начале b (b[0] == '\\').
// Возвращает декодированные байты и длину последовательности.
func decodeEscape(b []byte) (out []byte, n int, err error) {
	if len(b) < 2 {
		return nil, len(b), fmt.Errorf("%w: trailing backslash", errBadEscape)
	}
	switch c := b[1]; c {
	case 'n':
		return []byte{'\n'}, 2, nil
	case 'r':
		return []byte{'\r'}, 2, nil
	case 't':
		return []byte{'\t'}, 2, nil
	case '\\', '"', '\'':
		return []byte{c}, 2, nil
	case 'u':
		if len(b) < 3 || b[2] != '{' {
			return nil, 2, fmt.Errorf("%w: expected '{' after \\u", errBadEscape)
		}
		i := 3
		var v rune
		for i < len(b) && isHex(b[i]) {
			if i-3 >= 6 {
				return nil, i, fmt.Errorf("%w: too many digits in \\u{...}", errBadEscape)
			}
			v = v<<4 | rune(hexVal(b[i]))
			i++
		}
		if i == 3 || i >= len(b) || b[i] != '}' {
			return nil, i, fmt.Errorf("%w: malformed \\u{...}", errBadEscape)
		}
		if !utf8.ValidRune(v) {
			return nil, i + 1, fmt.Errorf("%w: \\u{%X} is not a Unicode scalar value", errBadEscape, v)
		}
		return utf8.AppendRune(nil, v), i + 1, nil
	default:
		if len(b) >= 3 && isHex(c) && isHex(b[2]) {
			return []byte{hexVal(c)<<4 | hexVal(b[2])}, 3, nil
		}
		return nil, 2, fmt.Errorf("%w: \\%c", errBadEscape, c)
	}
}

// DecodeText returns the value of a text literal lexeme (quotes included).
func DecodeText(lexeme string) (string, error) {
	if len(lexeme) < 2 || lexeme[0] != '"' || lexeme[len(lexeme)-1] != '"' {
		return "", fmt.Errorf("not a text literal: %q", lexeme)
	}
	body := lexeme[1 : len(lexeme)-1]
	if !strings.Contains(body, "\\") {
		return body, nil
	}
	var sb strings.Builder
	sb.Grow(len(body))
	raw := []byte(body)
	for i := 0; i < len(raw); {
		if raw[i] != '\\' {
			sb.WriteByte(raw[i])
			i++
			continue
		}
		out, n, err := decodeEscape(raw[i:])
		if err != nil {
			return "", err
		}
		sb.Write(out)
		i += n
	}
	return sb.String(), nil
}
