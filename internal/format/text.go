package format

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"candidc/internal/token"
)

var textRangeTables = []*unicode.RangeTable{
	unicode.L, unicode.M, unicode.N, unicode.P, unicode.S, unicode.Zs,
}

// QuoteText renders s as a text literal the lexer accepts.
func QuoteText(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte('"')
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case r == utf8.RuneError && size == 1:
			sb.WriteString(`\`)
			sb.WriteString(hex2(s[i]))
		case r == '"':
			sb.WriteString(`\"`)
		case r == '\\':
			sb.WriteString(`\\`)
		case r == '\n':
			sb.WriteString(`\n`)
		case r == '\r':
			sb.WriteString(`\r`)
		case r == '\t':
			sb.WriteString(`\t`)
		case unicode.IsOneOf(textRangeTables, r):
			sb.WriteString(s[i : i+size])
		default:
			sb.WriteString(`\u{` + strconv.FormatInt(int64(r), 16) + `}`)
		}
		i += size
	}
	sb.WriteByte('"')
	return sb.String()
}

func hex2(b byte) string {
	const digits = "0123456789abcdef"
	return string([]byte{digits[b>>4], digits[b&0x0f]})
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		letter := c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
		if !letter && (i == 0 || c < '0' || c > '9') {
			return false
		}
	}
	_, reserved := token.LookupKeyword(s)
	return !reserved
}
