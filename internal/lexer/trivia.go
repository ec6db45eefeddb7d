package lexer

import (
	"unicode/utf8"

	"candidc/internal/diag"
)

// skipTrivia пропускает пробелы, переводы строк и комментарии.
//   - ' ', '\t', '\r', '\n'
//   - //... до \n
//   - /* ... */ без вложенности; незакрытый комментарий: ошибка
func (lx *Lexer) skipTrivia() {
	for !lx.cursor.EOF() {
		switch b := lx.cursor.Peek(); b {
		case ' ', '\t', '\r', '\n':
			lx.cursor.Bump()
			continue
		case '/':
			if !lx.skipComment() {
				return
			}
			if lx.err != nil {
				return
			}
			continue
		}
		return
	}
}

func (lx *Lexer) skipComment() bool {
	start := lx.cursor.Mark()
	if lx.cursor.Peek() != '/' {
		return false
	}
	switch lx.cursor.PeekAt(1) {
	case '/':
		for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
			lx.cursor.Bump()
		}
		return true
	case '*':
		lx.cursor.Bump()
		lx.cursor.Bump()
		for !lx.cursor.EOF() {
			if lx.cursor.Starts('*', '/') {
				lx.cursor.Bump()
				lx.cursor.Bump()
				return true
			}
			lx.cursor.Bump()
		}
		lx.fail(diag.LexUnterminatedBlockComment, lx.cursor.SpanFrom(start), utf8.RuneError, "unterminated block comment")
		return true
	}
	return false
}
