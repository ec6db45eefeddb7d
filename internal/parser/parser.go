package parser

import (
	"slices"

	"candidc/internal/ast"
	"candidc/internal/diag"
	"candidc/internal/lexer"
	"candidc/internal/source"
	"candidc/internal/token"
)

// DefaultMaxDepth bounds nested type expressions when Options.MaxDepth is zero.
const DefaultMaxDepth = 512

type Options struct {
	MaxDepth int
	// Strings is shared between files of one load so that names compare by ID.
	// A fresh interner is created when nil.
	Strings *source.Interner
	// Reporter receives the failure as a diagnostic; may be nil.
	Reporter diag.Reporter
}

func (o Options) maxDepth() int {
	if o.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return o.MaxDepth
}

// Parser: состояние парсера на один файл
type Parser struct {
	toks     []token.Token
	pos      int
	file     source.FileID
	prog     *ast.Program
	opts     Options
	depth    int
	lastSpan source.Span // span последнего съеденного токена
	err      error
}

// Parse builds the program for file from its tokens.
func Parse(file *source.File, toks []token.Token, opts Options) (*ast.Program, error) {
	p := &Parser{
		toks: toks,
		file: file.ID,
		prog: ast.NewProgram(file.ID, opts.Strings, uint(len(toks)/2+1)),
		opts: opts,
	}
	p.lastSpan = source.Span{File: file.ID}
	p.parseProgram()
	if p.err != nil {
		if p.opts.Reporter != nil {
			diag.ReportErr(p.opts.Reporter, p.err)
		}
		return nil, p.err
	}
	return p.prog, nil
}

// ParseFile lexes and parses a file already stored in fs.
func ParseFile(fs *source.FileSet, id source.FileID, opts Options) (*ast.Program, error) {
	file := fs.Get(id)
	toks, err := lexer.TokenizeWith(file, lexer.Options{Reporter: opts.Reporter})
	if err != nil {
		return nil, err
	}
	return Parse(file, toks, opts)
}

// ParseSource parses text held in memory under name.
func ParseSource(name, text string, opts Options) (*ast.Program, error) {
	fs := source.NewFileSet()
	id := fs.AddVirtual(name, []byte(text))
	return ParseFile(fs, id, opts)
}

func (p *Parser) peek() token.Token {
	if p.pos < len(p.toks) {
		return p.toks[p.pos]
	}
	return token.Token{Kind: token.EOF, Span: source.Span{File: p.file, Start: p.lastSpan.End, End: p.lastSpan.End}}
}

// peekN смотрит на n токенов вперёд (0 = текущий).
func (p *Parser) peekN(n int) token.Token {
	if p.pos+n < len(p.toks) {
		return p.toks[p.pos+n]
	}
	return token.Token{Kind: token.EOF}
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.peek().Kind)
}

// advance: съедает следующий токен и обновляет lastSpan
func (p *Parser) advance() token.Token {
	tok := p.peek()
	if tok.Kind != token.EOF {
		p.pos++
		p.lastSpan = tok.Span
	}
	return tok
}

// expect: ожидаем конкретный токен. Если нет, фиксируем ошибку и возвращаем false.
func (p *Parser) expect(k token.Kind) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	p.unexpected(k)
	return token.Token{Kind: token.Invalid, Span: p.peek().Span}, false
}

// eat съедает токен, если он совпадает.
func (p *Parser) eat(k token.Kind) bool {
	if p.at(k) {
		p.advance()
		return true
	}
	return false
}

// unexpected фиксирует ParseError на текущем токене. Сохраняется только первая ошибка.
func (p *Parser) unexpected(expected ...token.Kind) bool {
	found := p.peek()
	return p.fail(&ParseError{Span: found.Span, Expected: expected, Found: found})
}

func (p *Parser) fail(err error) bool {
	if p.err == nil {
		p.err = err
	}
	return false
}

func (p *Parser) failed() bool {
	return p.err != nil
}

func (p *Parser) intern(s string) source.StringID {
	return p.prog.Strings.Intern(s)
}
