package parser

import (
	"candidc/internal/ast"
	"candidc/internal/lexer"
	"candidc/internal/source"
	"candidc/internal/token"
)

// parseProgram: основной цикл верхнего уровня (import/type*, затем необязательный service и EOF).
func (p *Parser) parseProgram() {
	for !p.failed() {
		switch p.peek().Kind {
		case token.KwImport:
			p.parseImport()
		case token.KwType:
			p.parseTypeDecl()
		case token.KwService:
			p.parseServiceDecl()
			if !p.failed() && !p.at(token.EOF) {
				p.unexpected(token.EOF)
			}
			return
		case token.EOF:
			return
		default:
			p.unexpected(token.KwImport, token.KwType, token.KwService, token.EOF)
		}
	}
}

// import "path";
func (p *Parser) parseImport() {
	start := p.advance().Span
	lit, ok := p.expect(token.TextLit)
	if !ok {
		return
	}
	path, ok := p.decodeText(lit)
	if !ok {
		return
	}
	if _, ok := p.expect(token.Semicolon); !ok {
		return
	}
	p.prog.Imports = append(p.prog.Imports, ast.ImportDecl{
		Path: path,
		Span: start.Cover(p.lastSpan),
	})
}

// type Name = TypeExpr;
func (p *Parser) parseTypeDecl() {
	start := p.advance().Span
	name, ok := p.expect(token.Ident)
	if !ok {
		return
	}
	if _, ok := p.expect(token.Assign); !ok {
		return
	}
	body, ok := p.parseType()
	if !ok {
		return
	}
	if _, ok := p.expect(token.Semicolon); !ok {
		return
	}
	p.prog.Decls = append(p.prog.Decls, ast.TypeDecl{
		Name:     p.intern(name.Text),
		NameSpan: name.Span,
		Body:     body,
		Span:     start.Cover(p.lastSpan),
	})
}

// service Name? : (Init ->)? ({ methods } | Name) ;?
func (p *Parser) parseServiceDecl() {
	start := p.advance().Span
	decl := &ast.ServiceDecl{}
	if p.at(token.Ident) {
		name := p.advance()
		decl.Name = p.intern(name.Text)
		decl.NameSpan = name.Span
	}
	if _, ok := p.expect(token.Colon); !ok {
		return
	}

	if p.startsServiceInit() {
		init, ok := p.parseServiceInit()
		if !ok {
			return
		}
		decl.Init = init
		decl.HasInit = true
		if _, ok := p.expect(token.Arrow); !ok {
			return
		}
	}

	switch {
	case p.at(token.LBrace):
		bodyStart := p.peek().Span
		methods, ok := p.parseMethodBlock()
		if !ok {
			return
		}
		decl.Body = p.prog.Types.NewService(bodyStart.Cover(p.lastSpan), ast.ServiceSig{Methods: methods})
	case p.at(token.Ident):
		name := p.advance()
		decl.Body = p.prog.Types.NewNamed(name.Span, p.intern(name.Text))
	default:
		p.unexpected(token.LBrace, token.Ident)
		return
	}
	p.eat(token.Semicolon)
	decl.Span = start.Cover(p.lastSpan)
	p.prog.Service = decl
}

// startsServiceInit: '(' всегда начинает init; идентификатор только если за ним '->';
// любая другая форма типа тоже считается init.
func (p *Parser) startsServiceInit() bool {
	switch k := p.peek().Kind; {
	case k == token.LBrace:
		return false
	case k == token.Ident:
		return p.peekN(1).Kind == token.Arrow
	case k == token.LParen:
		return true
	default:
		return startsType(k)
	}
}

func (p *Parser) parseServiceInit() ([]ast.Arg, bool) {
	if p.at(token.LParen) {
		return p.parseArgList()
	}
	tok := p.peek()
	ty, ok := p.parseType()
	if !ok {
		return nil, false
	}
	return []ast.Arg{{Type: ty, Span: tok.Span.Cover(p.lastSpan)}}, true
}

func (p *Parser) decodeText(lit token.Token) (string, bool) {
	s, err := lexer.DecodeText(lit.Text)
	if err != nil {
		return "", p.fail(&ParseError{Span: lit.Span, Found: lit, Msg: err.Error()})
	}
	return s, true
}

func (p *Parser) cover(start source.Span) source.Span {
	return start.Cover(p.lastSpan)
}
