package parser

import (
	"candidc/internal/ast"
	"candidc/internal/token"
)

var typeStarts = []token.Kind{
	token.Ident, token.KwOpt, token.KwVec, token.KwBlob,
	token.KwRecord, token.KwVariant, token.KwFunc, token.KwService,
}

func startsType(k token.Kind) bool {
	if k.IsPrimitive() {
		return true
	}
	for _, s := range typeStarts {
		if s == k {
			return true
		}
	}
	return false
}

// parseType разбирает TypeExpr, следя за глубиной вложенности.
func (p *Parser) parseType() (ast.TypeExprID, bool) {
	if p.depth >= p.opts.maxDepth() {
		return ast.NoTypeExprID, p.fail(&DepthExceededError{Span: p.peek().Span, Limit: p.opts.maxDepth()})
	}
	p.depth++
	defer func() { p.depth-- }()

	exprs := p.prog.Types
	tok := p.peek()
	switch {
	case tok.Kind.IsPrimitive():
		p.advance()
		return exprs.NewPrimitive(tok.Span, tok.Kind), true

	case tok.Kind == token.Ident:
		p.advance()
		return exprs.NewNamed(tok.Span, p.intern(tok.Text)), true

	case tok.Kind == token.KwBlob:
		p.advance()
		return exprs.NewBlob(tok.Span), true

	case tok.Kind == token.KwOpt, tok.Kind == token.KwVec:
		p.advance()
		elem, ok := p.parseType()
		if !ok {
			return ast.NoTypeExprID, false
		}
		kind := ast.TypeOpt
		if tok.Kind == token.KwVec {
			kind = ast.TypeVec
		}
		return exprs.NewWrapper(kind, p.cover(tok.Span), elem), true

	case tok.Kind == token.KwRecord, tok.Kind == token.KwVariant:
		p.advance()
		kind := ast.TypeRecord
		if tok.Kind == token.KwVariant {
			kind = ast.TypeVariant
		}
		fields, ok := p.parseFieldList(kind)
		if !ok {
			return ast.NoTypeExprID, false
		}
		return exprs.NewComposite(kind, p.cover(tok.Span), fields), true

	case tok.Kind == token.KwFunc:
		p.advance()
		sig, ok := p.parseFuncSig()
		if !ok {
			return ast.NoTypeExprID, false
		}
		return exprs.NewFunc(p.cover(tok.Span), sig), true

	case tok.Kind == token.KwService:
		p.advance()
		sig, ok := p.parseServiceType()
		if !ok {
			return ast.NoTypeExprID, false
		}
		return exprs.NewService(p.cover(tok.Span), sig), true
	}

	p.fail(&ParseError{
		Span:     tok.Span,
		Expected: typeStarts,
		Found:    tok,
		Msg:      "expected type, found " + tok.Describe(),
	})
	return ast.NoTypeExprID, false
}

// service ('(' args ')' '->'?)? '{' methods '}'
func (p *Parser) parseServiceType() (ast.ServiceSig, bool) {
	var sig ast.ServiceSig
	if p.at(token.LParen) {
		init, ok := p.parseArgList()
		if !ok {
			return sig, false
		}
		sig.Init = init
		sig.HasInit = true
		p.eat(token.Arrow)
	}
	methods, ok := p.parseMethodBlock()
	if !ok {
		return sig, false
	}
	sig.Methods = methods
	return sig, true
}

// '(' args ')' '->' '(' args ')' annotation*
func (p *Parser) parseFuncSig() (ast.FuncSig, bool) {
	var sig ast.FuncSig
	args, ok := p.parseArgList()
	if !ok {
		return sig, false
	}
	if _, ok := p.expect(token.Arrow); !ok {
		return sig, false
	}
	rets, ok := p.parseArgList()
	if !ok {
		return sig, false
	}
	sig.Args, sig.Rets = args, rets
	for p.peek().Kind.IsAnnotation() {
		tok := p.advance()
		sig.Annotations = append(sig.Annotations, ast.Annotation{Kind: tok.Kind, Span: tok.Span})
	}
	return sig, true
}

// '(' (Arg ',')* Arg? ')' ; Arg := (name ':')? TypeExpr
func (p *Parser) parseArgList() ([]ast.Arg, bool) {
	if _, ok := p.expect(token.LParen); !ok {
		return nil, false
	}
	args := make([]ast.Arg, 0, 2)
	for !p.at(token.RParen) {
		start := p.peek().Span
		var arg ast.Arg
		if p.at(token.Ident) && p.peekN(1).Kind == token.Colon {
			arg.Name = p.intern(p.advance().Text)
			p.advance() // ':'
		}
		ty, ok := p.parseType()
		if !ok {
			return nil, false
		}
		arg.Type = ty
		arg.Span = p.cover(start)
		args = append(args, arg)

		if p.eat(token.Comma) {
			continue
		}
		if !p.at(token.RParen) {
			return nil, p.unexpected(token.Comma, token.RParen)
		}
	}
	p.advance() // ')'
	return args, true
}

// '{' (Method)* '}'
func (p *Parser) parseMethodBlock() ([]ast.Method, bool) {
	if _, ok := p.expect(token.LBrace); !ok {
		return nil, false
	}
	var methods []ast.Method
	for !p.at(token.RBrace) {
		m, ok := p.parseMethod()
		if !ok {
			return nil, false
		}
		methods = append(methods, m)
	}
	p.advance() // '}'
	return methods, true
}

// (Ident | Text) ':' ('func'? FuncSig | Ident) ';'
func (p *Parser) parseMethod() (ast.Method, bool) {
	var m ast.Method
	nameTok := p.peek()
	switch nameTok.Kind {
	case token.Ident:
		p.advance()
		m.Name = p.intern(nameTok.Text)
	case token.TextLit:
		p.advance()
		name, ok := p.decodeText(nameTok)
		if !ok {
			return m, false
		}
		m.Name = p.intern(name)
	default:
		return m, p.unexpected(token.Ident, token.TextLit, token.RBrace)
	}
	m.NameSpan = nameTok.Span
	if _, ok := p.expect(token.Colon); !ok {
		return m, false
	}

	sigStart := p.peek().Span
	switch {
	case p.at(token.Ident):
		tok := p.advance()
		m.Type = p.prog.Types.NewNamed(tok.Span, p.intern(tok.Text))
	case p.atOr(token.KwFunc, token.LParen):
		p.eat(token.KwFunc)
		sig, ok := p.parseFuncSig()
		if !ok {
			return m, false
		}
		m.Type = p.prog.Types.NewFunc(p.cover(sigStart), sig)
	default:
		return m, p.unexpected(token.LParen, token.KwFunc, token.Ident)
	}

	if !p.eat(token.Semicolon) && !p.at(token.RBrace) {
		return m, p.unexpected(token.Semicolon, token.RBrace)
	}
	m.Span = p.cover(nameTok.Span)
	return m, true
}
