package parser

import (
	"math"
	"strconv"
	"strings"

	"candidc/internal/ast"
	"candidc/internal/diag"
	"candidc/internal/token"
)

// '{' (Field (';' | ','))* Field? '}'
func (p *Parser) parseFieldList(kind ast.TypeKind) ([]ast.Field, bool) {
	if _, ok := p.expect(token.LBrace); !ok {
		return nil, false
	}
	fields := make([]ast.Field, 0, 4)
	for !p.at(token.RBrace) {
		var (
			f    ast.Field
			bare bool
			ok   bool
		)
		if kind == ast.TypeRecord {
			f, bare, ok = p.parseRecordField(len(fields))
		} else {
			f, bare, ok = p.parseVariantField()
		}
		if !ok {
			return nil, false
		}
		fields = append(fields, f)

		if p.atOr(token.Semicolon, token.Comma) {
			p.advance()
			continue
		}
		if !p.at(token.RBrace) {
			// "record { a nat }", "variant { a nat }": метка без ':'
			if bare {
				return nil, p.unexpected(token.Colon, token.Semicolon, token.Comma, token.RBrace)
			}
			return nil, p.unexpected(token.Semicolon, token.Comma, token.RBrace)
		}
	}
	p.advance() // '}'
	return fields, true
}

// parseRecordField returns bare=true when the field was a lone identifier
// taken as a positional type reference.
func (p *Parser) parseRecordField(position int) (ast.Field, bool, bool) {
	start := p.peek()
	var f ast.Field

	hasLabel := false
	switch start.Kind {
	case token.NatLit, token.TextLit:
		hasLabel = true
	case token.Ident:
		hasLabel = p.peekN(1).Kind == token.Colon
	}

	if hasLabel {
		label, ok := p.parseLabel()
		if !ok {
			return f, false, false
		}
		if _, ok := p.expect(token.Colon); !ok {
			return f, false, false
		}
		ty, ok := p.parseType()
		if !ok {
			return f, false, false
		}
		f.Label, f.Type = label, ty
		f.Span = p.cover(start.Span)
		return f, false, true
	}

	ty, ok := p.parseType()
	if !ok {
		return f, false, false
	}
	f.Label = ast.Label{Kind: ast.LabelPositional, ID: uint32(position), Span: start.Span} // #nosec G115 -- bounded by token count
	f.Type = ty
	f.Span = p.cover(start.Span)
	return f, start.Kind == token.Ident, true
}

// label (':' TypeExpr)? ; без типа поле имеет тип null
// parseVariantField returns bare=true for a label without ': T'.
func (p *Parser) parseVariantField() (ast.Field, bool, bool) {
	start := p.peek()
	var f ast.Field
	if !p.atOr(token.Ident, token.NatLit, token.TextLit) {
		return f, false, p.unexpected(token.Ident, token.NatLit, token.TextLit, token.RBrace)
	}
	label, ok := p.parseLabel()
	if !ok {
		return f, false, false
	}
	f.Label = label
	bare := !p.eat(token.Colon)
	if bare {
		f.Type = p.prog.Types.NewPrimitive(label.Span, token.PrimNull)
	} else {
		ty, ok := p.parseType()
		if !ok {
			return f, false, false
		}
		f.Type = ty
	}
	f.Span = p.cover(start.Span)
	return f, bare, true
}

func (p *Parser) parseLabel() (ast.Label, bool) {
	tok := p.advance()
	switch tok.Kind {
	case token.Ident:
		return ast.Label{Kind: ast.LabelName, Name: p.intern(tok.Text), ID: ast.LabelHash(tok.Text), Span: tok.Span}, true
	case token.TextLit:
		name, ok := p.decodeText(tok)
		if !ok {
			return ast.Label{}, false
		}
		return ast.Label{Kind: ast.LabelText, Name: p.intern(name), ID: ast.LabelHash(name), Span: tok.Span}, true
	case token.NatLit:
		v, ok := parseLabelNumber(tok.Text)
		if !ok {
			return ast.Label{}, p.fail(&ParseError{
				Span:  tok.Span,
				Found: tok,
				Msg:   "field label out of range",
				code:  diag.SynLabelOutOfRange,
			})
		}
		return ast.Label{Kind: ast.LabelNumeric, ID: v, Span: tok.Span}, true
	}
	return ast.Label{}, p.fail(&ParseError{Span: tok.Span, Expected: []token.Kind{token.Ident, token.NatLit, token.TextLit}, Found: tok})
}

// parseLabelNumber разбирает десятичный или 0x-литерал; значение должно влезать в uint32.
func parseLabelNumber(text string) (uint32, bool) {
	digits := strings.ReplaceAll(text, "_", "")
	base := 10
	if len(digits) > 2 && digits[0] == '0' && (digits[1] == 'x' || digits[1] == 'X') {
		digits, base = digits[2:], 16
	}
	v, err := strconv.ParseUint(digits, base, 64)
	if err != nil || v > math.MaxUint32 {
		return 0, false
	}
	return uint32(v), true
}
