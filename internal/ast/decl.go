package ast

import "candidc/internal/source"

type ImportDecl struct {
	Path string // decoded literal value
	Span source.Span
}

type TypeDecl struct {
	Name     source.StringID
	NameSpan source.Span
	Body     TypeExprID
	Span     source.Span
}

// ServiceDecl describes the single service of a file.
// Body is an inline TypeService node or a TypeNamed reference to one.
// Init holds the initializer arguments when HasInit is set.
type ServiceDecl struct {
	Name     source.StringID // NoStringID when anonymous
	NameSpan source.Span
	Init     []Arg
	HasInit  bool
	Body     TypeExprID
	Span     source.Span
}

// Program is the parse result of one file. Decls keep source order.
type Program struct {
	File    source.FileID
	Strings *source.Interner
	Types   *TypeExprs
	Imports []ImportDecl
	Decls   []TypeDecl
	Service *ServiceDecl
}

func NewProgram(file source.FileID, strs *source.Interner, capHint uint) *Program {
	if strs == nil {
		strs = source.NewInterner()
	}
	return &Program{
		File:    file,
		Strings: strs,
		Types:   NewTypeExprs(capHint),
	}
}

// Name returns the interned text of id.
func (p *Program) Name(id source.StringID) string {
	return p.Strings.MustLookup(id)
}
