package ast

import (
	"candidc/internal/source"
	"candidc/internal/token"
)

// TypeKind is the closed set of type expression forms.
type TypeKind uint8

const (
	TypePrimitive TypeKind = iota + 1
	TypeNamed
	TypeOpt
	TypeVec
	TypeBlob
	TypeRecord
	TypeVariant
	TypeFunc
	TypeService
)

func (k TypeKind) String() string {
	switch k {
	case TypePrimitive:
		return "Primitive"
	case TypeNamed:
		return "Named"
	case TypeOpt:
		return "Opt"
	case TypeVec:
		return "Vec"
	case TypeBlob:
		return "Blob"
	case TypeRecord:
		return "Record"
	case TypeVariant:
		return "Variant"
	case TypeFunc:
		return "Func"
	case TypeService:
		return "Service"
	}
	return "Invalid"
}

// TypeExpr is one node of the syntactic type tree.
//   - TypePrimitive: Prim
//   - TypeNamed: Name
//   - TypeOpt, TypeVec: Elem
//   - TypeRecord, TypeVariant, TypeFunc, TypeService: Payload into the matching side arena
type TypeExpr struct {
	Kind    TypeKind
	Span    source.Span
	Prim    token.Kind
	Name    source.StringID
	Elem    TypeExprID
	Payload PayloadID
}

type Field struct {
	Label Label
	Type  TypeExprID
	Span  source.Span
}

// Fields is the payload of records and variants.
type Fields struct {
	Fields []Field
}

// Arg is one entry of a function or service-init argument list; Name is optional.
type Arg struct {
	Name source.StringID
	Type TypeExprID
	Span source.Span
}

type Annotation struct {
	Kind token.Kind // token.KwOneway or token.KwQuery
	Span source.Span
}

type FuncSig struct {
	Args        []Arg
	Rets        []Arg
	Annotations []Annotation
}

// Method is `name : FuncSig` or `name : FuncTypeName`; Type is a TypeFunc or TypeNamed node.
type Method struct {
	Name     source.StringID
	NameSpan source.Span
	Type     TypeExprID
	Span     source.Span
}

// ServiceSig is the payload of an inline service type.
type ServiceSig struct {
	Init    []Arg
	HasInit bool
	Methods []Method
}

type TypeExprs struct {
	Arena    *Arena[TypeExprID, TypeExpr]
	Fields   *Arena[PayloadID, Fields]
	Funcs    *Arena[PayloadID, FuncSig]
	Services *Arena[PayloadID, ServiceSig]
}

func NewTypeExprs(capHint uint) *TypeExprs {
	return &TypeExprs{
		Arena:    NewArena[TypeExprID, TypeExpr](capHint),
		Fields:   NewArena[PayloadID, Fields](capHint / 4),
		Funcs:    NewArena[PayloadID, FuncSig](capHint / 8),
		Services: NewArena[PayloadID, ServiceSig](1),
	}
}

func (t *TypeExprs) Get(id TypeExprID) *TypeExpr {
	return t.Arena.Get(id)
}

func (t *TypeExprs) NewPrimitive(span source.Span, prim token.Kind) TypeExprID {
	return t.Arena.Allocate(TypeExpr{Kind: TypePrimitive, Span: span, Prim: prim})
}

func (t *TypeExprs) NewNamed(span source.Span, name source.StringID) TypeExprID {
	return t.Arena.Allocate(TypeExpr{Kind: TypeNamed, Span: span, Name: name})
}

func (t *TypeExprs) NewBlob(span source.Span) TypeExprID {
	return t.Arena.Allocate(TypeExpr{Kind: TypeBlob, Span: span})
}

// NewWrapper allocates an Opt or Vec node around elem.
func (t *TypeExprs) NewWrapper(kind TypeKind, span source.Span, elem TypeExprID) TypeExprID {
	return t.Arena.Allocate(TypeExpr{Kind: kind, Span: span, Elem: elem})
}

// NewComposite allocates a Record or Variant node.
func (t *TypeExprs) NewComposite(kind TypeKind, span source.Span, fields []Field) TypeExprID {
	payload := t.Fields.Allocate(Fields{Fields: fields})
	return t.Arena.Allocate(TypeExpr{Kind: kind, Span: span, Payload: payload})
}

func (t *TypeExprs) NewFunc(span source.Span, sig FuncSig) TypeExprID {
	payload := t.Funcs.Allocate(sig)
	return t.Arena.Allocate(TypeExpr{Kind: TypeFunc, Span: span, Payload: payload})
}

func (t *TypeExprs) NewService(span source.Span, sig ServiceSig) TypeExprID {
	payload := t.Services.Allocate(sig)
	return t.Arena.Allocate(TypeExpr{Kind: TypeService, Span: span, Payload: payload})
}

// Composite returns the fields of a Record or Variant node.
func (t *TypeExprs) Composite(id TypeExprID) (*Fields, bool) {
	te := t.Get(id)
	if te == nil || (te.Kind != TypeRecord && te.Kind != TypeVariant) {
		return nil, false
	}
	return t.Fields.Get(te.Payload), true
}

func (t *TypeExprs) Func(id TypeExprID) (*FuncSig, bool) {
	te := t.Get(id)
	if te == nil || te.Kind != TypeFunc {
		return nil, false
	}
	return t.Funcs.Get(te.Payload), true
}

func (t *TypeExprs) Service(id TypeExprID) (*ServiceSig, bool) {
	te := t.Get(id)
	if te == nil || te.Kind != TypeService {
		return nil, false
	}
	return t.Services.Get(te.Payload), true
}
