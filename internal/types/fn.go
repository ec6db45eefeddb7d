package types

import (
	"slices"

	"candidc/internal/source"
)

// Annotation is a call-mode marker of a function type.
type Annotation uint8

const (
	AnnotationOneway Annotation = iota + 1
	AnnotationQuery
)

func (a Annotation) String() string {
	switch a {
	case AnnotationOneway:
		return "oneway"
	case AnnotationQuery:
		return "query"
	}
	return "unknown"
}

// Param is a function or initializer argument; Name is optional.
type Param struct {
	Name source.StringID
	Type TypeID
}

// FuncInfo stores metadata for function types.
type FuncInfo struct {
	Args        []Param
	Rets        []Param
	Annotations []Annotation
	Decl        source.Span
}

// RegisterFunc allocates a function node; the signature is set with SetFunc.
func (in *Interner) RegisterFunc(decl source.Span) TypeID {
	in.fns = append(in.fns, FuncInfo{Decl: decl})
	return in.internRaw(Type{Kind: KindFunc, Payload: slot(len(in.fns))})
}

// SetFunc stores the resolved signature of a function node.
func (in *Interner) SetFunc(id TypeID, args, rets []Param, anns []Annotation) {
	info := in.funcInfo(id)
	if info == nil {
		return
	}
	info.Args = slices.Clone(args)
	info.Rets = slices.Clone(rets)
	info.Annotations = slices.Clone(anns)
}

// FuncInfo retrieves function type metadata by TypeID.
func (in *Interner) FuncInfo(id TypeID) (*FuncInfo, bool) {
	info := in.funcInfo(id)
	return info, info != nil
}

func (in *Interner) funcInfo(id TypeID) *FuncInfo {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindFunc || tt.Payload == 0 || int(tt.Payload) >= len(in.fns) {
		return nil
	}
	return &in.fns[tt.Payload]
}

// ParamTypes returns the types of params in order.
func ParamTypes(params []Param) []TypeID {
	out := make([]TypeID, len(params))
	for i, p := range params {
		out[i] = p.Type
	}
	return out
}
