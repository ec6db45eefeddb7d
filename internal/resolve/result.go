package resolve

import (
	"candidc/internal/source"
	"candidc/internal/types"
)

// NamedType is one declared name and its named node.
type NamedType struct {
	Name string
	ID   types.TypeID
	Span source.Span
}

// ResolvedService is the service declaration of the root program.
// Type is a service node, or a named node expected to resolve to one.
type ResolvedService struct {
	Name    string // empty when anonymous
	Type    types.TypeID
	Init    []types.Param
	HasInit bool
	Span    source.Span
}

type Result struct {
	Types   *types.Interner
	Named   []NamedType // declaration order, imports first
	Service *ResolvedService
	index   map[string]int
}

// Lookup returns the named node of a declared type.
func (r *Result) Lookup(name string) (types.TypeID, bool) {
	i, ok := r.index[name]
	if !ok {
		return types.NoTypeID, false
	}
	return r.Named[i].ID, true
}
