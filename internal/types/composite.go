package types

import (
	"slices"

	"candidc/internal/source"
)

// Label names a record or variant field. Name is NoStringID for numeric
// and positional labels; ID is always the 32-bit field id.
type Label struct {
	Name source.StringID
	ID   uint32
}

type Field struct {
	Label Label
	Type  TypeID
	Span  source.Span
}

// CompositeInfo stores the fields of a record or variant in source order.
type CompositeInfo struct {
	Fields []Field
	Decl   source.Span
}

// RegisterRecord allocates a record node. Fields are set later with SetFields
// so that recursive references can point at the node while it is built.
func (in *Interner) RegisterRecord(decl source.Span) TypeID {
	return in.registerComposite(KindRecord, decl)
}

func (in *Interner) RegisterVariant(decl source.Span) TypeID {
	return in.registerComposite(KindVariant, decl)
}

func (in *Interner) registerComposite(kind Kind, decl source.Span) TypeID {
	in.composites = append(in.composites, CompositeInfo{Decl: decl})
	return in.internRaw(Type{Kind: kind, Payload: slot(len(in.composites))})
}

// SetFields stores the resolved fields of a record or variant.
func (in *Interner) SetFields(id TypeID, fields []Field) {
	if info := in.compositeInfo(id); info != nil {
		info.Fields = slices.Clone(fields)
	}
}

// CompositeInfo returns metadata for a record or variant TypeID.
func (in *Interner) CompositeInfo(id TypeID) (*CompositeInfo, bool) {
	info := in.compositeInfo(id)
	return info, info != nil
}

// Fields returns the fields of a record or variant; nil for other kinds.
func (in *Interner) Fields(id TypeID) []Field {
	info := in.compositeInfo(id)
	if info == nil {
		return nil
	}
	return info.Fields
}

func (in *Interner) compositeInfo(id TypeID) *CompositeInfo {
	tt, ok := in.Lookup(id)
	if !ok || (tt.Kind != KindRecord && tt.Kind != KindVariant) {
		return nil
	}
	if tt.Payload == 0 || int(tt.Payload) >= len(in.composites) {
		return nil
	}
	return &in.composites[tt.Payload]
}
