package types

import "candidc/internal/source"

// NamedInfo stores metadata for a declared type name.
type NamedInfo struct {
	Name   source.StringID
	Decl   source.Span
	Target TypeID
}

// RegisterNamed allocates a named node; its target is set with SetNamedTarget.
// Every declaration gets exactly one named node.
func (in *Interner) RegisterNamed(name source.StringID, decl source.Span) TypeID {
	in.named = append(in.named, NamedInfo{Name: name, Decl: decl})
	return in.internRaw(Type{Kind: KindNamed, Payload: slot(len(in.named))})
}

// SetNamedTarget sets the target type for the provided named TypeID.
func (in *Interner) SetNamedTarget(id, target TypeID) {
	if info := in.namedInfo(id); info != nil {
		info.Target = target
	}
}

// NamedTarget retrieves the direct target of a named node.
func (in *Interner) NamedTarget(id TypeID) (TypeID, bool) {
	info := in.namedInfo(id)
	if info == nil || info.Target == NoTypeID {
		return NoTypeID, false
	}
	return info.Target, true
}

// NamedInfo returns metadata for the provided named TypeID.
func (in *Interner) NamedInfo(id TypeID) (*NamedInfo, bool) {
	info := in.namedInfo(id)
	return info, info != nil
}

func (in *Interner) namedInfo(id TypeID) *NamedInfo {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindNamed || tt.Payload == 0 || int(tt.Payload) >= len(in.named) {
		return nil
	}
	return &in.named[tt.Payload]
}
