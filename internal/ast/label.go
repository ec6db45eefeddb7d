package ast

import (
	"strconv"

	"candidc/internal/source"
)

type LabelKind uint8

const (
	// LabelName is an identifier label: `name: T`.
	LabelName LabelKind = iota
	// LabelText is a quoted label: `"name": T`.
	LabelText
	// LabelNumeric is an explicit tag: `42: T`.
	LabelNumeric
	// LabelPositional is an omitted label in a record (`record { nat; text }`).
	LabelPositional
)

// Label identifies a record or variant field.
// Name is set for LabelName and LabelText; ID is the 32-bit field id for every kind.
type Label struct {
	Kind LabelKind
	Name source.StringID
	ID   uint32
	Span source.Span
}

// LabelHash computes the field id of a named label: h = h*223 + byte, mod 2^32.
func LabelHash(name string) uint32 {
	var h uint32
	for i := 0; i < len(name); i++ {
		h = h*223 + uint32(name[i])
	}
	return h
}

// Text renders the label the way it is written in source.
func (l Label) Text(strs *source.Interner) string {
	switch l.Kind {
	case LabelName:
		return strs.MustLookup(l.Name)
	case LabelText:
		return strconv.Quote(strs.MustLookup(l.Name))
	default:
		return strconv.FormatUint(uint64(l.ID), 10)
	}
}
