package types

import "fmt"

// TypeID uniquely identifies a type inside the interner.
type TypeID uint32

// NoTypeID marks the absence of a type.
const NoTypeID TypeID = 0

// Kind enumerates all supported kinds of types.
type Kind uint8

const (
	KindInvalid Kind = iota

	KindNat
	KindNat8
	KindNat16
	KindNat32
	KindNat64
	KindInt
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindFloat32
	KindFloat64
	KindBool
	KindText
	KindNull
	KindReserved
	KindEmpty
	KindPrincipal

	KindOpt
	KindVec
	KindBlob
	KindRecord
	KindVariant
	KindFunc
	KindService
	// KindNamed is a declared type name; its target lives in NamedInfo.
	KindNamed
)

var kindNames = [...]string{
	KindInvalid:   "invalid",
	KindNat:       "nat",
	KindNat8:      "nat8",
	KindNat16:     "nat16",
	KindNat32:     "nat32",
	KindNat64:     "nat64",
	KindInt:       "int",
	KindInt8:      "int8",
	KindInt16:     "int16",
	KindInt32:     "int32",
	KindInt64:     "int64",
	KindFloat32:   "float32",
	KindFloat64:   "float64",
	KindBool:      "bool",
	KindText:      "text",
	KindNull:      "null",
	KindReserved:  "reserved",
	KindEmpty:     "empty",
	KindPrincipal: "principal",
	KindOpt:       "opt",
	KindVec:       "vec",
	KindBlob:      "blob",
	KindRecord:    "record",
	KindVariant:   "variant",
	KindFunc:      "func",
	KindService:   "service",
	KindNamed:     "named",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// IsPrimitive reports whether k is one of the fixed primitive types.
func (k Kind) IsPrimitive() bool {
	return k >= KindNat && k <= KindPrincipal
}

// IsBoundary reports whether k starts a structural level. Alias chains
// do not continue through these kinds.
func (k Kind) IsBoundary() bool {
	switch k {
	case KindOpt, KindVec, KindRecord, KindVariant, KindFunc, KindService:
		return true
	}
	return false
}

// Type is a compact descriptor. Elem is used by opt and vec; Payload indexes
// the side table of records, variants, funcs, services and named types.
type Type struct {
	Kind    Kind
	Elem    TypeID
	Payload uint32
}
