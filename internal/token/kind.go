package token

import "strconv"

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident
	// TextLit represents a double-quoted text literal.
	TextLit
	// NatLit represents an unsigned decimal or hexadecimal literal.
	NatLit

	Semicolon // ;
	Colon     // :
	Assign    // =
	Arrow     // ->
	LBrace    // {
	RBrace    // }
	LParen    // (
	RParen    // )
	Comma     // ,

	KwType    // type
	KwImport  // import
	KwService // service
	KwFunc    // func
	KwOpt     // opt
	KwVec     // vec
	KwBlob    // blob
	KwRecord  // record
	KwVariant // variant

	// call-mode annotations
	KwOneway // oneway
	KwQuery  // query

	// primitive type names
	PrimNat       // nat
	PrimNat8      // nat8
	PrimNat16     // nat16
	PrimNat32     // nat32
	PrimNat64     // nat64
	PrimInt       // int
	PrimInt8      // int8
	PrimInt16     // int16
	PrimInt32     // int32
	PrimInt64     // int64
	PrimFloat32   // float32
	PrimFloat64   // float64
	PrimBool      // bool
	PrimText      // text
	PrimNull      // null
	PrimReserved  // reserved
	PrimEmpty     // empty
	PrimPrincipal // principal
)

var kindNames = [...]string{
	Invalid:       "invalid",
	EOF:           "EOF",
	Ident:         "identifier",
	TextLit:       "text literal",
	NatLit:        "number",
	Semicolon:     "';'",
	Colon:         "':'",
	Assign:        "'='",
	Arrow:         "'->'",
	LBrace:        "'{'",
	RBrace:        "'}'",
	LParen:        "'('",
	RParen:        "')'",
	Comma:         "','",
	KwType:        "'type'",
	KwImport:      "'import'",
	KwService:     "'service'",
	KwFunc:        "'func'",
	KwOpt:         "'opt'",
	KwVec:         "'vec'",
	KwBlob:        "'blob'",
	KwRecord:      "'record'",
	KwVariant:     "'variant'",
	KwOneway:      "'oneway'",
	KwQuery:       "'query'",
	PrimNat:       "nat",
	PrimNat8:      "nat8",
	PrimNat16:     "nat16",
	PrimNat32:     "nat32",
	PrimNat64:     "nat64",
	PrimInt:       "int",
	PrimInt8:      "int8",
	PrimInt16:     "int16",
	PrimInt32:     "int32",
	PrimInt64:     "int64",
	PrimFloat32:   "float32",
	PrimFloat64:   "float64",
	PrimBool:      "bool",
	PrimText:      "text",
	PrimNull:      "null",
	PrimReserved:  "reserved",
	PrimEmpty:     "empty",
	PrimPrincipal: "principal",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// IsPrimitive reports whether k names a primitive type.
func (k Kind) IsPrimitive() bool {
	return k >= PrimNat && k <= PrimPrincipal
}

// IsKeyword reports whether k is a reserved word (keywords and annotations).
func (k Kind) IsKeyword() bool {
	return k >= KwType && k <= KwQuery
}

// IsAnnotation reports whether k is a call-mode annotation.
func (k Kind) IsAnnotation() bool {
	return k == KwOneway || k == KwQuery
}

// IsPunct reports whether k is punctuation.
func (k Kind) IsPunct() bool {
	return k >= Semicolon && k <= Comma
}
