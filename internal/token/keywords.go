package token

// keywords maps every reserved spelling to its kind. The table is read-only after init.
var keywords = map[string]Kind{
	"type":    KwType,
	"import":  KwImport,
	"service": KwService,
	"func":    KwFunc,
	"opt":     KwOpt,
	"vec":     KwVec,
	"blob":    KwBlob,
	"record":  KwRecord,
	"variant": KwVariant,
	"oneway":  KwOneway,
	"query":   KwQuery,

	"nat":       PrimNat,
	"nat8":      PrimNat8,
	"nat16":     PrimNat16,
	"nat32":     PrimNat32,
	"nat64":     PrimNat64,
	"int":       PrimInt,
	"int8":      PrimInt8,
	"int16":     PrimInt16,
	"int32":     PrimInt32,
	"int64":     PrimInt64,
	"float32":   PrimFloat32,
	"float64":   PrimFloat64,
	"bool":      PrimBool,
	"text":      PrimText,
	"null":      PrimNull,
	"reserved":  PrimReserved,
	"empty":     PrimEmpty,
	"principal": PrimPrincipal,
}

// LookupKeyword returns the reserved kind for an exact, case-sensitive spelling.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

// Primitives lists the primitive kinds in declaration order.
func Primitives() []Kind {
	out := make([]Kind, 0, PrimPrincipal-PrimNat+1)
	for k := PrimNat; k <= PrimPrincipal; k++ {
		out = append(out, k)
	}
	return out
}
