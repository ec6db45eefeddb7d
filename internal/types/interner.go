package types

import (
	"fmt"

	"fortio.org/safecast"

	"candidc/internal/source"
)

// Interner provides stable TypeIDs. Primitives, opt, vec and blob are
// deduplicated by structure; composite kinds own a payload slot each.
type Interner struct {
	types      []Type
	index      map[typeKey]TypeID
	strings    *source.Interner
	composites []CompositeInfo
	fns        []FuncInfo
	services   []ServiceInfo
	named      []NamedInfo
}

type typeKey struct {
	Kind    Kind
	Elem    TypeID
	Payload uint32
}

// NewInterner constructs an interner whose names live in strs.
// A fresh string interner is created when strs is nil.
func NewInterner(strs *source.Interner) *Interner {
	if strs == nil {
		strs = source.NewInterner()
	}
	in := &Interner{
		index:   make(map[typeKey]TypeID, 64),
		strings: strs,
	}
	// слот 0 зарезервирован под NoTypeID и пустые payload
	in.types = append(in.types, Type{Kind: KindInvalid})
	in.composites = append(in.composites, CompositeInfo{})
	in.fns = append(in.fns, FuncInfo{})
	in.services = append(in.services, ServiceInfo{})
	in.named = append(in.named, NamedInfo{})
	return in
}

// Strings returns the interner holding type, label and method names.
func (in *Interner) Strings() *source.Interner {
	return in.strings
}

// Name returns the text of a name interned in Strings.
func (in *Interner) Name(id source.StringID) string {
	return in.strings.MustLookup(id)
}

// Primitive returns the TypeID of a primitive kind.
func (in *Interner) Primitive(k Kind) TypeID {
	if !k.IsPrimitive() {
		panic(fmt.Errorf("types: %s is not a primitive", k))
	}
	return in.intern(Type{Kind: k})
}

func (in *Interner) Opt(elem TypeID) TypeID {
	return in.intern(Type{Kind: KindOpt, Elem: elem})
}

func (in *Interner) Vec(elem TypeID) TypeID {
	return in.intern(Type{Kind: KindVec, Elem: elem})
}

func (in *Interner) Blob() TypeID {
	return in.intern(Type{Kind: KindBlob})
}

func (in *Interner) intern(t Type) TypeID {
	key := typeKey(t)
	if id, ok := in.index[key]; ok {
		return id
	}
	id := in.internRaw(t)
	in.index[key] = id
	return id
}

// internRaw adds the descriptor to the storage without consulting the map.
func (in *Interner) internRaw(t Type) TypeID {
	n, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("len(types) overflow: %w", err))
	}
	in.types = append(in.types, t)
	return TypeID(n)
}

// Lookup returns the descriptor for a TypeID.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	if id == NoTypeID || int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// MustLookup panics when id is invalid.
func (in *Interner) MustLookup(id TypeID) Type {
	tt, ok := in.Lookup(id)
	if !ok {
		panic("types: invalid TypeID")
	}
	return tt
}

// Len returns the number of allocated type nodes, the sentinel excluded.
func (in *Interner) Len() int {
	return len(in.types) - 1
}

// Underlying follows named nodes until a structural type is reached.
// It returns NoTypeID for unresolved names and for alias loops.
func (in *Interner) Underlying(id TypeID) TypeID {
	for steps := 0; steps <= len(in.named); steps++ {
		tt, ok := in.Lookup(id)
		if !ok {
			return NoTypeID
		}
		if tt.Kind != KindNamed {
			return id
		}
		id = in.named[tt.Payload].Target
	}
	return NoTypeID
}

func slot(n int) uint32 {
	s, err := safecast.Conv[uint32](n - 1)
	if err != nil {
		panic(fmt.Errorf("payload slot overflow: %w", err))
	}
	return s
}
