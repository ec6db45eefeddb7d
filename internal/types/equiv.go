package types

import "slices"

type typePair struct {
	x, y TypeID
}

// Equivalent reports whether x in a and y in b describe the same graph.
// The check is a bisimulation: named nodes must match by name, fields by
// label, methods by name, and cycles are accepted once both sides loop back
// to a pair already under comparison.
func Equivalent(a *Interner, x TypeID, b *Interner, y TypeID) bool {
	e := &equivalence{a: a, b: b, assumed: make(map[typePair]struct{})}
	return e.eq(x, y)
}

type equivalence struct {
	a, b    *Interner
	assumed map[typePair]struct{}
}

func (e *equivalence) eq(x, y TypeID) bool {
	if x == NoTypeID || y == NoTypeID {
		return x == y
	}
	p := typePair{x, y}
	if _, ok := e.assumed[p]; ok {
		return true
	}
	tx, okx := e.a.Lookup(x)
	ty, oky := e.b.Lookup(y)
	if !okx || !oky || tx.Kind != ty.Kind {
		return false
	}
	if tx.Kind.IsPrimitive() || tx.Kind == KindBlob {
		return true
	}
	e.assumed[p] = struct{}{}

	switch tx.Kind {
	case KindOpt, KindVec:
		return e.eq(tx.Elem, ty.Elem)

	case KindNamed:
		nx, _ := e.a.NamedInfo(x)
		ny, _ := e.b.NamedInfo(y)
		return e.a.Name(nx.Name) == e.b.Name(ny.Name) && e.eq(nx.Target, ny.Target)

	case KindRecord, KindVariant:
		fx, fy := e.a.Fields(x), e.b.Fields(y)
		if len(fx) != len(fy) {
			return false
		}
		for i := range fx {
			if !e.sameLabel(fx[i].Label, fy[i].Label) || !e.eq(fx[i].Type, fy[i].Type) {
				return false
			}
		}
		return true

	case KindFunc:
		ix, _ := e.a.FuncInfo(x)
		iy, _ := e.b.FuncInfo(y)
		return slices.Equal(ix.Annotations, iy.Annotations) &&
			e.params(ix.Args, iy.Args) &&
			e.params(ix.Rets, iy.Rets)

	case KindService:
		sx, _ := e.a.ServiceInfo(x)
		sy, _ := e.b.ServiceInfo(y)
		if sx.HasInit != sy.HasInit || len(sx.Methods) != len(sy.Methods) || !e.params(sx.Init, sy.Init) {
			return false
		}
		for i := range sx.Methods {
			mx, my := sx.Methods[i], sy.Methods[i]
			if e.a.Name(mx.Name) != e.b.Name(my.Name) || !e.eq(mx.Type, my.Type) {
				return false
			}
		}
		return true
	}
	return false
}

func (e *equivalence) sameLabel(lx, ly Label) bool {
	return lx.ID == ly.ID && e.a.Name(lx.Name) == e.b.Name(ly.Name)
}

func (e *equivalence) params(px, py []Param) bool {
	if len(px) != len(py) {
		return false
	}
	for i := range px {
		if e.a.Name(px[i].Name) != e.b.Name(py[i].Name) || !e.eq(px[i].Type, py[i].Type) {
			return false
		}
	}
	return true
}
