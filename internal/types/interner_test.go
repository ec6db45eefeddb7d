package types

import (
	"testing"

	"candidc/internal/source"
)

func TestStructuralDedup(t *testing.T) {
	in := NewInterner(nil)
	nat := in.Primitive(KindNat)
	if nat != in.Primitive(KindNat) {
		t.Fatalf("primitive not deduplicated")
	}
	if in.Opt(nat) != in.Opt(nat) || in.Vec(nat) != in.Vec(nat) || in.Blob() != in.Blob() {
		t.Fatalf("opt/vec/blob not deduplicated")
	}
	if in.Opt(nat) == in.Vec(nat) {
		t.Fatalf("opt and vec must differ")
	}
	r1 := in.RegisterRecord(source.Span{})
	r2 := in.RegisterRecord(source.Span{})
	if r1 == r2 {
		t.Fatalf("records must get their own slots")
	}
}

func TestPrimitivePanicsOnNonPrimitive(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	NewInterner(nil).Primitive(KindOpt)
}

func TestNamedUnderlying(t *testing.T) {
	strs := source.NewInterner()
	in := NewInterner(strs)
	a := in.RegisterNamed(strs.Intern("A"), source.Span{})
	b := in.RegisterNamed(strs.Intern("B"), source.Span{})
	nat := in.Primitive(KindNat)
	in.SetNamedTarget(a, b)
	in.SetNamedTarget(b, nat)

	if got, _ := in.NamedTarget(a); got != b {
		t.Fatalf("alias indirection lost: %d", got)
	}
	if in.Underlying(a) != nat {
		t.Fatalf("Underlying(A) = %d, want nat", in.Underlying(a))
	}
	if in.Underlying(nat) != nat {
		t.Fatalf("Underlying of a structural type is itself")
	}

	// петля алиасов не должна зависать
	in.SetNamedTarget(b, a)
	if in.Underlying(a) != NoTypeID {
		t.Fatalf("alias loop must yield NoTypeID")
	}
}

func TestPayloadAccessors(t *testing.T) {
	strs := source.NewInterner()
	in := NewInterner(strs)
	nat := in.Primitive(KindNat)

	rec := in.RegisterRecord(source.Span{})
	in.SetFields(rec, []Field{{Label: Label{Name: strs.Intern("a"), ID: 97}, Type: nat}})
	if f := in.Fields(rec); len(f) != 1 || f[0].Type != nat {
		t.Fatalf("fields = %+v", f)
	}
	if in.Fields(nat) != nil {
		t.Fatalf("primitives have no fields")
	}

	fn := in.RegisterFunc(source.Span{})
	in.SetFunc(fn, []Param{{Type: nat}}, nil, []Annotation{AnnotationQuery})
	info, ok := in.FuncInfo(fn)
	if !ok || len(info.Args) != 1 || info.Annotations[0] != AnnotationQuery {
		t.Fatalf("func info = %+v", info)
	}

	svc := in.RegisterService(source.Span{})
	in.SetService(svc, nil, false, []Method{{Name: strs.Intern("m"), Type: fn}})
	sinfo, ok := in.ServiceInfo(svc)
	if !ok || len(sinfo.Methods) != 1 {
		t.Fatalf("service info = %+v", sinfo)
	}
	if _, ok := in.ServiceInfo(fn); ok {
		t.Fatalf("ServiceInfo must reject func nodes")
	}
}

// buildList строит type List = opt record { head: nat; tail: List }.
func buildList(in *Interner, name string) TypeID {
	strs := in.Strings()
	list := in.RegisterNamed(strs.Intern(name), source.Span{})
	rec := in.RegisterRecord(source.Span{})
	in.SetFields(rec, []Field{
		{Label: Label{Name: strs.Intern("head"), ID: 1158359328}, Type: in.Primitive(KindNat)},
		{Label: Label{Name: strs.Intern("tail"), ID: 1291237008}, Type: list},
	})
	in.SetNamedTarget(list, in.Opt(rec))
	return list
}

func TestEquivalentCycles(t *testing.T) {
	a, b := NewInterner(nil), NewInterner(nil)
	// сдвигаем нумерацию во втором интернере
	b.Primitive(KindText)
	b.Vec(b.Primitive(KindBool))

	la, lb := buildList(a, "List"), buildList(b, "List")
	if la == lb {
		t.Fatalf("test setup should produce different IDs")
	}
	if !Equivalent(a, la, b, lb) {
		t.Fatalf("identical recursive lists must be equivalent")
	}

	c := NewInterner(nil)
	if Equivalent(a, la, c, buildList(c, "Other")) {
		t.Fatalf("different names must not be equivalent")
	}
}

func TestEquivalentDetectsDifferences(t *testing.T) {
	a, b := NewInterner(nil), NewInterner(nil)
	if !Equivalent(a, a.Opt(a.Primitive(KindNat)), b, b.Opt(b.Primitive(KindNat))) {
		t.Fatalf("opt nat must match")
	}
	if Equivalent(a, a.Opt(a.Primitive(KindNat)), b, b.Vec(b.Primitive(KindNat))) {
		t.Fatalf("opt vs vec must differ")
	}
	fa := a.RegisterFunc(source.Span{})
	a.SetFunc(fa, nil, nil, []Annotation{AnnotationQuery})
	fb := b.RegisterFunc(source.Span{})
	b.SetFunc(fb, nil, nil, []Annotation{AnnotationOneway})
	if Equivalent(a, fa, b, fb) {
		t.Fatalf("annotations must be compared")
	}
}
