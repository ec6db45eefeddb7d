package format_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"candidc/internal/assemble"
	"candidc/internal/format"
	"candidc/internal/parser"
	"candidc/internal/resolve"
	"candidc/internal/types"
)

func build(t *testing.T, src string) *assemble.Descriptor {
	t.Helper()
	prog, err := parser.ParseSource("test.did", src, parser.Options{})
	require.NoError(t, err, "parse:\n%s", src)
	res, err := resolve.Resolve(prog, resolve.Options{})
	require.NoError(t, err, "resolve:\n%s", src)
	desc, err := assemble.Assemble(res)
	require.NoError(t, err, "assemble:\n%s", src)
	return desc
}

func requireEquivalent(t *testing.T, a, b *assemble.Descriptor) {
	t.Helper()
	require.Len(t, b.Named(), len(a.Named()))
	for _, n := range a.Named() {
		other, ok := b.Lookup(n.Name)
		require.True(t, ok, "type %s lost", n.Name)
		require.True(t, types.Equivalent(a.Types(), n.ID, b.Types(), other), "type %s differs", n.Name)
	}
	require.Equal(t, a.Name(), b.Name())
	require.Len(t, b.Methods(), len(a.Methods()))
	for i, m := range a.Methods() {
		mb := b.Methods()[i]
		require.Equal(t, m.Name, mb.Name)
		require.Equal(t, m.Annotations, mb.Annotations)
		require.True(t, types.Equivalent(a.Types(), m.Type, b.Types(), mb.Type), "method %s differs", m.Name)
	}
	require.Len(t, b.InitArgs(), len(a.InitArgs()))
	for i, arg := range a.InitArgs() {
		require.True(t, types.Equivalent(a.Types(), arg, b.Types(), b.InitArgs()[i]))
	}
}

var roundTripCases = map[string]string{
	"primitives": `type P = record { a: nat; b: nat8; c: nat16; d: nat32; e: nat64; f: int; g: int8;
  h: int16; i: int32; j: int64; k: float32; l: float64; m: bool; n: text; o: null;
  p: reserved; q: empty; r: principal; s: blob };`,
	"recursive list": "type List = opt record { head: nat; tail: List };",
	"mutual":         "type A = opt B; type B = record { a: A; v: vec B };",
	"labels": `type R = record { nat; 5: text; "with space": bool; "type": int; blob };
type V = variant { ok; err: text; 42; "é" };`,
	"funcs": "type F = func (x: nat, text) -> (opt F) query; type G = func () -> () oneway;",
	"service": `type Tree = variant { leaf: nat; node: record { Tree; Tree } };
type Getter = func () -> (Tree) query;
service Forest : (seed: nat) -> {
  plant: (Tree) -> ();
  get: Getter;
  "odd name": (vec Tree) -> (opt Tree);
  notify: (text) -> () oneway;
}`,
	"service ref":   "type S = service (text) -> { ping: () -> () }; service : S",
	"empty service": "service : {}",
	"escapes":       `type E = record { "quote\"back\\slash\ttab": nat };`,
	"nested service": `type Cb = service { done: (nat) -> () oneway };
service : { register: (Cb) -> (); make: () -> (service { x: () -> () }); }`,
}

func TestRoundTrip(t *testing.T) {
	for name, src := range roundTripCases {
		t.Run(name, func(t *testing.T) {
			first := build(t, src)
			var buf bytes.Buffer
			require.NoError(t, format.Descriptor(&buf, first))
			second := build(t, buf.String())
			requireEquivalent(t, first, second)

			// печать стабильна: повторный вывод совпадает с первым
			var again bytes.Buffer
			require.NoError(t, format.Descriptor(&again, second))
			require.Equal(t, buf.String(), again.String())
		})
	}
}

func TestCanonicalOutput(t *testing.T) {
	desc := build(t, "type List = opt record { head: nat; tail: List };\nservice : { foo: (nat) -> (text) query; }")
	want := "type List = opt record { head : nat; tail : List };\n" +
		"service : {\n" +
		"  foo : (nat) -> (text) query;\n" +
		"};\n"
	require.Equal(t, want, string(format.Bytes(desc, format.Options{})))
}

func TestTypeInline(t *testing.T) {
	desc := build(t, "type V = vec variant { a; b: opt text };")
	v, _ := desc.Lookup("V")
	target, _ := desc.Types().NamedTarget(v)
	require.Equal(t, "vec variant { a : null; b : opt text }", format.Type(desc.Types(), target))
	require.Equal(t, "V", format.Type(desc.Types(), v))
}

func TestQuoteText(t *testing.T) {
	require.Equal(t, `"plain"`, format.QuoteText("plain"))
	require.Equal(t, `"a\"b\\c\n"`, format.QuoteText("a\"b\\c\n"))
	require.Equal(t, `"\u{7}"`, format.QuoteText("\a"))
	require.Equal(t, `"\ff"`, format.QuoteText("\xff"))
}
