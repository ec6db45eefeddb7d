package parser_test

import (
	"errors"
	"strings"
	"testing"

	"candidc/internal/ast"
	"candidc/internal/diag"
	"candidc/internal/parser"
	"candidc/internal/token"
)

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, err := parser.ParseSource("test.did", src, parser.Options{})
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	return prog
}

func parseErr(t *testing.T, src string) *parser.ParseError {
	t.Helper()
	_, err := parser.ParseSource("test.did", src, parser.Options{})
	var perr *parser.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("%q: expected *ParseError, got %v", src, err)
	}
	return perr
}

func TestRecordDecl(t *testing.T) {
	prog := mustParse(t, "type A = record { a: nat; b: opt text };")
	if len(prog.Decls) != 1 {
		t.Fatalf("want 1 decl, got %d", len(prog.Decls))
	}
	decl := prog.Decls[0]
	if prog.Name(decl.Name) != "A" {
		t.Fatalf("decl name = %q", prog.Name(decl.Name))
	}
	body := prog.Types.Get(decl.Body)
	if body.Kind != ast.TypeRecord {
		t.Fatalf("body kind = %v", body.Kind)
	}
	fields, _ := prog.Types.Composite(decl.Body)
	if len(fields.Fields) != 2 {
		t.Fatalf("want 2 fields, got %d", len(fields.Fields))
	}
	a, b := fields.Fields[0], fields.Fields[1]
	if a.Label.Kind != ast.LabelName || prog.Name(a.Label.Name) != "a" || a.Label.ID != ast.LabelHash("a") {
		t.Fatalf("field 0 label = %+v", a.Label)
	}
	if te := prog.Types.Get(a.Type); te.Kind != ast.TypePrimitive || te.Prim != token.PrimNat {
		t.Fatalf("field a type = %+v", te)
	}
	opt := prog.Types.Get(b.Type)
	if prog.Name(b.Label.Name) != "b" || opt.Kind != ast.TypeOpt {
		t.Fatalf("field b = %+v / %+v", b.Label, opt)
	}
	if elem := prog.Types.Get(opt.Elem); elem.Prim != token.PrimText {
		t.Fatalf("opt elem = %+v", elem)
	}
}

func TestMissingColonInRecord(t *testing.T) {
	src := "type T = record { a nat };"
	perr := parseErr(t, src)
	if !perr.Expects(token.Colon) {
		t.Fatalf("expected ':' among %v", perr.Expected)
	}
	if perr.Found.Kind != token.PrimNat || perr.Span.Start != uint32(strings.Index(src, "nat")) {
		t.Fatalf("error should point at nat, got %+v", perr)
	}
}

func TestMissingColonInVariant(t *testing.T) {
	src := "type V = variant { ok; a nat };"
	perr := parseErr(t, src)
	if !perr.Expects(token.Colon) || !perr.Expects(token.RBrace) {
		t.Fatalf("expected ':' and '}' among %v", perr.Expected)
	}
	if perr.Found.Kind != token.PrimNat || perr.Span.Start != uint32(strings.Index(src, "nat")) {
		t.Fatalf("error should point at nat, got %+v", perr)
	}

	// после типизированного поля ':' не ожидается
	perr = parseErr(t, "type V = variant { a : nat b };")
	if perr.Expects(token.Colon) {
		t.Fatalf("':' must not be offered after a typed field: %v", perr.Expected)
	}
}

func TestServiceWithQueryMethod(t *testing.T) {
	prog := mustParse(t, "service : { foo: (nat) -> (text) query; }")
	svc := prog.Service
	if svc == nil || svc.Name != 0 || svc.HasInit {
		t.Fatalf("unexpected service decl %+v", svc)
	}
	sig, ok := prog.Types.Service(svc.Body)
	if !ok || len(sig.Methods) != 1 {
		t.Fatalf("service body = %+v", sig)
	}
	m := sig.Methods[0]
	if prog.Name(m.Name) != "foo" {
		t.Fatalf("method name %q", prog.Name(m.Name))
	}
	fn, ok := prog.Types.Func(m.Type)
	if !ok {
		t.Fatalf("method type is not a func")
	}
	if len(fn.Args) != 1 || prog.Types.Get(fn.Args[0].Type).Prim != token.PrimNat {
		t.Fatalf("args = %+v", fn.Args)
	}
	if len(fn.Rets) != 1 || prog.Types.Get(fn.Rets[0].Type).Prim != token.PrimText {
		t.Fatalf("rets = %+v", fn.Rets)
	}
	if len(fn.Annotations) != 1 || fn.Annotations[0].Kind != token.KwQuery {
		t.Fatalf("annotations = %+v", fn.Annotations)
	}
}

func TestServiceForms(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		hasInit bool
		initN   int
		named   bool
	}{
		{"named service", "service Counter : { inc: func () -> (); };", false, 0, false},
		{"init args", "service : (nat, label: text) -> { get: () -> (nat); }", true, 2, false},
		{"reference body", "type S = service { ping: () -> () oneway }; service : S", false, 0, true},
		{"init type ref", "type S = service {}; service : Init -> S;", true, 1, true},
		{"init record", "service : record { a: nat } -> { }", true, 1, false},
		{"empty", "service : {}", false, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog := mustParse(t, tt.src)
			svc := prog.Service
			if svc == nil {
				t.Fatalf("no service")
			}
			if svc.HasInit != tt.hasInit || len(svc.Init) != tt.initN {
				t.Fatalf("init = %v %+v", svc.HasInit, svc.Init)
			}
			kind := prog.Types.Get(svc.Body).Kind
			if tt.named && kind != ast.TypeNamed || !tt.named && kind != ast.TypeService {
				t.Fatalf("body kind = %v", kind)
			}
		})
	}
}

func TestMethodForms(t *testing.T) {
	prog := mustParse(t, `
type F = func (nat) -> ();
service : {
  "quoted name": (x: nat, y: text) -> (bool);
  via_alias: F;
  explicit: func () -> () oneway;
  last: () -> ()
}`)
	sig, _ := prog.Types.Service(prog.Service.Body)
	if len(sig.Methods) != 4 {
		t.Fatalf("want 4 methods, got %d", len(sig.Methods))
	}
	if prog.Name(sig.Methods[0].Name) != "quoted name" {
		t.Fatalf("quoted method name = %q", prog.Name(sig.Methods[0].Name))
	}
	fn, _ := prog.Types.Func(sig.Methods[0].Type)
	if prog.Name(fn.Args[0].Name) != "x" || prog.Name(fn.Args[1].Name) != "y" {
		t.Fatalf("arg names lost: %+v", fn.Args)
	}
	if prog.Types.Get(sig.Methods[1].Type).Kind != ast.TypeNamed {
		t.Fatalf("alias method should reference a name")
	}
	if prog.Types.Get(sig.Methods[2].Type).Kind != ast.TypeFunc {
		t.Fatalf("explicit func method")
	}
}

func TestLabelForms(t *testing.T) {
	prog := mustParse(t, `type R = record { nat; 5: text, "my label": bool; blob };
type V = variant { ok; err: text; 7; "x y" }`)

	rec, _ := prog.Types.Composite(prog.Decls[0].Body)
	wantIDs := []uint32{0, 5, ast.LabelHash("my label"), 3}
	wantKinds := []ast.LabelKind{ast.LabelPositional, ast.LabelNumeric, ast.LabelText, ast.LabelPositional}
	for i, f := range rec.Fields {
		if f.Label.ID != wantIDs[i] || f.Label.Kind != wantKinds[i] {
			t.Errorf("record field %d label = %+v", i, f.Label)
		}
	}

	variant, _ := prog.Types.Composite(prog.Decls[1].Body)
	if len(variant.Fields) != 4 {
		t.Fatalf("variant fields = %d", len(variant.Fields))
	}
	if te := prog.Types.Get(variant.Fields[0].Type); te.Kind != ast.TypePrimitive || te.Prim != token.PrimNull {
		t.Fatalf("label-only variant field should be null, got %+v", te)
	}
	if variant.Fields[2].Label.ID != 7 {
		t.Fatalf("numeric variant label = %+v", variant.Fields[2].Label)
	}
}

func TestNumericLabelRange(t *testing.T) {
	mustParse(t, "type R = record { 4294967295: nat; 0xFF: text };")
	for _, src := range []string{
		"type R = record { 4294967296: nat };",
		"type R = record { 0x1_0000_0000: nat };",
		"type R = variant { 99999999999999999999999 };",
	} {
		perr := parseErr(t, src)
		if perr.Msg != "field label out of range" {
			t.Errorf("%q: msg = %q", src, perr.Msg)
		}
		if perr.Diagnostic().Code != diag.SynLabelOutOfRange {
			t.Errorf("%q: code = %v", src, perr.Diagnostic().Code)
		}
	}
}

func TestImportsAndOrder(t *testing.T) {
	prog := mustParse(t, `import "a.did"; type X = nat; import "dir/b.did"; type Y = vec X;`)
	if len(prog.Imports) != 2 || prog.Imports[0].Path != "a.did" || prog.Imports[1].Path != "dir/b.did" {
		t.Fatalf("imports = %+v", prog.Imports)
	}
	if prog.Name(prog.Decls[0].Name) != "X" || prog.Name(prog.Decls[1].Name) != "Y" {
		t.Fatalf("decl order lost")
	}
}

func TestTrailingSeparatorsOptional(t *testing.T) {
	mustParse(t, "type A = record { a: nat; b: text };")
	mustParse(t, "type A = record { a: nat, b: text, };")
	mustParse(t, "type A = record { a: nat; b: text };")
	mustParse(t, "type A = record {};")
	mustParse(t, "type F = func (nat, text,) -> ();")
}

func TestUnexpectedTokens(t *testing.T) {
	tests := []struct {
		src  string
		want token.Kind
	}{
		{"type = nat;", token.Ident},
		{"type A nat;", token.Assign},
		{"type A = nat", token.Semicolon},
		{"type A = func (nat) (text);", token.Arrow},
		{"import foo;", token.TextLit},
		{"service : { } type A = nat;", token.EOF},
		{"nat", token.KwType},
		{"type A = record { a: nat b: text };", token.Semicolon},
	}
	for _, tt := range tests {
		perr := parseErr(t, tt.src)
		if !perr.Expects(tt.want) {
			t.Errorf("%q: expected %v among %v (%v)", tt.src, tt.want, perr.Expected, perr)
		}
	}
	perr := parseErr(t, "type A = ;")
	if !strings.Contains(perr.Error(), "expected type") {
		t.Errorf("type error message: %v", perr)
	}
}

func TestDepthLimit(t *testing.T) {
	src := "type Deep = " + strings.Repeat("opt ", 20) + "nat;"
	if _, err := parser.ParseSource("deep.did", src, parser.Options{MaxDepth: 21}); err != nil {
		t.Fatalf("21 levels should fit: %v", err)
	}
	_, err := parser.ParseSource("deep.did", src, parser.Options{MaxDepth: 10})
	var depthErr *parser.DepthExceededError
	if !errors.As(err, &depthErr) || depthErr.Limit != 10 {
		t.Fatalf("expected DepthExceededError, got %v", err)
	}

	// по умолчанию лимит 512
	huge := "type Deep = " + strings.Repeat("vec ", 600) + "nat;"
	if _, err := parser.ParseSource("deep.did", huge, parser.Options{}); !errors.As(err, &depthErr) {
		t.Fatalf("default limit not applied: %v", err)
	}
}

func TestLexErrorsPropagate(t *testing.T) {
	_, err := parser.ParseSource("bad.did", "type A = nat $;", parser.Options{})
	if err == nil || diag.FromError(err).Code != diag.LexUnknownChar {
		t.Fatalf("expected lex error, got %v", err)
	}
}

func TestReporterReceivesParseError(t *testing.T) {
	bag := diag.NewBag(0)
	_, err := parser.ParseSource("bad.did", "type A = ;", parser.Options{Reporter: diag.BagReporter{Bag: bag}})
	if err == nil || bag.Len() != 1 || bag.Items()[0].Code != diag.SynUnexpectedToken {
		t.Fatalf("bag = %+v, err = %v", bag.Items(), err)
	}
}

func TestSharedInterner(t *testing.T) {
	first := mustParse(t, "type A = nat;")
	second, err := parser.ParseSource("b.did", "type B = A;", parser.Options{Strings: first.Strings})
	if err != nil {
		t.Fatal(err)
	}
	ref := second.Types.Get(second.Decls[0].Body)
	if ref.Name != first.Decls[0].Name {
		t.Fatalf("names should share IDs across files")
	}
}
