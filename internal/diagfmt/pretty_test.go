package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"candidc/internal/diag"
	"candidc/internal/parser"
	"candidc/internal/source"
)

func sampleBag(t *testing.T) (*diag.Bag, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSetWithBase("/proj")
	src := "type A = nat;\ntype B = record { x : Missing };\n"
	id := fs.AddVirtual("svc.did", []byte(src))
	start := uint32(strings.Index(src, "Missing"))
	bag := diag.NewBag(10)
	d := diag.NewError(diag.SemaUnresolvedType, source.Span{File: id, Start: start, End: start + 7}, `unresolved type reference "Missing"`).
		WithNote(source.Span{File: id, Start: 5, End: 6}, "types declared here")
	bag.Add(d)
	bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{}, "cannot read other.did"))
	return bag, fs
}

func TestPrettyPlain(t *testing.T) {
	bag, fs := sampleBag(t)
	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Context: 1, ShowNotes: true})
	out := buf.String()

	for _, want := range []string{
		"svc.did:2:23: ERROR SEM3002: unresolved type reference \"Missing\"",
		"1 | type A = nat;",
		"2 | type B = record { x : Missing };",
		"  |                       ^~~~~~~",
		"note: svc.did:1:6: types declared here",
		"ERROR IO4001: cannot read other.did",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("color escapes with Color=false:\n%q", out)
	}
}

func TestPrettyHidesNotes(t *testing.T) {
	bag, fs := sampleBag(t)
	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{})
	if strings.Contains(buf.String(), "note") {
		t.Fatalf("notes printed without ShowNotes:\n%s", buf.String())
	}
	if strings.Contains(buf.String(), "1 | type A") {
		t.Fatalf("context printed with Context=0:\n%s", buf.String())
	}
}

func TestPrettyColor(t *testing.T) {
	bag, fs := sampleBag(t)
	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Color: true})
	if !strings.Contains(buf.String(), "\x1b[") {
		t.Fatalf("expected ANSI escapes:\n%q", buf.String())
	}
}

func TestJSON(t *testing.T) {
	bag, fs := sampleBag(t)
	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{IncludePositions: true, IncludeNotes: true}); err != nil {
		t.Fatal(err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out.Count != 2 {
		t.Fatalf("count = %d", out.Count)
	}
	first := out.Diagnostics[0]
	if first.Code != "SEM3002" || first.Severity != "ERROR" || first.Location == nil {
		t.Fatalf("first = %+v", first)
	}
	if first.Location.StartLine != 2 || first.Location.StartCol != 23 || first.Location.File != "svc.did" {
		t.Fatalf("location = %+v", first.Location)
	}
	if len(first.Notes) != 1 {
		t.Fatalf("notes = %+v", first.Notes)
	}
	if out.Diagnostics[1].Location != nil {
		t.Fatalf("spanless diagnostic got a location")
	}

	buf.Reset()
	if err := JSON(&buf, bag, fs, JSONOpts{Max: 1}); err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil || out.Count != 1 {
		t.Fatalf("Max not applied: %v %+v", err, out)
	}
}

func TestASTPretty(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.did", []byte(`import "x.did";
type List = opt record { head : nat; tail : List };
service : { get : (nat) -> (List) query };`))
	prog, err := parser.ParseFile(fs, id, parser.Options{})
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := FormatASTPretty(&buf, prog, fs); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"├─ Import \"x.did\"",
		"├─ Type List",
		"Field head (id 1158359328)",
		"Named List",
		"└─ Service <anon>",
		"Method get",
		"Annotations: query",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("tree missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	if err := FormatASTJSON(&buf, prog); err != nil {
		t.Fatal(err)
	}
	var node ASTNodeOutput
	if err := json.Unmarshal(buf.Bytes(), &node); err != nil {
		t.Fatal(err)
	}
	if node.Type != "Program" || len(node.Children) != 3 || node.Children[1].Text != "List" {
		t.Fatalf("json = %+v", node)
	}
}
