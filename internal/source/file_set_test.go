package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("svc.did", []byte("service : {}"), 0)
	id2 := fs.Add("svc.did", []byte("type A = nat;"), 0)
	if id1 == id2 {
		t.Fatalf("expected distinct ids for two versions, got %d", id1)
	}
	latest, ok := fs.GetLatest("svc.did")
	if !ok || latest != id2 {
		t.Fatalf("GetLatest = %d,%v; want %d,true", latest, ok, id2)
	}
	if got := string(fs.Get(id1).Content); got != "service : {}" {
		t.Fatalf("first version content changed: %q", got)
	}
}

func TestAddVirtualLineIdx(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("a.did", []byte("a\nb\n"))
	file := fs.Get(id)

	want := []uint32{1, 3}
	if len(file.LineIdx) != len(want) {
		t.Fatalf("LineIdx = %v, want %v", file.LineIdx, want)
	}
	for i := range want {
		if file.LineIdx[i] != want[i] {
			t.Fatalf("LineIdx[%d] = %d, want %d", i, file.LineIdx[i], want[i])
		}
	}
	if file.Flags&FileVirtual == 0 {
		t.Fatalf("expected FileVirtual flag")
	}
}

func TestCRLFAndBOMNormalization(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("crlf.did", []byte("\xEF\xBB\xBFtype A = nat;\r\ntype B = text;\r\n"))
	file := fs.Get(id)
	if got, want := string(file.Content), "type A = nat;\ntype B = text;\n"; got != want {
		t.Fatalf("content = %q, want %q", got, want)
	}
	if file.Flags&FileHadBOM == 0 || file.Flags&FileNormalizedCRLF == 0 {
		t.Fatalf("flags = %b, want BOM and CRLF bits", file.Flags)
	}
}

func TestLoneCarriageReturnKept(t *testing.T) {
	out, changed := normalizeCRLF([]byte("a\rb"))
	if changed || string(out) != "a\rb" {
		t.Fatalf("normalizeCRLF changed lone CR: %q %v", out, changed)
	}
}

func TestResolveLineCol(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("pos.did", []byte("type A = nat;\ntype B = A;\n"))

	cases := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{1, 1}},
		{5, LineCol{1, 6}},
		{13, LineCol{1, 14}}, // the '\n' itself
		{14, LineCol{2, 1}},
		{23, LineCol{2, 10}},
	}
	for _, tc := range cases {
		got, _ := fs.Resolve(Span{File: id, Start: tc.off, End: tc.off})
		if got != tc.want {
			t.Errorf("offset %d: got %+v, want %+v", tc.off, got, tc.want)
		}
	}
	if got := fs.Position(Span{File: id, Start: 14, End: 18}); got != "pos.did:2:1" {
		t.Errorf("Position = %q", got)
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	file := fs.Get(fs.AddVirtual("l.did", []byte("first\nsecond\nthird")))
	for n, want := range map[uint32]string{1: "first", 2: "second", 3: "third", 4: "", 0: ""} {
		if got := file.GetLine(n); got != want {
			t.Errorf("GetLine(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "x.did")
	if err := os.WriteFile(path, []byte("type X = nat;\r\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	fs := NewFileSetWithBase(dir)
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if string(f.Content) != "type X = nat;\n" {
		t.Fatalf("content = %q", f.Content)
	}
	if got := f.DisplayPath(dir); got != "x.did" {
		t.Fatalf("DisplayPath = %q", got)
	}
	if _, err := fs.Load(filepath.Join(dir, "missing.did")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
