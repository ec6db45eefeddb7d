package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"candidc/internal/lexer"
	"candidc/internal/source"
)

func TestFormatTokens(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.did", []byte("type A =\n  nat;"))
	toks, err := lexer.Tokenize(fs.Get(id))
	if err != nil {
		t.Fatal(err)
	}

	var pretty bytes.Buffer
	if err := FormatTokensPretty(&pretty, toks, fs); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(pretty.String()), "\n")
	if len(lines) != len(toks) {
		t.Fatalf("want %d lines, got %d:\n%s", len(toks), len(lines), pretty.String())
	}
	if !strings.Contains(lines[3], "2:3-2:6") || !strings.Contains(lines[3], `"nat"`) {
		t.Fatalf("nat line = %q", lines[3])
	}

	var raw bytes.Buffer
	if err := FormatTokensJSON(&raw, toks, fs); err != nil {
		t.Fatal(err)
	}
	var out []TokenOutput
	if err := json.Unmarshal(raw.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if len(out) != len(toks) || out[3].Line != 2 || out[3].Col != 3 || out[len(out)-1].Kind != "EOF" {
		t.Fatalf("json tokens = %+v", out)
	}
}
