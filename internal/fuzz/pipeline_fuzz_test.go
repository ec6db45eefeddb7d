package fuzztests

import (
	"testing"

	"candidc/internal/assemble"
	"candidc/internal/format"
	"candidc/internal/lexer"
	"candidc/internal/parser"
	"candidc/internal/resolve"
	"candidc/internal/source"
	"candidc/internal/testkit"
	"candidc/internal/token"
)

func FuzzLexerTerminates(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.did", clamp(input)))
		toks, err := lexer.Tokenize(file)
		if err != nil {
			return
		}
		if len(toks) == 0 || toks[len(toks)-1].Kind != token.EOF {
			t.Fatalf("token stream does not end with EOF")
		}
		var prev uint32
		for _, tok := range toks {
			if tok.Span.Start < prev {
				t.Fatalf("token %v goes backwards", tok)
			}
			prev = tok.Span.End
		}
	})
}

func FuzzParserSpans(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		fs := source.NewFileSet()
		id := fs.AddVirtual("fuzz.did", clamp(input))
		prog, err := parser.ParseFile(fs, id, parser.Options{MaxDepth: 64})
		if err != nil {
			return
		}
		if err := testkit.CheckSpanInvariants(prog, fs.Get(id)); err != nil {
			t.Fatalf("span invariants: %v", err)
		}
	})
}

// FuzzFormatReparses checks that whatever resolves also survives a trip
// through the printer.
func FuzzFormatReparses(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		prog, err := parser.ParseSource("fuzz.did", string(clamp(input)), parser.Options{MaxDepth: 64})
		if err != nil || len(prog.Imports) > 0 {
			return
		}
		res, err := resolve.Resolve(prog, resolve.Options{})
		if err != nil {
			return
		}
		desc, err := assemble.Assemble(res)
		if err != nil {
			return
		}
		out := format.Bytes(desc, format.Options{})
		again, err := parser.ParseSource("formatted.did", string(out), parser.Options{})
		if err != nil {
			t.Fatalf("formatted output does not parse: %v\n%s", err, out)
		}
		if _, err := resolve.Resolve(again, resolve.Options{}); err != nil {
			t.Fatalf("formatted output does not resolve: %v\n%s", err, out)
		}
	})
}
