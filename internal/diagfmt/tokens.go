package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"candidc/internal/source"
	"candidc/internal/token"
)

// TokenOutput is one token of `candidc tokenize --format json`.
type TokenOutput struct {
	Kind  string `json:"kind"`
	Text  string `json:"text,omitempty"`
	Start uint32 `json:"start"`
	End   uint32 `json:"end"`
	Line  uint32 `json:"line,omitempty"`
	Col   uint32 `json:"col,omitempty"`
}

// upToEOF drops anything after the first EOF token.
func upToEOF(tokens []token.Token) []token.Token {
	for i, tok := range tokens {
		if tok.Kind == token.EOF {
			return tokens[:i+1]
		}
	}
	return tokens
}

// FormatTokensPretty prints one token per line in aligned columns:
// index, kind, position range and the lexeme.
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for i, tok := range upToEOF(tokens) {
		from, to := fs.Resolve(tok.Span)
		text := ""
		if tok.Text != "" {
			text = fmt.Sprintf("%q", tok.Text)
		}
		fmt.Fprintf(tw, "%d\t%s\t%d:%d-%d:%d\t%s\n", i+1, tok.Kind, from.Line, from.Col, to.Line, to.Col, text)
	}
	return tw.Flush()
}

// FormatTokensJSON writes the tokens as an indented JSON array; positions
// are filled in when fs is not nil.
func FormatTokensJSON(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	toks := upToEOF(tokens)
	out := make([]TokenOutput, len(toks))
	for i, tok := range toks {
		out[i] = TokenOutput{Kind: tok.Kind.String(), Text: tok.Text, Start: tok.Span.Start, End: tok.Span.End}
		if fs != nil {
			pos, _ := fs.Resolve(tok.Span)
			out[i].Line, out[i].Col = pos.Line, pos.Col
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
