package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"candidc/internal/diag"
	"candidc/internal/source"
)

type palette struct {
	err, warn, info, note, code, gutter, caret, path *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		note:   color.New(color.FgCyan),
		code:   color.New(color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgRed, color.Bold),
		path:   color.New(color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.note, p.code, p.gutter, p.caret, p.path} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
//
//	<path>:<line>:<col>: <SEV> <CODE>: <Message>
//
// затем строку исходника с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	pal := newPalette(opts.Color)
	baseDir := fs.BaseDir()
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		var f *source.File
		if !isSpanless(d) {
			f = fs.Get(d.Primary.File)
		}
		if f != nil {
			start, _ := fs.Resolve(d.Primary)
			pal.path.Fprintf(w, "%s:%d:%d", formatPath(f, opts.PathMode, baseDir), start.Line, start.Col)
			fmt.Fprint(w, ": ")
		}
		pal.severity(d.Severity).Fprint(w, d.Severity.String())
		fmt.Fprint(w, " ")
		pal.code.Fprint(w, d.Code.ID())
		fmt.Fprintf(w, ": %s\n", d.Message)
		if f != nil {
			writeSnippet(w, fs, d.Primary, opts.Context, pal)
		}
		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			pal.note.Fprint(w, "  note")
			if nf := fs.Get(n.Span.File); nf != nil && !n.Span.Empty() {
				start, _ := fs.Resolve(n.Span)
				fmt.Fprintf(w, ": %s:%d:%d", formatPath(nf, opts.PathMode, baseDir), start.Line, start.Col)
			}
			fmt.Fprintf(w, ": %s\n", n.Msg)
		}
	}
}

// isSpanless is true for diagnostics built without a location (IO, manifest).
func isSpanless(d diag.Diagnostic) bool {
	return d.Primary == source.Span{}
}

func writeSnippet(w io.Writer, fs *source.FileSet, sp source.Span, context int, pal palette) {
	f := fs.Get(sp.File)
	start, end := fs.Resolve(sp)
	first := start.Line
	if context > 0 {
		if uint32(context) >= first {
			first = 1
		} else {
			first -= uint32(context)
		}
	}
	width := len(strconv.FormatUint(uint64(start.Line), 10))
	for ln := first; ln <= start.Line; ln++ {
		pal.gutter.Fprintf(w, "%*d | ", width, ln)
		fmt.Fprintln(w, expandTabs(f.GetLine(ln)))
	}

	line := f.GetLine(start.Line)
	col := int(start.Col) - 1
	if col > len(line) {
		col = len(line)
	}
	endCol := len(line)
	if end.Line == start.Line {
		endCol = min(int(end.Col)-1, len(line))
	}
	pad := runewidth.StringWidth(expandTabs(line[:col]))
	span := max(runewidth.StringWidth(line[col:endCol]), 1)

	pal.gutter.Fprintf(w, "%s | ", strings.Repeat(" ", width))
	fmt.Fprint(w, strings.Repeat(" ", pad))
	pal.caret.Fprintln(w, "^"+strings.Repeat("~", span-1))
}

// expandTabs keeps carets aligned under tab-indented source.
func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}
