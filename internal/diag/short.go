package diag

import (
	"fmt"
	"strings"

	"candidc/internal/source"
)

// FormatShort renders one line per diagnostic:
//
//	path:line:col: SEVERITY CODE: message
//
// Notes follow on indented lines when includeNotes is set. Used by golden tests
// and the CLI "--format short" mode.
func FormatShort(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	var sb strings.Builder
	for _, d := range diags {
		writeShortLine(&sb, fs, d.Primary, fmt.Sprintf("%s %s: %s", d.Severity, d.Code.ID(), d.Message))
		if !includeNotes {
			continue
		}
		for _, n := range d.Notes {
			sb.WriteString("  ")
			writeShortLine(&sb, fs, n.Span, "note: "+n.Msg)
		}
	}
	return sb.String()
}

func writeShortLine(sb *strings.Builder, fs *source.FileSet, sp source.Span, text string) {
	if fs != nil && fs.Get(sp.File) != nil {
		sb.WriteString(fs.Position(sp))
		sb.WriteString(": ")
	}
	sb.WriteString(text)
	sb.WriteByte('\n')
}
