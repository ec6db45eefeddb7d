package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"candidc/internal/diag"
	"candidc/internal/diagfmt"
	"candidc/internal/observ"
	"candidc/internal/source"
)

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd())) //nolint:gosec // Fd fits in int on supported platforms
}

func useColor(cmd *cobra.Command, f *os.File) bool {
	colorFlag, _ := cmd.Root().PersistentFlags().GetString("color")
	switch colorFlag {
	case "on", "always":
		return true
	case "off", "never":
		return false
	}
	return isTerminal(f)
}

type globalFlags struct {
	quiet          bool
	timings        bool
	maxDiagnostics int
}

func readGlobalFlags(cmd *cobra.Command) (globalFlags, error) {
	var g globalFlags
	var err error
	flags := cmd.Root().PersistentFlags()
	if g.quiet, err = flags.GetBool("quiet"); err != nil {
		return g, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if g.timings, err = flags.GetBool("timings"); err != nil {
		return g, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if g.maxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
		return g, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	return g, nil
}

// printDiagnostics renders bag in the requested format.
func printDiagnostics(cmd *cobra.Command, w io.Writer, bag *diag.Bag, fs *source.FileSet, format string, withNotes bool) error {
	if bag.Len() == 0 {
		return nil
	}
	bag.Sort()
	switch format {
	case "pretty":
		f, _ := w.(*os.File)
		color := f != nil && useColor(cmd, f)
		diagfmt.Pretty(w, bag, fs, diagfmt.PrettyOpts{Color: color, Context: 1, ShowNotes: withNotes})
		return nil
	case "short":
		_, err := io.WriteString(w, diag.FormatShort(bag.Items(), fs, withNotes))
		return err
	case "json":
		return diagfmt.JSON(w, bag, fs, diagfmt.JSONOpts{IncludePositions: true, IncludeNotes: withNotes})
	}
	return fmt.Errorf("unknown format: %s", format)
}

func printTimings(w io.Writer, timer *observ.Timer) {
	fmt.Fprint(w, timer.Summary())
}
