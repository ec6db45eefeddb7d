package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"candidc/internal/diagfmt"
	"candidc/internal/driver"
	"candidc/internal/observ"
	"candidc/internal/ui"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file.did|directory>",
	Short: "Resolve and validate a Candid file or every .did file in a directory",
	Long: `Check loads each file with its imports, resolves all type names and
validates the service. Directories are checked in parallel.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|short|json)")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	checkCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	checkCmd.Flags().Bool("cache", false, "reuse results of unchanged files from the disk cache")
	checkCmd.Flags().Bool("ui", false, "show an interactive progress view for directories")
	addLoadFlags(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	target := args[0]
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	withUI, err := cmd.Flags().GetBool("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	g, err := readGlobalFlags(cmd)
	if err != nil {
		return err
	}
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	cache, err := cfg.openCache()
	if err != nil {
		return fmt.Errorf("failed to open cache: %w", err)
	}

	timer := observ.NewTimer()
	opts := driver.CheckOptions{
		MaxDepth:       cfg.maxDepth,
		MaxDiagnostics: g.maxDiagnostics,
		Jobs:           cfg.jobs,
		Roots:          cfg.roots,
		Cache:          cache,
		Timer:          timer,
	}

	info, err := os.Stat(target)
	if err != nil {
		return err
	}
	var results []driver.FileResult
	if info.IsDir() {
		files, err := driver.ListFiles(target)
		if err != nil {
			return err
		}
		if withUI && isTerminal(os.Stdout) {
			results, err = checkWithUI(cmd, target, files, opts)
		} else {
			results, err = driver.CheckFiles(cmd.Context(), files, opts)
		}
		if err != nil {
			return err
		}
	} else {
		results = []driver.FileResult{driver.CheckFile(cmd.Context(), target, opts)}
	}

	if format == "json" {
		err = writeCheckJSON(os.Stdout, results, withNotes)
	} else {
		err = writeCheckText(cmd, results, format, withNotes, g.quiet)
	}
	if err != nil {
		return err
	}
	if g.timings {
		printTimings(os.Stderr, timer)
	}
	for i := range results {
		if results[i].Failed() {
			return errFailed
		}
	}
	return nil
}

func checkWithUI(cmd *cobra.Command, title string, files []string, opts driver.CheckOptions) ([]driver.FileResult, error) {
	events := make(chan driver.Event, 256)
	type outcome struct {
		results []driver.FileResult
		err     error
	}
	outcomeCh := make(chan outcome, 1)
	opts.Progress = func(ev driver.Event) { events <- ev }

	go func() {
		res, err := driver.CheckFiles(cmd.Context(), files, opts)
		outcomeCh <- outcome{results: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel("checking "+title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr), tea.WithContext(cmd.Context()))
	_, uiErr := program.Run()
	// UI мог выйти раньше; не блокируем воркеров
	go func() {
		for range events {
		}
	}()
	out := <-outcomeCh
	if uiErr != nil {
		return out.results, uiErr
	}
	return out.results, out.err
}

func writeCheckText(cmd *cobra.Command, results []driver.FileResult, format string, withNotes, quiet bool) error {
	for i := range results {
		r := &results[i]
		if err := printDiagnostics(cmd, os.Stderr, r.Bag, r.FileSet, format, withNotes); err != nil {
			return err
		}
		if quiet || r.Summary == nil {
			continue
		}
		fmt.Fprintln(os.Stdout, summaryLine(r))
	}
	return nil
}

func summaryLine(r *driver.FileResult) string {
	s := r.Summary
	var parts []string
	if len(s.Methods) > 0 || s.Service != "" {
		name := "service"
		if s.Service != "" {
			name += " " + s.Service
		}
		parts = append(parts, fmt.Sprintf("%s: %d methods", name, len(s.Methods)))
	}
	parts = append(parts, fmt.Sprintf("%d types", len(s.Types)))
	if len(s.Imports) > 0 {
		parts = append(parts, fmt.Sprintf("%d imports", len(s.Imports)))
	}
	line := fmt.Sprintf("ok  %s (%s)", r.Path, strings.Join(parts, ", "))
	if r.Cached {
		line += " [cached]"
	}
	return line
}

type checkFileJSON struct {
	Path        string                    `json:"path"`
	OK          bool                      `json:"ok"`
	Cached      bool                      `json:"cached,omitempty"`
	Service     string                    `json:"service,omitempty"`
	Methods     []string                  `json:"methods,omitempty"`
	Types       []string                  `json:"types,omitempty"`
	Imports     []string                  `json:"imports,omitempty"`
	Diagnostics diagfmt.DiagnosticsOutput `json:"diagnostics"`
}

func writeCheckJSON(w io.Writer, results []driver.FileResult, withNotes bool) error {
	out := make([]checkFileJSON, 0, len(results))
	for i := range results {
		r := &results[i]
		r.Bag.Sort()
		entry := checkFileJSON{
			Path:        r.Path,
			OK:          !r.Failed(),
			Cached:      r.Cached,
			Diagnostics: diagfmt.BuildDiagnosticsOutput(r.Bag, r.FileSet, diagfmt.JSONOpts{IncludePositions: true, IncludeNotes: withNotes}),
		}
		if s := r.Summary; s != nil {
			entry.Service, entry.Methods, entry.Types, entry.Imports = s.Service, s.Methods, s.Types, s.Imports
		}
		out = append(out, entry)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]any{"files": out})
}
