package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"candidc/internal/diag"
	"candidc/internal/driver"
	"candidc/internal/format"
	"candidc/internal/observ"
	"candidc/internal/source"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [flags] file.did",
	Short: "Print the canonical form of a Candid file",
	Long: `Fmt resolves the file with its imports and prints every named type and
the service in canonical layout. Imported types are inlined into the output.`,
	Args: cobra.ExactArgs(1),
	RunE: runFmt,
}

func init() {
	fmtCmd.Flags().Int("indent", 2, "spaces per indentation level")
	fmtCmd.Flags().Bool("tabs", false, "indent with tabs")
	fmtCmd.Flags().Bool("check", false, "exit non-zero when the file is not in canonical form")
	addLoadFlags(fmtCmd)
}

func runFmt(cmd *cobra.Command, args []string) error {
	indent, err := cmd.Flags().GetInt("indent")
	if err != nil {
		return fmt.Errorf("failed to get indent flag: %w", err)
	}
	tabs, err := cmd.Flags().GetBool("tabs")
	if err != nil {
		return fmt.Errorf("failed to get tabs flag: %w", err)
	}
	check, err := cmd.Flags().GetBool("check")
	if err != nil {
		return fmt.Errorf("failed to get check flag: %w", err)
	}
	g, err := readGlobalFlags(cmd)
	if err != nil {
		return err
	}
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	fset := source.NewFileSet()
	id, err := fset.Load(args[0])
	if err != nil {
		return &driver.FileError{Path: args[0], Err: err}
	}
	bag := diag.NewBag(g.maxDiagnostics)
	timer := observ.NewTimer()
	res, err := driver.Load(cmd.Context(), fset, id, driver.FSImporter(), driver.Options{
		MaxDepth: cfg.maxDepth,
		Roots:    cfg.roots,
		Reporter: diag.BagReporter{Bag: bag},
		Timer:    timer,
	})
	if err != nil {
		if perr := printDiagnostics(cmd, os.Stderr, bag, fset, "pretty", true); perr != nil {
			return perr
		}
		return errFailed
	}

	done := timer.Track("format")
	out := format.Bytes(res.Descriptor, format.Options{IndentWidth: indent, UseTabs: tabs})
	done("")
	if g.timings {
		defer printTimings(os.Stderr, timer)
	}
	if check {
		if !bytes.Equal(out, fset.Get(id).Content) {
			if !g.quiet {
				fmt.Fprintf(os.Stderr, "%s: not canonically formatted\n", args[0])
			}
			return errFailed
		}
		return nil
	}
	_, err = os.Stdout.Write(out)
	return err
}
