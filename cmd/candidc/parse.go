package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"candidc/internal/diagfmt"
	"candidc/internal/driver"
	"candidc/internal/observ"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.did",
	Short: "Parse a Candid file and print its syntax tree",
	Long:  `Parse reads one .did file without following imports and prints the syntax tree`,
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "tree", "output format (tree|json)")
	addLoadFlags(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	g, err := readGlobalFlags(cmd)
	if err != nil {
		return err
	}
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	timer := observ.NewTimer()
	done := timer.Track("parse")
	result, err := driver.Parse(args[0], cfg.maxDepth, g.maxDiagnostics)
	if err != nil {
		return err
	}
	done("")

	if err := printDiagnostics(cmd, os.Stderr, result.Bag, result.FileSet, "pretty", true); err != nil {
		return err
	}
	if result.Program == nil {
		return errFailed
	}
	switch format {
	case "tree":
		err = diagfmt.FormatASTPretty(os.Stdout, result.Program, result.FileSet)
	case "json":
		err = diagfmt.FormatASTJSON(os.Stdout, result.Program)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	if err != nil {
		return err
	}
	if g.timings {
		printTimings(os.Stderr, timer)
	}
	return nil
}
