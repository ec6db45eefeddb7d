package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"candidc/internal/diagfmt"
	"candidc/internal/driver"
	"candidc/internal/observ"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.did",
	Short: "Tokenize a Candid file",
	Long:  `Tokenize breaks a .did file into tokens and prints them`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	g, err := readGlobalFlags(cmd)
	if err != nil {
		return err
	}

	timer := observ.NewTimer()
	done := timer.Track("lex")
	result, err := driver.Tokenize(args[0], g.maxDiagnostics)
	if err != nil {
		return err
	}
	done(fmt.Sprintf("%d tokens", len(result.Tokens)))

	// Выводим диагностику в stderr, если есть
	if err := printDiagnostics(cmd, os.Stderr, result.Bag, result.FileSet, "pretty", false); err != nil {
		return err
	}
	switch format {
	case "pretty":
		err = diagfmt.FormatTokensPretty(os.Stdout, result.Tokens, result.FileSet)
	case "json":
		err = diagfmt.FormatTokensJSON(os.Stdout, result.Tokens, result.FileSet)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	if err != nil {
		return err
	}
	if g.timings {
		printTimings(os.Stderr, timer)
	}
	if result.Bag.HasErrors() {
		return errFailed
	}
	return nil
}
