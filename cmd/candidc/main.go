package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"candidc/internal/prof"
	"candidc/internal/version"
)

// errFailed signals that diagnostics were already printed; main only sets
// the exit code.
var errFailed = errors.New("check failed")

var rootCmd = &cobra.Command{
	Use:           "candidc",
	Short:         "Candid interface description checker",
	Long:          `candidc parses, resolves and formats Candid service descriptions (.did files)`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		session, err := setupProfiling(cmd)
		if err != nil {
			return err
		}
		profSession = session
		cleanup, err := setupTracing(cmd)
		if err != nil {
			return err
		}
		traceCleanup = cleanup
		return nil
	},
	PersistentPostRun: func(*cobra.Command, []string) {
		finish()
	},
}

var (
	traceCleanup func()
	profSession  *prof.Session
)

// finish closes the tracer and profiles; safe to call twice.
func finish() {
	if traceCleanup != nil {
		traceCleanup()
		traceCleanup = nil
	}
	if err := profSession.Stop(); err != nil {
		fmt.Fprintf(os.Stderr, "candidc: %v\n", err)
	}
}

func main() {
	// Устанавливаем версию для автоматического флага --version
	rootCmd.Version = version.Version

	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(fmtCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	rootCmd.PersistentFlags().String("trace", "", "write trace events to file (- for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	rootCmd.PersistentFlags().String("trace-format", "auto", "trace format (auto|text|ndjson)")
	rootCmd.PersistentFlags().String("cpuprofile", "", "write CPU profile to file")
	rootCmd.PersistentFlags().String("memprofile", "", "write heap profile to file on exit")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write Go runtime trace to file")
	rootCmd.PersistentFlags().String("config", "", "path to candid.toml (default: search upwards from the working directory)")

	if err := rootCmd.Execute(); err != nil {
		finish()
		if !errors.Is(err, errFailed) {
			fmt.Fprintf(os.Stderr, "candidc: %v\n", err)
		}
		os.Exit(1)
	}
}
