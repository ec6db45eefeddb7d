package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"candidc/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, err := fmt.Fprint(cmd.OutOrStdout(), version.Banner(useColor(cmd, os.Stdout)))
		return err
	},
}
