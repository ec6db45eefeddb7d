package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"candidc/internal/prof"
)

// setupProfiling starts pprof outputs requested by the root flags.
func setupProfiling(cmd *cobra.Command) (*prof.Session, error) {
	flags := cmd.Root().PersistentFlags()
	cpuPath, err := flags.GetString("cpuprofile")
	if err != nil {
		return nil, fmt.Errorf("failed to get cpuprofile flag: %w", err)
	}
	memPath, err := flags.GetString("memprofile")
	if err != nil {
		return nil, fmt.Errorf("failed to get memprofile flag: %w", err)
	}
	tracePath, err := flags.GetString("runtime-trace")
	if err != nil {
		return nil, fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}
	cfg := prof.Config{CPUPath: cpuPath, MemPath: memPath, TracePath: tracePath}
	if !cfg.Enabled() {
		return nil, nil
	}
	return prof.Start(cfg)
}
