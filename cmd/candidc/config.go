package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"candidc/internal/driver"
	"candidc/internal/project"
)

// settings merges candid.toml with command-line overrides.
type settings struct {
	manifest     *project.Manifest
	maxDepth     int
	jobs         int
	roots        []string
	cacheEnabled bool
	cacheDir     string
}

// loadSettings reads --config or the nearest candid.toml. Command flags that
// were set explicitly win over file values.
func loadSettings(cmd *cobra.Command) (*settings, error) {
	configPath, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	var m *project.Manifest
	if configPath != "" {
		if m, err = project.LoadManifest(configPath); err != nil {
			return nil, err
		}
	} else if m, _, err = project.Discover("."); err != nil {
		return nil, err
	}

	s := &settings{
		manifest:     m,
		maxDepth:     m.Config.Parser.MaxDepth,
		jobs:         m.Config.Check.Jobs,
		roots:        m.Config.Imports.Roots,
		cacheEnabled: m.Config.Cache.Enabled,
		cacheDir:     m.Config.Cache.Dir,
	}
	flags := cmd.Flags()
	if f := flags.Lookup("max-depth"); f != nil && f.Changed {
		if s.maxDepth, err = flags.GetInt("max-depth"); err != nil {
			return nil, err
		}
	}
	if f := flags.Lookup("jobs"); f != nil && f.Changed {
		if s.jobs, err = flags.GetInt("jobs"); err != nil {
			return nil, err
		}
	}
	if f := flags.Lookup("import-root"); f != nil && f.Changed {
		extra, err := flags.GetStringSlice("import-root")
		if err != nil {
			return nil, err
		}
		for _, r := range extra {
			abs, err := filepath.Abs(r)
			if err != nil {
				return nil, err
			}
			s.roots = append(s.roots, abs)
		}
	}
	if f := flags.Lookup("cache"); f != nil && f.Changed {
		if s.cacheEnabled, err = flags.GetBool("cache"); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// openCache returns nil when caching is disabled.
func (s *settings) openCache() (*driver.DiskCache, error) {
	if !s.cacheEnabled {
		return nil, nil
	}
	return driver.OpenDiskCache(s.cacheDir)
}

func addLoadFlags(cmd *cobra.Command) {
	cmd.Flags().Int("max-depth", 0, "maximum type nesting depth (0 = default)")
	cmd.Flags().StringSlice("import-root", nil, "extra directory searched for imports (repeatable)")
}
