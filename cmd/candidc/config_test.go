package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"candidc/internal/driver"
)

func newTestCommand(t *testing.T, configPath string) *cobra.Command {
	t.Helper()
	root := &cobra.Command{Use: "candidc"}
	root.PersistentFlags().String("config", configPath, "")
	child := &cobra.Command{Use: "check", RunE: func(*cobra.Command, []string) error { return nil }}
	child.Flags().Int("jobs", 0, "")
	child.Flags().Bool("cache", false, "")
	addLoadFlags(child)
	root.AddCommand(child)
	return child
}

func TestLoadSettingsFlagsOverrideManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "candid.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[parser]
max_depth = 32

[imports]
roots = ["did"]

[check]
jobs = 2

[cache]
enabled = true
`), 0o600))

	cmd := newTestCommand(t, path)
	s, err := loadSettings(cmd)
	require.NoError(t, err)
	require.Equal(t, 32, s.maxDepth)
	require.Equal(t, 2, s.jobs)
	require.Equal(t, []string{filepath.Join(dir, "did")}, s.roots)
	require.True(t, s.cacheEnabled)

	require.NoError(t, cmd.Flags().Set("jobs", "7"))
	require.NoError(t, cmd.Flags().Set("cache", "false"))
	require.NoError(t, cmd.Flags().Set("import-root", "extra"))
	s, err = loadSettings(cmd)
	require.NoError(t, err)
	require.Equal(t, 7, s.jobs)
	require.Equal(t, 32, s.maxDepth)
	require.False(t, s.cacheEnabled)
	require.Len(t, s.roots, 2)
	require.True(t, filepath.IsAbs(s.roots[1]))

	c, err := s.openCache()
	require.NoError(t, err)
	require.Nil(t, c)
}

func TestLoadSettingsBadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "candid.toml")
	require.NoError(t, os.WriteFile(path, []byte("[parser]\nmax_depth = -1\n"), 0o600))
	_, err := loadSettings(newTestCommand(t, path))
	require.Error(t, err)
}

func TestSummaryLine(t *testing.T) {
	r := &driver.FileResult{
		Path: "svc.did",
		Summary: &driver.Summary{
			Service: "Counter",
			Methods: []string{"inc", "read"},
			Types:   []string{"T"},
			Imports: []string{"common.did"},
		},
		Cached: true,
	}
	require.Equal(t, "ok  svc.did (service Counter: 2 methods, 1 types, 1 imports) [cached]", summaryLine(r))

	r = &driver.FileResult{Path: "types.did", Summary: &driver.Summary{Types: []string{"A", "B"}}}
	require.Equal(t, "ok  types.did (2 types)", summaryLine(r))
}
