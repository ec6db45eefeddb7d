package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"candidc/internal/diag"
	"candidc/internal/source"
)

// ManifestName is the file looked up by FindManifest.
const ManifestName = "candid.toml"

// Config mirrors candid.toml.
//
//	[parser]
//	max_depth = 256
//
//	[imports]
//	roots = ["vendor/did"]
//
//	[check]
//	jobs = 4
//
//	[cache]
//	enabled = true
//	dir = ".candid-cache"
type Config struct {
	Parser  ParserConfig  `toml:"parser"`
	Imports ImportsConfig `toml:"imports"`
	Check   CheckConfig   `toml:"check"`
	Cache   CacheConfig   `toml:"cache"`
}

type ParserConfig struct {
	MaxDepth int `toml:"max_depth"`
}

type ImportsConfig struct {
	Roots []string `toml:"roots"`
}

type CheckConfig struct {
	Jobs int `toml:"jobs"`
}

type CacheConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

// Manifest is a loaded candid.toml with relative paths made absolute.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// ManifestError reports an unreadable or invalid candid.toml.
type ManifestError struct {
	Path string
	Msg  string
	Err  error
}

func (e *ManifestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Path, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Msg)
}

func (e *ManifestError) Unwrap() error { return e.Err }

func (e *ManifestError) Diagnostic() diag.Diagnostic {
	return diag.NewError(diag.ProjBadManifest, source.Span{}, e.Error())
}

// FindManifest walks up from startDir to locate candid.toml.
func FindManifest(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Discover finds and loads the nearest candid.toml. A missing manifest is
// not an error: ok is false and the returned manifest holds defaults.
func Discover(startDir string) (m *Manifest, ok bool, err error) {
	path, ok, err := FindManifest(startDir)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return &Manifest{}, false, nil
	}
	m, err = LoadManifest(path)
	if err != nil {
		return nil, true, err
	}
	return m, true, nil
}

// LoadManifest parses the manifest at path.
func LoadManifest(path string) (*Manifest, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, &ManifestError{Path: path, Msg: "failed to parse TOML", Err: err}
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, &ManifestError{Path: path, Msg: "unknown keys: " + strings.Join(keys, ", ")}
	}
	if cfg.Parser.MaxDepth < 0 {
		return nil, &ManifestError{Path: path, Msg: "[parser].max_depth must not be negative"}
	}
	if cfg.Check.Jobs < 0 {
		return nil, &ManifestError{Path: path, Msg: "[check].jobs must not be negative"}
	}
	root := filepath.Dir(path)
	for i, r := range cfg.Imports.Roots {
		if strings.TrimSpace(r) == "" {
			return nil, &ManifestError{Path: path, Msg: fmt.Sprintf("[imports].roots[%d] is empty", i)}
		}
		cfg.Imports.Roots[i] = absUnder(root, r)
	}
	if meta.IsDefined("cache", "dir") {
		cfg.Cache.Dir = absUnder(root, cfg.Cache.Dir)
	}
	return &Manifest{Path: path, Root: root, Config: cfg}, nil
}

func absUnder(root, p string) string {
	p = filepath.FromSlash(p)
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(root, p)
}
