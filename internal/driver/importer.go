package driver

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"golang.org/x/text/unicode/norm"
)

// Importer returns the text of the file an import refers to. path is already
// normalized and joined with the importing file's directory or a search root.
// An error matching fs.ErrNotExist moves the loader on to the next root.
type Importer func(ctx context.Context, path string) (string, error)

// NormalizePath gives one spelling per file: slash separated, cleaned and
// in Unicode NFC, so "é" typed precomposed or decomposed hits the same entry.
func NormalizePath(p string) string {
	return norm.NFC.String(path.Clean(filepath.ToSlash(p)))
}

// importCandidates lists where imp may live, in lookup order: next to the
// importing file, then below each root. Absolute imports have one candidate.
func importCandidates(from, imp string, roots []string) []string {
	imp = filepath.ToSlash(imp)
	if path.IsAbs(imp) {
		return []string{NormalizePath(imp)}
	}
	out := make([]string, 0, 1+len(roots))
	out = append(out, NormalizePath(path.Join(path.Dir(from), imp)))
	for _, root := range roots {
		out = append(out, NormalizePath(path.Join(filepath.ToSlash(root), imp)))
	}
	return out
}

// FSImporter reads imports from disk.
func FSImporter() Importer {
	return func(ctx context.Context, p string) (string, error) {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		// #nosec G304 -- import paths come from the checked file
		data, err := os.ReadFile(filepath.FromSlash(p))
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
}

// MapImporter serves imports from memory. Keys are normalized on lookup.
func MapImporter(files map[string]string) Importer {
	normalized := make(map[string]string, len(files))
	for k, v := range files {
		normalized[NormalizePath(k)] = v
	}
	return func(ctx context.Context, p string) (string, error) {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		text, ok := normalized[NormalizePath(p)]
		if !ok {
			return "", fmt.Errorf("%w: %s", fs.ErrNotExist, p)
		}
		return text, nil
	}
}
