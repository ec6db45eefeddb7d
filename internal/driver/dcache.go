package driver

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"candidc/internal/project"
	"candidc/internal/source"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 2

// DiskCache хранит сводки успешных проверок на диске по хешу содержимого.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DepDigest pins the content of one imported file.
type DepDigest struct {
	Path string
	Hash project.Digest
}

// DiskPayload is what one cache entry stores.
type DiskPayload struct {
	// Schema version for safe invalidation when format changes
	Schema  uint16
	Summary Summary
	Deps    []DepDigest
	// Edges pin which candidate each import picked; a new file that shadows
	// it, or a root that disappears, invalidates the entry.
	Edges []ImportEdge
}

// OpenDiskCache opens the cache in dir, or in $XDG_CACHE_HOME/candidc
// (~/.cache/candidc) when dir is empty.
func OpenDiskCache(dir string) (*DiskCache, error) {
	if dir == "" {
		base := os.Getenv("XDG_CACHE_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, err
			}
			base = filepath.Join(home, ".cache")
		}
		dir = filepath.Join(base, "candidc")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache directory.
func (c *DiskCache) Dir() string { return c.dir }

// cacheKey mixes the entry content with its path, the parser depth limit and
// the import roots: the outcome of a load depends on all of them.
func cacheKey(path string, content []byte, maxDepth int, roots []string) project.Digest {
	var sb strings.Builder
	sb.WriteString(NormalizePath(path))
	sb.WriteString("\x00")
	sb.WriteString(strconv.Itoa(maxDepth))
	for _, r := range roots {
		sb.WriteString("\x00")
		sb.WriteString(NormalizePath(r))
	}
	return project.Combine(project.HashContent(content), project.HashContent([]byte(sb.String())))
}

func (c *DiskCache) pathFor(key project.Digest) string {
	// Для удобства чтения/очистки: подкаталог "checks".
	return filepath.Join(c.dir, "checks", key.String()+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key project.Digest, payload *DiskPayload) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	if err = msgpack.NewEncoder(f).Encode(payload); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads and deserializes a payload from the disk cache.
func (c *DiskCache) Get(key project.Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()
	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	return out.Schema == diskCacheSchemaVersion, nil
}

// Lookup returns the cached summary for the entry file when every recorded
// import still binds to the same file and that file has the same content.
// Any read problem counts as a miss.
func (c *DiskCache) Lookup(ctx context.Context, path string, content []byte, maxDepth int, roots []string, importer Importer) (*Summary, bool) {
	if c == nil || importer == nil {
		return nil, false
	}
	var payload DiskPayload
	ok, err := c.Get(cacheKey(path, content, maxDepth, roots), &payload)
	if err != nil || !ok {
		return nil, false
	}
	texts := make(map[string]string, len(payload.Deps))
	for _, e := range payload.Edges {
		if !edgeStillBinds(ctx, e, roots, importer, texts) {
			return nil, false
		}
	}
	for _, dep := range payload.Deps {
		text, seen := texts[dep.Path]
		if !seen {
			if text, err = importer(ctx, dep.Path); err != nil {
				return nil, false
			}
		}
		// хеш считается по нормализованному содержимому, как в FileSet
		scratch := source.NewFileSet()
		if project.Digest(scratch.Get(scratch.AddNormalized(dep.Path, []byte(text), 0)).Hash) != dep.Hash {
			return nil, false
		}
	}
	sum := payload.Summary
	return &sum, true
}

// edgeStillBinds replays the loader's candidate walk for e: the first
// candidate the importer can read must still be e.Target. Texts read on
// the way are kept for the content check.
func edgeStillBinds(ctx context.Context, e ImportEdge, roots []string, importer Importer, texts map[string]string) bool {
	for _, cand := range importCandidates(e.From, e.Import, roots) {
		if _, ok := texts[cand]; ok {
			return cand == e.Target
		}
		text, err := importer(ctx, cand)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return false
		}
		texts[cand] = text
		return cand == e.Target
	}
	return false
}

// Store records a successful check of res loaded with roots.
func (c *DiskCache) Store(res *Result, sum *Summary, maxDepth int, roots []string) error {
	if c == nil || res == nil || sum == nil {
		return nil
	}
	entry := res.FileSet.Get(res.Entry)
	payload := &DiskPayload{Schema: diskCacheSchemaVersion, Summary: *sum, Edges: res.Edges}
	for _, p := range res.Imports() {
		id, ok := res.FileSet.GetLatest(p)
		if !ok {
			return errors.New("cache: import not in file set: " + p)
		}
		payload.Deps = append(payload.Deps, DepDigest{Path: p, Hash: res.FileSet.Get(id).Hash})
	}
	return c.Put(cacheKey(entry.Path, entry.Content, maxDepth, roots), payload)
}

// DropAll removes every cached entry.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(filepath.Join(c.dir, "checks"))
}
