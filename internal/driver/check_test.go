package driver

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"candidc/internal/diag"
)

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, body := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	}
}

func TestCheckDir(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"a.did":          `import "lib/common.did"; service : { f : (Id) -> () };`,
		"b.did":          `type A = B; type B = A;`,
		"c.did":          `type X = nat; type X = text;`,
		"lib/common.did": `type Id = principal;`,
		"notes.txt":      `ignored`,
	})

	var mu sync.Mutex
	seen := map[string]Status{}
	results, err := CheckDir(context.Background(), dir, CheckOptions{
		Jobs: 2,
		Progress: func(ev Event) {
			mu.Lock()
			defer mu.Unlock()
			seen[ev.File] = ev.Status
		},
	})
	require.NoError(t, err)
	require.Len(t, results, 4)

	byName := map[string]*FileResult{}
	for i := range results {
		rel, _ := filepath.Rel(dir, results[i].Path)
		byName[filepath.ToSlash(rel)] = &results[i]
	}
	require.False(t, byName["a.did"].Failed())
	require.Equal(t, []string{"f"}, byName["a.did"].Summary.Methods)
	require.Equal(t, []string{"Id"}, byName["a.did"].Summary.Types)

	require.True(t, byName["b.did"].Failed())
	require.Equal(t, diag.SemaCyclicAlias, byName["b.did"].Bag.Items()[0].Code)
	require.Equal(t, diag.SemaDuplicateType, byName["c.did"].Bag.Items()[0].Code)
	require.False(t, byName["lib/common.did"].Failed())

	require.Equal(t, StatusDone, seen[byName["a.did"].Path])
	require.Equal(t, StatusError, seen[byName["b.did"].Path])
}

func TestCheckFileMissing(t *testing.T) {
	res := CheckFile(context.Background(), filepath.Join(t.TempDir(), "nope.did"), CheckOptions{})
	require.True(t, res.Failed())
	require.Equal(t, diag.IOLoadFileError, res.Bag.Items()[0].Code)
}

func TestCheckUsesRoots(t *testing.T) {
	dir := t.TempDir()
	vendor := t.TempDir()
	writeFiles(t, dir, map[string]string{"main.did": `import "shared.did"; type M = S;`})
	writeFiles(t, vendor, map[string]string{"shared.did": `type S = bool;`})
	main := filepath.Join(dir, "main.did")

	res := CheckFile(context.Background(), main, CheckOptions{})
	require.True(t, res.Failed())
	require.Equal(t, diag.ProjImportFailed, res.Bag.Items()[0].Code)

	res = CheckFile(context.Background(), main, CheckOptions{Roots: []string{vendor}})
	require.False(t, res.Failed())
	require.Equal(t, []string{NormalizePath(filepath.Join(vendor, "shared.did"))}, res.Summary.Imports)
}

func TestCheckCache(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"main.did": `import "dep.did"; service S : { ping : () -> (D) query };`,
		"dep.did":  `type D = nat;`,
	})
	cache, err := OpenDiskCache(t.TempDir())
	require.NoError(t, err)
	opts := CheckOptions{Cache: cache}
	main := filepath.Join(dir, "main.did")

	first := CheckFile(context.Background(), main, opts)
	require.False(t, first.Failed())
	require.False(t, first.Cached)
	require.Equal(t, "S", first.Summary.Service)

	second := CheckFile(context.Background(), main, opts)
	require.True(t, second.Cached)
	require.Equal(t, first.Summary.Methods, second.Summary.Methods)
	require.Equal(t, first.Summary.Imports, second.Summary.Imports)

	// изменение зависимости инвалидирует запись
	writeFiles(t, dir, map[string]string{"dep.did": `type D = record {};`})
	third := CheckFile(context.Background(), main, opts)
	require.False(t, third.Cached)
	require.False(t, third.Failed())

	require.NoError(t, cache.DropAll())
	fourth := CheckFile(context.Background(), main, opts)
	require.False(t, fourth.Cached)
}

func TestCheckCacheFollowsImportBinding(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"app/a.did":    `import "b.did"; type A = B;`,
		"vendor/b.did": `type B = nat;`,
	})
	cache, err := OpenDiskCache(t.TempDir())
	require.NoError(t, err)
	entry := filepath.Join(dir, "app", "a.did")
	withRoots := CheckOptions{Cache: cache, Roots: []string{filepath.Join(dir, "vendor")}}
	noRoots := CheckOptions{Cache: cache}

	first := CheckFile(context.Background(), entry, withRoots)
	require.False(t, first.Failed())
	require.True(t, CheckFile(context.Background(), entry, withRoots).Cached)

	// без корней импорт не находится, кеш не должен это скрыть
	res := CheckFile(context.Background(), entry, noRoots)
	require.False(t, res.Cached)
	require.True(t, res.Failed())
	require.True(t, CheckFile(context.Background(), entry, withRoots).Cached)

	// соседний файл перекрывает найденный в корне
	writeFiles(t, dir, map[string]string{"app/b.did": `type B = Missing;`})
	res = CheckFile(context.Background(), entry, withRoots)
	require.False(t, res.Cached)
	require.True(t, res.Failed())
	require.Equal(t, diag.SemaUnresolvedType, res.Bag.Items()[0].Code)

	// после удаления перекрытия запись снова годится
	require.NoError(t, os.Remove(filepath.Join(dir, "app", "b.did")))
	require.True(t, CheckFile(context.Background(), entry, withRoots).Cached)
}
