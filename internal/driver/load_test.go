package driver

import (
	"context"
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/require"

	"candidc/internal/diag"
	"candidc/internal/observ"
	"candidc/internal/source"
	"candidc/internal/trace"
	"candidc/internal/types"
)

func loadMem(t *testing.T, ctx context.Context, entry string, files map[string]string, opts Options) (*Result, error) {
	t.Helper()
	fset := source.NewFileSet()
	id := fset.AddVirtual(entry, []byte(files[entry]))
	return Load(ctx, fset, id, MapImporter(files), opts)
}

func TestLoadMergesImports(t *testing.T) {
	files := map[string]string{
		"main.did":  `import "types.did"; service : { get : (Key) -> (opt Value) query; };`,
		"types.did": `type Key = text; type Value = record { id : nat; data : blob }; service : { ignored : () -> () };`,
	}
	res, err := loadMem(t, context.Background(), "main.did", files, Options{})
	require.NoError(t, err)
	require.Equal(t, []string{"types.did", "main.did"}, res.Files)
	require.Equal(t, []string{"types.did"}, res.Imports())

	desc := res.Descriptor
	require.Len(t, desc.Methods(), 1)
	m, ok := desc.Method("get")
	require.True(t, ok)
	require.True(t, m.IsQuery())
	_, ok = desc.Method("ignored")
	require.False(t, ok, "imported services must not merge")

	key, ok := desc.Lookup("Key")
	require.True(t, ok)
	require.Equal(t, types.KindText, desc.Types().MustLookup(desc.Types().Underlying(key)).Kind)
}

func TestLoadImportCycle(t *testing.T) {
	files := map[string]string{
		"a.did": `import "b.did"; type A = nat;`,
		"b.did": `import "a.did"; type B = nat;`,
	}
	bag := diag.NewBag(0)
	_, err := loadMem(t, context.Background(), "a.did", files, Options{Reporter: diag.BagReporter{Bag: bag}})
	require.ErrorIs(t, err, ErrImportCycle)

	var ie *ImportResolutionError
	require.ErrorAs(t, err, &ie)
	require.Equal(t, "a.did", ie.Path)
	require.Equal(t, 1, bag.Len())
	require.Equal(t, diag.ProjImportCycle, bag.Items()[0].Code)
}

func TestLoadSelfImport(t *testing.T) {
	files := map[string]string{"a.did": `import "./a.did";`}
	_, err := loadMem(t, context.Background(), "a.did", files, Options{})
	require.ErrorIs(t, err, ErrImportCycle)
}

func TestLoadDiamond(t *testing.T) {
	files := map[string]string{
		"main.did":  `import "left.did"; import "right.did"; service : { f : (L, R) -> (Base) };`,
		"left.did":  `import "base.did"; type L = vec Base;`,
		"right.did": `import "base.did"; type R = opt Base;`,
		"base.did":  `type Base = record { n : nat };`,
	}
	res, err := loadMem(t, context.Background(), "main.did", files, Options{})
	require.NoError(t, err)
	require.Equal(t, []string{"base.did", "left.did", "right.did", "main.did"}, res.Files)
	require.Equal(t, 4, res.FileSet.Len())
}

func TestLoadImportFailure(t *testing.T) {
	files := map[string]string{"main.did": `import "missing.did"; type A = nat;`}
	bag := diag.NewBag(0)
	_, err := loadMem(t, context.Background(), "main.did", files, Options{Reporter: diag.BagReporter{Bag: bag}})

	var ie *ImportResolutionError
	require.ErrorAs(t, err, &ie)
	require.Equal(t, "missing.did", ie.Path)
	require.ErrorIs(t, err, fs.ErrNotExist)
	require.False(t, errors.Is(err, ErrImportCycle))
	require.Equal(t, diag.ProjImportFailed, bag.Items()[0].Code)
	require.False(t, ie.Span.Empty())
}

func TestLoadNoImporter(t *testing.T) {
	fset := source.NewFileSet()
	id := fset.AddVirtual("main.did", []byte(`import "x.did";`))
	_, err := Load(context.Background(), fset, id, nil, Options{})
	var ie *ImportResolutionError
	require.ErrorAs(t, err, &ie)
	require.ErrorIs(t, err, errNoImporter)
}

func TestLoadNFCPaths(t *testing.T) {
	// decomposed and precomposed spellings name the same file
	files := map[string]string{
		"main.did":      "import \"cafe\u0301.did\"; import \"caf\u00e9.did\"; type M = Cafe;",
		"caf\u00e9.did": `type Cafe = text;`,
	}
	res, err := loadMem(t, context.Background(), "main.did", files, Options{})
	require.NoError(t, err)
	require.Equal(t, []string{"caf\u00e9.did", "main.did"}, res.Files)
	require.Equal(t, NormalizePath("cafe\u0301.did"), NormalizePath("./caf\u00e9.did"))
}

func TestLoadRelativeImports(t *testing.T) {
	files := map[string]string{
		"svc/main.did": `import "../common/t.did"; type M = T;`,
		"common/t.did": `import "u.did"; type T = U;`,
		"common/u.did": `type U = principal;`,
	}
	res, err := loadMem(t, context.Background(), "svc/main.did", files, Options{})
	require.NoError(t, err)
	require.Equal(t, []string{"common/u.did", "common/t.did", "svc/main.did"}, res.Files)
}

func TestLoadParseErrorInImport(t *testing.T) {
	files := map[string]string{
		"main.did": `import "bad.did";`,
		"bad.did":  `type A = record { a nat };`,
	}
	bag := diag.NewBag(0)
	_, err := loadMem(t, context.Background(), "main.did", files, Options{Reporter: diag.BagReporter{Bag: bag}})
	require.Error(t, err)
	require.Equal(t, diag.SynUnexpectedToken, bag.Items()[0].Code)

	var ie *ImportResolutionError
	require.False(t, errors.As(err, &ie), "parse failures are not import failures")
}

func TestLoadCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	files := map[string]string{
		"main.did": `import "a.did";`,
		"a.did":    `type A = nat;`,
	}
	_, err := loadMem(t, ctx, "main.did", files, Options{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestLoadTracesAndTimes(t *testing.T) {
	rec := trace.NewRecorder(trace.LevelDetail)
	ctx := trace.WithTracer(context.Background(), rec)
	timer := observ.NewTimer()
	files := map[string]string{
		"main.did": `import "a.did"; service : { f : (A) -> () };`,
		"a.did":    `type A = nat;`,
	}
	_, err := loadMem(t, ctx, "main.did", files, Options{Timer: timer})
	require.NoError(t, err)

	begins := rec.Names(trace.KindSpanBegin)
	for _, want := range []string{"load", "module:main.did", "module:a.did", "lex", "parse", "resolve", "assemble"} {
		require.Contains(t, begins, want)
	}
	var phases []string
	for _, p := range timer.Phases() {
		phases = append(phases, p.Name)
	}
	require.Equal(t, []string{"load", "resolve", "assemble"}, phases)
}

func TestLoadProgress(t *testing.T) {
	var stages []Stage
	progress := func(ev Event) {
		require.Equal(t, "main.did", ev.File)
		stages = append(stages, ev.Stage)
	}
	files := map[string]string{
		"main.did": `import "a.did"; type M = A;`,
		"a.did":    `type A = nat;`,
	}
	_, err := loadMem(t, context.Background(), "main.did", files, Options{Progress: progress})
	require.NoError(t, err)
	require.Equal(t, []Stage{StageParse, StageImport, StageResolve, StageAssemble}, stages)
}

func TestLoadSearchRoots(t *testing.T) {
	files := map[string]string{
		"main.did":       `import "x.did"; type M = X;`,
		"vendor/a/x.did": `type X = float64;`,
		"vendor/b/x.did": `type X = float32;`,
	}
	res, err := loadMem(t, context.Background(), "main.did", files, Options{Roots: []string{"vendor/a", "vendor/b"}})
	require.NoError(t, err)
	require.Equal(t, []string{"vendor/a/x.did", "main.did"}, res.Files)
}
