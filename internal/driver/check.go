package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"candidc/internal/diag"
	"candidc/internal/observ"
	"candidc/internal/source"
	"candidc/internal/trace"
)

// Summary is the cacheable outcome of a successful check.
type Summary struct {
	Path    string
	Service string // empty for anonymous services
	Methods []string
	Types   []string
	Imports []string
}

// Summarize extracts the summary of a loaded unit.
func Summarize(path string, res *Result) *Summary {
	if res == nil || res.Descriptor == nil {
		return nil
	}
	desc := res.Descriptor
	sum := &Summary{Path: path, Service: desc.Name(), Imports: slices.Clone(res.Imports())}
	for _, m := range desc.Methods() {
		sum.Methods = append(sum.Methods, m.Name)
	}
	for _, n := range desc.Named() {
		sum.Types = append(sum.Types, n.Name)
	}
	return sum
}

// CheckOptions configures CheckFile and CheckDir.
type CheckOptions struct {
	MaxDepth       int
	MaxDiagnostics int
	// Jobs bounds parallel workers; zero means GOMAXPROCS.
	Jobs int
	// Roots are extra import search directories.
	Roots []string
	// Cache is consulted before and filled after a successful check; may be nil.
	Cache    *DiskCache
	Progress ProgressFunc
	// Timer accumulates phase durations of every checked file; may be nil.
	Timer *observ.Timer
}

// FileResult is the outcome of checking one file. Each file owns its
// FileSet and Bag.
type FileResult struct {
	Path    string
	FileSet *source.FileSet
	Bag     *diag.Bag
	Result  *Result  // nil on failure and on cache hits
	Summary *Summary // nil on failure
	Cached  bool
}

// Failed reports whether the file produced errors.
func (r *FileResult) Failed() bool {
	return r.Bag.HasErrors()
}

// CheckFile loads path with an FSImporter and records the outcome.
func CheckFile(ctx context.Context, path string, opts CheckOptions) FileResult {
	fset := source.NewFileSet()
	bag := diag.NewBag(opts.MaxDiagnostics)
	out := FileResult{Path: path, FileSet: fset, Bag: bag}

	fileID, err := fset.Load(path)
	if err != nil {
		bag.Add(diag.FromError(&FileError{Path: path, Err: err}))
		opts.Progress.emit(path, StageParse, StatusError)
		return out
	}
	importer := FSImporter()
	file := fset.Get(fileID)
	if sum, ok := opts.Cache.Lookup(ctx, file.Path, file.Content, opts.MaxDepth, opts.Roots, importer); ok {
		out.Summary = sum
		out.Cached = true
		opts.Progress.emit(path, StageAssemble, StatusCached)
		return out
	}

	res, err := Load(ctx, fset, fileID, importer, Options{
		MaxDepth: opts.MaxDepth,
		Roots:    opts.Roots,
		Reporter: diag.BagReporter{Bag: bag},
		Timer:    opts.Timer,
		Progress: opts.Progress,
	})
	if err != nil {
		opts.Progress.emit(path, StageAssemble, StatusError)
		return out
	}
	out.Result = res
	out.Summary = Summarize(path, res)
	if err := opts.Cache.Store(res, out.Summary, opts.MaxDepth, opts.Roots); err != nil {
		diag.ReportWarning(diag.BagReporter{Bag: bag}, diag.ProjCacheFailure, source.Span{}, "cache: "+err.Error()).Emit()
	}
	opts.Progress.emit(path, StageAssemble, StatusDone)
	return out
}

// ListFiles возвращает отсортированный список всех *.did файлов в директории.
func ListFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".did") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.Sort(files)
	return files, nil
}

// CheckDir checks every *.did file below dir in parallel. Results keep the
// order of ListFiles. Per-file failures are recorded in the results; the
// returned error is set only for walk failures and cancellation.
func CheckDir(ctx context.Context, dir string, opts CheckOptions) ([]FileResult, error) {
	files, err := ListFiles(dir)
	if err != nil {
		return nil, err
	}
	return CheckFiles(ctx, files, opts)
}

// CheckFiles is CheckDir over an explicit file list.
func CheckFiles(ctx context.Context, files []string, opts CheckOptions) ([]FileResult, error) {
	ctx, span := trace.Start(ctx, trace.ScopePass, "check")
	defer span.End("")

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	for _, f := range files {
		opts.Progress.emit(f, StageQueued, StatusQueued)
	}

	results := make([]FileResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fctx, fileSpan := trace.Start(gctx, trace.ScopeModule, "file:"+path)
			// каждый воркер пишет только в свой слот
			results[i] = CheckFile(fctx, path, opts)
			fileSpan.End("")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
