package driver

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strconv"

	"candidc/internal/assemble"
	"candidc/internal/ast"
	"candidc/internal/diag"
	"candidc/internal/lexer"
	"candidc/internal/observ"
	"candidc/internal/parser"
	"candidc/internal/resolve"
	"candidc/internal/source"
	"candidc/internal/trace"
)

var errNoImporter = errors.New("no importer configured")

// Options configures Load.
type Options struct {
	// MaxDepth limits type nesting; zero means parser.DefaultMaxDepth.
	MaxDepth int
	// Reporter receives the failure of the load as a diagnostic; may be nil.
	Reporter diag.Reporter
	// Timer records phase durations when set.
	Timer *observ.Timer
	// Roots are searched, in order, for relative imports not found next to
	// the importing file.
	Roots []string
	// Progress receives stage updates for the entry file.
	Progress ProgressFunc
}

// Result is a fully resolved and assembled compilation unit.
type Result struct {
	FileSet *source.FileSet
	Entry   source.FileID
	// Programs are in dependency order: every import precedes its importer,
	// the entry file is last.
	Programs []*ast.Program
	// Files holds the normalized path of each program.
	Files []string
	// Edges records which file every import declaration was bound to.
	Edges      []ImportEdge
	Descriptor *assemble.Descriptor
}

// ImportEdge is one followed import: the literal path written in From and
// the candidate it resolved to.
type ImportEdge struct {
	From   string
	Import string
	Target string
}

// Imports returns the normalized paths of every imported file.
func (r *Result) Imports() []string {
	if len(r.Files) == 0 {
		return nil
	}
	return r.Files[:len(r.Files)-1]
}

// Load parses entry (already stored in fset), follows its imports through
// importer, and resolves and assembles the whole unit. Imported files are
// added to fset. The first failure is reported to opts.Reporter and returned.
func Load(ctx context.Context, fset *source.FileSet, entry source.FileID, importer Importer, opts Options) (*Result, error) {
	res, err := load(ctx, fset, entry, importer, opts)
	if err != nil {
		diag.ReportErr(opts.Reporter, err)
		return nil, err
	}
	return res, nil
}

func load(ctx context.Context, fset *source.FileSet, entry source.FileID, importer Importer, opts Options) (*Result, error) {
	file := fset.Get(entry)
	if file == nil {
		return nil, fmt.Errorf("driver: unknown file id %d", entry)
	}
	tracer := trace.FromContext(ctx)
	parent := trace.ParentSpan(ctx)

	l := &loader{
		ctx:        ctx,
		fs:         fset,
		importer:   importer,
		opts:       opts,
		tracer:     tracer,
		strs:       source.NewInterner(),
		entry:      file.Path,
		inProgress: make(map[string]struct{}),
		merged:     make(map[string]struct{}),
	}
	entryKey := NormalizePath(file.Path)

	opts.Progress.emit(file.Path, StageParse, StatusWorking)
	loadSpan := trace.Begin(tracer, trace.ScopePass, "load", parent)
	done := opts.Timer.Track("load")
	err := l.visit(entry, entryKey, loadSpan.ID())
	done(strconv.Itoa(len(l.progs)) + " files")
	loadSpan.WithExtra("files", strconv.Itoa(len(l.progs))).End(errDetail(err))
	if err != nil {
		return nil, err
	}

	opts.Progress.emit(file.Path, StageResolve, StatusWorking)
	resolveSpan := trace.Begin(tracer, trace.ScopePass, "resolve", parent)
	done = opts.Timer.Track("resolve")
	resolved, err := resolve.ResolveUnit(l.progs, resolve.Options{})
	done("")
	resolveSpan.End(errDetail(err))
	if err != nil {
		return nil, err
	}

	opts.Progress.emit(file.Path, StageAssemble, StatusWorking)
	asmSpan := trace.Begin(tracer, trace.ScopePass, "assemble", parent)
	done = opts.Timer.Track("assemble")
	desc, err := assemble.Assemble(resolved)
	done("")
	asmSpan.End(errDetail(err))
	if err != nil {
		return nil, err
	}
	return &Result{
		FileSet:    fset,
		Entry:      entry,
		Programs:   l.progs,
		Files:      l.files,
		Edges:      l.edges,
		Descriptor: desc,
	}, nil
}

type loader struct {
	ctx        context.Context
	fs         *source.FileSet
	importer   Importer
	opts       Options
	tracer     trace.Tracer
	strs       *source.Interner
	entry      string
	inProgress map[string]struct{}
	merged     map[string]struct{}
	progs      []*ast.Program
	files      []string
	edges      []ImportEdge
}

// visit parses the file and, depth first, everything it imports. A file is
// appended to progs only after all of its imports.
func (l *loader) visit(id source.FileID, key string, parent uint64) (err error) {
	span := trace.Begin(l.tracer, trace.ScopeModule, "module:"+key, parent)
	defer func() { span.End(errDetail(err)) }()

	l.inProgress[key] = struct{}{}
	prog, err := l.parse(id, span.ID())
	if err != nil {
		return err
	}
	for _, imp := range prog.Imports {
		if err := l.ctx.Err(); err != nil {
			return err
		}
		if err := l.follow(key, imp, span.ID()); err != nil {
			return err
		}
	}
	delete(l.inProgress, key)
	l.merged[key] = struct{}{}
	l.progs = append(l.progs, prog)
	l.files = append(l.files, key)
	return nil
}

// follow loads one import unless it is already merged. Candidates are tried
// in order until the importer finds one.
func (l *loader) follow(from string, imp ast.ImportDecl, parent uint64) error {
	if l.importer == nil {
		return &ImportResolutionError{Path: imp.Path, Span: imp.Span, Cause: errNoImporter}
	}
	var lastErr error
	for _, target := range importCandidates(from, imp.Path, l.opts.Roots) {
		if _, busy := l.inProgress[target]; busy {
			return &ImportResolutionError{Path: imp.Path, Span: imp.Span, Cause: ErrImportCycle}
		}
		if _, ok := l.merged[target]; ok {
			l.edges = append(l.edges, ImportEdge{From: from, Import: imp.Path, Target: target})
			return nil
		}
		l.opts.Progress.emit(l.entry, StageImport, StatusWorking)
		text, err := l.importer(l.ctx, target)
		if errors.Is(err, fs.ErrNotExist) {
			lastErr = err
			continue
		}
		if err != nil {
			return &ImportResolutionError{Path: imp.Path, Span: imp.Span, Cause: err}
		}
		l.edges = append(l.edges, ImportEdge{From: from, Import: imp.Path, Target: target})
		fid := l.fs.AddNormalized(target, []byte(text), 0)
		return l.visit(fid, target, parent)
	}
	return &ImportResolutionError{Path: imp.Path, Span: imp.Span, Cause: lastErr}
}

func (l *loader) parse(id source.FileID, parent uint64) (*ast.Program, error) {
	file := l.fs.Get(id)

	lexSpan := trace.Begin(l.tracer, trace.ScopePass, "lex", parent)
	toks, err := lexer.Tokenize(file)
	lexSpan.WithExtra("tokens", strconv.Itoa(len(toks))).End(errDetail(err))
	if err != nil {
		return nil, err
	}

	parseSpan := trace.Begin(l.tracer, trace.ScopePass, "parse", parent)
	prog, err := parser.Parse(file, toks, parser.Options{
		MaxDepth: l.opts.MaxDepth,
		Strings:  l.strs,
	})
	parseSpan.End(errDetail(err))
	return prog, err
}

func errDetail(err error) string {
	if err == nil {
		return ""
	}
	return "error: " + err.Error()
}
