package driver

import (
	"candidc/internal/ast"
	"candidc/internal/diag"
	"candidc/internal/lexer"
	"candidc/internal/parser"
	"candidc/internal/source"
	"candidc/internal/token"
)

// FileError wraps a failure to read an input file.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string { return "cannot read " + e.Path + ": " + e.Err.Error() }

func (e *FileError) Unwrap() error { return e.Err }

func (e *FileError) Diagnostic() diag.Diagnostic {
	return diag.NewError(diag.IOLoadFileError, source.Span{}, e.Error())
}

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize lexes the file at path. Lexical errors land in the bag; the
// returned error is only set when the file cannot be read.
func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, &FileError{Path: path, Err: err}
	}
	file := fs.Get(fileID)
	bag := diag.NewBag(maxDiagnostics)

	lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	var tokens []token.Token
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return &TokenizeResult{FileSet: fs, File: file, Tokens: tokens, Bag: bag}, nil
}

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Program *ast.Program // nil when parsing failed
	Bag     *diag.Bag
}

// Parse lexes and parses the file at path without following imports.
func Parse(path string, maxDepth, maxDiagnostics int) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, &FileError{Path: path, Err: err}
	}
	bag := diag.NewBag(maxDiagnostics)
	prog, _ := parser.ParseFile(fs, fileID, parser.Options{
		MaxDepth: maxDepth,
		Reporter: diag.BagReporter{Bag: bag},
	})
	return &ParseResult{FileSet: fs, File: fs.Get(fileID), Program: prog, Bag: bag}, nil
}
