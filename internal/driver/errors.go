package driver

import (
	"errors"
	"fmt"

	"candidc/internal/diag"
	"candidc/internal/source"
)

// ErrImportCycle is the Cause of an ImportResolutionError raised when a file
// imports itself directly or through other files.
var ErrImportCycle = errors.New("import cycle")

// ImportResolutionError reports an import that could not be loaded.
type ImportResolutionError struct {
	Path  string
	Span  source.Span
	Cause error
}

func (e *ImportResolutionError) Error() string {
	return fmt.Sprintf("cannot import %q: %v", e.Path, e.Cause)
}

func (e *ImportResolutionError) Unwrap() error { return e.Cause }

func (e *ImportResolutionError) Diagnostic() diag.Diagnostic {
	code := diag.ProjImportFailed
	if errors.Is(e.Cause, ErrImportCycle) {
		code = diag.ProjImportCycle
	}
	return diag.NewError(code, e.Span, e.Error())
}
