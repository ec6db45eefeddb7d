package diag

import (
	"errors"

	"candidc/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}

// Diagnosable is implemented by every typed front-end error.
type Diagnosable interface {
	error
	Diagnostic() Diagnostic
}

func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Primary:  primary,
		Message:  msg,
	}
}

func NewError(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}

// FromError converts err into a diagnostic. Errors that do not implement
// Diagnosable anywhere in their chain become UnknownCode errors without a span.
func FromError(err error) Diagnostic {
	var d Diagnosable
	if errors.As(err, &d) {
		return d.Diagnostic()
	}
	return NewError(UnknownCode, source.Span{}, err.Error())
}
