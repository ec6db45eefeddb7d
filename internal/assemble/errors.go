package assemble

import (
	"fmt"
	"strings"

	"candidc/internal/diag"
	"candidc/internal/source"
	"candidc/internal/types"
)

type DuplicateMethodNameError struct {
	Name     string
	Span     source.Span
	Previous source.Span
}

func (e *DuplicateMethodNameError) Error() string {
	return fmt.Sprintf("duplicate method name %q", e.Name)
}

func (e *DuplicateMethodNameError) Diagnostic() diag.Diagnostic {
	return diag.NewError(diag.SemaDuplicateMethod, e.Span, e.Error()).
		WithNote(e.Previous, "previously declared here")
}

// MethodTypeError is returned when a method's type does not resolve to a func.
type MethodTypeError struct {
	Name  string
	Found types.Kind
	Span  source.Span
}

func (e *MethodTypeError) Error() string {
	return fmt.Sprintf("method %q has type %s, expected func", e.Name, e.Found)
}

func (e *MethodTypeError) Diagnostic() diag.Diagnostic {
	return diag.NewError(diag.SemaMethodNotFunc, e.Span, e.Error())
}

// AnnotationConflictError reports a function carrying more than one call-mode
// annotation. Method is empty for function types reached outside the service.
type AnnotationConflictError struct {
	Method      string
	Annotations []types.Annotation
	Span        source.Span
}

func (e *AnnotationConflictError) Error() string {
	names := make([]string, len(e.Annotations))
	for i, a := range e.Annotations {
		names[i] = a.String()
	}
	if e.Method == "" {
		return "function type has conflicting annotations: " + strings.Join(names, ", ")
	}
	return fmt.Sprintf("method %q has conflicting annotations: %s", e.Method, strings.Join(names, ", "))
}

func (e *AnnotationConflictError) Diagnostic() diag.Diagnostic {
	return diag.NewError(diag.SemaAnnotationConflict, e.Span, e.Error())
}

// DuplicateFieldNameError reports two fields with the same label id inside
// one record or variant. ContainerKind is "record" or "variant".
type DuplicateFieldNameError struct {
	Label         string
	ContainerKind string
	Span          source.Span
	Previous      source.Span
}

func (e *DuplicateFieldNameError) Error() string {
	return fmt.Sprintf("duplicate field label %s in %s", e.Label, e.ContainerKind)
}

func (e *DuplicateFieldNameError) Diagnostic() diag.Diagnostic {
	return diag.NewError(diag.SemaDuplicateField, e.Span, e.Error()).
		WithNote(e.Previous, "label first used here")
}

// ServiceTypeError is returned when the service body names a non-service type.
type ServiceTypeError struct {
	Found types.Kind
	Span  source.Span
}

func (e *ServiceTypeError) Error() string {
	return fmt.Sprintf("service body has type %s, expected service", e.Found)
}

func (e *ServiceTypeError) Diagnostic() diag.Diagnostic {
	return diag.NewError(diag.SemaServiceNotService, e.Span, e.Error())
}
