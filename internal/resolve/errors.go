package resolve

import (
	"fmt"
	"strings"

	"candidc/internal/diag"
	"candidc/internal/source"
)

// DuplicateTypeNameError is returned when a name is declared twice in a unit.
type DuplicateTypeNameError struct {
	Name     string
	Span     source.Span
	Previous source.Span
}

func (e *DuplicateTypeNameError) Error() string {
	return fmt.Sprintf("duplicate type name %q", e.Name)
}

func (e *DuplicateTypeNameError) Diagnostic() diag.Diagnostic {
	return diag.NewError(diag.SemaDuplicateType, e.Span, e.Error()).
		WithNote(e.Previous, "previously declared here")
}

type UnresolvedTypeReferenceError struct {
	Name string
	Span source.Span
}

func (e *UnresolvedTypeReferenceError) Error() string {
	return fmt.Sprintf("unresolved type reference %q", e.Name)
}

func (e *UnresolvedTypeReferenceError) Diagnostic() diag.Diagnostic {
	return diag.NewError(diag.SemaUnresolvedType, e.Span, e.Error())
}

// CyclicAliasError reports an alias chain that returns to one of its names
// without passing through a structural type. Chain starts and ends with the
// repeated name.
type CyclicAliasError struct {
	Chain []string
	Span  source.Span
}

func (e *CyclicAliasError) Error() string {
	return "cyclic type alias: " + strings.Join(e.Chain, " -> ")
}

func (e *CyclicAliasError) Diagnostic() diag.Diagnostic {
	return diag.NewError(diag.SemaCyclicAlias, e.Span, e.Error())
}
