// Package testkit holds checks shared by parser tests and fuzz harnesses.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"candidc/internal/ast"
	"candidc/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed program:
// 1) every import, type declaration and the service has a non-empty span in sf
// 2) those spans lie within the file content
// 3) declarations of one kind appear in source order without overlapping
// 4) every type expression reachable from a declaration lies inside it
func CheckSpanInvariants(prog *ast.Program, sf *source.File) error {
	if prog == nil || sf == nil {
		return fmt.Errorf("nil program or file")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	check := func(what string, sp source.Span) error {
		if sp.End <= sp.Start {
			return fmt.Errorf("%s: empty span %v", what, sp)
		}
		if sp.File != sf.ID {
			return fmt.Errorf("%s: span file mismatch: got=%d want=%d", what, sp.File, sf.ID)
		}
		if sp.End > lenContent {
			return fmt.Errorf("%s: span end beyond content: %d > %d", what, sp.End, lenContent)
		}
		return nil
	}

	var prevEnd uint32
	for i, imp := range prog.Imports {
		if err := check(fmt.Sprintf("import[%d]", i), imp.Span); err != nil {
			return err
		}
		if imp.Span.Start < prevEnd {
			return fmt.Errorf("import[%d] overlaps previous import", i)
		}
		prevEnd = imp.Span.End
	}
	prevEnd = 0
	for i, d := range prog.Decls {
		what := fmt.Sprintf("type %s", prog.Name(d.Name))
		if err := check(what, d.Span); err != nil {
			return err
		}
		if d.Span.Start < prevEnd {
			return fmt.Errorf("decl[%d] overlaps previous declaration", i)
		}
		prevEnd = d.Span.End
		if err := checkTypeWithin(prog, d.Body, d.Span, what); err != nil {
			return err
		}
	}
	if svc := prog.Service; svc != nil {
		if err := check("service", svc.Span); err != nil {
			return err
		}
		if err := checkTypeWithin(prog, svc.Body, svc.Span, "service"); err != nil {
			return err
		}
	}
	return nil
}

func checkTypeWithin(prog *ast.Program, id ast.TypeExprID, outer source.Span, what string) error {
	te := prog.Types.Get(id)
	if te == nil {
		return fmt.Errorf("%s: missing type expression %d", what, id)
	}
	if !outer.Contains(te.Span) {
		return fmt.Errorf("%s: type span %v outside %v", what, te.Span, outer)
	}
	var children []ast.TypeExprID
	switch te.Kind {
	case ast.TypeOpt, ast.TypeVec:
		children = append(children, te.Elem)
	case ast.TypeRecord, ast.TypeVariant:
		if fields, ok := prog.Types.Composite(id); ok {
			for _, f := range fields.Fields {
				children = append(children, f.Type)
			}
		}
	case ast.TypeFunc:
		if sig, ok := prog.Types.Func(id); ok {
			for _, a := range append(append([]ast.Arg(nil), sig.Args...), sig.Rets...) {
				children = append(children, a.Type)
			}
		}
	case ast.TypeService:
		if sig, ok := prog.Types.Service(id); ok {
			for _, a := range sig.Init {
				children = append(children, a.Type)
			}
			for _, m := range sig.Methods {
				children = append(children, m.Type)
			}
		}
	case ast.TypePrimitive, ast.TypeNamed, ast.TypeBlob:
	}
	for _, c := range children {
		if err := checkTypeWithin(prog, c, te.Span, what); err != nil {
			return err
		}
	}
	return nil
}
