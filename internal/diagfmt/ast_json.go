package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"candidc/internal/ast"
	"candidc/internal/source"
)

type ASTNodeOutput struct {
	Type     string          `json:"type"`
	Kind     string          `json:"kind,omitempty"`
	Span     *source.Span    `json:"span,omitempty"`
	Text     string          `json:"text,omitempty"`
	Children []ASTNodeOutput `json:"children,omitempty"`
	Fields   map[string]any  `json:"fields,omitempty"`
}

func spanPtr(sp source.Span) *source.Span { return &sp }

// FormatASTJSON writes the program as a JSON node tree.
func FormatASTJSON(w io.Writer, prog *ast.Program) error {
	if prog == nil {
		return fmt.Errorf("program is nil")
	}
	out := ASTNodeOutput{Type: "Program"}
	for _, imp := range prog.Imports {
		out.Children = append(out.Children, ASTNodeOutput{Type: "Import", Span: spanPtr(imp.Span), Text: imp.Path})
	}
	for _, d := range prog.Decls {
		out.Children = append(out.Children, ASTNodeOutput{
			Type:     "TypeDecl",
			Span:     spanPtr(d.Span),
			Text:     prog.Name(d.Name),
			Children: []ASTNodeOutput{typeJSON(prog, d.Body)},
		})
	}
	if svc := prog.Service; svc != nil {
		node := ASTNodeOutput{Type: "ServiceDecl", Span: spanPtr(svc.Span), Text: prog.Name(svc.Name)}
		if svc.HasInit {
			node.Fields = map[string]any{"init": argsJSON(prog, svc.Init)}
		}
		node.Children = []ASTNodeOutput{typeJSON(prog, svc.Body)}
		out.Children = append(out.Children, node)
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

func typeJSON(prog *ast.Program, id ast.TypeExprID) ASTNodeOutput {
	te := prog.Types.Get(id)
	if te == nil {
		return ASTNodeOutput{Type: "Type", Kind: "Invalid"}
	}
	node := ASTNodeOutput{Type: "Type", Kind: te.Kind.String(), Span: spanPtr(te.Span)}
	switch te.Kind {
	case ast.TypePrimitive:
		node.Text = te.Prim.String()
	case ast.TypeNamed:
		node.Text = prog.Name(te.Name)
	case ast.TypeOpt, ast.TypeVec:
		node.Children = []ASTNodeOutput{typeJSON(prog, te.Elem)}
	case ast.TypeRecord, ast.TypeVariant:
		if fields, ok := prog.Types.Composite(id); ok {
			for _, f := range fields.Fields {
				node.Children = append(node.Children, ASTNodeOutput{
					Type:     "Field",
					Span:     spanPtr(f.Span),
					Text:     f.Label.Text(prog.Strings),
					Fields:   map[string]any{"id": f.Label.ID},
					Children: []ASTNodeOutput{typeJSON(prog, f.Type)},
				})
			}
		}
	case ast.TypeFunc:
		if sig, ok := prog.Types.Func(id); ok {
			node.Fields = funcJSON(prog, sig)
		}
	case ast.TypeService:
		if sig, ok := prog.Types.Service(id); ok {
			if sig.HasInit {
				node.Fields = map[string]any{"init": argsJSON(prog, sig.Init)}
			}
			for _, m := range sig.Methods {
				node.Children = append(node.Children, ASTNodeOutput{
					Type:     "Method",
					Span:     spanPtr(m.Span),
					Text:     prog.Name(m.Name),
					Children: []ASTNodeOutput{typeJSON(prog, m.Type)},
				})
			}
		}
	case ast.TypeBlob:
	}
	return node
}

func funcJSON(prog *ast.Program, sig *ast.FuncSig) map[string]any {
	fields := map[string]any{
		"args": argsJSON(prog, sig.Args),
		"rets": argsJSON(prog, sig.Rets),
	}
	if len(sig.Annotations) > 0 {
		names := make([]string, len(sig.Annotations))
		for i, a := range sig.Annotations {
			names[i] = annotationName(a.Kind)
		}
		fields["annotations"] = names
	}
	return fields
}

func argsJSON(prog *ast.Program, args []ast.Arg) []ASTNodeOutput {
	out := make([]ASTNodeOutput, len(args))
	for i, a := range args {
		out[i] = ASTNodeOutput{Type: "Arg", Span: spanPtr(a.Span), Text: prog.Name(a.Name), Children: []ASTNodeOutput{typeJSON(prog, a.Type)}}
	}
	return out
}
