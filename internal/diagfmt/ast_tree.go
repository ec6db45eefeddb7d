package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"fortio.org/safecast"

	"candidc/internal/ast"
	"candidc/internal/source"
	"candidc/internal/token"
)

type treeNode struct {
	label    string
	children []*treeNode
}

func (n *treeNode) add(children ...*treeNode) *treeNode {
	n.children = append(n.children, children...)
	return n
}

func leaf(format string, args ...any) *treeNode {
	return &treeNode{label: fmt.Sprintf(format, args...)}
}

// FormatASTPretty печатает программу деревом:
//
//	main.did (span: 1:1-3:2)
//	├─ Import "types.did"
//	└─ Type List (span: 2:1-2:44)
//	   └─ Opt
//	      └─ Record
//	         ...
func FormatASTPretty(w io.Writer, prog *ast.Program, fs *source.FileSet) error {
	if prog == nil {
		return fmt.Errorf("program is nil")
	}
	root := buildProgramTree(prog, fs)
	var sb strings.Builder
	sb.WriteString(root.label)
	sb.WriteByte('\n')
	writeTreeChildren(&sb, root.children, "")
	_, err := io.WriteString(w, sb.String())
	return err
}

func writeTreeChildren(sb *strings.Builder, children []*treeNode, prefix string) {
	for i, child := range children {
		last := i == len(children)-1
		branch, next := "├─ ", "│  "
		if last {
			branch, next = "└─ ", "   "
		}
		sb.WriteString(prefix + branch + child.label + "\n")
		writeTreeChildren(sb, child.children, prefix+next)
	}
}

func buildProgramTree(prog *ast.Program, fs *source.FileSet) *treeNode {
	header := "Program"
	var whole source.Span
	if fs != nil {
		if f := fs.Get(prog.File); f != nil {
			header = formatPath(f, PathModeAuto, fs.BaseDir())
			if n, err := safecast.Conv[uint32](len(f.Content)); err == nil {
				whole = source.Span{File: prog.File, End: n}
			}
		}
	}
	root := &treeNode{label: fmt.Sprintf("%s (span: %s)", header, formatSpan(whole, fs))}
	for _, imp := range prog.Imports {
		root.add(leaf("Import %q (span: %s)", imp.Path, formatSpan(imp.Span, fs)))
	}
	for _, d := range prog.Decls {
		node := leaf("Type %s (span: %s)", prog.Name(d.Name), formatSpan(d.Span, fs))
		node.add(buildTypeTree(prog, d.Body, fs))
		root.add(node)
	}
	if svc := prog.Service; svc != nil {
		name := "<anon>"
		if svc.Name != source.NoStringID {
			name = prog.Name(svc.Name)
		}
		node := leaf("Service %s (span: %s)", name, formatSpan(svc.Span, fs))
		if svc.HasInit {
			node.add(argsTree(prog, "Init", svc.Init, fs))
		}
		node.add(buildTypeTree(prog, svc.Body, fs))
		root.add(node)
	}
	return root
}

func buildTypeTree(prog *ast.Program, id ast.TypeExprID, fs *source.FileSet) *treeNode {
	te := prog.Types.Get(id)
	if te == nil {
		return leaf("<nil>")
	}
	switch te.Kind {
	case ast.TypePrimitive:
		return leaf("Primitive %s", te.Prim.String())
	case ast.TypeNamed:
		return leaf("Named %s", prog.Name(te.Name))
	case ast.TypeBlob:
		return leaf("Blob")
	case ast.TypeOpt, ast.TypeVec:
		return leaf("%s", te.Kind.String()).add(buildTypeTree(prog, te.Elem, fs))
	case ast.TypeRecord, ast.TypeVariant:
		node := leaf("%s (span: %s)", te.Kind.String(), formatSpan(te.Span, fs))
		if fields, ok := prog.Types.Composite(id); ok {
			for _, f := range fields.Fields {
				fn := leaf("Field %s (id %d)", f.Label.Text(prog.Strings), f.Label.ID)
				node.add(fn.add(buildTypeTree(prog, f.Type, fs)))
			}
		}
		return node
	case ast.TypeFunc:
		node := leaf("Func (span: %s)", formatSpan(te.Span, fs))
		if sig, ok := prog.Types.Func(id); ok {
			funcSigTree(node, prog, sig, fs)
		}
		return node
	case ast.TypeService:
		node := leaf("Service (span: %s)", formatSpan(te.Span, fs))
		if sig, ok := prog.Types.Service(id); ok {
			if sig.HasInit {
				node.add(argsTree(prog, "Init", sig.Init, fs))
			}
			for _, m := range sig.Methods {
				mn := leaf("Method %s", prog.Name(m.Name))
				node.add(mn.add(buildTypeTree(prog, m.Type, fs)))
			}
		}
		return node
	}
	return leaf("Invalid")
}

func funcSigTree(node *treeNode, prog *ast.Program, sig *ast.FuncSig, fs *source.FileSet) {
	node.add(argsTree(prog, "Args", sig.Args, fs), argsTree(prog, "Rets", sig.Rets, fs))
	if len(sig.Annotations) > 0 {
		names := make([]string, len(sig.Annotations))
		for i, a := range sig.Annotations {
			names[i] = annotationName(a.Kind)
		}
		node.add(leaf("Annotations: %s", strings.Join(names, ", ")))
	}
}

func argsTree(prog *ast.Program, title string, args []ast.Arg, fs *source.FileSet) *treeNode {
	node := leaf("%s (%d)", title, len(args))
	for i, a := range args {
		label := fmt.Sprintf("[%d]", i)
		if a.Name != source.NoStringID {
			label += " " + prog.Name(a.Name)
		}
		node.add((&treeNode{label: label}).add(buildTypeTree(prog, a.Type, fs)))
	}
	return node
}

func annotationName(k token.Kind) string {
	return strings.Trim(k.String(), "'")
}

// formatSpan renders line:col ranges when fs is known, raw offsets otherwise.
func formatSpan(sp source.Span, fs *source.FileSet) string {
	if fs == nil || fs.Get(sp.File) == nil {
		return sp.String()
	}
	start, end := fs.Resolve(sp)
	return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
}
