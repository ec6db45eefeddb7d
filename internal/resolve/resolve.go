package resolve

import (
	"fmt"

	"candidc/internal/ast"
	"candidc/internal/source"
	"candidc/internal/token"
	"candidc/internal/types"
)

type Options struct {
	// Types receives the graph; a new interner sharing the root program's
	// strings is created when nil.
	Types *types.Interner
}

// Resolve links a single program.
func Resolve(prog *ast.Program, opts Options) (*Result, error) {
	return ResolveUnit([]*ast.Program{prog}, opts)
}

// ResolveUnit links several programs into one compilation unit. Declarations
// share a single name table; only the service of the last program, the root,
// is resolved.
func ResolveUnit(progs []*ast.Program, opts Options) (*Result, error) {
	if len(progs) == 0 {
		return nil, fmt.Errorf("resolve: empty unit")
	}
	root := progs[len(progs)-1]
	in := opts.Types
	if in == nil {
		in = types.NewInterner(root.Strings)
	}
	r := &resolver{
		in:    in,
		table: make(map[string]*declEntry),
	}
	if err := r.collect(progs); err != nil {
		return nil, err
	}
	for _, e := range r.order {
		if err := r.resolveDecl(e); err != nil {
			return nil, err
		}
	}

	res := &Result{
		Types: in,
		Named: make([]NamedType, len(r.order)),
		index: make(map[string]int, len(r.order)),
	}
	for i, e := range r.order {
		res.Named[i] = NamedType{Name: e.name, ID: e.id, Span: e.decl.NameSpan}
		res.index[e.name] = i
	}
	if root.Service != nil {
		svc, err := r.resolveService(root, root.Service)
		if err != nil {
			return nil, err
		}
		res.Service = svc
	}
	return res, nil
}

type declState uint8

const (
	declPending declState = iota
	declInProgress
	declDone
)

type declEntry struct {
	name  string
	prog  *ast.Program
	decl  *ast.TypeDecl
	id    types.TypeID
	state declState
	// позиция в r.stack, -1 если запись не на стеке
	pos int
}

// The alias chain is the tail of stack starting at base. Entering a
// structural boundary moves base to the top, so the chain restarts while
// outer declarations stay on the stack as back-edge targets.
type resolver struct {
	in    *types.Interner
	table map[string]*declEntry
	order []*declEntry
	stack []*declEntry
	base  int
}

// collect: первый проход, таблица имён и named-узлы.
func (r *resolver) collect(progs []*ast.Program) error {
	for _, prog := range progs {
		for i := range prog.Decls {
			decl := &prog.Decls[i]
			name := prog.Name(decl.Name)
			if prev, ok := r.table[name]; ok {
				return &DuplicateTypeNameError{Name: name, Span: decl.NameSpan, Previous: prev.decl.NameSpan}
			}
			e := &declEntry{
				name: name,
				prog: prog,
				decl: decl,
				id:   r.in.RegisterNamed(r.in.Strings().Intern(name), decl.Span),
				pos:  -1,
			}
			r.table[name] = e
			r.order = append(r.order, e)
		}
	}
	return nil
}

// resolveDecl resolves e's body with e pushed onto the alias chain.
func (r *resolver) resolveDecl(e *declEntry) error {
	if e.state != declPending {
		return nil
	}
	e.state = declInProgress
	e.pos = len(r.stack)
	r.stack = append(r.stack, e)
	target, err := r.resolveType(e.prog, e.decl.Body)
	r.stack = r.stack[:e.pos]
	e.pos = -1
	if err != nil {
		return err
	}
	r.in.SetNamedTarget(e.id, target)
	e.state = declDone
	return nil
}

// resolveInner resolves a type nested under a structural boundary.
func (r *resolver) resolveInner(prog *ast.Program, id ast.TypeExprID) (types.TypeID, error) {
	saved := r.base
	r.base = len(r.stack)
	t, err := r.resolveType(prog, id)
	r.base = saved
	return t, err
}

// resolveType: второй проход. Цепочка алиасов продолжается только через
// TypeNamed; остальные конструкторы резолвят детей через resolveInner.
func (r *resolver) resolveType(prog *ast.Program, id ast.TypeExprID) (types.TypeID, error) {
	te := prog.Types.Get(id)
	if te == nil {
		return types.NoTypeID, fmt.Errorf("resolve: invalid type expression %d", id)
	}

	switch te.Kind {
	case ast.TypePrimitive:
		return r.in.Primitive(primitiveKind(te.Prim)), nil

	case ast.TypeBlob:
		return r.in.Blob(), nil

	case ast.TypeNamed:
		return r.resolveName(prog, te)

	case ast.TypeOpt, ast.TypeVec:
		elem, err := r.resolveInner(prog, te.Elem)
		if err != nil {
			return types.NoTypeID, err
		}
		if te.Kind == ast.TypeOpt {
			return r.in.Opt(elem), nil
		}
		return r.in.Vec(elem), nil

	case ast.TypeRecord, ast.TypeVariant:
		return r.resolveComposite(prog, id, te)

	case ast.TypeFunc:
		return r.resolveFunc(prog, id, te)

	case ast.TypeService:
		sig, _ := prog.Types.Service(id)
		svc := r.in.RegisterService(te.Span)
		init, err := r.resolveParams(prog, sig.Init)
		if err != nil {
			return types.NoTypeID, err
		}
		methods, err := r.resolveMethods(prog, sig.Methods)
		if err != nil {
			return types.NoTypeID, err
		}
		r.in.SetService(svc, init, sig.HasInit, methods)
		return svc, nil
	}
	return types.NoTypeID, fmt.Errorf("resolve: unknown type expression kind %v", te.Kind)
}

func (r *resolver) resolveName(prog *ast.Program, te *ast.TypeExpr) (types.TypeID, error) {
	name := prog.Name(te.Name)
	e, ok := r.table[name]
	if !ok {
		return types.NoTypeID, &UnresolvedTypeReferenceError{Name: name, Span: te.Span}
	}
	if e.pos >= r.base {
		cycle := make([]string, 0, len(r.stack)-e.pos+1)
		for _, c := range r.stack[e.pos:] {
			cycle = append(cycle, c.name)
		}
		cycle = append(cycle, e.name)
		return types.NoTypeID, &CyclicAliasError{Chain: cycle, Span: te.Span}
	}
	// на стеке ниже base: ссылка через структурную границу, то есть обратное ребро.
	if e.state == declPending {
		if err := r.resolveDecl(e); err != nil {
			return types.NoTypeID, err
		}
	}
	return e.id, nil
}

func (r *resolver) resolveComposite(prog *ast.Program, id ast.TypeExprID, te *ast.TypeExpr) (types.TypeID, error) {
	var node types.TypeID
	if te.Kind == ast.TypeRecord {
		node = r.in.RegisterRecord(te.Span)
	} else {
		node = r.in.RegisterVariant(te.Span)
	}
	payload, _ := prog.Types.Composite(id)
	fields := make([]types.Field, 0, len(payload.Fields))
	for _, f := range payload.Fields {
		ft, err := r.resolveInner(prog, f.Type)
		if err != nil {
			return types.NoTypeID, err
		}
		fields = append(fields, types.Field{Label: r.label(prog, f.Label), Type: ft, Span: f.Span})
	}
	r.in.SetFields(node, fields)
	return node, nil
}

func (r *resolver) resolveFunc(prog *ast.Program, id ast.TypeExprID, te *ast.TypeExpr) (types.TypeID, error) {
	sig, _ := prog.Types.Func(id)
	node := r.in.RegisterFunc(te.Span)
	args, err := r.resolveParams(prog, sig.Args)
	if err != nil {
		return types.NoTypeID, err
	}
	rets, err := r.resolveParams(prog, sig.Rets)
	if err != nil {
		return types.NoTypeID, err
	}
	anns := make([]types.Annotation, 0, len(sig.Annotations))
	for _, a := range sig.Annotations {
		anns = append(anns, annotation(a.Kind))
	}
	r.in.SetFunc(node, args, rets, anns)
	return node, nil
}

func (r *resolver) resolveParams(prog *ast.Program, args []ast.Arg) ([]types.Param, error) {
	params := make([]types.Param, 0, len(args))
	for _, a := range args {
		t, err := r.resolveInner(prog, a.Type)
		if err != nil {
			return nil, err
		}
		params = append(params, types.Param{Name: r.rename(prog, a.Name), Type: t})
	}
	return params, nil
}

func (r *resolver) resolveMethods(prog *ast.Program, ms []ast.Method) ([]types.Method, error) {
	methods := make([]types.Method, 0, len(ms))
	for _, m := range ms {
		t, err := r.resolveInner(prog, m.Type)
		if err != nil {
			return nil, err
		}
		methods = append(methods, types.Method{Name: r.rename(prog, m.Name), Type: t, Span: m.Span})
	}
	return methods, nil
}

func (r *resolver) resolveService(prog *ast.Program, decl *ast.ServiceDecl) (*ResolvedService, error) {
	body, err := r.resolveInner(prog, decl.Body)
	if err != nil {
		return nil, err
	}
	init, err := r.resolveParams(prog, decl.Init)
	if err != nil {
		return nil, err
	}
	svc := &ResolvedService{
		Type:    body,
		Init:    init,
		HasInit: decl.HasInit,
		Span:    decl.Span,
	}
	if decl.Name != source.NoStringID {
		svc.Name = prog.Name(decl.Name)
	}
	return svc, nil
}

// rename переносит имя из строк программы в строки интернера типов.
func (r *resolver) rename(prog *ast.Program, id source.StringID) source.StringID {
	if id == source.NoStringID {
		return source.NoStringID
	}
	if prog.Strings == r.in.Strings() {
		return id
	}
	return r.in.Strings().Intern(prog.Name(id))
}

func (r *resolver) label(prog *ast.Program, l ast.Label) types.Label {
	switch l.Kind {
	case ast.LabelName, ast.LabelText:
		return types.Label{Name: r.rename(prog, l.Name), ID: l.ID}
	default:
		return types.Label{ID: l.ID}
	}
}

var primitiveKinds = map[token.Kind]types.Kind{
	token.PrimNat:       types.KindNat,
	token.PrimNat8:      types.KindNat8,
	token.PrimNat16:     types.KindNat16,
	token.PrimNat32:     types.KindNat32,
	token.PrimNat64:     types.KindNat64,
	token.PrimInt:       types.KindInt,
	token.PrimInt8:      types.KindInt8,
	token.PrimInt16:     types.KindInt16,
	token.PrimInt32:     types.KindInt32,
	token.PrimInt64:     types.KindInt64,
	token.PrimFloat32:   types.KindFloat32,
	token.PrimFloat64:   types.KindFloat64,
	token.PrimBool:      types.KindBool,
	token.PrimText:      types.KindText,
	token.PrimNull:      types.KindNull,
	token.PrimReserved:  types.KindReserved,
	token.PrimEmpty:     types.KindEmpty,
	token.PrimPrincipal: types.KindPrincipal,
}

func primitiveKind(k token.Kind) types.Kind {
	pk, ok := primitiveKinds[k]
	if !ok {
		panic(fmt.Errorf("resolve: %v is not a primitive", k))
	}
	return pk
}

func annotation(k token.Kind) types.Annotation {
	if k == token.KwOneway {
		return types.AnnotationOneway
	}
	return types.AnnotationQuery
}
