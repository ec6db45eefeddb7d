package assemble

import (
	"strconv"

	"candidc/internal/resolve"
	"candidc/internal/source"
	"candidc/internal/types"
)

// Assemble validates the resolved unit and builds its method table.
// Checks run in order: service body kind, method names, method types,
// annotations, then field labels of every record and variant reachable
// from the methods and from the named types.
func Assemble(res *resolve.Result) (*Descriptor, error) {
	d := &Descriptor{
		index: make(map[string]int),
		res:   res,
	}
	a := &assembler{in: res.Types, seen: make(map[types.TypeID]struct{})}

	if svc := res.Service; svc != nil {
		if err := a.service(d, svc); err != nil {
			return nil, err
		}
	}
	for _, m := range d.methods {
		if err := a.walk(m.Type); err != nil {
			return nil, err
		}
	}
	for _, n := range res.Named {
		if err := a.walk(n.ID); err != nil {
			return nil, err
		}
	}
	return d, nil
}

type assembler struct {
	in   *types.Interner
	seen map[types.TypeID]struct{}
}

func (a *assembler) service(d *Descriptor, svc *resolve.ResolvedService) error {
	id := a.in.Underlying(svc.Type)
	tt, _ := a.in.Lookup(id)
	if tt.Kind != types.KindService {
		return &ServiceTypeError{Found: tt.Kind, Span: svc.Span}
	}
	info, _ := a.in.ServiceInfo(id)
	d.name = svc.Name
	d.service = id

	init := info.Init
	if svc.HasInit {
		init = svc.Init
	}
	d.init = types.ParamTypes(init)
	for _, p := range init {
		if err := a.walk(p.Type); err != nil {
			return err
		}
	}

	spans := make(map[string]source.Span, len(info.Methods))
	for _, m := range info.Methods {
		name := a.in.Name(m.Name)
		if prev, ok := spans[name]; ok {
			return &DuplicateMethodNameError{Name: name, Span: m.Span, Previous: prev}
		}
		spans[name] = m.Span

		fnID := a.in.Underlying(m.Type)
		fn, ok := a.in.FuncInfo(fnID)
		if !ok {
			found, _ := a.in.Lookup(fnID)
			return &MethodTypeError{Name: name, Found: found.Kind, Span: m.Span}
		}
		if len(fn.Annotations) > 1 {
			return &AnnotationConflictError{Method: name, Annotations: fn.Annotations, Span: m.Span}
		}
		d.index[name] = len(d.methods)
		d.methods = append(d.methods, Method{
			Name:        name,
			Type:        m.Type,
			Args:        types.ParamTypes(fn.Args),
			Rets:        types.ParamTypes(fn.Rets),
			Annotations: fn.Annotations,
			Span:        m.Span,
		})
	}
	return nil
}

// walk visits every node reachable from id once, checking label uniqueness
// and annotation counts.
func (a *assembler) walk(id types.TypeID) error {
	if _, ok := a.seen[id]; ok {
		return nil
	}
	a.seen[id] = struct{}{}
	tt, ok := a.in.Lookup(id)
	if !ok {
		return nil
	}

	switch tt.Kind {
	case types.KindOpt, types.KindVec:
		return a.walk(tt.Elem)

	case types.KindNamed:
		target, _ := a.in.NamedTarget(id)
		return a.walk(target)

	case types.KindRecord, types.KindVariant:
		info, _ := a.in.CompositeInfo(id)
		byID := make(map[uint32]source.Span, len(info.Fields))
		for _, f := range info.Fields {
			if prev, dup := byID[f.Label.ID]; dup {
				return &DuplicateFieldNameError{
					Label:         a.labelText(f.Label),
					ContainerKind: tt.Kind.String(),
					Span:          f.Span,
					Previous:      prev,
				}
			}
			byID[f.Label.ID] = f.Span
		}
		for _, f := range info.Fields {
			if err := a.walk(f.Type); err != nil {
				return err
			}
		}

	case types.KindFunc:
		info, _ := a.in.FuncInfo(id)
		if len(info.Annotations) > 1 {
			return &AnnotationConflictError{Annotations: info.Annotations, Span: info.Decl}
		}
		for _, p := range append(append([]types.Param(nil), info.Args...), info.Rets...) {
			if err := a.walk(p.Type); err != nil {
				return err
			}
		}

	case types.KindService:
		info, _ := a.in.ServiceInfo(id)
		for _, p := range info.Init {
			if err := a.walk(p.Type); err != nil {
				return err
			}
		}
		for _, m := range info.Methods {
			if err := a.walk(m.Type); err != nil {
				return err
			}
		}
	}
	return nil
}

func (a *assembler) labelText(l types.Label) string {
	if l.Name != source.NoStringID {
		return strconv.Quote(a.in.Name(l.Name))
	}
	return strconv.FormatUint(uint64(l.ID), 10)
}
