package format

import (
	"io"
	"strconv"

	"candidc/internal/assemble"
	"candidc/internal/types"
)

type Options struct {
	IndentWidth int
	UseTabs     bool
}

func (o Options) withDefaults() Options {
	if o.IndentWidth == 0 {
		o.IndentWidth = 2
	}
	return o
}

type printer struct {
	in *types.Interner
	w  *Writer
}

// Descriptor writes desc with default options.
func Descriptor(w io.Writer, desc *assemble.Descriptor) error {
	return DescriptorWith(w, desc, Options{})
}

// DescriptorWith writes the named types of desc, then its service.
func DescriptorWith(w io.Writer, desc *assemble.Descriptor, opt Options) error {
	_, err := w.Write(Bytes(desc, opt))
	return err
}

// Bytes renders desc into a new buffer.
func Bytes(desc *assemble.Descriptor, opt Options) []byte {
	p := &printer{in: desc.Types(), w: NewWriter(opt)}
	for _, n := range desc.Named() {
		target, _ := p.in.NamedTarget(n.ID)
		p.w.WriteString("type " + n.Name + " = ")
		p.printType(target)
		p.w.WriteString(";")
		p.w.Newline()
	}
	if desc.HasService() {
		p.printServiceDecl(desc)
	}
	return p.w.Bytes()
}

// Type renders one type inline, e.g. "opt record { a : nat }".
func Type(in *types.Interner, id types.TypeID) string {
	p := &printer{in: in, w: NewWriter(Options{})}
	p.printType(id)
	return string(p.w.Bytes())
}

func (p *printer) printServiceDecl(desc *assemble.Descriptor) {
	res := desc.Result()
	p.w.WriteString("service ")
	if desc.Name() != "" {
		p.w.WriteString(desc.Name() + " ")
	}
	p.w.WriteString(": ")
	svc := res.Service
	if svc.HasInit {
		p.printParams(svc.Init)
		p.w.WriteString(" -> ")
	}
	if tt, _ := p.in.Lookup(svc.Type); tt.Kind == types.KindNamed {
		p.printType(svc.Type)
		p.w.WriteString(";")
		p.w.Newline()
		return
	}
	info, _ := p.in.ServiceInfo(desc.Service())
	p.printMethodBlock(info.Methods)
	p.w.WriteString(";")
	p.w.Newline()
}

func (p *printer) printMethodBlock(methods []types.Method) {
	if len(methods) == 0 {
		p.w.WriteString("{}")
		return
	}
	p.w.WriteString("{")
	p.w.Newline()
	p.w.Indent()
	for _, m := range methods {
		p.w.WriteString(labelName(p.in.Name(m.Name)) + " : ")
		if fn, ok := p.in.FuncInfo(m.Type); ok {
			p.printSig(fn)
		} else {
			p.printType(m.Type)
		}
		p.w.WriteString(";")
		p.w.Newline()
	}
	p.w.Dedent()
	p.w.WriteString("}")
}

func (p *printer) printType(id types.TypeID) {
	tt, ok := p.in.Lookup(id)
	if !ok {
		p.w.WriteString("<invalid>")
		return
	}
	switch {
	case tt.Kind.IsPrimitive(), tt.Kind == types.KindBlob:
		p.w.WriteString(tt.Kind.String())
	case tt.Kind == types.KindNamed:
		info, _ := p.in.NamedInfo(id)
		p.w.WriteString(p.in.Name(info.Name))
	case tt.Kind == types.KindOpt, tt.Kind == types.KindVec:
		p.w.WriteString(tt.Kind.String() + " ")
		p.printType(tt.Elem)
	case tt.Kind == types.KindRecord, tt.Kind == types.KindVariant:
		p.printFields(tt.Kind, p.in.Fields(id))
	case tt.Kind == types.KindFunc:
		fn, _ := p.in.FuncInfo(id)
		p.w.WriteString("func ")
		p.printSig(fn)
	case tt.Kind == types.KindService:
		info, _ := p.in.ServiceInfo(id)
		p.w.WriteString("service ")
		if info.HasInit {
			p.printParams(info.Init)
			p.w.WriteString(" -> ")
		}
		p.printMethodBlock(info.Methods)
	default:
		p.w.WriteString("<" + tt.Kind.String() + ">")
	}
}

func (p *printer) printFields(kind types.Kind, fields []types.Field) {
	p.w.WriteString(kind.String() + " {")
	for i, f := range fields {
		if i > 0 {
			p.w.WriteString(";")
		}
		p.w.WriteString(" " + p.label(f.Label) + " : ")
		p.printType(f.Type)
	}
	if len(fields) > 0 {
		p.w.WriteString(" ")
	}
	p.w.WriteString("}")
}

func (p *printer) printSig(fn *types.FuncInfo) {
	p.printParams(fn.Args)
	p.w.WriteString(" -> ")
	p.printParams(fn.Rets)
	for _, a := range fn.Annotations {
		p.w.WriteString(" " + a.String())
	}
}

func (p *printer) printParams(params []types.Param) {
	p.w.WriteString("(")
	for i, prm := range params {
		if i > 0 {
			p.w.WriteString(", ")
		}
		if name := p.in.Name(prm.Name); name != "" {
			p.w.WriteString(name + " : ")
		}
		p.printType(prm.Type)
	}
	p.w.WriteString(")")
}

func (p *printer) label(l types.Label) string {
	if name := p.in.Name(l.Name); name != "" {
		return labelName(name)
	}
	return strconv.FormatUint(uint64(l.ID), 10)
}

// labelName печатает имя как идентификатор, если это возможно, иначе как текстовый литерал.
func labelName(name string) string {
	if isIdent(name) {
		return name
	}
	return QuoteText(name)
}
