package assemble

import (
	"slices"

	"candidc/internal/resolve"
	"candidc/internal/source"
	"candidc/internal/types"
)

// Method is one callable entry of the service.
// Type is the method's declared type (a func node or a named alias of one).
type Method struct {
	Name        string
	Type        types.TypeID
	Args        []types.TypeID
	Rets        []types.TypeID
	Annotations []types.Annotation
	Span        source.Span
}

// IsQuery reports whether the method carries the query annotation.
func (m Method) IsQuery() bool {
	return slices.Contains(m.Annotations, types.AnnotationQuery)
}

// IsOneway reports whether the method carries the oneway annotation.
func (m Method) IsOneway() bool {
	return slices.Contains(m.Annotations, types.AnnotationOneway)
}

// Descriptor is the assembled, read-only view of a compilation unit.
type Descriptor struct {
	name    string
	service types.TypeID
	methods []Method
	index   map[string]int
	init    []types.TypeID
	res     *resolve.Result
}

// Name returns the service name; empty for anonymous services and units without one.
func (d *Descriptor) Name() string { return d.name }

// HasService reports whether the unit declares a service.
func (d *Descriptor) HasService() bool { return d.service != types.NoTypeID }

// Service returns the service node, or NoTypeID.
func (d *Descriptor) Service() types.TypeID { return d.service }

// Methods returns the method table in declaration order.
func (d *Descriptor) Methods() []Method {
	return slices.Clone(d.methods)
}

func (d *Descriptor) Method(name string) (Method, bool) {
	i, ok := d.index[name]
	if !ok {
		return Method{}, false
	}
	return d.methods[i], true
}

// InitArgs returns the service initializer argument types.
func (d *Descriptor) InitArgs() []types.TypeID {
	return slices.Clone(d.init)
}

func (d *Descriptor) Types() *types.Interner { return d.res.Types }

func (d *Descriptor) Named() []resolve.NamedType {
	return slices.Clone(d.res.Named)
}

func (d *Descriptor) Lookup(name string) (types.TypeID, bool) {
	return d.res.Lookup(name)
}

// Result exposes the resolution result the descriptor was built from.
func (d *Descriptor) Result() *resolve.Result { return d.res }
