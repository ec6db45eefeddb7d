package types

import (
	"slices"

	"candidc/internal/source"
)

// Method is one entry of a service; Type is a func node or a named node
// whose underlying type should be a func.
type Method struct {
	Name source.StringID
	Type TypeID
	Span source.Span
}

type ServiceInfo struct {
	Init    []Param
	HasInit bool
	Methods []Method
	Decl    source.Span
}

func (in *Interner) RegisterService(decl source.Span) TypeID {
	in.services = append(in.services, ServiceInfo{Decl: decl})
	return in.internRaw(Type{Kind: KindService, Payload: slot(len(in.services))})
}

// SetService stores the initializer and methods of a service node.
func (in *Interner) SetService(id TypeID, init []Param, hasInit bool, methods []Method) {
	info := in.serviceInfo(id)
	if info == nil {
		return
	}
	info.Init = slices.Clone(init)
	info.HasInit = hasInit
	info.Methods = slices.Clone(methods)
}

func (in *Interner) ServiceInfo(id TypeID) (*ServiceInfo, bool) {
	info := in.serviceInfo(id)
	return info, info != nil
}

func (in *Interner) serviceInfo(id TypeID) *ServiceInfo {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindService || tt.Payload == 0 || int(tt.Payload) >= len(in.services) {
		return nil
	}
	return &in.services[tt.Payload]
}
