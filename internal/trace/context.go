package trace

import "context"

type ctxKey struct{}

// binding is what travels in a context: the tracer and the innermost span.
type binding struct {
	tracer Tracer
	parent uint64
}

func bindingOf(ctx context.Context) binding {
	if ctx != nil {
		if b, ok := ctx.Value(ctxKey{}).(binding); ok {
			return b
		}
	}
	return binding{tracer: Nop}
}

// FromContext returns the tracer stored in ctx, or Nop.
func FromContext(ctx context.Context) Tracer { return bindingOf(ctx).tracer }

// ParentSpan returns the span recorded by WithSpan, or 0.
func ParentSpan(ctx context.Context) uint64 { return bindingOf(ctx).parent }

// WithTracer attaches t; the parent span is reset.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, ctxKey{}, binding{tracer: t})
}

// WithSpan makes s the parent of spans started from the returned context.
// A disabled span leaves the current parent in place.
func WithSpan(ctx context.Context, s *Span) context.Context {
	b := bindingOf(ctx)
	if id := s.ID(); id != 0 {
		b.parent = id
	}
	return context.WithValue(ctx, ctxKey{}, b)
}

// Start begins a span under the context's current parent and returns a
// context in which it is the parent.
func Start(ctx context.Context, scope Scope, name string) (context.Context, *Span) {
	b := bindingOf(ctx)
	s := Begin(b.tracer, scope, name, b.parent)
	return WithSpan(ctx, s), s
}
