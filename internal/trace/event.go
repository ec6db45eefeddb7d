package trace

import "time"

// Kind says whether an event opens a span, closes it, or stands alone.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint
)

var kindNames = [...]string{KindSpanBegin: "begin", KindSpanEnd: "end", KindPoint: "point"}

func (k Kind) String() string { return lookupName(kindNames[:], int(k)) }

// Scope is the granularity of an event; lower values are coarser.
type Scope uint8

const (
	ScopeDriver  Scope = iota + 1 // CLI command
	ScopePass                     // lex, parse, import, resolve, assemble
	ScopeModule                   // one file of a load or directory check
	ScopeNode                     // individual declarations
	ScopeFailure                  // error points
)

var scopeNames = [...]string{
	ScopeDriver: "driver", ScopePass: "pass", ScopeModule: "module",
	ScopeNode: "node", ScopeFailure: "failure",
}

func (s Scope) String() string { return lookupName(scopeNames[:], int(s)) }

func lookupName(names []string, i int) string {
	if i > 0 && i < len(names) {
		return names[i]
	}
	return "unknown"
}

// Event is one trace record. Seq is assigned by the tracer that keeps it.
type Event struct {
	Time     time.Time
	Seq      uint64
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64 // 0 for roots
	Name     string // "parse", "module:types.did", ...
	Detail   string
	Extra    map[string]string
}
