package source

import (
	"fmt"
	"strings"

	"fortio.org/safecast"
)

// StringID is a compact handle for an interned name. Equal names share an
// ID within one Interner, so resolvers compare names without touching text.
type StringID uint32

// NoStringID stands for the empty string and is always present.
const NoStringID StringID = 0

// Interner is shared by every file of one load. Not safe for concurrent use.
type Interner struct {
	names []string
	ids   map[string]StringID
}

func NewInterner() *Interner {
	in := &Interner{ids: make(map[string]StringID, 64)}
	in.names = append(in.names, "")
	in.ids[""] = NoStringID
	return in
}

// Intern returns the ID for s, adding it on first sight.
func (in *Interner) Intern(s string) StringID {
	if id, ok := in.ids[s]; ok {
		return id
	}
	next, err := safecast.Conv[uint32](len(in.names))
	if err != nil {
		panic(fmt.Errorf("interner overflow: %w", err))
	}
	// лексемы режутся из буфера файла; храним собственную копию
	owned := strings.Clone(s)
	in.names = append(in.names, owned)
	in.ids[owned] = StringID(next)
	return StringID(next)
}

// Lookup returns the text behind id.
func (in *Interner) Lookup(id StringID) (string, bool) {
	if uint64(id) < uint64(len(in.names)) {
		return in.names[id], true
	}
	return "", false
}

func (in *Interner) MustLookup(id StringID) string {
	if s, ok := in.Lookup(id); ok {
		return s
	}
	panic(fmt.Sprintf("source: unknown string id %d", id))
}

// Len counts interned strings including the reserved empty string.
func (in *Interner) Len() int { return len(in.names) }
