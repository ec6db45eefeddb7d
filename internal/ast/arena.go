package ast

import (
	"fmt"

	"fortio.org/safecast"
)

// Arena stores nodes of one kind and hands out typed 1-based IDs; the zero
// ID is the "no node" sentinel.
type Arena[ID ~uint32, T any] struct {
	items []T
}

func NewArena[ID ~uint32, T any](capHint uint) *Arena[ID, T] {
	return &Arena[ID, T]{items: make([]T, 0, capHint)}
}

// Allocate appends v and returns its ID.
func (a *Arena[ID, T]) Allocate(v T) ID {
	a.items = append(a.items, v)
	n, err := safecast.Conv[uint32](len(a.items))
	if err != nil {
		panic(fmt.Errorf("arena overflow: %w", err))
	}
	return ID(n)
}

// Get returns nil for the sentinel and for IDs from another arena.
func (a *Arena[ID, T]) Get(id ID) *T {
	if id == 0 || uint64(id) > uint64(len(a.items)) {
		return nil
	}
	return &a.items[id-1]
}

func (a *Arena[ID, T]) Len() int { return len(a.items) }
