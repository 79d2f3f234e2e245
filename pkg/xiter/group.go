package xiter

import (
	"fmt"
	"iter"
	"slices"
	"sync/atomic"
)

// Group is one finished run produced by Chunks: a key and the elements that shared it,
// in source order. A Group is immutable and holds no reference to the cursor that made it.
type Group[K, T any] struct {
	key   K
	elems []T

	claimed atomic.Bool
	first   GroupCursor[T]
}

func newGroup[K, T any](key K, elems []T) *Group[K, T] {
	return &Group[K, T]{key: key, elems: elems}
}

// Key returns the key shared by every element of the group.
func (g *Group[K, T]) Key() K {
	return g.key
}

// Len returns the number of elements in the group.
func (g *Group[K, T]) Len() int {
	return len(g.elems)
}

// Values returns a copy of the elements.
func (g *Group[K, T]) Values() []T {
	return slices.Clone(g.elems)
}

// Cursor starts a traversal at the first element.
func (g *Group[K, T]) Cursor() *GroupCursor[T] {
	cur := &g.first
	if !g.claimed.CompareAndSwap(false, true) {
		cur = &GroupCursor[T]{}
	}
	cur.elems = g.elems
	cur.pos = 0
	return cur
}

// All returns an iter.Seq over the elements.
func (g *Group[K, T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		cur := g.Cursor()
		defer cur.Close()
		for cur.Next() {
			if !yield(cur.Current()) {
				return
			}
		}
	}
}

// GroupCursor is a single traversal over a Group.
type GroupCursor[T any] struct {
	elems   []T
	pos     int
	current T
}

// Next advances to the next element and reports whether there is one.
func (c *GroupCursor[T]) Next() bool {
	if c.pos >= len(c.elems) {
		return false
	}
	c.current = c.elems[c.pos]
	c.pos++
	return true
}

// Current returns the element produced by the last successful Next.
func (c *GroupCursor[T]) Current() T {
	return c.current
}

// Close moves the cursor past the last element. It is safe to call more than once.
func (c *GroupCursor[T]) Close() error {
	c.pos = len(c.elems)
	var zero T
	c.current = zero
	return nil
}

// Reset always fails with ErrUnsupportedOperation.
func (c *GroupCursor[T]) Reset() error {
	return fmt.Errorf("%w: group cursor cannot be reset, call Cursor again", ErrUnsupportedOperation)
}
