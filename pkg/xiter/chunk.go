package xiter

import (
	"fmt"
	"iter"
	"slices"
	"sync/atomic"
)

// Chunks is the lazy sequence returned by ChunkGroupBy.
// It yields one Group per run of consecutive source elements that share a key.
// Unlike a hash-based group-by, a key seen earlier starts a new Group when it reappears.
type Chunks[K, T any] struct {
	source iter.Seq[T]
	keyFn  func(T) K
	eq     func(K, K) bool

	claimed atomic.Bool
	first   ChunkCursor[K, T]
}

// ChunkGroupBy returns the runs of consecutive elements of source whose keys are equal (==).
// source is not pulled until a cursor is advanced, and keyFn is called once per element.
// It returns an error wrapping ErrInvalidArgument if source or keyFn is nil.
func ChunkGroupBy[T any, K comparable](source iter.Seq[T], keyFn func(T) K) (*Chunks[K, T], error) {
	return ChunkGroupByFunc(source, keyFn, func(a, b K) bool { return a == b })
}

// ChunkGroupByFunc is like ChunkGroupBy but compares keys with eq.
func ChunkGroupByFunc[T, K any](source iter.Seq[T], keyFn func(T) K, eq func(K, K) bool) (*Chunks[K, T], error) {
	switch {
	case source == nil:
		return nil, fmt.Errorf("%w: source is nil", ErrInvalidArgument)
	case keyFn == nil:
		return nil, fmt.Errorf("%w: keyFn is nil", ErrInvalidArgument)
	case eq == nil:
		return nil, fmt.Errorf("%w: eq is nil", ErrInvalidArgument)
	}
	return &Chunks[K, T]{source: source, keyFn: keyFn, eq: eq}, nil
}

// Cursor starts a new traversal from the beginning of the source.
// The first call reuses storage embedded in c; later or concurrent calls get an independent cursor.
// Cursors never share source pulls, buffers or keys with each other.
func (c *Chunks[K, T]) Cursor() *ChunkCursor[K, T] {
	cur := &c.first
	if !c.claimed.CompareAndSwap(false, true) {
		cur = &ChunkCursor[K, T]{}
	}
	cur.chunks = c
	cur.state = chunkReady
	return cur
}

// All returns an iter.Seq over the groups. Each range statement runs its own cursor.
func (c *Chunks[K, T]) All() iter.Seq[*Group[K, T]] {
	return func(yield func(*Group[K, T]) bool) {
		cur := c.Cursor()
		defer cur.Close()
		for cur.Next() {
			if !yield(cur.Current()) {
				return
			}
		}
	}
}

type chunkState uint8

const (
	chunkFresh chunkState = iota
	chunkReady
	chunkAccumulating
	chunkPendingClose
	chunkExhausted
)

// ChunkCursor is a single traversal over Chunks.
// It is not safe for concurrent use; request one cursor per goroutine.
type ChunkCursor[K, T any] struct {
	chunks  *Chunks[K, T]
	state   chunkState
	next    func() (T, bool)
	stop    func()
	key     K
	buf     []T
	current *Group[K, T]
}

// Next advances to the next group and reports whether there is one.
// Panics raised by the source or by the key function reach the caller unchanged,
// after which the cursor must not be advanced again.
func (c *ChunkCursor[K, T]) Next() bool {
	for {
		switch c.state {
		case chunkReady:
			c.next, c.stop = iter.Pull(c.chunks.source)
			v, ok := c.next()
			if !ok {
				c.release()
				return false
			}
			c.key = c.chunks.keyFn(v)
			c.buf = append(c.buf[:0], v)
			c.state = chunkAccumulating
		case chunkAccumulating:
			v, ok := c.next()
			if !ok {
				c.current = c.emit()
				c.state = chunkPendingClose
				return true
			}
			k := c.chunks.keyFn(v)
			if c.chunks.eq(k, c.key) {
				c.buf = append(c.buf, v)
				continue
			}
			c.current = c.emit()
			c.key = k
			c.buf = append(c.buf[:0], v)
			return true
		case chunkPendingClose:
			c.release()
			return false
		default:
			return false
		}
	}
}

// Current returns the group produced by the last successful Next, or nil.
func (c *ChunkCursor[K, T]) Current() *Group[K, T] {
	return c.current
}

// Close releases the source and drops buffered elements. It is safe to call more than once.
func (c *ChunkCursor[K, T]) Close() error {
	c.release()
	return nil
}

// Reset always fails with ErrUnsupportedOperation.
func (c *ChunkCursor[K, T]) Reset() error {
	return fmt.Errorf("%w: chunk cursor cannot be reset, call Cursor again", ErrUnsupportedOperation)
}

// emit copies the pending run into a Group so the buffer can be reused for the next run.
func (c *ChunkCursor[K, T]) emit() *Group[K, T] {
	return newGroup(c.key, slices.Clone(c.buf))
}

func (c *ChunkCursor[K, T]) release() {
	if c.state == chunkExhausted {
		return
	}
	c.state = chunkExhausted
	if c.stop != nil {
		c.stop()
	}
	c.next, c.stop = nil, nil
	clear(c.buf)
	c.buf = nil
	var zero K
	c.key = zero
	c.current = nil
}
