// Package arena implements a bump-allocated cons-cell pool backing the
// append-only lists used by the symbol table and call graph: caller
// lists, callee lists, and reference lists. Cells are carved out of
// fixed-size chunks and never individually freed; the pool lives until
// the process exits.
package arena

// defaultChunkSize matches the bucket size GNU cflow's alloc_new_bucket
// uses for its cons pool.
const defaultChunkSize = 512

// maxChunks bounds how many chunks an Arena will allocate before giving
// up. Real translation units never come close to this; it exists so a
// runaway caller fails loudly instead of growing without limit.
const maxChunks = 1 << 20

type cons[T any] struct {
	val  T
	next *cons[T]
}

// Arena is a bump allocator for cons cells of type T. Not thread-safe —
// callers share a single Arena only within one single-threaded analysis
// run, per the core's concurrency model.
type Arena[T any] struct {
	chunkSize int
	chunks    [][]cons[T]
	free      int // next free index in the last chunk
}

// New creates an Arena that grows in chunks of chunkSize cells. A
// non-positive chunkSize falls back to the default.
func New[T any](chunkSize int) *Arena[T] {
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}
	return &Arena[T]{chunkSize: chunkSize}
}

// alloc returns a zeroed cons cell, extending the pool with a fresh
// chunk if the current one is full.
//
// Failure: if the pool cannot extend (chunk-count exhausted), this is a
// FatalAlloc condition and the process aborts, mirroring alloc_cons's
// "not enough core" fatal error in the source material.
func (a *Arena[T]) alloc() *cons[T] {
	if len(a.chunks) == 0 || a.free == a.chunkSize {
		if len(a.chunks) >= maxChunks {
			panic("arena: FatalAlloc: cons pool exhausted")
		}
		a.chunks = append(a.chunks, make([]cons[T], a.chunkSize))
		a.free = 0
	}
	last := a.chunks[len(a.chunks)-1]
	c := &last[a.free]
	a.free++
	return c
}

// List is an ordered, append-at-end, traversable list of values backed
// by an Arena. The zero value is an empty list.
type List[T any] struct {
	head, tail *cons[T]
	length     int
}

// Len returns the number of elements currently in the list.
func (l *List[T]) Len() int {
	return l.length
}

// Append adds v to the tail of l in O(1), allocating a cell from a.
func (a *Arena[T]) Append(l *List[T], v T) {
	c := a.alloc()
	c.val = v
	if l.tail == nil {
		l.head = c
	} else {
		l.tail.next = c
	}
	l.tail = c
	l.length++
}

// Each calls fn for every element of l in append order, stopping early
// if fn returns false.
func (l *List[T]) Each(fn func(T) bool) {
	for c := l.head; c != nil; c = c.next {
		if !fn(c.val) {
			return
		}
	}
}

// Slice materializes l into a freshly allocated slice, in append order.
func (l *List[T]) Slice() []T {
	out := make([]T, 0, l.length)
	l.Each(func(v T) bool {
		out = append(out, v)
		return true
	})
	return out
}

// Contains reports whether v is present in l, per the equality function
// eq. This is the generic equivalent of symbol_in_list, which walks the
// car-chain testing pointer identity.
func Contains[T any](l *List[T], v T, eq func(a, b T) bool) bool {
	found := false
	l.Each(func(x T) bool {
		if eq(x, v) {
			found = true
			return false
		}
		return true
	})
	return found
}
