package segbuf

import (
	"iter"
	"slices"
)

// View is a read-only window onto one segment. It aliases the owning
// Buffer's storage and is valid only until that Buffer is released.
type View[T any] struct {
	s []T
}

// Len returns the number of elements in the segment.
func (v View[T]) Len() int {
	return len(v.s)
}

// At returns element i.
func (v View[T]) At(i int) T {
	return v.s[i]
}

// All yields index/value pairs in order.
func (v View[T]) All() iter.Seq2[int, T] {
	return slices.All(v.s)
}

// CopyTo copies the segment into dst and returns the number of elements
// copied.
func (v View[T]) CopyTo(dst []T) int {
	return copy(dst, v.s)
}

// Clone returns a copy of the segment's elements.
func (v View[T]) Clone() []T {
	return slices.Clone(v.s)
}
