package segbuf

import (
	"errors"
	"fmt"
	"iter"
)

var (
	ErrAllocation = errors.New("segbuf: allocation failed")
	ErrReleased   = errors.New("segbuf: buffer released")
)

// Allocator provides the single backing allocation of a Buffer.
//
// Allocate must return at least n elements or an error. Free receives the
// exact slice Allocate returned and is called at most once per allocation.
type Allocator[T any] interface {
	Allocate(n int) ([]T, error)
	Free(data []T) error
}

// Option configures Buffer construction.
type Option[T any] func(*options[T])

type options[T any] struct {
	allocator Allocator[T]
}

// WithAllocator makes the Buffer obtain its storage from a instead of the
// Go heap. A nil allocator is ignored.
func WithAllocator[T any](a Allocator[T]) Option[T] {
	return func(o *options[T]) {
		if a != nil {
			o.allocator = a
		}
	}
}

// heap is the default allocator. Go has no safe way to hand out
// uninitialized memory, so contents start zeroed; callers must not rely
// on that and should treat unwritten elements as unspecified.
type heap[T any] struct{}

func (heap[T]) Allocate(n int) ([]T, error) {
	return make([]T, n), nil
}

func (heap[T]) Free([]T) error {
	return nil
}

// Buffer owns one contiguous allocation of TotalSize() elements divided
// into segments by a boundary table fixed at construction.
//
// A Buffer must not be copied after construction; hand off the pointer
// instead.
type Buffer[T any] struct {
	_ noCopy

	data     []T // len == cap == ends.Total()
	backing  []T // exactly what the allocator returned
	ends     Boundaries
	alloc    Allocator[T]
	released bool
}

// New computes the layout for counts, allocates once and returns the
// Buffer. If the layout is invalid or the allocation fails, no Buffer is
// returned and nothing stays allocated.
func New[T any](counts []int, opts ...Option[T]) (*Buffer[T], error) {
	o := options[T]{allocator: heap[T]{}}
	for _, opt := range opts {
		opt(&o)
	}

	ends, err := Compute(counts...)
	if err != nil {
		return nil, err
	}

	return allocate(ends, o.allocator)
}

// MustNew is like New but panics if construction fails.
func MustNew[T any](counts []int, opts ...Option[T]) *Buffer[T] {
	b, err := New(counts, opts...)
	if err != nil {
		panic(err)
	}
	return b
}

func allocate[T any](ends Boundaries, a Allocator[T]) (*Buffer[T], error) {
	total := ends.Total()

	backing, err := a.Allocate(total)
	if err != nil {
		return nil, fmt.Errorf("%w: %d elements: %w", ErrAllocation, total, err)
	}
	if len(backing) < total {
		short := fmt.Errorf("%w: allocator returned %d elements, need %d",
			ErrAllocation, len(backing), total)
		return nil, errors.Join(short, a.Free(backing))
	}

	return &Buffer[T]{
		data:    backing[:total:total],
		backing: backing,
		ends:    ends,
		alloc:   a,
	}, nil
}

// Segment returns segment i as a slice aliasing the Buffer's storage. Its
// capacity ends at the segment boundary, so append never writes into the
// next segment.
func (b *Buffer[T]) Segment(i int) []T {
	if b.released {
		panic(ErrReleased)
	}
	start, end := b.ends.Range(i)
	return b.data[start:end:end]
}

// View returns a read-only view of segment i.
func (b *Buffer[T]) View(i int) View[T] {
	return View[T]{s: b.Segment(i)}
}

// Segments yields every segment in declaration order.
func (b *Buffer[T]) Segments() iter.Seq2[int, []T] {
	return func(yield func(int, []T) bool) {
		for i := range b.ends.Len() {
			if !yield(i, b.Segment(i)) {
				return
			}
		}
	}
}

// TotalSize returns the number of elements across all segments.
func (b *Buffer[T]) TotalSize() int {
	return b.ends.Total()
}

// NumSegments returns the number of declared segments.
func (b *Buffer[T]) NumSegments() int {
	return b.ends.Len()
}

// Bounds returns a copy of the boundary table.
func (b *Buffer[T]) Bounds() Boundaries {
	return b.ends.Clone()
}

// Clone allocates a new Buffer with the same layout and allocator and
// copies every element into it.
func (b *Buffer[T]) Clone() (*Buffer[T], error) {
	if b.released {
		return nil, ErrReleased
	}
	c, err := allocate(b.ends.Clone(), b.alloc)
	if err != nil {
		return nil, err
	}
	copy(c.data, b.data)
	return c, nil
}

// Release hands the allocation back to its allocator. Any view obtained
// earlier must no longer be used, and further access panics with
// ErrReleased. Releasing twice is a no-op.
func (b *Buffer[T]) Release() error {
	if b.released {
		return nil
	}
	b.released = true

	backing := b.backing
	b.data, b.backing = nil, nil
	return b.alloc.Free(backing)
}

// noCopy lets go vet's copylocks check flag copies of a Buffer.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
