package segbuf

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingAllocator[T any] struct {
	allocs int
	frees  int
}

func (a *countingAllocator[T]) Allocate(n int) ([]T, error) {
	a.allocs++
	return make([]T, n), nil
}

func (a *countingAllocator[T]) Free([]T) error {
	a.frees++
	return nil
}

type failingAllocator[T any] struct{ err error }

func (a failingAllocator[T]) Allocate(int) ([]T, error) { return nil, a.err }
func (a failingAllocator[T]) Free([]T) error            { return nil }

type shortAllocator[T any] struct {
	frees   int
	freeErr error
}

func (a *shortAllocator[T]) Allocate(n int) ([]T, error) { return make([]T, n/2), nil }
func (a *shortAllocator[T]) Free([]T) error              { a.frees++; return a.freeErr }

type longAllocator[T any] struct{}

func (longAllocator[T]) Allocate(n int) ([]T, error) { return make([]T, n+8), nil }
func (longAllocator[T]) Free([]T) error              { return nil }

func TestBufferBasicSizesAndAccess(t *testing.T) {
	b, err := New[float64]([]int{10, 20})
	require.NoError(t, err)

	levels := b.Segment(0)
	results := b.Segment(1)

	assert.Len(t, levels, 10)
	assert.Len(t, results, 20)
	assert.Equal(t, 30, b.TotalSize())
	assert.Equal(t, 2, b.NumSegments())

	levels[0] = 1.0
	levels[9] = 1.9
	results[0] = 2.0
	results[19] = 2.95

	assert.Equal(t, 1.0, b.Segment(0)[0])
	assert.Equal(t, 1.9, b.Segment(0)[9])
	assert.Equal(t, 2.0, b.Segment(1)[0])
	assert.Equal(t, 2.95, b.Segment(1)[19])
}

func TestBufferZeroSegments(t *testing.T) {
	b, err := New[float64](nil)
	require.NoError(t, err)

	assert.Equal(t, 0, b.TotalSize())
	assert.Equal(t, 0, b.NumSegments())
	for range b.Segments() {
		t.Fatal("no segment expected")
	}
}

func TestBufferSingleSegment(t *testing.T) {
	b, err := New[int32]([]int{5})
	require.NoError(t, err)

	start, end := b.Bounds().Range(0)
	assert.Equal(t, 0, start)
	assert.Equal(t, 5, end)
	assert.Equal(t, end, b.TotalSize())
}

func TestBufferZeroSizeSegment(t *testing.T) {
	b, err := New[uint8]([]int{2, 0, 3})
	require.NoError(t, err)

	assert.Empty(t, b.Segment(1))
	assert.Equal(t, 0, b.View(1).Len())
	assert.Equal(t, 5, b.TotalSize())
}

func TestBufferSegmentsPartitionAllocation(t *testing.T) {
	counts := []int{4, 1, 0, 6, 2}
	b, err := New[int64](counts)
	require.NoError(t, err)

	// Stamp each element with its flat position, then read back via segments.
	next := int64(0)
	for i, seg := range b.Segments() {
		assert.Len(t, seg, counts[i])
		for k := range seg {
			seg[k] = next
			next++
		}
	}
	assert.Equal(t, int64(b.TotalSize()), next)

	flat := int64(0)
	for i := range b.NumSegments() {
		for k := range b.View(i).Len() {
			assert.Equal(t, flat, b.View(i).At(k))
			flat++
		}
	}
}

func TestBufferReadAfterWrite(t *testing.T) {
	b, err := New[uint16]([]int{3, 9})
	require.NoError(t, err)

	for i := range b.NumSegments() {
		seg := b.Segment(i)
		for k := range seg {
			seg[k] = uint16(i*100 + k)
		}
	}
	for i := range b.NumSegments() {
		seg := b.Segment(i)
		for k := range seg {
			assert.Equal(t, uint16(i*100+k), seg[k])
		}
	}
}

func TestBufferAppendDoesNotSpill(t *testing.T) {
	b, err := New[int]([]int{2, 2})
	require.NoError(t, err)

	b.Segment(1)[0] = 42
	first := b.Segment(0)
	assert.Equal(t, 2, cap(first))

	grown := append(first, 7)
	grown[0] = 1

	assert.Equal(t, 42, b.Segment(1)[0], "append must reallocate, not overwrite segment 1")
	assert.Equal(t, 0, b.Segment(0)[0])
}

func TestBufferSingleAllocation(t *testing.T) {
	a := &countingAllocator[float32]{}
	b, err := New([]int{3, 4, 5}, WithAllocator[float32](a))
	require.NoError(t, err)

	assert.Equal(t, 1, a.allocs)
	_ = b.Segment(0)
	_ = b.Segment(2)
	assert.Equal(t, 1, a.allocs, "access must not allocate")

	require.NoError(t, b.Release())
	require.NoError(t, b.Release())
	assert.Equal(t, 1, a.frees)
}

func TestBufferAllocationFailure(t *testing.T) {
	cause := errors.New("out of pages")
	b, err := New([]int{1, 2}, WithAllocator[int](failingAllocator[int]{err: cause}))

	assert.Nil(t, b)
	assert.ErrorIs(t, err, ErrAllocation)
	assert.ErrorIs(t, err, cause)
}

func TestBufferShortAllocation(t *testing.T) {
	a := &shortAllocator[int]{}
	b, err := New([]int{4, 4}, WithAllocator[int](a))

	assert.Nil(t, b)
	assert.ErrorIs(t, err, ErrAllocation)
	assert.Equal(t, 1, a.frees, "partial allocation must be returned")
}

func TestBufferShortAllocationFreeError(t *testing.T) {
	errUnmap := errors.New("unmap failed")
	a := &shortAllocator[int]{freeErr: errUnmap}
	_, err := New([]int{4, 4}, WithAllocator[int](a))

	assert.ErrorIs(t, err, ErrAllocation)
	assert.ErrorIs(t, err, errUnmap)
}

func TestBufferLongAllocationIsClipped(t *testing.T) {
	b, err := New([]int{1, 2}, WithAllocator[int](longAllocator[int]{}))
	require.NoError(t, err)

	last := b.Segment(1)
	assert.Equal(t, 2, cap(last))
	assert.Equal(t, 3, b.TotalSize())
}

func TestBufferNegativeCount(t *testing.T) {
	a := &countingAllocator[int]{}
	_, err := New([]int{1, -2}, WithAllocator[int](a))

	assert.ErrorIs(t, err, ErrNegativeCount)
	assert.Equal(t, 0, a.allocs)
}

func TestMustNewPanics(t *testing.T) {
	assert.Panics(t, func() {
		MustNew([]int{1}, WithAllocator[int](failingAllocator[int]{err: errors.New("boom")}))
	})
	assert.NotPanics(t, func() {
		MustNew[int]([]int{1})
	})
}

func TestBufferReleasedAccessPanics(t *testing.T) {
	b, err := New[int]([]int{1})
	require.NoError(t, err)
	require.NoError(t, b.Release())

	assert.PanicsWithValue(t, ErrReleased, func() { b.Segment(0) })
	_, err = b.Clone()
	assert.ErrorIs(t, err, ErrReleased)
}

func TestBufferClone(t *testing.T) {
	a := &countingAllocator[int]{}
	b, err := New([]int{2, 3}, WithAllocator[int](a))
	require.NoError(t, err)
	copy(b.Segment(1), []int{7, 8, 9})

	c, err := b.Clone()
	require.NoError(t, err)
	assert.Equal(t, 2, a.allocs)
	assert.Equal(t, []int{7, 8, 9}, c.Segment(1))

	c.Segment(1)[0] = 0
	assert.Equal(t, 7, b.Segment(1)[0], "clone must not alias the original")
}

func TestBufferBoundsIsACopy(t *testing.T) {
	b, err := New[int]([]int{2, 3})
	require.NoError(t, err)

	bounds := b.Bounds()
	bounds[0] = 100
	assert.Len(t, b.Segment(0), 2)
}

func TestBuffersDoNotAlias(t *testing.T) {
	x := MustNew[int]([]int{3, 3})
	y := MustNew[int]([]int{3, 3})

	x.Segment(0)[0] = 1
	y.Segment(0)[0] = 2
	assert.Equal(t, 1, x.Segment(0)[0])
	assert.Equal(t, 2, y.Segment(0)[0])
}

func TestDescriptor(t *testing.T) {
	type foo struct{}
	d := Declare[foo](12)
	assert.Equal(t, 12, d.Count())
}
