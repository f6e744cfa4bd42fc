package segbuf

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrNegativeCount = errors.New("segbuf: negative segment count")
	ErrSizeOverflow  = errors.New("segbuf: total size overflows int")
)

// Boundaries is the boundary table of a layout: entry i is the cumulative
// end offset of segment i, so segment i occupies [Start(i), End(i)).
type Boundaries []int

// Compute runs the layout calculation over counts in declaration order.
//
// The result has one entry per count. An empty input yields an empty table
// with a total of zero.
func Compute(counts ...int) (Boundaries, error) {
	ends := make(Boundaries, len(counts))

	cur := 0
	for i, n := range counts {
		if n < 0 {
			return nil, fmt.Errorf("segment %d: %w (%d)", i, ErrNegativeCount, n)
		}
		if n > math.MaxInt-cur {
			return nil, fmt.Errorf("segment %d: %w", i, ErrSizeOverflow)
		}
		cur += n
		ends[i] = cur
	}

	return ends, nil
}

// Len returns the number of segments.
func (b Boundaries) Len() int {
	return len(b)
}

// Total returns the element count of the whole layout.
func (b Boundaries) Total() int {
	if len(b) == 0 {
		return 0
	}
	return b[len(b)-1]
}

// Start returns the first element offset of segment i.
func (b Boundaries) Start(i int) int {
	if i == 0 {
		return 0
	}
	return b[i-1]
}

// End returns the offset one past the last element of segment i.
func (b Boundaries) End(i int) int {
	return b[i]
}

// Range returns [start, end) of segment i.
func (b Boundaries) Range(i int) (start, end int) {
	return b.Start(i), b[i]
}

// Count returns the element count of segment i.
func (b Boundaries) Count(i int) int {
	start, end := b.Range(i)
	return end - start
}

// Clone returns a copy that does not share storage with b.
func (b Boundaries) Clone() Boundaries {
	out := make(Boundaries, len(b))
	copy(out, b)
	return out
}
