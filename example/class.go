package example

import "github.com/alexhholmes/segbuf"

//go:generate go run github.com/alexhholmes/segbuf/cmd/segbufgen $GOFILE

// @segments elem=float64
type classSegments struct {
	one segbuf.Tag
	two segbuf.Tag
}

// Class owns a segmented buffer through a private field.
type Class struct {
	segments *classSegmentsBuffer
}

// NewClass builds a Class whose two series hold a and b samples.
func NewClass(a, b int) (*Class, error) {
	segments, err := newClassSegmentsBuffer(
		segbuf.Declare[classSegmentsOne](a),
		segbuf.Declare[classSegmentsTwo](b),
	)
	if err != nil {
		return nil, err
	}
	return &Class{segments: segments}, nil
}

// One returns the first series.
func (c *Class) One() []float64 {
	return c.segments.one()
}

// Two returns the second series.
func (c *Class) Two() []float64 {
	return c.segments.two()
}

// TotalSize returns the number of samples across both series.
func (c *Class) TotalSize() int {
	return c.segments.TotalSize()
}

// Close releases the backing allocation.
func (c *Class) Close() error {
	return c.segments.Release()
}
