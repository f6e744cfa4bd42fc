package testdata

import "github.com/alexhholmes/segbuf"

// Quotes holds the two sides of an order book.
//
// @segments elem=float64
type Quotes struct {
	Bids segbuf.Tag
	Asks segbuf.Tag
}

type Vec3 struct {
	X, Y, Z float32
}

type Mass float32

// @segments elem=Vec3 align=64 name=ParticleArena
type Particles struct {
	Position, Velocity segbuf.Tag
	Scratch            segbuf.Tag `segment:"count=16"`
	cache              segbuf.Tag `segment:"-"`
}

// @segments
type Empty struct{}

// No annotation - should be skipped
type IgnoredType struct {
	Field segbuf.Tag
}
