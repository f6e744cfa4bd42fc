// Package example shows buffers produced by segbufgen.
package example

import (
	"github.com/alexhholmes/segbuf"
	"github.com/alexhholmes/segbuf/alloc"
)

//go:generate go run github.com/alexhholmes/segbuf/cmd/segbufgen $GOFILE

// @segments elem=float64
type Basic struct {
	Foo segbuf.Tag
	Bar segbuf.Tag
}

// @segments elem=float64
type Single struct {
	Only segbuf.Tag
}

// @segments elem=int32
type Empty struct{}

// Vec3 is a point or direction in space.
type Vec3 struct {
	X, Y, Z float32
}

// Particles keeps per-particle state plus a fixed scratch area in one
// allocation that starts on a cache line.
//
// @segments elem=Vec3 align=64 name=ParticleArena
type Particles struct {
	Position segbuf.Tag
	Velocity segbuf.Tag
	Scratch  segbuf.Tag `segment:"count=16"`
}

// Index stores sorted keys next to their values in mapped pages.
//
// @segments elem=uint64 allocator=pageAllocator
type Index struct {
	Keys   segbuf.Tag
	Values segbuf.Tag
}

// pageAllocator maps fresh pages where the platform allows it.
func pageAllocator() (segbuf.Allocator[uint64], error) {
	pages, err := alloc.NewMmap[uint64]()
	if err != nil {
		return alloc.Heap[uint64]{}, nil
	}
	return pages, nil
}
