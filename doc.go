// Package segbuf packs several fixed-length segments of one element type
// into a single contiguous allocation.
//
// A Buffer owns the allocation and a boundary table of cumulative end
// offsets. Segments are addressed by position; typed, tag-named access is
// produced by the segbufgen command from an annotated struct:
//
//	//go:generate go run github.com/alexhholmes/segbuf/cmd/segbufgen $GOFILE
//
//	// @segments elem=float64
//	type Levels struct {
//		Bids segbuf.Tag
//		Asks segbuf.Tag
//	}
//
// generates a LevelsBuffer with a constructor that takes exactly one
// Descriptor per tag, in declaration order, and accessor methods Bids()
// and Asks(). Using a tag that was never declared is a missing method, and
// passing descriptors in the wrong order or for the wrong tags is a type
// error, so structural misuse never reaches run time.
//
// Element types must be plain data: no pointers, strings, slices, maps,
// channels, functions or interfaces. The generator enforces this for
// generated buffers.
//
// Buffers are not safe for concurrent use. Distinct segments never overlap,
// so goroutines may write different segments of one Buffer at the same time.
package segbuf
