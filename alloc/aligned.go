package alloc

import (
	"fmt"
	"math"
	"unsafe"
)

// Aligned allocates from the Go heap and places the first element on an
// align-byte boundary, e.g. a cache line or a direct I/O sector. The zero
// value aligns to T's natural alignment.
type Aligned[T any] struct {
	align int
}

// NewAligned returns an allocator aligning to align bytes. align must be a
// power of two no smaller than T's natural alignment.
func NewAligned[T any](align int) (*Aligned[T], error) {
	if err := CheckPlain[T](); err != nil {
		return nil, err
	}
	var zero T
	natural := int(unsafe.Alignof(zero))
	if align <= 0 || align&(align-1) != 0 {
		return nil, fmt.Errorf("%w: %d is not a power of 2", ErrAlign, align)
	}
	if align < natural {
		return nil, fmt.Errorf("%w: %d is below the %d-byte alignment of %T", ErrAlign, align, natural, zero)
	}
	return &Aligned[T]{align: align}, nil
}

// Align returns the alignment in bytes.
func (a *Aligned[T]) Align() int {
	if a.align == 0 {
		var zero T
		return int(unsafe.Alignof(zero))
	}
	return a.align
}

func (a *Aligned[T]) Allocate(n int) ([]T, error) {
	size, err := byteSize[T](n)
	if err != nil {
		return nil, err
	}
	if size == 0 {
		return make([]T, n), nil
	}
	if a.align == 0 {
		if err := CheckPlain[T](); err != nil {
			return nil, err
		}
	}
	align := a.Align()
	if size > math.MaxInt-align {
		return nil, fmt.Errorf("%w: %d bytes plus %d alignment", ErrTooLarge, size, align)
	}

	// Allocate size + align-1 to guarantee an aligned start
	backing := make([]byte, size+align-1)
	addr := uintptr(unsafe.Pointer(&backing[0]))
	offset := int(((addr + uintptr(align-1)) &^ uintptr(align-1)) - addr)

	return castSlice[T](backing[offset:offset+size], n), nil
}

// Free is a no-op; the garbage collector reclaims the backing bytes once
// no slice refers to them.
func (a *Aligned[T]) Free([]T) error {
	return nil
}
