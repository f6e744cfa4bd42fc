// Package alloc provides segbuf allocators beyond the default Go heap.
//
// Aligned and Mmap reinterpret raw bytes as []T, so they only accept
// plain-data element types (see CheckPlain).
package alloc

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"unsafe"
)

var (
	ErrNotPlain = errors.New("alloc: element type is not plain data")
	ErrAlign    = errors.New("alloc: invalid alignment")
	ErrTooLarge = errors.New("alloc: allocation size overflows")
)

// CheckPlain reports whether T can live in raw memory: it must contain no
// pointers, so the garbage collector never needs to scan it and copying
// its bytes copies its value.
func CheckPlain[T any]() error {
	return checkPlain(reflect.TypeFor[T]())
}

func checkPlain(t reflect.Type) error {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128:
		return nil
	case reflect.Array:
		if err := checkPlain(t.Elem()); err != nil {
			return fmt.Errorf("%s: %w", t, err)
		}
		return nil
	case reflect.Struct:
		for i := range t.NumField() {
			f := t.Field(i)
			if err := checkPlain(f.Type); err != nil {
				return fmt.Errorf("%s.%s: %w", t, f.Name, err)
			}
		}
		return nil
	default:
		return fmt.Errorf("%w: %s has kind %s", ErrNotPlain, t, t.Kind())
	}
}

// byteSize returns the size in bytes of n elements of T.
func byteSize[T any](n int) (int, error) {
	var zero T
	size := int(unsafe.Sizeof(zero))
	if size != 0 && n > math.MaxInt/size {
		return 0, fmt.Errorf("%w: %d elements of %d bytes", ErrTooLarge, n, size)
	}
	return n * size, nil
}

// castSlice reinterprets mem as n elements of T. mem must hold at least
// n*sizeof(T) bytes, suitably aligned for T.
func castSlice[T any](mem []byte, n int) []T {
	if n == 0 {
		return []T{}
	}
	return unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(mem))), n)
}

// Heap allocates from the Go heap with make. Its zero value is ready to use.
type Heap[T any] struct{}

func (Heap[T]) Allocate(n int) ([]T, error) {
	if _, err := byteSize[T](n); err != nil {
		return nil, err
	}
	return make([]T, n), nil
}

func (Heap[T]) Free([]T) error {
	return nil
}
