//go:build !linux

package alloc

import (
	"errors"
	"fmt"
)

// MmapOption configures an Mmap allocator.
type MmapOption func(*mmapConfig)

type mmapConfig struct{}

// WithHugePages is accepted for portability and has no effect.
func WithHugePages() MmapOption { return func(*mmapConfig) {} }

// WithPopulate is accepted for portability and has no effect.
func WithPopulate() MmapOption { return func(*mmapConfig) {} }

// Mmap is only implemented on Linux.
type Mmap[T any] struct{}

// NewMmap always fails outside Linux.
func NewMmap[T any](...MmapOption) (*Mmap[T], error) {
	return nil, fmt.Errorf("alloc: mmap allocator: %w", errors.ErrUnsupported)
}

func (m *Mmap[T]) Allocate(int) ([]T, error) {
	return nil, errors.ErrUnsupported
}

func (m *Mmap[T]) Free([]T) error {
	return nil
}

// Mapped always returns 0.
func (m *Mmap[T]) Mapped() int {
	return 0
}
