//go:build linux

package alloc

import (
	"fmt"
	"sync"
	"unsafe"

	"golang.org/x/sys/unix"
)

const hugePageSize = 2 << 20

// MmapOption configures an Mmap allocator.
type MmapOption func(*mmapConfig)

type mmapConfig struct {
	huge     bool
	populate bool
}

// WithHugePages requests 2 MiB pages. If the kernel cannot supply them the
// allocator falls back to regular pages.
func WithHugePages() MmapOption {
	return func(c *mmapConfig) { c.huge = true }
}

// WithPopulate prefaults the mapping at allocation time.
func WithPopulate() MmapOption {
	return func(c *mmapConfig) { c.populate = true }
}

// Mmap allocates anonymous private mappings outside the Go heap. The kernel
// hands out demand-zero pages, so no initialization pass runs at
// allocation time.
//
// Memory must be returned with Free; the garbage collector does not know
// about it. The zero value maps regular pages and is ready to use.
type Mmap[T any] struct {
	cfg mmapConfig

	mu       sync.Mutex
	mappings map[uintptr][]byte // first byte -> slice returned by unix.Mmap
}

// NewMmap returns an mmap-backed allocator for T.
func NewMmap[T any](opts ...MmapOption) (*Mmap[T], error) {
	if err := CheckPlain[T](); err != nil {
		return nil, err
	}
	m := &Mmap[T]{mappings: make(map[uintptr][]byte)}
	for _, opt := range opts {
		opt(&m.cfg)
	}
	return m, nil
}

func (m *Mmap[T]) Allocate(n int) ([]T, error) {
	size, err := byteSize[T](n)
	if err != nil {
		return nil, err
	}
	if size == 0 {
		return make([]T, n), nil
	}
	if err := m.init(); err != nil {
		return nil, err
	}

	mem, err := m.mmap(size)
	if err != nil {
		return nil, fmt.Errorf("mmap %d bytes: %w", size, err)
	}

	m.mu.Lock()
	m.mappings[uintptr(unsafe.Pointer(&mem[0]))] = mem
	m.mu.Unlock()

	return castSlice[T](mem, n), nil
}

// init prepares a zero-value Mmap on first use.
func (m *Mmap[T]) init() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.mappings != nil {
		return nil
	}
	if err := CheckPlain[T](); err != nil {
		return err
	}
	m.mappings = make(map[uintptr][]byte)
	return nil
}

func (m *Mmap[T]) mmap(size int) ([]byte, error) {
	flags := unix.MAP_ANONYMOUS | unix.MAP_PRIVATE
	if m.cfg.populate {
		flags |= unix.MAP_POPULATE
	}
	prot := unix.PROT_READ | unix.PROT_WRITE

	if m.cfg.huge {
		// Round to hugepage boundary
		length := ((size + hugePageSize - 1) / hugePageSize) * hugePageSize
		mem, err := unix.Mmap(-1, 0, length, prot, flags|unix.MAP_HUGETLB)
		if err == nil {
			return mem, nil
		}
	}

	return unix.Mmap(-1, 0, size, prot, flags)
}

// Free unmaps memory returned by Allocate. Slices this allocator did not
// map (including empty allocations) are ignored.
func (m *Mmap[T]) Free(data []T) error {
	if cap(data) == 0 {
		return nil
	}
	key := uintptr(unsafe.Pointer(unsafe.SliceData(data)))

	m.mu.Lock()
	mem, ok := m.mappings[key]
	delete(m.mappings, key)
	m.mu.Unlock()

	if !ok {
		return nil
	}
	if err := unix.Munmap(mem); err != nil {
		return fmt.Errorf("munmap %d bytes: %w", len(mem), err)
	}
	return nil
}

// Mapped returns the number of live mappings.
func (m *Mmap[T]) Mapped() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.mappings)
}
