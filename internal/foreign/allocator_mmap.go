//go:build (linux || darwin) && !malloc_cgo

package foreign

import (
	"fmt"

	"golang.org/x/sys/unix"
)

func defaultAllocator() Allocator { return mmap{} }

// mmap allocates each region as a private anonymous mapping. Regions are page
// aligned, which satisfies the alignment of every element type.
type mmap struct{}

func (mmap) Allocate(size int) ([]byte, error) {
	if size < 0 {
		panic("invalid negative memory allocation size")
	}
	if size == 0 {
		return nil, nil
	}
	b, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("mmap %d bytes: %w", size, err)
	}
	return b, nil
}

func (mmap) Free(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	if err := unix.Munmap(b); err != nil {
		return fmt.Errorf("munmap %d bytes: %w", len(b), err)
	}
	return nil
}
