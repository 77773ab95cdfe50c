// Package foreign provides memory that the Go garbage collector does not
// manage, for use as the backing store of views owned by a foreign allocator.
//
// The allocator depends on the build: anonymous mmap on linux and darwin,
// the C allocator when building with the malloc_cgo tag, and the Go heap as a
// stand-in elsewhere.
package foreign

import "errors"

var (
	// ErrPointers is returned when allocating foreign memory for values of a
	// type containing Go pointers, which the garbage collector would not see.
	ErrPointers = errors.New("element type contains Go pointers")

	// ErrMisaligned is returned when an allocator hands out memory that is not
	// aligned for the element type.
	ErrMisaligned = errors.New("misaligned memory allocation")

	// ErrOutOfMemory is returned when the underlying allocator fails without
	// reporting a more specific error.
	ErrOutOfMemory = errors.New("out of memory")
)

// Allocator is the interface implemented by allocators of foreign memory.
type Allocator interface {
	// Allocate returns a region of size bytes. A zero size yields a nil slice.
	Allocate(size int) ([]byte, error)

	// Free releases a region returned by Allocate. The region must not be
	// used afterwards, and must not be freed twice.
	Free(b []byte) error
}

// DefaultAllocator is the allocator used by Alloc.
var DefaultAllocator Allocator = defaultAllocator()

// goheap satisfies Allocator with Go memory. Free is a no-op, the garbage
// collector reclaims the regions.
type goheap struct{}

func (goheap) Allocate(size int) ([]byte, error) {
	if size < 0 {
		panic("invalid negative memory allocation size")
	}
	if size == 0 {
		return nil, nil
	}
	return make([]byte, size), nil
}

func (goheap) Free([]byte) error { return nil }
