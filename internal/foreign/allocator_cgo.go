//go:build malloc_cgo

package foreign

// #include <stdlib.h>
import "C"

import (
	"fmt"
	"unsafe"
)

func defaultAllocator() Allocator { return malloc{} }

// malloc allocates regions with the C allocator.
type malloc struct{}

func (malloc) Allocate(size int) ([]byte, error) {
	if size < 0 {
		panic("invalid negative memory allocation size")
	}
	if size == 0 {
		return nil, nil
	}
	p := C.malloc(C.size_t(size))
	if p == nil {
		return nil, fmt.Errorf("malloc %d bytes: %w", size, ErrOutOfMemory)
	}
	return unsafe.Slice((*byte)(p), size), nil
}

func (malloc) Free(b []byte) error {
	if len(b) != 0 {
		C.free(unsafe.Pointer(unsafe.SliceData(b)))
	}
	return nil
}
