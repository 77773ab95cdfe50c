package foreign

import (
	"errors"
	"fmt"
	"reflect"
	"unsafe"

	"github.com/segmentio/ownedview-go/internal/unsafecast"
)

// Region describes the memory a Buffer was released with. The address is kept
// as an integer since the memory is gone by the time anyone looks at it.
type Region struct {
	Addr uintptr
	Len  int
}

// Buffer is a release handle for values of type T stored in foreign memory.
//
// Releasing the buffer frees its memory through the allocator it came from.
// The buffer remembers every call to Release so programs can verify that it was
// released exactly once, and with which region; calls after the first one are
// recorded but never free the memory again.
type Buffer[T any] struct {
	alloc    Allocator
	mem      []byte
	data     []T
	region   Region
	releases []Region
	err      error
}

// Alloc copies values to foreign memory obtained from DefaultAllocator.
func Alloc[T any](values []T) (*Buffer[T], error) {
	return AllocFrom(DefaultAllocator, values)
}

// AllocFrom copies values to foreign memory obtained from a.
func AllocFrom[T any](a Allocator, values []T) (*Buffer[T], error) {
	typ := reflect.TypeOf((*T)(nil)).Elem()
	if hasPointers(typ) {
		return nil, fmt.Errorf("allocating foreign memory for %s: %w", typ, ErrPointers)
	}

	size := int(typ.Size()) * len(values)
	mem, err := a.Allocate(size)
	if err != nil {
		return nil, fmt.Errorf("allocating foreign memory for %d values of type %s: %w", len(values), typ, err)
	}

	var data []T
	switch {
	case len(values) == 0:
	case size == 0:
		data = make([]T, len(values))
	default:
		if !unsafecast.Aligned[T](mem) {
			err := fmt.Errorf("allocating foreign memory for %s: %w", typ, ErrMisaligned)
			return nil, errors.Join(err, a.Free(mem))
		}
		copy(mem, unsafecast.Bytes(values))
		data = unsafecast.Slice[T](mem)[:len(values):len(values)]
	}

	return &Buffer[T]{
		alloc: a,
		mem:   mem,
		data:  data,
		region: Region{
			Addr: uintptr(unsafe.Pointer(unsafe.SliceData(data))),
			Len:  len(data),
		},
	}, nil
}

// Data returns the pointer to the first value and the number of values held
// by the buffer, the way a foreign allocator would hand them over.
func (b *Buffer[T]) Data() (*T, int) { return unsafe.SliceData(b.data), len(b.data) }

// Slice returns the values held by the buffer, or nil once it was released.
func (b *Buffer[T]) Slice() []T { return b.data }

// Region returns the region that the buffer was allocated with.
func (b *Buffer[T]) Region() Region { return b.region }

// Release frees the memory of the buffer the first time it is called.
func (b *Buffer[T]) Release() {
	b.releases = append(b.releases, b.region)
	if len(b.releases) > 1 {
		return
	}
	b.err = b.alloc.Free(b.mem)
	b.mem, b.data = nil, nil
}

// Releases returns the regions passed to each call to Release, in order.
func (b *Buffer[T]) Releases() []Region { return b.releases }

// Err returns the error reported by the allocator when freeing the memory.
func (b *Buffer[T]) Err() error { return b.err }

func hasPointers(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return false
	case reflect.Array:
		return t.Len() > 0 && hasPointers(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if hasPointers(t.Field(i).Type) {
				return true
			}
		}
		return false
	default:
		return true
	}
}
