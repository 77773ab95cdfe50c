package ownedview

import "unsafe"

// array is the pointer/length pair captured by a view at construction. Unlike
// a slice header it carries no capacity: the region is never grown through it.
type array struct {
	ptr unsafe.Pointer
	len int
}

func makeArray[T any](s []T) array {
	return array{
		ptr: unsafe.Pointer(unsafe.SliceData(s)),
		len: len(s),
	}
}

func makeSlice[T any](a array) []T {
	if a.len == 0 {
		return nil
	}
	return unsafe.Slice((*T)(a.ptr), a.len)
}

// mirrors reports whether the region starting at ptr and holding n elements
// is the one described by the array.
func (a array) mirrors(ptr unsafe.Pointer, n int) bool {
	if a.len != n {
		return false
	}
	return a.len == 0 || a.ptr == ptr
}
