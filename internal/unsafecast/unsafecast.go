// Package unsafecast exposes functions to reinterpret the memory of slices as
// slices of a different element type without copying.
//
// The functions perform no checks that the memory layouts of the types are
// compatible; programs using them must know that they are.
package unsafecast

import "unsafe"

// The slice type represents the memory layout of slices in Go. Unlike
// reflect.SliceHeader it holds an unsafe.Pointer so the garbage collector keeps
// tracking the backing array.
type slice struct {
	ptr unsafe.Pointer
	len int
	cap int
}

// Slice converts data to a slice of type []To sharing the same backing array.
// The length and capacity are scaled according to the size difference between
// the two element types, rounding down.
func Slice[To, From any](data []From) []To {
	var zf From
	var zt To
	s := slice{
		ptr: unsafe.Pointer(unsafe.SliceData(data)),
		len: int((uintptr(len(data)) * unsafe.Sizeof(zf)) / unsafe.Sizeof(zt)),
		cap: int((uintptr(cap(data)) * unsafe.Sizeof(zf)) / unsafe.Sizeof(zt)),
	}
	return *(*[]To)(unsafe.Pointer(&s))
}

// Bytes returns the memory of data as a byte slice.
func Bytes[T any](data []T) []byte { return Slice[byte](data) }

// Aligned reports whether the first element of data is suitably aligned to be
// read as a value of type T.
func Aligned[T any](data []byte) bool {
	var z T
	return uintptr(unsafe.Pointer(unsafe.SliceData(data)))%unsafe.Alignof(z) == 0
}
