package ownedview

// Owner is the interface implemented by values that own the memory region
// described by a View.
//
// Release is called exactly once, when the view holding the owner is
// released. It must free the region (or hand the responsibility to whichever
// allocator actually owns it) and must not be called again by anyone else.
type Owner interface {
	Release()
}

// SliceOwner is an optional capability of owners whose region is the backing
// array of a Go slice. Views holding a SliceOwner grant mutable access to the
// slice through Local and Take; views holding any other owner never do.
//
// The slice returned by OwnedSlice must start at the pointer and hold the
// number of elements that the view was constructed with.
type SliceOwner[T any] interface {
	Owner
	OwnedSlice() *[]T
}

// ReleaseFunc is an adapter to allow the use of ordinary functions as view
// owners, for example a closure calling into a foreign deallocator.
type ReleaseFunc func()

// Release calls f.
func (f ReleaseFunc) Release() { f() }

// heapSlice is the owner of views constructed from Go slices. Releasing it
// drops the reference to the backing array, which the garbage collector then
// reclaims once no other slice refers to it.
type heapSlice[T any] []T

func (s *heapSlice[T]) Release() { *s = nil }

func (s *heapSlice[T]) OwnedSlice() *[]T { return (*[]T)(s) }

var (
	_ Owner            = ReleaseFunc(nil)
	_ SliceOwner[byte] = (*heapSlice[byte])(nil)
)
