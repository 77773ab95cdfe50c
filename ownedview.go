// Package ownedview implements View, a read-only window over a contiguous
// sequence of fixed-size elements paired with the value that owns the memory.
//
// The memory may come from the Go allocator, in which case the view is
// constructed from a slice with FromSlice, or from an external allocator
// reached through cgo, mmap or another runtime, in which case the view is
// constructed with UnsafeFromParts and an Owner that knows how to release it.
// Either way, programs read the elements through the same Slice method and
// release the memory by calling Release once they are done with the view.
//
// Neither construction path copies nor reallocates the elements.
//
// Views are not safe for concurrent use. A view exclusively owns its owner:
// programs hand off ownership by passing the *View, never by copying the
// View value.
package ownedview

import (
	"fmt"
	"io"
	"runtime"
	"slices"
	"unsafe"

	"github.com/segmentio/ownedview-go/internal/debug"
)

// View is a sequence of elements of type T owned by an Owner.
//
// The zero value is an empty view with no owner. Views returned by the
// constructors of this package must be released by calling Release.
type View[T any] struct {
	noCopy  noCopy
	data    array
	owner   Owner
	tracked bool
}

// FromSlice constructs a view of the elements of s, transferring ownership of
// the slice to the view. The slice's backing array is neither copied nor
// reallocated; the view's elements are the elements of s at the time of the
// call.
//
// The returned view grants mutable access to the slice through Local, and can
// be turned back into a slice with Take.
func FromSlice[T any](s []T) *View[T] {
	owner := heapSlice[T](s)
	return track(&View[T]{
		data:  makeArray(s),
		owner: &owner,
	})
}

// UnsafeFromParts constructs a view of the length elements starting at ptr,
// owned by owner.
//
// This is the only unchecked entry point of the package. The program must
// guarantee that:
//
//   - ptr is aligned for T and valid for length contiguous reads of T,
//   - the memory remains valid and unmodified until owner is released,
//   - calling owner.Release once releases exactly that memory, and nothing
//     else releases it,
//   - if the memory was not allocated by Go, T contains no Go pointers.
//
// Violating these conditions results in undefined behavior; the function only
// performs cheap sanity checks and panics if length is negative, if ptr is nil
// while length is positive, if owner is nil, or if owner is a SliceOwner[T]
// whose slice does not start at ptr with length elements.
//
// ptr is never dereferenced when length is zero.
func UnsafeFromParts[T any](ptr *T, length int, owner Owner) *View[T] {
	switch {
	case length < 0:
		panic("ownedview: negative view length")
	case length > 0 && ptr == nil:
		panic("ownedview: nil pointer to a non-empty view")
	case owner == nil:
		panic("ownedview: nil view owner")
	}

	data := array{ptr: unsafe.Pointer(ptr), len: length}

	if s, ok := owner.(SliceOwner[T]); ok {
		p := s.OwnedSlice()
		if !data.mirrors(unsafe.Pointer(unsafe.SliceData(*p)), len(*p)) {
			panic("ownedview: slice owner does not match the view pointer and length")
		}
	}

	return track(&View[T]{
		data:  data,
		owner: owner,
	})
}

// Len returns the number of elements in the view.
func (v *View[T]) Len() int { return len(v.Slice()) }

// Slice returns the elements of the view. The slice has equal length and
// capacity, so appending to it always reallocates.
//
// When the view is backed by a Go slice, the elements are those of the slice
// currently held by the owner, including changes made through Local.
//
// The returned slice aliases the owner's memory and must not be retained past
// the call to Release. Programs must not modify its elements unless Local
// reports that the view is backed by a Go slice.
func (v *View[T]) Slice() []T {
	if p, ok := v.Local(); ok {
		if n := len(*p); n != 0 {
			return (*p)[:n:n]
		}
		return nil
	}
	if v == nil {
		return nil
	}
	return makeSlice[T](v.data)
}

// At returns the element at index i, panicking if i is out of range.
func (v *View[T]) At(i int) T { return v.Slice()[i] }

// Local returns a pointer to the Go slice owning the elements of the view,
// and true, if the view was constructed from a slice. Otherwise, including
// after the view was released, it returns nil and false.
//
// The pointer gives exclusive mutable access to the slice. Every change made
// through it, including growing, shrinking or replacing the slice, is visible
// through the view since its methods read the elements from the owner's slice.
// Slices previously returned by Slice are not updated and must be obtained
// again after the slice was reallocated.
func (v *View[T]) Local() (*[]T, bool) {
	if v == nil {
		return nil, false
	}
	if s, ok := v.owner.(SliceOwner[T]); ok {
		return s.OwnedSlice(), true
	}
	return nil, false
}

// Take converts the view back to the Go slice owning its elements. On success
// the view becomes empty and the caller takes over ownership of the slice; the
// owner is not released.
//
// If the view was not constructed from a slice the method returns nil and
// false and the view is left unchanged.
func (v *View[T]) Take() ([]T, bool) {
	p, ok := v.Local()
	if !ok {
		return nil, false
	}
	s := *p
	v.reset()
	return s, true
}

// Release releases the owner of the view, which frees the memory of its
// elements. After Release returns the view is empty and slices previously
// returned by Slice must not be used anymore.
//
// Calling Release more than once, or on a nil or zero view, has no effect.
func (v *View[T]) Release() {
	if v == nil || v.owner == nil {
		return
	}
	owner, elems := v.owner, v.Slice()
	v.reset()
	debug.Format("ownedview: releasing %d elements at %p owned by %T", len(elems), unsafe.SliceData(elems), owner)
	owner.Release()
}

func (v *View[T]) reset() {
	if v.tracked {
		v.tracked = false
		runtime.SetFinalizer(v, nil)
	}
	v.data, v.owner = array{}, nil
}

// Format satisfies fmt.Formatter. The elements are written between brackets
// and separated by commas, each of them formatted with the verb and flags that
// the view was formatted with:
//
//	fmt.Sprintf("%v", ownedview.FromSlice([]int{1, 2})) // "[1, 2]"
//	fmt.Sprintf("%02x", ownedview.FromSlice([]int{1, 2})) // "[01, 02]"
//
// The output does not depend on which kind of owner holds the elements. The
// method is defined on *View[T], so views must be formatted by pointer.
func (v *View[T]) Format(w fmt.State, verb rune) {
	format := fmt.FormatString(w, verb)
	io.WriteString(w, "[")
	for i, elem := range v.Slice() {
		if i != 0 {
			io.WriteString(w, ", ")
		}
		fmt.Fprintf(w, format, elem)
	}
	io.WriteString(w, "]")
}

// String returns the view formatted with the %v verb.
func (v *View[T]) String() string { return fmt.Sprint(v) }

// Equal returns true if a and b hold equal elements in the same order,
// regardless of the kind of owners of the two views.
func Equal[T comparable](a, b *View[T]) bool {
	return slices.Equal(a.Slice(), b.Slice())
}

// EqualFunc is like Equal but compares elements with eq.
func EqualFunc[T any](a, b *View[T], eq func(T, T) bool) bool {
	return slices.EqualFunc(a.Slice(), b.Slice(), eq)
}

// In debug mode, views that are garbage collected before being released are
// reported since their owner never got a chance to free the memory.
func track[T any](v *View[T]) *View[T] {
	debug.Do(func() {
		v.tracked = true
		runtime.SetFinalizer(v, func(v *View[T]) {
			debug.Format("ownedview: view of %d elements owned by %T was garbage collected without being released", v.data.len, v.owner)
		})
	})
	return v
}

// noCopy may be embedded into structs which must not be copied after the
// first use; go vet's copylocks check reports copies.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
