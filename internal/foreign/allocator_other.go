//go:build !linux && !darwin && !malloc_cgo

package foreign

func defaultAllocator() Allocator { return goheap{} }
