package foreign

import (
	"errors"
	"reflect"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type point struct {
	X, Y int32
}

func TestAllocCopiesValues(t *testing.T) {
	for _, a := range []struct {
		scenario string
		alloc    Allocator
	}{
		{scenario: "default", alloc: DefaultAllocator},
		{scenario: "goheap", alloc: goheap{}},
	} {
		t.Run(a.scenario, func(t *testing.T) {
			values := []int64{1, -2, 3, 1 << 40}

			b, err := AllocFrom(a.alloc, values)
			require.NoError(t, err)
			defer b.Release()

			assert.Equal(t, values, b.Slice())

			ptr, n := b.Data()
			assert.Equal(t, len(values), n)
			assert.NotEqual(t, uintptr(unsafe.Pointer(unsafe.SliceData(values))), uintptr(unsafe.Pointer(ptr)), "values were not copied")
			assert.Equal(t, Region{Addr: uintptr(unsafe.Pointer(ptr)), Len: n}, b.Region())
			assert.Zero(t, uintptr(unsafe.Pointer(ptr))%unsafe.Alignof(values[0]))

			values[0] = 42
			assert.Equal(t, int64(1), b.Slice()[0])
		})
	}
}

func TestAllocStructValues(t *testing.T) {
	values := []point{{1, 2}, {3, 4}}

	b, err := Alloc(values)
	require.NoError(t, err)
	defer b.Release()

	assert.Equal(t, values, b.Slice())
}

func TestAllocEmpty(t *testing.T) {
	b, err := Alloc([]float64{})
	require.NoError(t, err)

	ptr, n := b.Data()
	assert.Nil(t, ptr)
	assert.Zero(t, n)

	b.Release()
	assert.NoError(t, b.Err())
	assert.Equal(t, []Region{{}}, b.Releases())
}

func TestAllocZeroSizedValues(t *testing.T) {
	b, err := Alloc(make([]struct{}, 3))
	require.NoError(t, err)

	_, n := b.Data()
	assert.Equal(t, 3, n)

	b.Release()
	assert.NoError(t, b.Err())
}

func TestAllocRejectsPointers(t *testing.T) {
	_, err := Alloc([]*int{new(int)})
	assert.True(t, errors.Is(err, ErrPointers), "%v", err)

	_, err = Alloc([]string{"hello"})
	assert.True(t, errors.Is(err, ErrPointers), "%v", err)

	_, err = Alloc([]struct {
		N int
		B []byte
	}{})
	assert.True(t, errors.Is(err, ErrPointers), "%v", err)
}

func TestReleaseFreesOnce(t *testing.T) {
	b, err := Alloc([]int32{1, 2})
	require.NoError(t, err)
	region := b.Region()

	b.Release()
	require.NoError(t, b.Err())
	assert.Nil(t, b.Slice())

	b.Release()
	require.NoError(t, b.Err())

	assert.Equal(t, []Region{region, region}, b.Releases())
}

type failingAllocator struct{ goheap }

func (failingAllocator) Allocate(int) ([]byte, error) { return nil, ErrOutOfMemory }

type misalignedAllocator struct {
	goheap
	freed int
	err   error
}

func (a *misalignedAllocator) Allocate(size int) ([]byte, error) {
	b := make([]byte, size+1)
	return b[1:], nil
}

func (a *misalignedAllocator) Free([]byte) error { a.freed++; return a.err }

func TestAllocErrors(t *testing.T) {
	_, err := AllocFrom(failingAllocator{}, []int32{1})
	assert.True(t, errors.Is(err, ErrOutOfMemory), "%v", err)

	a := &misalignedAllocator{}
	_, err = AllocFrom(a, []uint64{1})
	assert.True(t, errors.Is(err, ErrMisaligned), "%v", err)
	assert.Equal(t, 1, a.freed)

	errFree := errors.New("free failed")
	a = &misalignedAllocator{err: errFree}
	_, err = AllocFrom(a, []uint64{1})
	assert.True(t, errors.Is(err, ErrMisaligned), "%v", err)
	assert.True(t, errors.Is(err, errFree), "%v", err)
}

func TestHasPointers(t *testing.T) {
	for _, test := range []struct {
		value    interface{}
		pointers bool
	}{
		{value: int8(0), pointers: false},
		{value: uintptr(0), pointers: false},
		{value: complex128(0), pointers: false},
		{value: [16]byte{}, pointers: false},
		{value: point{}, pointers: false},
		{value: [0]*int{}, pointers: false},
		{value: [1]*int{}, pointers: true},
		{value: "", pointers: true},
		{value: []byte(nil), pointers: true},
		{value: map[int]int(nil), pointers: true},
		{value: unsafe.Pointer(nil), pointers: true},
		{value: struct{ E error }{}, pointers: true},
	} {
		typ := reflect.TypeOf(test.value)
		assert.Equal(t, test.pointers, hasPointers(typ), "%s", typ)
	}
}
