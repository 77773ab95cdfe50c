// Package quick runs property checks over slices of many sizes.
package quick

import (
	"fmt"
	"math/rand"
	"reflect"
)

// Sizes is the ladder of slice lengths that Check runs properties against.
var Sizes = [...]int{
	0, 1, 2, 3, 4, 5, 6, 7, 8, 9,
	10, 11, 12, 13, 14, 15, 16, 17, 18, 19,
	20, 21, 22, 23, 24, 25, 26, 27, 28, 29,
	30, 31, 32, 33, 34, 35, 36, 37, 38, 39,
	99, 100, 101,
	127, 128, 129,
	255, 256, 257,
	1000, 1023, 1024, 1025,
	2000, 2095, 2048, 2049,
	4000, 4095, 4096, 4097,
}

// Check is inspired by the standard quick.Check package, but tests slices of
// larger sizes than the maximum of 50 hardcoded in testing/quick. The values
// are generated from a fixed seed so failures are reproducible.
//
// The element type must be a boolean, integer or floating point type, or an
// array or struct of those.
func Check[T any](f func([]T) bool) error {
	r := rand.New(rand.NewSource(0))

	for _, n := range Sizes {
		for i := 0; i < 3; i++ {
			in := make([]T, n)
			v := reflect.ValueOf(in)
			for j := range in {
				fill(r, v.Index(j))
			}
			if !f(in) {
				return fmt.Errorf("test #%d: failed on input of size %d: %#v", i+1, n, in)
			}
		}
	}
	return nil
}

func fill(r *rand.Rand, v reflect.Value) {
	switch v.Kind() {
	case reflect.Bool:
		v.SetBool(r.Int()%2 != 0)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v.SetInt(int64(r.Uint64()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		v.SetUint(r.Uint64())
	case reflect.Float32:
		v.SetFloat(float64(r.Float32()))
	case reflect.Float64:
		v.SetFloat(r.Float64())
	case reflect.Array:
		for i := 0; i < v.Len(); i++ {
			fill(r, v.Index(i))
		}
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			if f := v.Field(i); f.CanSet() {
				fill(r, f)
			}
		}
	default:
		panic("cannot run quick check on function with input of type []" + v.Type().String())
	}
}
