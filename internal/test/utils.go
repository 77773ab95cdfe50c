package test

import (
	"fmt"
	"testing"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
	"github.com/stretchr/testify/assert"
)

// Releaser is implemented by views and owners.
type Releaser interface {
	Release()
}

// Release releases r when the test and all its subtests complete.
func Release(t testing.TB, r Releaser) {
	t.Helper()
	t.Cleanup(r.Release)
}

// AssertFormat asserts that formatting value with format produces want, and
// reports a unified diff of the two outputs otherwise.
func AssertFormat(t assert.TestingT, want, format string, value interface{}) bool {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}
	got := fmt.Sprintf(format, value)
	if got == want {
		return true
	}
	edits := myers.ComputeEdits(span.URIFromPath("want"), want+"\n", got+"\n")
	diff := fmt.Sprint(gotextdiff.ToUnified("want", "got", want+"\n", edits))
	return assert.Fail(t, fmt.Sprintf("%q formatted with %q mismatch", want, format), diff)
}
