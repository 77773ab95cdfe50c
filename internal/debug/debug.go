// Package debug implements the debug logging of ownedview.
//
// Debug mode is off by default. It is turned on by setting the OWNEDVIEWDEBUG
// environment variable to a true value (as understood by strconv.ParseBool),
// or by calling Toggle.
package debug

import (
	"log"
	"os"
	"strconv"
	"sync/atomic"
)

// EnvVar is the name of the environment variable read at program start.
const EnvVar = "OWNEDVIEWDEBUG"

var enabled atomic.Bool

func init() {
	if on, err := strconv.ParseBool(os.Getenv(EnvVar)); err == nil {
		enabled.Store(on)
	}
}

// Toggle turns on/off debug mode
func Toggle(on bool) { enabled.Store(on) }

// Enabled reports whether debug mode is on.
func Enabled() bool { return enabled.Load() }

// Do executes a function if debug is enabled, usually for side effects.
func Do(f func()) {
	if enabled.Load() {
		f()
	}
}

// Format a log line and writes it to stderr if debug is enabled
func Format(format string, args ...interface{}) {
	if enabled.Load() {
		log.Printf(format, args...)
	}
}
