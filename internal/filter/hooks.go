// hooks.go - fatal/warning diagnostics, injectable from internal/app
//
// Mirrors the free functions die()/warn() in
// _examples/original_source/src/internal.rs: most of this package is
// pure, but a handful of matcher failures (an unresolvable full path)
// are genuinely fatal the way the original treats them, and file-type
// lookups that fail are warnings. internal/app.Install wires these to
// the structured logger at startup; the zero-value defaults below let
// this package's own tests run without that wiring.

package filter

import (
	"fmt"
	"os"
)

// Die reports a fatal error and terminates the process with exit
// status 1.
var Die = func(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "[ff::Error] "+format+"\n", args...)
	os.Exit(1)
}

// Warn reports a non-fatal diagnostic.
var Warn = func(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "[ff::Warning] "+format+"\n", args...)
}
