// cancel.go - the shared Cancel flag (spec.md §3's Cancel entity)
//
// A single atomic integer shared by reference across every stage: 0
// means "live", any other value is the signal number that tripped it.
// Monotone — once non-zero it never returns to zero. Grounded on
// _examples/original_source/src/walk.rs's Arc<AtomicBool> "quitting"
// flag, generalized from a bool to a signal number per spec.md §3 so
// the eventual exit status (128+signum) is recoverable from the flag
// itself rather than threaded separately.
package cancel

import "sync/atomic"

// Flag is the process-wide cancellation signal.
type Flag struct {
	v atomic.Int32
}

// Trip sets the flag to 'sig' if it is still live. A later Trip with a
// different signal is a no-op: the flag is monotone.
func (f *Flag) Trip(sig int) {
	f.v.CompareAndSwap(0, int32(sig))
}

// Tripped reports whether the flag has been set.
func (f *Flag) Tripped() bool {
	return f.v.Load() != 0
}

// Signal returns the signal number that tripped the flag, or 0 if it
// is still live.
func (f *Flag) Signal() int {
	return int(f.v.Load())
}
