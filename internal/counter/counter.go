// counter.go - amortized cancellation polling
//
// A Counter lets a hot loop check a shared cancel flag without
// paying an atomic load on every iteration. It only reads the flag
// once every 'limit' calls to Tick; the rest of the time Tick just
// increments a private counter and returns false.
//
// Grounded on the producer/consumer workers of github.com/opencoff/go-fio
// (workpool.go) for the atomic-flag idiom, and on the "amortised
// signal" Counter from the original ff/fd implementation this
// package replaces.

package counter

import "github.com/opencoff/ff/internal/cancel"

// Counter amortizes the cost of polling a shared cancellation flag.
type Counter struct {
	cancel *cancel.Flag
	limit  int
	count  int
}

// New returns a Counter that ticks every 'limit' calls and, once the
// limit is reached, reports whether 'c' has tripped. A nil flag makes
// the counter behave as a free-running "period expired" timer that
// always reports true once the limit is reached.
func New(limit int, c *cancel.Flag) *Counter {
	if limit <= 0 {
		limit = 1
	}
	return &Counter{
		cancel: c,
		limit:  limit,
	}
}

// Tick advances the counter by one step and reports whether the
// caller should abort its work. It only consults the shared cancel
// flag once every 'limit' calls.
func (c *Counter) Tick() bool {
	return c.TickBy(1)
}

// TickBy advances the counter by 'step' and reports whether the
// caller should abort. Useful when a loop body processes more than
// one unit of work per iteration and wants to amortize accordingly.
func (c *Counter) TickBy(step int) bool {
	c.count += step
	if c.count < c.limit {
		return false
	}

	c.count = 0
	if c.cancel != nil {
		return c.cancel.Tripped()
	}
	return true
}

// Reset zeroes the internal count without consulting the cancel flag.
func (c *Counter) Reset() {
	c.count = 0
}
