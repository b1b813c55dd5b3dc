// sorter.go - the Sorter Stage: one thread between channel 1 and
// channel 2 that decides whether to stream results as they arrive or
// buffer them for a stable sort.
//
// Grounded on the embedded receiver_thread logic in
// _examples/original_source/src/walk.rs's scan(): the same
// Buffering(Duration)/Buffering(Eternity)/Streaming state machine,
// translated from a single match-on-channel-recv loop into a Go
// select-free range loop plus a timer.

package sorter

import (
	"fmt"
	"sort"
	"time"

	"github.com/opencoff/ff/internal/cancel"
	"github.com/opencoff/ff/internal/counter"
	"github.com/opencoff/ff/internal/walk"
)

type bufferTime int

const (
	bufferDuration bufferTime = iota
	bufferEternity
)

type mode int

const (
	modeBuffering mode = iota
	modeStreaming
)

// Config carries the knobs that decide which mode the sorter starts
// in. See spec.md §4.4's "Mode selection rules".
type Config struct {
	SortPath       bool
	IsTTY          bool
	MaxBufferTime  time.Duration // <=0 disables duration-based buffering
	SingleConsumer bool          // true when there is no --exec, or the exec pool is exactly one worker
	CancelLimit    int
}

// Run starts the sorter stage. It returns the output channel (channel
// 2) and an error channel for any non-fatal complaints; both close
// once 'in' is drained and a final flush (if any) completes.
func Run(in <-chan walk.Entry, cf *cancel.Flag, cfg Config) (<-chan walk.Entry, <-chan error) {
	out := make(chan walk.Entry, 64)
	errch := make(chan error, 4)

	go func() {
		defer close(out)
		defer close(errch)
		runLoop(in, out, errch, cf, cfg)
	}()

	return out, errch
}

func runLoop(in <-chan walk.Entry, out chan<- walk.Entry, errch chan<- error, cf *cancel.Flag, cfg Config) {
	cnt := counter.New(cfg.CancelLimit, cf)

	m, bt := startMode(cfg)

	var buffer []walk.Entry
	start := time.Now()
	maxBuf := cfg.MaxBufferTime
	if maxBuf <= 0 {
		maxBuf = 100 * time.Millisecond
	}

	for entry := range in {
		if cnt.Tick() {
			// Cancellation: log-and-exit without flushing, per
			// spec.md §4.4.
			errch <- fmt.Errorf("sorter: cancelled, %d buffered entries dropped", len(buffer))
			return
		}

		switch m {
		case modeBuffering:
			buffer = append(buffer, entry)
			if bt == bufferDuration && time.Since(start) > maxBuf {
				flushStreaming(buffer, out)
				buffer = buffer[:0]
				m = modeStreaming
			}
		case modeStreaming:
			out <- entry
		}
	}

	if len(buffer) > 0 {
		sort.SliceStable(buffer, func(i, j int) bool {
			return buffer[i].Path < buffer[j].Path
		})
		flushStreaming(buffer, out)
	}
}

func flushStreaming(buffer []walk.Entry, out chan<- walk.Entry) {
	for _, e := range buffer {
		out <- e
	}
}

func startMode(cfg Config) (mode, bufferTime) {
	if cfg.SortPath {
		return modeBuffering, bufferEternity
	}
	if cfg.IsTTY && cfg.MaxBufferTime > 0 && cfg.SingleConsumer {
		return modeBuffering, bufferDuration
	}
	return modeStreaming, bufferDuration
}
