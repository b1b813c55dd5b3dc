// multiplex.go - cancel-aware stdin read for --multiplex (SPEC_FULL.md
// §4.5): the broadcast buffer is read on a background goroutine while
// the caller polls cf so a slow or interactive stdin can't stall
// shutdown on SIGINT, mirroring internal/exec/scheduler.go's
// waitCancelAware.

package main

import (
	"errors"
	"io"
	"os"
	"time"

	"github.com/opencoff/ff/internal/cancel"
)

// errCancelled is returned by readStdinCancelAware when cf trips
// before the stdin read completes.
var errCancelled = errors.New("cancelled waiting for stdin")

// readStdinCancelAware reads all of os.Stdin for --multiplex's
// broadcast buffer, returning early with errCancelled if cf
// trips before the read completes.
func readStdinCancelAware(cf *cancel.Flag) ([]byte, error) {
	type result struct {
		data []byte
		err  error
	}
	done := make(chan result, 1)
	go func() {
		data, err := io.ReadAll(os.Stdin)
		done <- result{data, err}
	}()

	const poll = 500 * time.Microsecond
	for {
		select {
		case r := <-done:
			return r.data, r.err
		case <-time.After(poll):
			if cf != nil && cf.Tripped() {
				return nil, errCancelled
			}
		}
	}
}
