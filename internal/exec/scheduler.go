// scheduler.go - Consumer Stage exec mode (spec.md §4.5)
//
// Grounded on _examples/original_source/src/exec/schedule.rs (the
// mutex-guarded-receiver worker loop) and exec/ticket.rs (spawn, wait,
// SIGINT-aware exit), adapted onto the teacher's own
// internal/walk.WorkPool[Work] generic worker pool instead of a
// hand-rolled fan-out: T_consumer workers, one cancel counter and
// correlation id per worker slot, submitted to from the sorter's
// output channel. WorkPool's own nworkers<=1-means-default behavior
// was adapted (see workpool.go) so an explicit T_consumer=1 (the
// --sort-path case) is honored literally rather than silently
// expanded to #CPUs. The non-blocking select(2) loops in
// exec/nonblock.rs become goroutine-driven io.Copy plus a
// cancel-aware Wait, which is the idiomatic Go shape for the same
// problem (feed a child's stdin without blocking the waiter).

package exec

import (
	"bytes"
	"io"
	"os"
	goexec "os/exec"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"

	"github.com/opencoff/ff/internal/cancel"
	"github.com/opencoff/ff/internal/counter"
	"github.com/opencoff/ff/internal/walk"
)

// Config carries the exec-mode knobs derived from CLI options and the
// thread-budget rules of spec.md §5.
type Config struct {
	Template      *Template
	Threads       int // T_consumer
	Cancel        *cancel.Flag
	CounterLimit  int
	BroadcastData []byte // non-nil when --multiplex captured stdin
	Warn          func(format string, args ...any)
}

// Run starts the exec-mode consumer and blocks until 'in' closes and
// every worker has drained. It returns the joined set of non-fatal
// spawn/IO errors collected across all workers (spec.md §7: these are
// always warnings, never a cause for a non-zero exit on their own).
func Run(in <-chan walk.Entry, cfg Config) error {
	if cfg.Threads <= 0 {
		cfg.Threads = 1
	}
	if cfg.Warn == nil {
		cfg.Warn = func(string, ...any) {}
	}

	counters := make([]*counter.Counter, cfg.Threads)
	correlationIDs := make([]string, cfg.Threads)
	for i := range counters {
		counters[i] = counter.New(cfg.CounterLimit, cfg.Cancel)
		correlationIDs[i] = uuid.New().String()
	}

	var mu sync.Mutex
	var errs error

	pool := walk.NewWorkPool[walk.Entry](cfg.Threads, func(id int, entry walk.Entry) error {
		if counters[id].Tick() {
			return nil
		}
		if err := runOne(counters[id], entry.Path, cfg); err != nil {
			cfg.Warn("[worker %d/%s] %s: %s", id, correlationIDs[id], entry.Path, err)
			mu.Lock()
			errs = multierror.Append(errs, err)
			mu.Unlock()
		}
		return nil
	})

	for entry := range in {
		pool.Submit(entry)
	}
	pool.Close()
	if err := pool.Wait(); err != nil {
		// per-item errors are already captured above; Wait only reports worker panics
		errs = multierror.Append(errs, err)
	}

	return errs
}

func runOne(cnt *counter.Counter, path string, cfg Config) error {
	argv := cfg.Template.Apply(path)
	if len(argv) == 0 {
		return errors.New("exec template produced an empty command")
	}

	cmd := goexec.Command(argv[0], argv[1:]...)
	configureStdio(cmd, cfg)

	if err := cmd.Start(); err != nil {
		return errors.Wrapf(err, "%s", argv[0])
	}

	if err := waitCancelAware(cnt, cfg.Cancel, cmd); err != nil {
		return errors.Wrapf(err, "%s", argv[0])
	}

	flushCaptured(cmd)
	return nil
}

func configureStdio(cmd *goexec.Cmd, cfg Config) {
	switch {
	case cfg.BroadcastData != nil:
		cmd.Stdin = bytes.NewReader(cfg.BroadcastData)
	case cfg.Threads > 1 && isatty.IsTerminal(os.Stdin.Fd()):
		cmd.Stdin = nil // spawned with /dev/null: avoid interactive contention
	default:
		cmd.Stdin = os.Stdin
	}

	if cfg.Threads > 1 {
		cmd.Stdout = &bytes.Buffer{}
		cmd.Stderr = &bytes.Buffer{}
	} else {
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	}
}

// waitCancelAware polls cmd.Wait() on a background goroutine and ticks
// the cancel counter in a bounded sleep loop, killing the child if
// cancellation trips mid-wait. This is the Go-idiomatic equivalent of
// the original's try_wait-in-a-sleep-loop.
func waitCancelAware(cnt *counter.Counter, cf *cancel.Flag, cmd *goexec.Cmd) error {
	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	const poll = 500 * time.Microsecond
	for {
		select {
		case err := <-done:
			return err
		case <-time.After(poll):
			if cnt.Tick() {
				if cf != nil && cf.Tripped() {
					_ = cmd.Process.Kill()
				}
				return <-done
			}
		}
	}
}

func flushCaptured(cmd *goexec.Cmd) {
	if out, ok := cmd.Stdout.(*bytes.Buffer); ok {
		_, _ = io.Copy(os.Stdout, out)
	}
	if errBuf, ok := cmd.Stderr.(*bytes.Buffer); ok {
		_, _ = io.Copy(os.Stderr, errBuf)
	}
}
