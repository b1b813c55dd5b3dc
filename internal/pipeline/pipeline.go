// pipeline.go - wires the three search-pipeline stages together and
// owns the shared cancel flag and thread-budget arithmetic.
//
// Grounded on _examples/original_source/src/app.rs's run() (the
// producer-is-the-main-thread shape: the walker drains, then
// downstream stages are joined) and spec.md §5's thread-budget rules.
// Signal handling follows the teacher pack's common
// signal.Notify-plus-select idiom (see e.g.
// _examples/other_examples/0ec88cf5_.../cycler.go's MainLoop), adapted
// to trip a single cancel.Flag instead of breaking a select loop.

package pipeline

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/opencoff/ff/internal/cancel"
	"github.com/opencoff/ff/internal/exec"
	"github.com/opencoff/ff/internal/filter"
	"github.com/opencoff/ff/internal/output"
	"github.com/opencoff/ff/internal/sorter"
	"github.com/opencoff/ff/internal/walk"
)

// CounterLimit is the default period (in loop iterations) between
// cancel-flag consultations, shared by all three stages unless
// overridden. spec.md §5 bounds shutdown latency at roughly
// 500µs * limit.
const CounterLimit = 256

// Budget computes T_producer and T_consumer from the configured
// thread count and sort-path flag, per spec.md §5's thread-budget
// table.
func Budget(threads int, sortPath bool) (producer, consumer int) {
	switch {
	case sortPath:
		return max(threads-1, 1), 1
	case threads > 1:
		return max(threads/2, 2), max(threads/2, 2)
	default:
		return 1, 1
	}
}

// Config carries everything the pipeline needs to wire the three
// stages for one run.
type Config struct {
	Walk    walk.Config
	Sorter  sorter.Config
	Threads int // T (pre-budget); Run does not read it

	// Consumer mode: exactly one of these is active.
	ExecConfig  *exec.Config // non-nil when --exec was given
	Printer     *output.Printer
	PrintWarn   func(format string, args ...any)

	// Cancel, when non-nil, is a flag the caller already installed a
	// signal handler against (e.g. because it needed the same flag to
	// cancel-aware-read a --multiplex broadcast buffer before the
	// pipeline started). When nil, Run creates and installs its own.
	Cancel *cancel.Flag
}

// Result is what Run reports back to main() once the pipeline has
// fully drained.
type Result struct {
	ExitCode int
	Errors   []error
}

// Run starts the producer and sorter, uses cfg.Cancel or (when it is
// nil) installs SIGINT/SIGTERM handlers against a fresh cancel.Flag,
// drains the consumer stage
// inline (the walker's goroutine dispatch means this call returns
// only once everything has joined), and reports the exit code spec.md
// §5 specifies: 128+signum if Cancel tripped, else 0 or 1 depending on
// whether non-fatal errors were collected.
func Run(cfg Config) Result {
	cf := cfg.Cancel
	stopSignals := func() {}
	if cf == nil {
		cf = &cancel.Flag{}
		stopSignals = InstallSignalHandler(cf)
	}
	defer stopSignals()

	cfg.Walk.Cancel = cf
	if cfg.Walk.CounterLimit <= 0 {
		cfg.Walk.CounterLimit = CounterLimit
	}
	cfg.Sorter.CancelLimit = cfg.Walk.CounterLimit

	entries, walkErrs := walk.Run(cfg.Walk)
	sorted, sortErrs := sorter.Run(entries, cf, cfg.Sorter)

	var errs []error
	done := make(chan struct{})

	go func() {
		defer close(done)
		consume(sorted, cf, cfg)
	}()

	drainErrors(walkErrs, &errs)
	drainErrors(sortErrs, &errs)
	<-done

	if cf.Tripped() {
		return Result{ExitCode: 128 + cf.Signal(), Errors: errs}
	}
	if len(errs) > 0 {
		return Result{ExitCode: 1, Errors: errs}
	}
	return Result{ExitCode: 0, Errors: errs}
}

func consume(in <-chan walk.Entry, cf *cancel.Flag, cfg Config) {
	if cfg.ExecConfig != nil {
		cfg.ExecConfig.Cancel = cf
		if cfg.ExecConfig.CounterLimit <= 0 {
			cfg.ExecConfig.CounterLimit = CounterLimit
		}
		if err := exec.Run(in, *cfg.ExecConfig); err != nil && cfg.PrintWarn != nil {
			cfg.PrintWarn("exec: %s", err)
		}
		return
	}

	cfg.Printer.Cancel = cf
	for entry := range in {
		if err := cfg.Printer.Print(entry.Path, entry.Actions); err != nil && cfg.PrintWarn != nil {
			cfg.PrintWarn("print: %s", err)
		}
		if hasQuit(entry.Actions) {
			cf.Trip(int(syscall.SIGTERM))
			break
		}
	}
}

func hasQuit(actions []filter.Action) bool {
	for _, a := range actions {
		if a == filter.Quit {
			return true
		}
	}
	return false
}

func drainErrors(errch <-chan error, into *[]error) {
	for err := range errch {
		*into = append(*into, err)
	}
}

// InstallSignalHandler traps SIGINT and SIGTERM and trips cf with the
// received signal's number. It returns a stop function that releases
// the underlying os/signal channel; callers should defer it. Exported
// so main() can install it early and reuse the same flag to
// cancel-aware-read a --multiplex broadcast buffer before Run starts.
func InstallSignalHandler(cf *cancel.Flag) (stop func()) {
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		for {
			select {
			case sig, ok := <-sigCh:
				if !ok {
					return
				}
				if s, ok := sig.(syscall.Signal); ok {
					cf.Trip(int(s))
				}
			case <-done:
				return
			}
		}
	}()

	return func() {
		signal.Stop(sigCh)
		close(done)
	}
}
