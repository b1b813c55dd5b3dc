// logging.go - structured diagnostics wiring (SPEC_FULL.md §2 item 7).
//
// Grounded on _examples/opencoff-go-fio/testsuite/run.go's use of
// github.com/opencoff/go-logger (NewLogger(path, level, prefix, flags),
// a syslog-style Logger with Close()): this package installs the same
// logger as the destination for internal/filter.Die/Warn and
// internal/output.Die/Warn, so every "[ff::Error]"/"[ff::Warning]"
// diagnostic in the pipeline flows through one place. --log-file
// redirects the logger's backing file to a lumberjack.Logger for
// rotation (SPEC_FULL.md §2 item 7); without --log-file, diagnostics
// go straight to stderr exactly as internal/filter's package-level
// defaults already do, so Install is a no-op in that case.

package app

import (
	"fmt"
	"os"

	"github.com/natefinch/lumberjack"
	"github.com/opencoff/go-logger"

	"github.com/opencoff/ff/internal/filter"
	"github.com/opencoff/ff/internal/output"
)

// Diagnostics holds the installed logger (nil when diagnostics go
// straight to stderr) so main() can flush/close it on exit.
type Diagnostics struct {
	log logger.Logger
}

// Install wires filter.Die/Warn and output.Die/Warn to a go-logger
// instance. When logFile is empty, diagnostics keep going to stderr
// via the packages' own zero-value defaults and Install returns a
// Diagnostics whose Close is a no-op.
func Install(logFile string, verbose bool) (*Diagnostics, error) {
	if logFile == "" {
		return &Diagnostics{}, nil
	}

	level := logger.LOG_INFO
	if verbose {
		level = logger.LOG_DEBUG
	}

	// Route through lumberjack for rotation rather than letting
	// go-logger open the file itself; New() takes any io.Writer.
	lj := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    20, // megabytes
		MaxBackups: 5,
		MaxAge:     28, // days
		Compress:   true,
	}

	log, err := logger.New(lj, level, "ff", logger.Ldate|logger.Ltime|logger.Lmicroseconds)
	if err != nil {
		return nil, fmt.Errorf("log-file %s: %w", logFile, err)
	}

	filter.Die = func(format string, args ...any) {
		log.Err(format, args...)
		log.Close()
		os.Exit(1)
	}
	filter.Warn = func(format string, args ...any) {
		log.Warn(format, args...)
	}
	output.Die = func(format string, args ...any) {
		log.Err(format, args...)
		log.Close()
		os.Exit(1)
	}
	output.Warn = func(format string, args ...any) {
		log.Warn(format, args...)
	}

	return &Diagnostics{log: log}, nil
}

// Close releases the underlying logger, if one was installed.
func (d *Diagnostics) Close() {
	if d != nil && d.log != nil {
		d.log.Close()
	}
}
