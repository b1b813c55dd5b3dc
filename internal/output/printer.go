// printer.go - Print mode of the Consumer Stage (spec.md §4.5)
//
// Grounded on _examples/original_source/src/output.rs's print_entry /
// print_entry_colorized / print_entry_uncolorized / get_path_style:
// same per-component style walk, same NUL/LF validation, same EPIPE
// and SIGINT exit-code handling translated to Go's os.Exit.

package output

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/charmbracelet/lipgloss"

	"github.com/opencoff/ff/internal/cancel"
	"github.com/opencoff/ff/internal/filter"
	"github.com/opencoff/ff/internal/pathutil"
)

// Die and Warn are the package's fatal/non-fatal diagnostic hooks,
// overridable by internal/app the same way internal/filter's are.
var (
	Die  = func(format string, args ...any) { filter.Die(format, args...) }
	Warn = func(format string, args ...any) { filter.Warn(format, args...) }
)

// Printer renders matched paths to a writer, optionally colorized.
type Printer struct {
	Palette  *Palette
	UseColor bool
	Writer   io.Writer
	Cancel   *cancel.Flag

	// Unicode enables grapheme-cluster-aware eliding of long path
	// components (--unicode); see elide.go.
	Unicode bool
}

// NewPrinter builds a Printer. w is typically go-colorable's wrapped
// os.Stdout so ANSI sequences are translated on platforms that need
// it and pass through unchanged elsewhere.
func NewPrinter(w io.Writer, useColor bool, pal *Palette, cancel *cancel.Flag) *Printer {
	if pal == nil {
		pal = DefaultPalette()
	}
	return &Printer{Palette: pal, UseColor: useColor, Writer: w, Cancel: cancel}
}

// Print renders 'path' once per Print/Print0 action present in
// actions; any other action is ignored here (Prune/Quit are consumed
// by the pipeline, not the printer).
func (p *Printer) Print(path string, actions []filter.Action) error {
	for _, a := range actions {
		switch a {
		case filter.Print:
			if err := p.printOne(path, false); err != nil {
				return err
			}
		case filter.Print0:
			if err := p.printOne(path, true); err != nil {
				return err
			}
		}
	}
	return nil
}

func (p *Printer) printOne(path string, nullTerminated bool) error {
	if strings.IndexByte(path, 0) >= 0 {
		Die("path %q contains a NUL byte", path)
	}
	if !nullTerminated && strings.IndexByte(path, '\n') >= 0 {
		Warn("path %q contains a newline", path)
	}

	var buf bytes.Buffer
	if p.UseColor {
		p.writeColorized(&buf, path)
	} else {
		buf.WriteString(path)
	}

	if nullTerminated {
		buf.WriteByte(0)
	} else {
		buf.WriteByte('\n')
	}

	if p.Cancel != nil && p.Cancel.Tripped() {
		os.Exit(128 + p.Cancel.Signal())
	}

	_, err := p.Writer.Write(buf.Bytes())
	if err != nil {
		if isBrokenPipe(err) {
			os.Exit(128 + int(syscall.SIGPIPE))
		}
		Warn("write error: %s", err)
		return err
	}
	return nil
}

func (p *Printer) writeColorized(buf *bytes.Buffer, path string) {
	sep := string(filepath.Separator)
	isAbs := strings.HasPrefix(path, sep)

	var accumulated string
	first := true
	for _, part := range strings.Split(path, sep) {
		if part == "" {
			continue
		}
		switch {
		case accumulated == "" && isAbs:
			accumulated = sep + part
		case accumulated == "":
			accumulated = part
		default:
			accumulated = accumulated + sep + part
		}

		if !first {
			// Separators are always rendered in the directory style,
			// matching output.rs's single colorized_separator.
			buf.WriteString(p.Palette.Directory.Render(sep))
		}

		display := part
		if p.Unicode {
			// styleForPath still resolves against the real,
			// un-elided path; only the rendered text is shortened.
			display = elideComponent(part)
		}
		buf.WriteString(p.styleForPath(accumulated).Render(display))
		first = false
	}
}

func (p *Printer) styleForPath(path string) lipgloss.Style {
	fi, err := os.Lstat(path)
	if err != nil {
		return p.Palette.Inexistent
	}
	if fi.Mode()&os.ModeSymlink != 0 {
		if _, err := os.Stat(path); err != nil {
			return p.Palette.Inexistent
		}
		return p.Palette.Symlink
	}
	if fi.IsDir() {
		return p.Palette.Directory
	}
	if pathutil.IsExecutable(fi.Mode()) {
		return p.Palette.Executable
	}

	name := filepath.Base(path)
	if st, ok := p.Palette.Filenames[name]; ok {
		return st
	}
	if st, ok := p.Palette.StyleForExtension(name); ok {
		return st
	}
	return p.Palette.Default
}

func isBrokenPipe(err error) bool {
	return errors.Is(err, syscall.EPIPE)
}
