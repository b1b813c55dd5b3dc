// color.go - colorize/no-colorize decision and the Writer the Printer
// writes through (SPEC_FULL.md §2 item 8).
//
// Grounded on original_source/src/app.rs's `--color auto` tty probe
// (unchanged semantics, spec.md §6.1) and SPEC_FULL.md's explicit pack
// wiring: github.com/mattn/go-isatty for the probe,
// github.com/mattn/go-colorable to make the resulting ANSI sequences
// safe on Windows consoles, and the informal NO_COLOR env convention
// layered on top (SPEC_FULL.md §6.1 expansion).

package app

import (
	"io"
	"os"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"

	"github.com/opencoff/ff/internal/output"
)

// ColorMode mirrors the --color flag's three settings.
type ColorMode int

const (
	ColorAuto ColorMode = iota
	ColorAlways
	ColorNever
)

// ParseColorMode maps the --color flag's string value. An unrecognized
// value falls back to ColorAuto.
func ParseColorMode(s string) ColorMode {
	switch s {
	case "always":
		return ColorAlways
	case "never":
		return ColorNever
	default:
		return ColorAuto
	}
}

// ResolveColor decides whether output should be colorized, honoring
// --color, then NO_COLOR, then a tty probe on fd.
func ResolveColor(mode ColorMode, fd uintptr) bool {
	if mode == ColorNever {
		return false
	}
	if _, set := os.LookupEnv("NO_COLOR"); set {
		return false
	}
	if mode == ColorAlways {
		return true
	}
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// OutputWriter wraps w with go-colorable's Windows-safe ANSI
// translation when useColor is true; otherwise it strips any ANSI
// sequences that slipped in (colorable.NewNonColorable) so non-tty
// output is never polluted by escape codes.
func OutputWriter(w io.Writer, useColor bool) io.Writer {
	if f, ok := w.(*os.File); ok {
		if useColor {
			return colorable.NewColorable(f)
		}
		return colorable.NewNonColorable(f)
	}
	return w
}

// Palette resolves the active LS_COLORS palette: the env var if set,
// else output's built-in default.
func Palette() *output.Palette {
	if s, ok := os.LookupEnv("LS_COLORS"); ok && s != "" {
		return output.ParseLSColors(s)
	}
	return output.DefaultPalette()
}
