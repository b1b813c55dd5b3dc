// palette.go - LS_COLORS parsing and path-component style resolution
//
// Grounded on output.rs's get_path_style (the original's `lscolors`
// crate backed this; here the mapping is parsed directly from the
// LS_COLORS env var string into lipgloss styles, per SPEC_FULL.md §3's
// PaletteEntry). Printer.styleForPath resolves a path by file type
// first (broken symlink, symlink, directory, executable), then by exact
// filename, then by the longest matching extension suffix.

package output

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Palette is the resolved LS_COLORS mapping, built once at startup and
// shared read-only across print-mode workers.
type Palette struct {
	Directory  lipgloss.Style
	Symlink    lipgloss.Style
	Inexistent lipgloss.Style // broken symlink target
	Executable lipgloss.Style
	Default    lipgloss.Style

	Filenames  map[string]lipgloss.Style
	Extensions map[string]lipgloss.Style // key includes leading dot, e.g. ".tar.gz"
}

// DefaultPalette mirrors coreutils' built-in dircolors defaults for
// the handful of type codes ff actually distinguishes.
func DefaultPalette() *Palette {
	return &Palette{
		Directory:  styleFromSGR("01;34"),
		Symlink:    styleFromSGR("01;36"),
		Inexistent: styleFromSGR("01;31"),
		Executable: styleFromSGR("01;32"),
		Default:    lipgloss.NewStyle(),
		Filenames:  map[string]lipgloss.Style{},
		Extensions: map[string]lipgloss.Style{},
	}
}

// ParseLSColors parses a dircolors-format LS_COLORS string ("di=01;34:
// ln=01;36:*.tar=01;31:...") into a Palette, seeded with the built-in
// defaults so an incomplete LS_COLORS value still has sane fallbacks.
func ParseLSColors(s string) *Palette {
	p := DefaultPalette()
	if s == "" {
		return p
	}

	for _, field := range strings.Split(s, ":") {
		if field == "" {
			continue
		}
		key, val, ok := strings.Cut(field, "=")
		if !ok {
			continue
		}
		style := styleFromSGR(val)

		switch {
		case strings.HasPrefix(key, "*."):
			p.Extensions[key[1:]] = style
		case key == "di":
			p.Directory = style
		case key == "ln":
			p.Symlink = style
		case key == "or":
			p.Inexistent = style
		case key == "ex":
			p.Executable = style
		case key == "*":
			// a bare "*" names no file; ignored.
		default:
			// "*NAME" that is not an extension glob: an exact
			// filename match, matching lscolors' filename table.
			if strings.HasPrefix(key, "*") {
				p.Filenames[key[1:]] = style
			}
		}
	}

	return p
}

func styleFromSGR(sgr string) lipgloss.Style {
	st := lipgloss.NewStyle()
	for _, part := range strings.Split(sgr, ";") {
		code, err := strconv.Atoi(part)
		if err != nil {
			continue
		}
		switch {
		case code == 0:
			st = lipgloss.NewStyle()
		case code == 1:
			st = st.Bold(true)
		case code == 4:
			st = st.Underline(true)
		case code >= 30 && code <= 37:
			st = st.Foreground(lipgloss.Color(strconv.Itoa(code - 30)))
		case code >= 90 && code <= 97:
			st = st.Foreground(lipgloss.Color(strconv.Itoa(code - 90 + 8)))
		case code >= 40 && code <= 47:
			st = st.Background(lipgloss.Color(strconv.Itoa(code - 40)))
		case code >= 100 && code <= 107:
			st = st.Background(lipgloss.Color(strconv.Itoa(code - 100 + 8)))
		}
	}
	return st
}

// StyleForExtension returns the longest-suffix-matching extension
// style for 'name', trying each dot-delimited suffix from longest to
// shortest (so "archive.tar.gz" tries ".tar.gz" before ".gz").
func (p *Palette) StyleForExtension(name string) (lipgloss.Style, bool) {
	for i := 0; i < len(name); i++ {
		if name[i] != '.' {
			continue
		}
		if st, ok := p.Extensions[name[i:]]; ok {
			return st, true
		}
	}
	return lipgloss.Style{}, false
}
