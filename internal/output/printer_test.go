package output

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/opencoff/ff/internal/filter"
)

func TestPrintUncolorizedNewlineTerminated(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, false, nil, nil)

	if err := p.Print("/tmp/a.txt", []filter.Action{filter.Print}); err != nil {
		t.Fatalf("Print: %s", err)
	}
	if got := buf.String(); got != "/tmp/a.txt\n" {
		t.Errorf("got %q", got)
	}
}

func TestPrintNullTerminated(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, false, nil, nil)

	if err := p.Print("/tmp/a.txt", []filter.Action{filter.Print0}); err != nil {
		t.Fatalf("Print: %s", err)
	}
	if got := buf.String(); got != "/tmp/a.txt\x00" {
		t.Errorf("got %q", got)
	}
}

func TestPrintTwiceForTwoActions(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, false, nil, nil)

	if err := p.Print("a", []filter.Action{filter.Print, filter.Print}); err != nil {
		t.Fatalf("Print: %s", err)
	}
	if got := buf.String(); got != "a\na\n" {
		t.Errorf("got %q, want duplicate rendering", got)
	}
}

func TestPaletteExtensionLongestSuffixFirst(t *testing.T) {
	pal := ParseLSColors("*.tar.gz=01;33:*.gz=01;31")

	st, ok := pal.StyleForExtension("archive.tar.gz")
	if !ok {
		t.Fatal("expected a match")
	}
	if st.Render("x") != pal.Extensions[".tar.gz"].Render("x") {
		t.Errorf("expected the longer suffix '.tar.gz' to win over '.gz'")
	}
}

func TestPaletteTypeCodesOverrideDefaults(t *testing.T) {
	pal := ParseLSColors("di=01;35")
	if pal.Directory.Render("x") == DefaultPalette().Directory.Render("x") {
		t.Errorf("expected di=01;35 to override the default directory style")
	}
}

func TestColorizedRenderContainsEachComponent(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, true, ParseLSColors(""), nil)

	path := filepath.Join(t.TempDir(), "sub", "file.txt")
	if err := p.Print(path, []filter.Action{filter.Print}); err != nil {
		t.Fatalf("Print: %s", err)
	}
	out := buf.String()
	if !strings.Contains(out, "file.txt") {
		t.Errorf("expected rendered output to contain the basename, got %q", out)
	}
}
