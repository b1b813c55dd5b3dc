package walk

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/opencoff/ff/internal/filter"
)

func buildTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	mustMkdir := func(p string) {
		if err := os.MkdirAll(filepath.Join(root, p), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	mustFile := func(p string) {
		if err := os.WriteFile(filepath.Join(root, p), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	mustMkdir("sub")
	mustMkdir(".hidden")
	mustFile("a.txt")
	mustFile("sub/b.txt")
	mustFile(".hidden/c.txt")

	return root
}

func collect(t *testing.T, cfg Config) []string {
	t.Helper()
	out, errch := Run(cfg)

	var paths []string
	for e := range out {
		paths = append(paths, e.Path)
	}
	for err := range errch {
		t.Errorf("unexpected walk error: %s", err)
	}
	sort.Strings(paths)
	return paths
}

func nameChain(t *testing.T, pattern string) *filter.Chain {
	t.Helper()
	c, err := filter.Parse([]string{"name", pattern}, filter.ParserConfig{})
	if err != nil {
		t.Fatalf("parse: %s", err)
	}
	return c
}

func TestWalkBasic(t *testing.T) {
	root := buildTree(t)

	cfg := Config{
		Roots:   []string{root},
		Threads: 2,
		Chain:   nameChain(t, "*.txt"),
	}

	paths := collect(t, cfg)
	want := []string{
		filepath.Join(root, "a.txt"),
		filepath.Join(root, "sub/b.txt"),
	}
	sort.Strings(want)

	if len(paths) != len(want) {
		t.Fatalf("got %v, want %v", paths, want)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("index %d: got %q, want %q", i, paths[i], want[i])
		}
	}
}

func TestWalkAllowHidden(t *testing.T) {
	root := buildTree(t)

	cfg := Config{
		Roots:       []string{root},
		Threads:     2,
		AllowHidden: true,
		Chain:       nameChain(t, "*.txt"),
	}

	paths := collect(t, cfg)
	found := false
	for _, p := range paths {
		if p == filepath.Join(root, ".hidden/c.txt") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected hidden file to be found with AllowHidden=true, got %v", paths)
	}
}

func TestWalkPruneSuppressesDescent(t *testing.T) {
	root := buildTree(t)

	chain, err := filter.Parse([]string{"name", "sub", "prune", "or", "name", "*.txt"}, filter.ParserConfig{})
	if err != nil {
		t.Fatalf("parse: %s", err)
	}

	cfg := Config{
		Roots:   []string{root},
		Threads: 2,
		Chain:   chain,
	}

	paths := collect(t, cfg)
	for _, p := range paths {
		if p == filepath.Join(root, "sub/b.txt") {
			t.Errorf("prune on sub/ should have suppressed descent, got %v", paths)
		}
	}
}

func TestWalkHardlinkBothPathsEmitted(t *testing.T) {
	root := t.TempDir()
	orig := filepath.Join(root, "orig.txt")
	link := filepath.Join(root, "link.txt")
	if err := os.WriteFile(orig, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Link(orig, link); err != nil {
		t.Skipf("hardlinks unsupported: %s", err)
	}

	cfg := Config{
		Roots:   []string{root},
		Threads: 2,
		Chain:   nameChain(t, "*.txt"),
	}

	paths := collect(t, cfg)
	want := []string{orig, link}
	sort.Strings(want)
	if len(paths) != len(want) {
		t.Fatalf("got %v, want both hardlinked paths %v", paths, want)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("index %d: got %q, want %q", i, paths[i], want[i])
		}
	}
}

func TestWalkMaxDepth(t *testing.T) {
	root := buildTree(t)

	cfg := Config{
		Roots:    []string{root},
		Threads:  2,
		MaxDepth: 1,
		Chain:    nameChain(t, "*.txt"),
	}

	paths := collect(t, cfg)
	for _, p := range paths {
		if p == filepath.Join(root, "sub/b.txt") {
			t.Errorf("MaxDepth=1 should not have descended into sub/, got %v", paths)
		}
	}
}
