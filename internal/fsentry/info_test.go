// info_test.go -- info tests
//
// (c) 2024- Sudhi Herle <sudhi@herle.net>
//
// Licensing Terms: GPLv2
//
// If you need a commercial license for this work, please contact
// the author.
//
// This software does not come with any express or implied
// warranty; it is provided "as is". No claim  is made to its
// suitability for any purpose.

package fsentry

import (
	"os"
	"path"
	"testing"
)

func TestBasicInfo(t *testing.T) {
	tmp := t.TempDir()
	nm := path.Join(tmp, "testfile")
	if err := os.WriteFile(nm, []byte("hello\n"), 0644); err != nil {
		t.Fatalf("test file %s: %s", nm, err)
	}

	ii, err := Lstat(nm)
	if err != nil {
		t.Fatalf("fsentry.Lstat: %s: %s", nm, err)
	}

	fi, err := os.Lstat(nm)
	if err != nil {
		t.Fatalf("os.Lstat: %s: %s", nm, err)
	}

	if fi.Size() != ii.Size() {
		t.Errorf("size: exp %d, saw %d", fi.Size(), ii.Size())
	}
	if !fi.ModTime().Equal(ii.ModTime()) {
		t.Errorf("mtime: exp %s, saw %s", fi.ModTime(), ii.ModTime())
	}
	if fi.Mode() != ii.Mode() {
		t.Errorf("mode: exp %#b, saw %#b", fi.Mode(), ii.Mode())
	}
	if ii.Path() != nm {
		t.Errorf("path: exp %s, saw %s", nm, ii.Path())
	}
}

func TestXattrBestEffort(t *testing.T) {
	tmp := t.TempDir()
	nm := path.Join(tmp, "testfile")
	if err := os.WriteFile(nm, []byte("hello\n"), 0644); err != nil {
		t.Fatalf("test file %s: %s", nm, err)
	}

	x, err := GetXattr(nm)
	if err != nil {
		t.Fatalf("getxattr must never fail the walk: %s", err)
	}
	if x == nil {
		t.Fatalf("xattr is nil?")
	}
}

func TestIsSameFS(t *testing.T) {
	tmp := t.TempDir()
	a := path.Join(tmp, "a")
	b := path.Join(tmp, "b")
	for _, nm := range []string{a, b} {
		if err := os.WriteFile(nm, []byte("x"), 0644); err != nil {
			t.Fatalf("test file %s: %s", nm, err)
		}
	}

	ia, err := Lstat(a)
	if err != nil {
		t.Fatalf("lstat %s: %s", a, err)
	}
	ib, err := Lstat(b)
	if err != nil {
		t.Fatalf("lstat %s: %s", b, err)
	}
	if !ia.IsSameFS(ib) {
		t.Errorf("expected %s and %s to be on the same filesystem", a, b)
	}
}
