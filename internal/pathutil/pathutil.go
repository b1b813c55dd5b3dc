// pathutil.go - PWD-aware path resolution and small fs predicates
//
// Grounded on _examples/original_source/src/fshelper.rs. Unix only,
// matching the teacher's own build-tag conventions elsewhere in the
// tree (info_linux.go, info_darbsd.go).

package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var (
	pwdOnce sync.Once
	pwd     string
	hasPWD  bool
)

// resolvePWD mirrors the Rust implementation's lazy_static PWD: prefer
// the $PWD environment variable over os.Getwd() when $PWD is an
// absolute path that names the same directory as the real working
// directory (so that a symlinked path component the user cd'd through
// is preserved instead of being silently resolved away).
func resolvePWD() {
	pwdOnce.Do(func() {
		cwd, err := os.Getwd()
		if err != nil {
			return
		}

		if env := os.Getenv("PWD"); filepath.IsAbs(env) && sameDir(cwd, env) {
			pwd = env
			hasPWD = true
			return
		}
		if filepath.IsAbs(cwd) {
			pwd = cwd
			hasPWD = true
		}
	})
}

func sameDir(a, b string) bool {
	fa, err := os.Stat(a)
	if err != nil {
		return false
	}
	fb, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(fa, fb)
}

// ToAbsolutePath resolves 'path' to an absolute path using the
// process's resolved PWD (see resolvePWD), without canonicalizing
// symlinks. An already-absolute path is returned unchanged.
func ToAbsolutePath(path string) (string, error) {
	if filepath.IsAbs(path) {
		return path, nil
	}

	resolvePWD()
	if !hasPWD {
		return "", fmt.Errorf("could not resolve relative path %q into an absolute path", path)
	}

	trimmed := strings.TrimPrefix(path, "."+string(filepath.Separator))
	if trimmed == "." {
		trimmed = ""
	}
	return filepath.Join(pwd, trimmed), nil
}

// IsExecutable reports whether the file permission bits of 'mode'
// include any execute bit.
func IsExecutable(mode os.FileMode) bool {
	return mode.Perm()&0o111 != 0
}
