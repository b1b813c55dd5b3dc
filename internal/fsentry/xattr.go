// xattr.go - best-effort extended attribute capture for walked entries
//
// Adapted from the xattr read-path of github.com/opencoff/go-fio's
// xattr.go: the write-side helpers (Set/Del/Clear/Replace) have no
// caller in a read-only search tool and are dropped.

package fsentry

import (
	"fmt"
	"strings"

	"github.com/pkg/xattr"
)

// Xattr is the collection of extended attributes found on a file.
type Xattr map[string]string

// String renders all attributes, one per line, as "key=value".
func (x Xattr) String() string {
	var s strings.Builder
	for k, v := range x {
		fmt.Fprintf(&s, "%s=%s\n", k, v)
	}
	return s.String()
}

// GetXattr returns all extended attributes of a file, following symlinks.
func GetXattr(nm string) (Xattr, error) {
	return fetch(nm, xattr.List, xattr.Get)
}

// LgetXattr is like GetXattr but reports the symlink's own attributes
// rather than the attributes of whatever it points to.
func LgetXattr(nm string) (Xattr, error) {
	return fetch(nm, xattr.LList, xattr.LGet)
}

func fetch(nm string, list func(string) ([]string, error), get func(string, string) ([]byte, error)) (Xattr, error) {
	keys, err := list(nm)
	if err != nil {
		// Missing xattr support is common (tmpfs, some network
		// filesystems, non-Linux sandboxes) and must never fail
		// the walk; treat any listing failure as "no attributes".
		return Xattr{}, nil
	}

	x := make(Xattr, len(keys))
	for _, k := range keys {
		b, err := get(nm, k)
		if err != nil {
			continue
		}
		x[k] = string(b)
	}
	return x, nil
}
