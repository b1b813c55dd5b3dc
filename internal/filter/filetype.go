// filetype.go - file type predicate values
//
// Grounded on _examples/original_source/src/filter/filetype.rs.

package filter

import (
	"fmt"
	"strings"
)

// FileType names the kind of filesystem entry a Type filter matches.
type FileType int

const (
	// Directory matches directory entries.
	Directory FileType = iota
	// Regular matches regular files.
	Regular
	// SymLink matches symbolic links, whether or not their target exists.
	SymLink
	// Executable matches regular files (or symlinks to one) with any
	// execute permission bit set.
	Executable
)

func (t FileType) String() string {
	switch t {
	case Directory:
		return "directory"
	case Regular:
		return "file"
	case SymLink:
		return "symlink"
	case Executable:
		return "executable"
	default:
		return "unknown"
	}
}

// ParseFileType maps a CLI type symbol ("d", "directory", "f", "file",
// "l", "symlink", "x", "executable"; case-insensitive) to a FileType.
func ParseFileType(symbol string) (FileType, error) {
	switch strings.ToLower(symbol) {
	case "d", "directory":
		return Directory, nil
	case "f", "file":
		return Regular, nil
	case "l", "symlink":
		return SymLink, nil
	case "x", "executable":
		return Executable, nil
	default:
		return 0, fmt.Errorf("found unrecognized file type %q", symbol)
	}
}
