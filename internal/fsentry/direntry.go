// direntry.go - the producer stage's per-entry record
//
// Grounded on spec's DirEntry entity and the teacher's Info/Xattr
// capture; there is no single teacher file for this (the walked-entry
// type in go-fio's own walk.go is untyped path+os.DirEntry), so this
// is assembled from Info plus the depth/kind bookkeeping the walker
// needs to track per the producer stage design.

package fsentry

import "io/fs"

// Kind is the coarse file-type tag carried by a DirEntry.
type Kind int

const (
	KindOther Kind = iota
	KindDir
	KindFile
	KindSymlink
)

// DirEntry is one entry yielded by the producer's directory walk:
// a path, an optional file-type tag, and the entry's depth relative
// to the root it was discovered under. Depth 0 denotes the root of a
// walk and is never emitted to the filter chain.
type DirEntry struct {
	path   string
	kind   Kind
	known  bool // false => file-type could not be determined
	depth  int
	broken bool // reconstructed broken-symlink record
	info   *Info
}

// NewDirEntry builds a DirEntry from a path, its depth, and (when
// available) its stat-ed Info.
func NewDirEntry(path string, depth int, info *Info) *DirEntry {
	d := &DirEntry{path: path, depth: depth, info: info}
	if info != nil {
		d.known = true
		d.kind = kindOf(info.Mode())
	}
	return d
}

// NewBrokenSymlink synthesizes a DirEntry for a symlink whose target
// does not exist: the walker cannot stat through it, but lstat
// metadata proves it is a symlink.
func NewBrokenSymlink(path string, depth int) *DirEntry {
	return &DirEntry{path: path, depth: depth, kind: KindSymlink, known: true, broken: true}
}

func kindOf(mode fs.FileMode) Kind {
	switch {
	case mode&fs.ModeSymlink != 0:
		return KindSymlink
	case mode.IsDir():
		return KindDir
	case mode.IsRegular():
		return KindFile
	default:
		return KindOther
	}
}

// Path returns the entry's path as discovered by the walker.
func (d *DirEntry) Path() string { return d.path }

// Depth returns the entry's depth relative to its walk root.
func (d *DirEntry) Depth() int { return d.depth }

// Kind returns the entry's file-type tag.
func (d *DirEntry) Kind() Kind { return d.kind }

// KindKnown reports whether the file type could be determined. A
// false result means the entry should be dropped with a warning
// unless it was reconstructed as a broken-symlink record.
func (d *DirEntry) KindKnown() bool { return d.known }

// IsBrokenSymlink reports whether this entry is a synthetic record for
// a symlink whose target does not exist.
func (d *DirEntry) IsBrokenSymlink() bool { return d.broken }

// Info returns the captured stat metadata, or nil for broken-symlink
// records and other entries where stat failed.
func (d *DirEntry) Info() *Info { return d.info }
