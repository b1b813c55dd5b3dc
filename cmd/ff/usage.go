// usage.go - help text.
//
// Grounded on _examples/original_source/src/app.rs's usage string and
// help topics, and on _examples/opencoff-go-fio/testsuite/main.go's
// usage(fs *flag.FlagSet) shape (print a header, then fs.PrintDefaults()).

package main

import (
	"fmt"
	"os"

	flag "github.com/opencoff/pflag"
)

const usageHeader = `Usage: %s [OPTIONS] [<DIRECTORY> [PATTERN | FILTER CHAIN]]

A simple and fast utility for file search on Unix commandline.

If DIRECTORY is omitted, the current directory is searched. PATTERN is
either a single glob/regex pattern, or a space-separated filter chain
(predicates name/iname/path/ipath/regex/iregex/type/true/false, joined
by AND (default)/OR/XOR/",", negated with NOT/!, grouped with parens,
and the side-effecting print/print0/prune/quit predicates).

NOTE: if PWD names a symlink pointing at the current working
directory, it is used when resolving a relative path to an absolute
one.

Options:
`

func usage(fs *flag.FlagSet) {
	fmt.Fprintf(os.Stdout, usageHeader, z)
	fs.PrintDefaults()
	os.Exit(1)
}
