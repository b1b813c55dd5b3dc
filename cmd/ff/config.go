// config.go - flag parsing and the CLI-to-filter-chain translation.
//
// Grounded on _examples/original_source/src/main.rs's single-PATTERN
// handling (glob vs regex, case-insensitive, full-path, unicode) and
// the filter-chain grammar in internal/filter/parser.go: a lone
// positional pattern is wrapped into an implicit
// name/iname/path/ipath/regex/iregex token pair before parsing, while
// two or more positional tokens are passed through verbatim as a full
// filter chain (SPEC_FULL.md §6.2).

package main

import (
	"os"
	"time"

	"github.com/mattn/go-isatty"
	flag "github.com/opencoff/pflag"

	"github.com/opencoff/ff/internal/app"
	"github.com/opencoff/ff/internal/filter"
)

// cliArgs holds every flag value plus the parsed positional
// arguments, before file-config defaults and chain-building.
type cliArgs struct {
	glob          bool
	regex         bool
	ignoreCase    bool
	caseSens      bool
	fullPath      bool
	unicode       bool
	all           bool
	noIgnore      bool
	follow        bool
	mount         bool
	maxDepth      int
	typeSymbol    string
	print0        bool
	absolutePath  bool
	sortPath      bool
	color         string
	colorMode     app.ColorMode
	verbose       bool
	threads       int
	maxBufferMS   int
	maxBufferTime time.Duration
	multiplex     bool
	execArgv      []string

	configFile string
	logFile    string

	root    string
	pattern []string // positional tokens after DIRECTORY
}

func parseArgs(argv []string) *cliArgs {
	cli := &cliArgs{}

	fs := flag.NewFlagSet(z, flag.ExitOnError)

	fs.BoolVarP(&cli.glob, "glob", "g", true, "Use glob pattern matching [default]")
	fs.BoolVarP(&cli.regex, "regex", "r", false, "Use regex pattern matching")
	fs.BoolVarP(&cli.ignoreCase, "ignore-case", "i", false, "Case insensitive search")
	fs.BoolVarP(&cli.caseSens, "case-sensitive", "s", true, "Case sensitive search [default]")
	fs.BoolVarP(&cli.fullPath, "full-path", "p", false, "Match the pattern against the full path")
	fs.BoolVarP(&cli.unicode, "unicode", "u", false, "Enable unicode-aware pattern matching")
	fs.BoolVarP(&cli.all, "all", "a", false, "Include hidden (dot) files")
	fs.BoolVarP(&cli.noIgnore, "no-ignore", "I", false, "Don't respect .gitignore/.ignore files")
	fs.BoolVarP(&cli.follow, "follow", "L", false, "Follow symbolic links")
	fs.BoolVarP(&cli.mount, "mount", "M", false, "Don't descend into other filesystems")
	fs.IntVarP(&cli.maxDepth, "max-depth", "d", 0, "Descend at most `N` levels [unlimited]")
	fs.StringVarP(&cli.typeSymbol, "type", "t", "", "Only match entries of `TYPE` (d,f,l,x)")
	fs.BoolVarP(&cli.print0, "print0", "0", false, "Separate results with a NUL byte")
	fs.BoolVarP(&cli.absolutePath, "absolute-path", "A", false, "Print absolute paths")
	fs.BoolVarP(&cli.sortPath, "sort-path", "S", false, "Sort results lexicographically")
	fs.StringVarP(&cli.color, "color", "c", "auto", "When to use color: auto, always, never")
	fs.BoolVarP(&cli.verbose, "verbose", "v", false, "Emit diagnostic warnings")
	fs.IntVarP(&cli.threads, "threads", "j", 0, "Use `N` threads [0 = #CPUs]")
	fs.IntVar(&cli.maxBufferMS, "max-buffer-time", 100, "Buffer results up to `MILLIS` before streaming")
	fs.BoolVarP(&cli.multiplex, "multiplex", "m", false, "Broadcast stdin to every --exec child")
	fs.StringVar(&cli.configFile, "config", "", "Load flag defaults from `FILE` [~/.ffrc.toml]")
	fs.StringVar(&cli.logFile, "log-file", "", "Send diagnostics to `FILE` instead of stderr")

	fs.Usage = func() { usage(fs) }

	execArgv, rest := splitExecArgv(argv)

	if err := fs.Parse(rest); err != nil {
		die("%s", err)
	}

	cli.execArgv = execArgv
	cli.colorMode = app.ParseColorMode(cli.color)
	cli.maxBufferTime = time.Duration(cli.maxBufferMS) * time.Millisecond

	pos := fs.Args()
	if len(pos) > 0 {
		cli.root = pos[0]
		cli.pattern = pos[1:]
	}

	if cli.regex && cli.glob {
		// --glob is on by default; an explicit --regex overrides it.
		cli.glob = false
	}

	return cli
}

// splitExecArgv pulls "--exec PROG ARG... [;]" (or "-x ...") out of
// argv before pflag ever sees it: pflag has no notion of "consume
// everything until a literal ';'", so this is done by hand, exactly
// as the filter-chain/exec-template split is a CLI concern, not a
// flag-parsing one.
func splitExecArgv(argv []string) (execArgv, rest []string) {
	for i, a := range argv {
		if a == "--exec" || a == "-x" {
			tail := argv[i+1:]
			for j, t := range tail {
				if t == ";" {
					return tail[:j], append(append([]string{}, argv[:i]...), tail[j+1:]...)
				}
			}
			return tail, argv[:i]
		}
	}
	return nil, argv
}

// applyFileDefaults lets ~/.ffrc.toml fill in --max-depth, --threads,
// --max-buffer-time, --color and --log-file (SPEC_FULL.md §6.1
// expansion). A flag counts as unset while it holds its built-in
// default value, so a file value also replaces an explicit flag equal
// to that default. No other file key is applied.
func (cli *cliArgs) applyFileDefaults(fc app.FileConfig) {
	if fc.MaxDepth != 0 && cli.maxDepth == 0 {
		cli.maxDepth = fc.MaxDepth
	}
	if fc.Threads != 0 && cli.threads == 0 {
		cli.threads = fc.Threads
	}
	if fc.MaxBufferMS != 0 && cli.maxBufferMS == 100 {
		cli.maxBufferMS = fc.MaxBufferMS
		cli.maxBufferTime = time.Duration(fc.MaxBufferMS) * time.Millisecond
	}
	if fc.Color != "" && cli.color == "auto" {
		cli.color = fc.Color
		cli.colorMode = app.ParseColorMode(cli.color)
	}
	if fc.LogFile != "" && cli.logFile == "" {
		cli.logFile = fc.LogFile
	}
}

// buildChain assembles the filter chain from the CLI's positional
// tokens, wrapping a lone pattern in the right implicit predicate
// keyword and prepending a "type" token when --type was given.
func buildChain(cli *cliArgs) (*filter.Chain, error) {
	var tokens []string
	if cli.typeSymbol != "" {
		tokens = append(tokens, "type", cli.typeSymbol)
	}

	switch len(cli.pattern) {
	case 0:
		tokens = append(tokens, "true")
	case 1:
		tokens = append(tokens, implicitPredicate(cli), cli.pattern[0])
	default:
		tokens = append(tokens, cli.pattern...)
	}

	return filter.Parse(tokens, filter.ParserConfig{Unicode: cli.unicode})
}

func implicitPredicate(cli *cliArgs) string {
	switch {
	case cli.regex && cli.ignoreCase:
		return "iregex"
	case cli.regex:
		return "regex"
	case cli.fullPath && cli.ignoreCase:
		return "ipath"
	case cli.fullPath:
		return "path"
	case cli.ignoreCase:
		return "iname"
	default:
		return "name"
	}
}

func isStdoutTTY() bool {
	return isatty.IsTerminal(os.Stdout.Fd())
}

func die(format string, args ...any) {
	filter.Die(format, args...)
}
