// filter.go - the filter chain AST and its evaluator
//
// Grounded on _examples/original_source/src/filter/mod.rs. Joints,
// short-circuit rules, and the reduction entry point are ported
// faithfully; Die/Warn hooks replace the original's free functions
// (see internal/app) so this package stays independent of the CLI
// layer.

package filter

import (
	"os"

	"github.com/opencoff/ff/internal/fsentry"
	"github.com/opencoff/ff/internal/pathutil"
)

// Action is a side effect attached to a matched entry.
type Action int

const (
	Print Action = iota
	Print0
	Prune
	Quit
)

func (a Action) String() string {
	switch a {
	case Print:
		return "print"
	case Print0:
		return "print0"
	case Prune:
		return "prune"
	case Quit:
		return "quit"
	default:
		return "action(?)"
	}
}

// Joint is the binary operator joining two links of a Chain.
type Joint int

const (
	And Joint = iota // short-circuit: false & _ == false
	Or               // short-circuit: true | _ == true
	Xor              // both sides always evaluated
	Yor              // comma: both sides always evaluated, result is rhs
)

func boolJoin(j Joint, lhs, rhs bool) bool {
	switch j {
	case And:
		return lhs && rhs
	case Or:
		return lhs || rhs
	case Xor:
		return lhs != rhs
	default: // Yor
		return rhs
	}
}

// kind tags which field of Filter is populated.
type kind int

const (
	kAnything kind = iota
	kName
	kPath
	kType
	kChain
	kAction
)

// Filter is a leaf predicate (or a nested Chain) in the filter AST.
type Filter struct {
	k       kind
	matcher Matcher
	ftype   FileType
	chain   *Chain
	action  Action
}

func AnythingFilter() Filter                { return Filter{k: kAnything} }
func NameFilter(m Matcher) Filter           { return Filter{k: kName, matcher: m} }
func PathFilter(m Matcher) Filter           { return Filter{k: kPath, matcher: m} }
func TypeFilter(t FileType) Filter          { return Filter{k: kType, ftype: t} }
func ChainFilter(c *Chain) Filter           { return Filter{k: kChain, chain: c} }
func ActionFilter(a Action) Filter          { return Filter{k: kAction, action: a} }

// Link is one step of a Chain: a joint, an optional per-link negation,
// and the filter it gates.
type Link struct {
	joint   Joint
	negated bool
	filter  Filter
}

// Chain encodes the boolean expression T @1 p1 @2 p2 ... @n pn,
// optionally negated as a whole.
type Chain struct {
	negated    bool
	hasActions bool
	links      []Link
}

// NewChain seeds a chain with a single filter, matching the original's
// Chain::new: Filter::Anything, not negated collapses to the empty
// (always-true) chain.
func NewChain(f Filter, negated bool) *Chain {
	c := &Chain{}
	if f.k == kAnything && !negated {
		return c
	}
	return c.And(f, negated)
}

func (c *Chain) push(l Link) *Chain {
	switch {
	case l.filter.k == kAction:
		c.hasActions = true
	case l.filter.k == kChain && l.filter.chain != nil && l.filter.chain.hasActions:
		c.hasActions = true
	}
	c.links = append(c.links, l)
	return c
}

func (c *Chain) And(f Filter, negated bool) *Chain { return c.push(Link{And, negated, f}) }
func (c *Chain) Or(f Filter, negated bool) *Chain  { return c.push(Link{Or, negated, f}) }
func (c *Chain) Xor(f Filter, negated bool) *Chain { return c.push(Link{Xor, negated, f}) }
func (c *Chain) Yor(f Filter, negated bool) *Chain { return c.push(Link{Yor, negated, f}) }

// Not negates the chain as a whole. x.Not().Or(y) == x.Or(y).Not().
func (c *Chain) Not() *Chain {
	c.negated = !c.negated
	return c
}

// HasActions reports whether any reachable Action leaf exists.
func (c *Chain) HasActions() bool { return c.hasActions }

// Config carries the filter-chain evaluation options pulled from CLI
// flags that affect matching (as opposed to parsing).
type Config struct {
	MatchFullPath  bool
	NullTerminator bool
}

// Apply evaluates the chain against 'entry' and returns the actions to
// execute; an empty result means "this entry is skipped". If the
// chain is true overall, produced no explicit action, and contains no
// Action leaf at all, the default Print/Print0 action is inserted per
// config.NullTerminator.
func (c *Chain) Apply(entry *fsentry.DirEntry, config Config) []Action {
	actions := make([]Action, 0, 1)

	if c.test(entry, config, &actions) {
		if len(actions) == 0 && !c.hasActions {
			if config.NullTerminator {
				actions = append(actions, Print0)
			} else {
				actions = append(actions, Print)
			}
		}
	}
	return actions
}

func (c *Chain) test(entry *fsentry.DirEntry, config Config, actions *[]Action) bool {
	result := true

	for _, link := range c.links {
		if (result == false && link.joint == And) || (result == true && link.joint == Or) {
			continue
		}

		switch link.filter.k {
		case kName:
			rhs := testPattern(link.filter.matcher, entry, false, false) != link.negated
			result = boolJoin(link.joint, result, rhs)
		case kPath:
			rhs := testPattern(link.filter.matcher, entry, true, config.MatchFullPath) != link.negated
			result = boolJoin(link.joint, result, rhs)
		case kType:
			rhs := testFileType(link.filter.ftype, entry) != link.negated
			result = boolJoin(link.joint, result, rhs)
		case kChain:
			rhs := link.filter.chain.test(entry, config, actions) != link.negated
			result = boolJoin(link.joint, result, rhs)
		case kAction:
			*actions = append(*actions, link.filter.action)
			result = boolJoin(link.joint, result, true != link.negated)
		default: // kAnything
			result = boolJoin(link.joint, result, true != link.negated)
		}
	}

	return result != c.negated
}

func testPattern(m Matcher, entry *fsentry.DirEntry, matchPath, matchFullPath bool) bool {
	path := entry.Path()

	if matchFullPath {
		abs, err := pathutil.ToAbsolutePath(path)
		if err != nil {
			Die("could not get full path of %q: %s", path, err)
		}
		return m.Match([]byte(abs))
	}
	if matchPath {
		return m.Match([]byte(path))
	}

	base := basename(path)
	if base == "" {
		return false
	}
	return m.Match([]byte(base))
}

func testFileType(t FileType, entry *fsentry.DirEntry) bool {
	if !entry.KindKnown() {
		Warn("could not get file type of %q", entry.Path())
		return false
	}

	switch t {
	case Directory:
		return entry.Kind() == fsentry.KindDir
	case Regular:
		return entry.Kind() == fsentry.KindFile
	case SymLink:
		return entry.Kind() == fsentry.KindSymlink
	case Executable:
		// os.Stat always follows symlinks, mirroring entry_path.metadata().
		fi, err := os.Stat(entry.Path())
		if err != nil {
			if entry.Kind() != fsentry.KindSymlink {
				Warn("could not get metadata of %q", entry.Path())
			}
			return false
		}
		return !fi.IsDir() &&
			(entry.Kind() == fsentry.KindFile || entry.Kind() == fsentry.KindSymlink) &&
			pathutil.IsExecutable(fi.Mode())
	default:
		return false
	}
}

func basename(path string) string {
	i := len(path) - 1
	for i >= 0 && path[i] != '/' {
		i--
	}
	return path[i+1:]
}

// testLogic is the pure-boolean twin of test(), used by the reduction
// self-check tests against synthetic chains built only from Anything
// and Action leaves (see filter_test.go).
func (c *Chain) testLogic() bool {
	result := true
	for _, link := range c.links {
		if (result == false && link.joint == And) || (result == true && link.joint == Or) {
			continue
		}
		switch link.filter.k {
		case kChain:
			rhs := link.filter.chain.testLogic() != link.negated
			result = boolJoin(link.joint, result, rhs)
		case kAnything, kAction:
			result = boolJoin(link.joint, result, true != link.negated)
		default:
			panic("testLogic: chain contains a non-synthetic leaf")
		}
	}
	return result != c.negated
}
