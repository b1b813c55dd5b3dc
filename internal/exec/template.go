// template.go - exec-mode {} template substitution (spec.md §6.3)
//
// Grounded on _examples/original_source/src/exec/command.rs's
// ExecTemplate: has_stubs/clear_stubs become strings.Contains/
// strings.ReplaceAll since Go strings need none of Rust's OsStr byte
// fiddling; an argv with no "{}" anywhere gets one appended as its own
// final argument, exactly as the original does.

package exec

import "strings"

const stub = "{}"

// Template is a parsed argv with zero or more "{}" placeholders.
type Template struct {
	argv []string
}

// NewTemplate builds a Template from the exec command line's argv
// fragments. If none of them contain "{}", one is appended so every
// invocation still receives the matched path.
func NewTemplate(argv []string) *Template {
	complete := false
	for _, a := range argv {
		if strings.Contains(a, stub) {
			complete = true
			break
		}
	}

	out := make([]string, len(argv), len(argv)+1)
	copy(out, argv)
	if !complete {
		out = append(out, stub)
	}
	return &Template{argv: out}
}

// Apply substitutes every "{}" in every argv fragment with 'path'.
// Fragments without "{}" pass through unchanged.
func (t *Template) Apply(path string) []string {
	out := make([]string, len(t.argv))
	for i, a := range t.argv {
		if strings.Contains(a, stub) {
			out[i] = strings.ReplaceAll(a, stub, path)
		} else {
			out[i] = a
		}
	}
	return out
}

// Empty reports whether the template has no argv fragments at all. A
// Template built by NewTemplate always holds at least the implicit
// "{}" fragment, so Empty is false for it even when argv was empty.
func (t *Template) Empty() bool { return len(t.argv) == 0 }
