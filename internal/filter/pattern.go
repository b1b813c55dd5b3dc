// pattern.go - opaque glob/regex matcher construction
//
// Grounded on _examples/original_source/src/pattern.rs (PatternBuilder).
// Glob patterns compile via github.com/gobwas/glob, regex patterns via
// the standard library regexp package; both are consumed here only
// through the opaque Matcher interface, per spec.md §1's "we consume
// them as opaque matchers" non-goal.

package filter

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gobwas/glob"
)

// Matcher tests a byte-string subject (a basename or a path, OS-native
// bytes) against a compiled pattern.
type Matcher interface {
	Match(subject []byte) bool
	String() string
}

type globMatcher struct {
	src string
	g   glob.Glob
}

func (m *globMatcher) Match(subject []byte) bool { return m.g.Match(string(subject)) }
func (m *globMatcher) String() string            { return m.src }

type regexMatcher struct {
	re *regexp.Regexp
}

func (m *regexMatcher) Match(subject []byte) bool { return m.re.Match(subject) }
func (m *regexMatcher) String() string            { return m.re.String() }

// PatternBuilder assembles a Matcher the way the original's fluent
// builder does: pick glob or regex, toggle case sensitivity, and (for
// glob patterns) whether '*' should cross path separators.
type PatternBuilder struct {
	pattern       string
	useRegex      bool
	unicode       bool
	caseInsens    bool
	matchFullPath bool
}

// NewPatternBuilder starts building a Matcher for 'pattern'.
func NewPatternBuilder(pattern string) *PatternBuilder {
	return &PatternBuilder{pattern: pattern}
}

func (b *PatternBuilder) UseRegex(on bool) *PatternBuilder      { b.useRegex = on; return b }
func (b *PatternBuilder) Unicode(on bool) *PatternBuilder       { b.unicode = on; return b }
func (b *PatternBuilder) CaseInsensitive(on bool) *PatternBuilder {
	b.caseInsens = on
	return b
}
func (b *PatternBuilder) MatchFullPath(on bool) *PatternBuilder {
	b.matchFullPath = on
	return b
}

// Build compiles the configured pattern into a Matcher.
func (b *PatternBuilder) Build() (Matcher, error) {
	if b.useRegex {
		return b.buildRegex()
	}
	return b.buildGlob()
}

func (b *PatternBuilder) buildRegex() (Matcher, error) {
	pattern := b.pattern
	if !b.unicode {
		pattern = escapeNonASCII(pattern)
	}
	if b.caseInsens {
		pattern = "(?i)" + pattern
	}
	// (?s) so '.' matches newline, mirroring dot_matches_new_line(true).
	pattern = "(?s)" + pattern

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid regex pattern %q: %w", b.pattern, err)
	}
	return &regexMatcher{re: re}, nil
}

func (b *PatternBuilder) buildGlob() (Matcher, error) {
	pattern := b.pattern
	if b.caseInsens {
		pattern = foldCaseGlob(pattern)
	}

	var separators []rune
	if b.matchFullPath {
		separators = []rune{'/'}
	}

	g, err := glob.Compile(pattern, separators...)
	if err != nil {
		return nil, fmt.Errorf("invalid glob pattern %q: %w", b.pattern, err)
	}
	return &globMatcher{src: b.pattern, g: g}, nil
}

// escapeNonASCII hex-escapes bytes outside the printable ASCII range,
// matching the original's workaround for byte-oriented regex patterns
// that aren't declared --unicode.
func escapeNonASCII(s string) string {
	var out strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c <= 0x1F || c >= 0x7F {
			fmt.Fprintf(&out, "\\x%02X", c)
		} else {
			out.WriteByte(c)
		}
	}
	return out.String()
}

// foldCaseGlob wraps each ASCII letter in a [Aa]-style character class
// so glob.Compile can emulate case-insensitive matching, which the
// gobwas/glob package does not support natively.
func foldCaseGlob(s string) string {
	var out strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
			fmt.Fprintf(&out, "[%c%c]", r-32, r)
		case r >= 'A' && r <= 'Z':
			fmt.Fprintf(&out, "[%c%c]", r, r+32)
		default:
			out.WriteRune(r)
		}
	}
	return out.String()
}
