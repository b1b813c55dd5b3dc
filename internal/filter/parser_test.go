// parser_test.go - parser round-trip tests
//
// Ported in intent from _examples/original_source/src/filter/parser.rs's
// `filter_parser` table test; also the spec.md §8 "Parser round-trip"
// property.

package filter

import "testing"

func mustParse(t *testing.T, tokens ...string) *Chain {
	t.Helper()
	c, err := Parse(tokens, ParserConfig{Unicode: false})
	if err != nil {
		t.Fatalf("parse %v: unexpected error: %s", tokens, err)
	}
	return c
}

func wantParseErr(t *testing.T, tokens ...string) {
	t.Helper()
	if _, err := Parse(tokens, ParserConfig{Unicode: false}); err == nil {
		t.Fatalf("parse %v: expected an error, got none", tokens)
	}
}

func TestParserRoundTrip(t *testing.T) {
	cases := []struct {
		expected bool
		tokens   []string
	}{
		{true, []string{"TRUE"}},
		{false, []string{"FALSE"}},
		{false, []string{"NOT", "TRUE"}},
		{true, []string{"NOT", "FALSE"}},
		{true, []string{"!", "FALSE"}},
		{true, []string{"!FALSE"}},
		{false, []string{"!!FALSE"}},
		{false, []string{"(", "FALSE", ")"}},
		{true, []string{"!(", "FALSE", ")"}},
		{false, []string{"NOT", "!FALSE"}},
		{false, []string{"TRUE", "FALSE"}},
		{false, []string{"TRUE", "AND", "FALSE"}},
		{false, []string{"NOT", "TRUE", "FALSE"}},
		{false, []string{"NOT", "TRUE", "AND", "FALSE"}},
		{true, []string{"TRUE", "XOR", "TRUE", "AND", "FALSE"}},
		{true, []string{"TRUE", "OR", "TRUE", "AND", "FALSE"}},
		{true, []string{"TRUE", "OR", "FALSE", "XOR", "TRUE"}},
		{false, []string{"TRUE", "OR", "TRUE", ",", "FALSE"}},
		{false, []string{"TRUE", "AND", "TRUE", "AND", "FALSE"}},
		{true, []string{"FALSE", "OR", "FALSE", "OR", "TRUE"}},
		{true, []string{"TRUE", "XOR", "TRUE", "XOR", "TRUE"}},
		{false, []string{"FALSE", ",", "TRUE", ",", "FALSE"}},
		{false, []string{"NOT", "(", "PRINT", "OR", "PRINT0", ")"}},
		{true, []string{"NOT", "NOT", "!(", "!(", "PRINT", ",", "PRINT0", ")", ")"}},
	}

	for _, c := range cases {
		chain := mustParse(t, c.tokens...)
		if got := chain.testLogic(); got != c.expected {
			t.Errorf("parse %v: expected %v, got %v (%#v)", c.tokens, c.expected, got, chain)
		}
	}
}

func TestParserErrors(t *testing.T) {
	errCases := [][]string{
		{""},
		{"?"},
		{"!"},
		{"("},
		{")"},
		{"(", ")"},
		{"NOT", "?"},
		{"!!"},
		{"!NOT"},
		{"!AND"},
		{"TRUE", "?", "FALSE"},
		{"TRUE", "AND", "(", "FALSE"},
		{"TRUE", "AND", "(", "FALSE", ")", ")"},
	}

	for _, tokens := range errCases {
		wantParseErr(t, tokens...)
	}
}
