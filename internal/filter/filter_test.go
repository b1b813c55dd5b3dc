// filter_test.go - filter algebra self-check
//
// Ported in intent from _examples/original_source/src/filter/mod.rs's
// `filter_logic` table test: for every chain built below, both the
// unreduced and the Reduce()-d form must agree with the expected
// truth value. This is the testable property from spec.md §8 ("Filter
// algebra").

package filter

import "testing"

func leaf(v bool) *Chain { return NewChain(AnythingFilter(), !v) }
func act(v bool) *Chain  { return NewChain(ActionFilter(Print), !v) }

func and2(x, y bool) *Chain { return leaf(x).And(AnythingFilter(), !y) }
func or2(x, y bool) *Chain  { return leaf(x).Or(AnythingFilter(), !y) }
func xor2(x, y bool) *Chain { return leaf(x).Xor(AnythingFilter(), !y) }
func yor2(x, y bool) *Chain { return leaf(x).Yor(AnythingFilter(), !y) }

func cand(x, y *Chain) *Chain { return x.And(ChainFilter(y), false) }
func cor(x, y *Chain) *Chain  { return x.Or(ChainFilter(y), false) }
func cxor(x, y *Chain) *Chain { return x.Xor(ChainFilter(y), false) }
func cyor(x, y *Chain) *Chain { return x.Yor(ChainFilter(y), false) }

func check(t *testing.T, expected bool, c *Chain) {
	t.Helper()
	if got := c.testLogic(); got != expected {
		t.Errorf("unreduced: expected %v, got %v", expected, got)
	}
	r := Reduce(c)
	if got := r.testLogic(); got != expected {
		t.Errorf("reduced: expected %v, got %v", expected, got)
	}
}

func TestFilterLogicLeaves(t *testing.T) {
	check(t, true, leaf(true))
	check(t, false, leaf(false))
	check(t, false, leaf(true).Not())
	check(t, true, leaf(false).Not())
}

func TestFilterLogicAnd(t *testing.T) {
	check(t, true, and2(true, true))
	check(t, false, and2(true, false))
	check(t, false, and2(false, true))
	check(t, false, and2(false, false))
}

func TestFilterLogicOr(t *testing.T) {
	check(t, true, or2(true, true))
	check(t, true, or2(true, false))
	check(t, true, or2(false, true))
	check(t, false, or2(false, false))
}

func TestFilterLogicXor(t *testing.T) {
	check(t, false, xor2(true, true))
	check(t, true, xor2(true, false))
	check(t, true, xor2(false, true))
	check(t, false, xor2(false, false))
}

func TestFilterLogicYor(t *testing.T) {
	check(t, true, yor2(true, true))
	check(t, false, yor2(true, false))
	check(t, true, yor2(false, true))
	check(t, false, yor2(false, false))
}

func TestFilterLogicNegatedJoints(t *testing.T) {
	check(t, false, and2(true, true).Not())
	check(t, true, and2(true, false).Not())
	check(t, true, and2(false, true).Not())
	check(t, true, and2(false, false).Not())

	check(t, false, or2(true, true).Not())
	check(t, false, or2(true, false).Not())
	check(t, false, or2(false, true).Not())
	check(t, true, or2(false, false).Not())

	check(t, true, xor2(true, true).Not())
	check(t, false, xor2(true, false).Not())
	check(t, false, xor2(false, true).Not())
	check(t, true, xor2(false, false).Not())

	check(t, false, yor2(true, true).Not())
	check(t, true, yor2(true, false).Not())
	check(t, false, yor2(false, true).Not())
	check(t, true, yor2(false, false).Not())
}

func TestFilterLogicNestedChains(t *testing.T) {
	check(t, true, cxor(and2(false, true), leaf(true)))
	check(t, false, cxor(or2(true, false), leaf(true)))
	check(t, false, cxor(xor2(true, false), leaf(true)))
	check(t, false, cxor(yor2(false, true), leaf(true)))

	check(t, true, cor(and2(false, true), leaf(true)))
	check(t, true, cyor(and2(false, true), leaf(true)))
	check(t, false, cand(or2(true, false), leaf(false)))
	check(t, false, cyor(or2(true, false), leaf(false)))

	check(t, false, cand(leaf(true), leaf(true).Not()))
	check(t, true, cand(leaf(true), leaf(false).Not()))
	check(t, false, cand(leaf(false), leaf(true).Not()))
	check(t, false, cand(leaf(false), leaf(false).Not()))

	check(t, true, cor(leaf(true), leaf(true).Not()))
	check(t, true, cor(leaf(true), leaf(false).Not()))
	check(t, false, cor(leaf(false), leaf(true).Not()))
	check(t, true, cor(leaf(false), leaf(false).Not()))
}

func TestFilterLogicActionsDontChangeTruth(t *testing.T) {
	// Action leaves are always true-valued, like Anything, but they
	// additionally record a side effect. Reduction must preserve the
	// truth table even when it drops/merges action-bearing links.
	check(t, true, act(true))
	check(t, false, act(false))
	check(t, false, cand(act(true), and2(true, true).And(ActionFilter(Print), true)))
}

func TestFilterLogicDeepNesting(t *testing.T) {
	check(t, false, cand(leaf(true), cand(leaf(true), act(true))).Not())
	check(t, false, cand(leaf(true), cor(leaf(true), act(true))).Not())
	check(t, true, cand(leaf(true), cxor(leaf(true), act(true))).Not())
	check(t, false, cand(leaf(true), cyor(leaf(true), act(true))).Not())
}
