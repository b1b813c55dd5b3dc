// reduction.go - algebraic simplification of a filter chain
//
// Faithful port of _examples/original_source/src/filter/reduction.rs.
// The correctness property this preserves: every reduction leaves both
// the truth table of the chain AND the multiset of actions it
// produces unchanged on every input (see filter_test.go's self-check).

package filter

import "github.com/samber/lo"

// Reduce simplifies 'chain' in place and returns it. Collapses
// TRUE/FALSE short-circuits, flattens uniform-joint nested chains, and
// collapses singleton chains, without altering observable behaviour.
func Reduce(chain *Chain) *Chain {
	for len(chain.links) > 0 {
		recur := false
		links := make([]Link, 0, len(chain.links))

		for _, link := range chain.links {
			switch link.filter.k {
			case kAnything:
				switch link.joint {
				case And:
					if !link.negated {
						continue // "AND TRUE" is identity
					}
					dropDeadLinks(&links) // "AND FALSE" short-circuits
				case Or:
					if link.negated {
						continue // "OR FALSE" is identity
					}
					dropDeadLinks(&links) // "OR TRUE" short-circuits
				case Xor:
					if link.negated {
						continue // "XOR FALSE" is identity
					}
					// "XOR TRUE" flips the running value; not droppable.
				case Yor:
					dropDeadLinks(&links)
				}
			case kAction:
				switch link.joint {
				case And:
					if link.negated {
						dropDeadLinks(&links)
					}
				case Or:
					if !link.negated {
						dropDeadLinks(&links)
					}
				case Yor:
					dropDeadLinks(&links)
				}
			}

			if mergeLinks(&links, link) {
				recur = true
			}
		}

		chain.links = links
		if !recur {
			break
		}
	}

	if len(chain.links) == 1 {
		reduceSingletonChain(chain)
	}
	checkActions(chain)

	return chain
}

func checkActions(chain *Chain) {
	chain.hasActions = lo.SomeBy(chain.links, func(link Link) bool {
		return link.filter.k == kAction ||
			(link.filter.k == kChain && link.filter.chain.hasActions)
	})
}

// dropDeadLinks pops links off the tail that can no longer affect the
// chain's result (a short-circuit just occurred), stopping as soon as
// it finds a link that still carries an observable action.
func dropDeadLinks(links *[]Link) {
	for len(*links) > 0 {
		last := (*links)[len(*links)-1]
		droppable := false
		switch last.filter.k {
		case kAction:
			droppable = false
		case kChain:
			droppable = !last.filter.chain.hasActions
		default:
			droppable = true
		}
		if !droppable {
			break
		}
		*links = (*links)[:len(*links)-1]
	}
}

func mergeLinks(links *[]Link, link Link) bool {
	if link.filter.k != kChain {
		*links = append(*links, link)
		return false
	}

	joint, negated := link.joint, link.negated
	chain := Reduce(link.filter.chain)

	var result *Link

	if len(chain.links) <= 1 {
		result = mergeSingletonLink(links, joint, negated, chain)
	} else {
		any1st := 0
		if len(chain.links) >= 2 {
			switch chain.links[0].filter.k {
			case kAnything, kAction:
				any1st = 1
			}
		}
		true1st, false1st := 0, 0
		if any1st == 1 {
			v := boolJoin(chain.links[0].joint, true, !chain.links[0].negated)
			if v {
				true1st = 1
			} else {
				false1st = 1
			}
		}

		switch {
		case false1st == 1 && allJoint(chain.links[false1st:], Or):
			result = mergeOrLinks(links, joint, negated, chain, false1st)
		case allJoint(chain.links[true1st:], And):
			result = mergeAndLinks(links, joint, negated, chain, true1st)
		case allJoint(chain.links[any1st:], Yor):
			result = mergeYorLinks(links, joint, negated, chain, any1st)
		case allJoint(chain.links[true1st|false1st:], Xor):
			result = mergeXorLinks(links, joint, negated, chain, true1st, false1st)
		case allJoint(chain.links[true1st:], Or):
			*links = append(*links, Link{joint, negated != chain.negated, AnythingFilter()})
			result = nil
		default:
			l := Link{joint, negated, ChainFilter(chain)}
			result = &l
		}
	}

	if result != nil {
		*links = append(*links, *result)
		return false
	}
	return true
}

func allJoint(links []Link, j Joint) bool {
	return lo.EveryBy(links, func(l Link) bool { return l.joint == j })
}

// merge a chain of the form (TRUE @ link) -- zero or one link.
func mergeSingletonLink(links *[]Link, joint Joint, negated bool, chain *Chain) *Link {
	var link Link
	if len(chain.links) == 0 {
		link = Link{And, false, AnythingFilter()}
	} else {
		link = chain.links[0]
	}

	switch link.joint {
	case And, Yor:
		// no change
	case Xor:
		link.negated = !link.negated
	case Or:
		link.filter = AnythingFilter()
	}
	link.joint = joint
	link.negated = link.negated != (negated != chain.negated)
	*links = append(*links, link)
	return nil
}

// merge a chain of the form (TRUE & link & ...).
func mergeAndLinks(links *[]Link, joint Joint, negated bool, chain *Chain, true1st int) *Link {
	if true1st == 1 {
		chain.links[0].joint = And
		chain.links[0].negated = false
	}

	if joint == And && !(negated != chain.negated) {
		*links = append(*links, chain.links...)
		return nil
	}
	if joint == Or && (negated != chain.negated) {
		for i := range chain.links {
			chain.links[i].joint = Or
			chain.links[i].negated = !chain.links[i].negated
		}
		*links = append(*links, chain.links...)
		return nil
	}

	okay := false
	switch joint {
	case And, Or, Xor:
		okay = len(chain.links) == 1
	case Yor:
		okay = true
	}

	if okay {
		idx := len(chain.links) - 1
		chain.links[idx].negated = chain.links[idx].negated != (negated != chain.negated)
		chain.links[0].joint = joint
		*links = append(*links, chain.links...)
		return nil
	}

	if chain.negated {
		for i := range chain.links {
			chain.links[i].joint = Or
			chain.links[i].negated = !chain.links[i].negated
		}
		chain.links = append([]Link{{And, true, AnythingFilter()}}, chain.links...)
		return mergeOrLinks(links, joint, negated, chain.Not(), 1)
	}

	l := Link{joint, negated, ChainFilter(chain)}
	return &l
}

// merge a chain of the form (FALSE | link | ...).
func mergeOrLinks(links *[]Link, joint Joint, negated bool, chain *Chain, false1st int) *Link {
	if false1st == 1 {
		chain.links[0].joint = And
		chain.links[0].negated = true
	}

	if joint == Or && !(negated != chain.negated) {
		chain.links = chain.links[1:]
		*links = append(*links, chain.links...)
		return nil
	}
	if joint == And && (negated != chain.negated) {
		for i := range chain.links {
			chain.links[i].joint = And
			chain.links[i].negated = !chain.links[i].negated
		}
		*links = append(*links, chain.links...)
		return nil
	}

	if len(chain.links) == 1 {
		chain.links[0].negated = chain.links[0].negated != (negated != chain.negated)
		chain.links[0].joint = joint
		*links = append(*links, chain.links...)
		return nil
	}

	if chain.negated {
		for i := range chain.links {
			chain.links[i].joint = And
			chain.links[i].negated = !chain.links[i].negated
		}
		chain.links[0].joint = And
		chain.links[0].negated = false
		return mergeAndLinks(links, joint, negated, chain.Not(), 1)
	}

	l := Link{joint, negated, ChainFilter(chain)}
	return &l
}

// merge a chain of the form (TRUE ^ link ^ ...) or (FALSE ^ link ^ ...).
func mergeXorLinks(links *[]Link, joint Joint, negated bool, chain *Chain, true1st, false1st int) *Link {
	if true1st == 1 {
		chain.links[0].joint = Xor
		chain.links[0].negated = true
	}
	if false1st == 1 {
		chain.links[0].joint = Xor
		chain.links[0].negated = false
	}

	okay := false
	switch joint {
	case And, Or:
		okay = len(chain.links) == 1
	case Xor, Yor:
		okay = true
	}

	if okay {
		idx := len(chain.links) - 1
		chain.links[idx].negated = chain.links[idx].negated != (negated != chain.negated) != true
		chain.links[0].joint = joint
		*links = append(*links, chain.links...)
		return nil
	}

	l := Link{joint, negated, ChainFilter(chain)}
	return &l
}

// merge a chain of the form (TRUE $ link $ ...) -- Yor.
func mergeYorLinks(links *[]Link, joint Joint, negated bool, chain *Chain, any1st int) *Link {
	okay := false
	switch joint {
	case And, Or:
		okay = len(chain.links) == 1
	case Xor:
		okay = len(chain.links) >= 1 && len(chain.links) <= 1+any1st
	case Yor:
		okay = true
	}

	if okay {
		idx := len(chain.links) - 1
		chain.links[idx].negated = chain.links[idx].negated != (negated != chain.negated)
		chain.links[0].joint = joint
		*links = append(*links, chain.links...)
		return nil
	}

	l := Link{joint, negated, ChainFilter(chain)}
	return &l
}

// collapse a chain of the form (TRUE @ link) -- exactly one link.
func reduceSingletonChain(chain *Chain) {
	link := chain.links[0]
	chain.links = chain.links[:0]

	if link.filter.k != kChain {
		chain.links = append(chain.links, link)
		return
	}

	c := link.filter.chain
	switch link.joint {
	case And, Yor:
		c.negated = c.negated != (chain.negated != link.negated)
		*chain = *c
	case Xor:
		c.negated = c.negated != chain.negated != true != link.negated
		*chain = *c
	case Or:
		if !c.hasActions {
			// nothing: an OR'd-away chain with no actions vanishes
		} else {
			chain.links = append(chain.links, Link{link.joint, link.negated, ChainFilter(c)})
		}
	}
}
