// tree.go - renders a parsed/reduced chain as a tree for --verbose
// diagnostics (SPEC_FULL.md §4.2 expansion). Grounded on the chain's
// own AST (Chain/Link/Filter in filter.go); the original has no
// visualisation of its own, so the shape here simply walks the same
// fields Apply() and Reduce() already traverse.

package filter

import (
	"fmt"

	"github.com/xlab/treeprint"
)

// Tree renders the chain's structure, one branch per Link, nested
// chains as sub-branches.
func (c *Chain) Tree() string {
	root := treeprint.New()
	root.SetValue(chainLabel(c))
	addLinks(root, c.links)
	return root.String()
}

func chainLabel(c *Chain) string {
	if c.negated {
		return "chain (negated)"
	}
	return "chain"
}

func addLinks(node treeprint.Tree, links []Link) {
	for _, l := range links {
		label := jointLabel(l.joint)
		if l.negated {
			label += " NOT"
		}

		switch l.filter.k {
		case kAnything:
			node.AddNode(label + " true")
		case kName:
			node.AddNode(fmt.Sprintf("%s name(%s)", label, l.filter.matcher))
		case kPath:
			node.AddNode(fmt.Sprintf("%s path(%s)", label, l.filter.matcher))
		case kType:
			node.AddNode(fmt.Sprintf("%s type(%s)", label, l.filter.ftype))
		case kAction:
			node.AddNode(fmt.Sprintf("%s %s", label, l.filter.action))
		case kChain:
			branch := node.AddBranch(label + " (")
			addLinks(branch, l.filter.chain.links)
		}
	}
}

func jointLabel(j Joint) string {
	switch j {
	case And:
		return "AND"
	case Or:
		return "OR"
	case Xor:
		return "XOR"
	default:
		return "YOR"
	}
}
