// elide.go - grapheme-cluster-aware eliding of long path components
// (SPEC_FULL.md §4.5 expansion). Only active under --unicode: plain
// byte/rune slicing can split a combining sequence or multi-rune emoji
// in half, so long components are shortened cluster-by-cluster instead.

package output

import (
	"strings"

	"github.com/rivo/uniseg"
)

// maxComponentClusters bounds how many grapheme clusters a single path
// component may render before the middle is elided.
const maxComponentClusters = 80

// elideComponent shortens s to at most maxComponentClusters grapheme
// clusters, replacing the middle with a single ellipsis rune so no
// cluster is ever split.
func elideComponent(s string) string {
	clusters := graphemeClusters(s)
	if len(clusters) <= maxComponentClusters {
		return s
	}

	keep := maxComponentClusters - 1 // room for the ellipsis
	head := keep / 2
	tail := keep - head

	var b strings.Builder
	for _, c := range clusters[:head] {
		b.WriteString(c)
	}
	b.WriteRune('…')
	for _, c := range clusters[len(clusters)-tail:] {
		b.WriteString(c)
	}
	return b.String()
}

func graphemeClusters(s string) []string {
	clusters := make([]string, 0, len(s))
	state := -1
	for len(s) > 0 {
		var cluster string
		cluster, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		clusters = append(clusters, cluster)
	}
	return clusters
}
