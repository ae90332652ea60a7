// Copyright (C) 2024 the nextrip maintainers
// See root-dir/LICENSE for more information

package graph

// Enrich returns a copy of nodes where every selectable node carries a
// callback publishing itself to sink. Container nodes pass through
// untouched and the input slice is never mutated, so Layout stays
// independently testable.
func Enrich(nodes []Node, sink func(Node)) []Node {
	out := make([]Node, len(nodes))
	for i, n := range nodes {
		if n.Kind.Selectable() && sink != nil {
			selected := n
			n.OnSelect = func() { sink(selected) }
		}
		out[i] = n
	}
	return out
}
