// Package graph contains commonly-used graph topology definitions & utilities
package graph

// Edge between two members of an ordered set, by index.
type Edge struct{ From, To int }

// EdgeFunc returns the edges of a topology over n members.
type EdgeFunc func(n int) []Edge

// Edges for n members.
func (f EdgeFunc) Edges(n int) []Edge {
	if n < 0 {
		return nil
	}
	return f(n)
}

// Ring topology.  Member i links to member (i+1) mod n, so a ring over n > 1
// members always has exactly n edges.  With n == 2 the two edges form a
// 2-cycle between the same pair of members.
func Ring() EdgeFunc {
	return func(n int) []Edge {
		if n < 2 {
			return nil
		}

		es := make([]Edge, 0, n)
		for i := 0; i < n; i++ {
			es = append(es, Edge{From: i, To: (i + 1) % n})
		}
		return es
	}
}

// Neighbors of member idx under the edge set.
func Neighbors(es []Edge, idx int) []int {
	var ns []int
	for _, e := range es {
		switch idx {
		case e.From:
			ns = append(ns, e.To)
		case e.To:
			ns = append(ns, e.From)
		}
	}
	return ns
}
