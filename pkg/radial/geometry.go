package radial

// Segment is an edge resolved to the coordinates of its endpoints.
type Segment[K comparable] struct {
	Edge[K]
	From Point
	To   Point
}

// SelfLoop reports whether the segment starts and ends at the same node.
func (s Segment[K]) SelfLoop() bool { return s.Source == s.Target }

// EdgeSegments resolves every edge to straight-line endpoints, in edge order.
// Self-links produce zero-length segments; drawing them as loops is up to
// the renderer. Edges with an endpoint missing from Positions are skipped.
func (l Layout[K]) EdgeSegments() []Segment[K] {
	segs := make([]Segment[K], 0, len(l.Edges))
	for _, e := range l.Edges {
		from, okS := l.Positions[e.Source]
		to, okT := l.Positions[e.Target]
		if !okS || !okT {
			continue
		}
		segs = append(segs, Segment[K]{Edge: e, From: from, To: to})
	}
	return segs
}

// NodeAt returns the node whose centre is closest to (x, y) and no further
// than hitRadius away. Equal distances resolve to the earlier node.
func (l Layout[K]) NodeAt(x, y, hitRadius float64) (K, bool) {
	var (
		best  K
		found bool
		bestD float64
	)
	limit := hitRadius * hitRadius
	for _, n := range l.Nodes {
		dx, dy := n.X-x, n.Y-y
		d := dx*dx + dy*dy
		if d > limit {
			continue
		}
		if !found || d < bestD {
			best, bestD, found = n.ID, d, true
		}
	}
	return best, found
}
