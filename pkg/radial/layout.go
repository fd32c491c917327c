package radial

import "math"

// Record is a note as seen by the layout: an identifier, a display title and
// the identifiers it links to.
type Record[K comparable] struct {
	ID    K
	Title string
	Links []K
}

// Point is a position in viewport pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Node is a record annotated with its computed centre.
type Node[K comparable] struct {
	ID    K
	Title string
	X, Y  float64
}

// Point returns the node centre.
func (n Node[K]) Point() Point { return Point{X: n.X, Y: n.Y} }

// Edge is a directed link between two laid-out nodes.
type Edge[K comparable] struct {
	Source K
	Target K
}

// Layout is the result of [Compute]. It holds no references to the input
// records and can be discarded and recomputed at any time.
type Layout[K comparable] struct {
	Width   float64
	Height  float64
	CenterX float64
	CenterY float64
	Radius  float64

	// Nodes lists every input record in input order with its position.
	Nodes []Node[K]
	// Positions maps each distinct id to its position. For duplicate ids
	// the first occurrence wins.
	Positions map[K]Point
	// Edges holds the valid links in note order, then link order.
	Edges []Edge[K]
}

// Compute lays out records on a circle in a width×height viewport.
//
// Compute never fails and never modifies records. Identical inputs produce
// bit-identical layouts. Zero or negative dimensions are not rejected; they
// collapse or mirror the circle but do not panic.
func Compute[K comparable](records []Record[K], width, height float64) Layout[K] {
	l := Layout[K]{
		Width:     width,
		Height:    height,
		CenterX:   width / 2,
		CenterY:   height / 2,
		Radius:    math.Min(width, height) / 3,
		Positions: make(map[K]Point, len(records)),
	}

	switch len(records) {
	case 0:
		return l
	case 1:
		// 2π/1 is well defined, but a lone node belongs in the middle.
		l.Nodes = []Node[K]{{ID: records[0].ID, Title: records[0].Title, X: l.CenterX, Y: l.CenterY}}
		l.Positions[records[0].ID] = Point{X: l.CenterX, Y: l.CenterY}
	default:
		step := 2 * math.Pi / float64(len(records))
		l.Nodes = make([]Node[K], len(records))
		for i, r := range records {
			angle := float64(i) * step
			n := Node[K]{
				ID:    r.ID,
				Title: r.Title,
				X:     l.CenterX + l.Radius*math.Cos(angle),
				Y:     l.CenterY + l.Radius*math.Sin(angle),
			}
			l.Nodes[i] = n
			if _, seen := l.Positions[r.ID]; !seen {
				l.Positions[r.ID] = n.Point()
			}
		}
	}

	l.Edges = validEdges(records, l.Positions)
	return l
}

// validEdges keeps the links whose target is present in known.
func validEdges[K comparable](records []Record[K], known map[K]Point) []Edge[K] {
	var edges []Edge[K]
	for _, r := range records {
		for _, target := range r.Links {
			if _, ok := known[target]; ok {
				edges = append(edges, Edge[K]{Source: r.ID, Target: target})
			}
		}
	}
	return edges
}

// Dropped returns the links that [Compute] omits because their target is not
// among records, in the same order Compute walks them.
func Dropped[K comparable](records []Record[K]) []Edge[K] {
	known := make(map[K]struct{}, len(records))
	for _, r := range records {
		known[r.ID] = struct{}{}
	}
	var dropped []Edge[K]
	for _, r := range records {
		for _, target := range r.Links {
			if _, ok := known[target]; !ok {
				dropped = append(dropped, Edge[K]{Source: r.ID, Target: target})
			}
		}
	}
	return dropped
}

// Position returns the centre of the node with the given id.
func (l Layout[K]) Position(id K) (Point, bool) {
	p, ok := l.Positions[id]
	return p, ok
}
