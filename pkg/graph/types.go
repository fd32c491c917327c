package graph

import (
	"github.com/matzehuels/notegraph/pkg/note"
	"github.com/matzehuels/notegraph/pkg/radial"
)

// DefaultNodeRadius is the circle radius renderers use for nodes, in pixels.
const DefaultNodeRadius = 20.0

// =============================================================================
// Layout - Serialized Radial Layout
// =============================================================================

// Layout is the serialization format for a computed radial layout.
type Layout struct {
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	CenterX    float64 `json:"center_x"`
	CenterY    float64 `json:"center_y"`
	Radius     float64 `json:"radius"`
	NodeRadius float64 `json:"node_radius,omitempty"`

	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Node is a positioned note.
type Node struct {
	ID    string  `json:"id"`
	Title string  `json:"title,omitempty"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

// DisplayLabel returns the title if set, otherwise the ID.
func (n *Node) DisplayLabel() string {
	if n.Title != "" {
		return n.Title
	}
	return n.ID
}

// Edge is a directed link between two nodes.
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// =============================================================================
// radial.Layout ↔ Layout Conversion
// =============================================================================

// FromRadial converts a computed layout to its serialization format.
// A nodeRadius of zero is replaced by [DefaultNodeRadius].
func FromRadial(l radial.Layout[note.ID], nodeRadius float64) Layout {
	if nodeRadius == 0 {
		nodeRadius = DefaultNodeRadius
	}
	out := Layout{
		Width:      l.Width,
		Height:     l.Height,
		CenterX:    l.CenterX,
		CenterY:    l.CenterY,
		Radius:     l.Radius,
		NodeRadius: nodeRadius,
		Nodes:      make([]Node, len(l.Nodes)),
		Edges:      make([]Edge, len(l.Edges)),
	}
	for i, n := range l.Nodes {
		out.Nodes[i] = Node{ID: string(n.ID), Title: n.Title, X: n.X, Y: n.Y}
	}
	for i, e := range l.Edges {
		out.Edges[i] = Edge{Source: string(e.Source), Target: string(e.Target)}
	}
	return out
}

// ToRadial rebuilds the in-memory layout. Positions follow the same
// first-occurrence rule as radial.Compute.
func (l Layout) ToRadial() radial.Layout[note.ID] {
	out := radial.Layout[note.ID]{
		Width:     l.Width,
		Height:    l.Height,
		CenterX:   l.CenterX,
		CenterY:   l.CenterY,
		Radius:    l.Radius,
		Positions: make(map[note.ID]radial.Point, len(l.Nodes)),
	}
	if len(l.Nodes) > 0 {
		out.Nodes = make([]radial.Node[note.ID], len(l.Nodes))
	}
	for i, n := range l.Nodes {
		id := note.ID(n.ID)
		out.Nodes[i] = radial.Node[note.ID]{ID: id, Title: n.Title, X: n.X, Y: n.Y}
		if _, seen := out.Positions[id]; !seen {
			out.Positions[id] = radial.Point{X: n.X, Y: n.Y}
		}
	}
	for _, e := range l.Edges {
		out.Edges = append(out.Edges, radial.Edge[note.ID]{Source: note.ID(e.Source), Target: note.ID(e.Target)})
	}
	return out
}
