// Package radial computes deterministic circular layouts for linked notes.
//
// # Overview
//
// A layout places every note on a circle centred in the viewport and keeps
// only the links whose target is one of the laid-out notes. The computation
// is pure: it reads its input, allocates its output and touches nothing
// else, so it can be called from any number of goroutines at once.
//
//	records := []radial.Record[string]{
//	    {ID: "a", Title: "Inbox", Links: []string{"b"}},
//	    {ID: "b", Title: "Ideas"},
//	}
//	l := radial.Compute(records, 600, 400)
//	for _, n := range l.Nodes {
//	    fmt.Println(n.ID, n.X, n.Y)
//	}
//
// # Placement
//
// The centre is (width/2, height/2) and the radius is min(width, height)/3.
// Node i of n sits at angle i·2π/n, measured clockwise from the positive x
// axis in screen coordinates. Input order is the only ordering: nothing is
// sorted, so reordering the input rotates nodes to different slots. A single
// node is placed exactly at the centre and an empty input yields an empty
// layout.
//
// # Edges
//
// Edges are emitted in note order, then in each note's link order. A link is
// kept if and only if its target is a known node id. Self-links are kept.
// Links to unknown ids are dropped without error; [Dropped] lists them for
// callers that want to report broken references.
//
// # Rendering
//
// This package draws nothing. Renderers consume [Layout.Nodes] and
// [Layout.EdgeSegments]; hit-testing for pointer selection is available
// through [Layout.NodeAt].
package radial
