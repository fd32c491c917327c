// Package nodelink renders note layouts through Graphviz.
//
// # Overview
//
// The radial positions are already decided by [radial.Compute], so this
// package does not ask Graphviz to lay anything out. [ToDOT] pins every node
// with pos="x,y!" and the neato engine draws the graph as given. This is
// useful when the DOT source itself is wanted, for further processing with
// external Graphviz tools, or when Graphviz's text metrics are preferred over
// the plain SVG of the canvas package.
//
// # Usage
//
//	dot := nodelink.ToDOT(layout, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// PDF and PNG are converted from the SVG with [render.ToPDF] and
// [render.ToPNG], so one Graphviz run serves every format.
//
// # Coordinates
//
// Layout coordinates are pixels with y growing downward. Graphviz points
// grow upward, so y is flipped against the layout height. inputscale=72 makes
// one pixel one point.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
//
// [radial.Compute]: github.com/matzehuels/notegraph/pkg/radial.Compute
// [render.ToPDF]: github.com/matzehuels/notegraph/pkg/render.ToPDF
// [render.ToPNG]: github.com/matzehuels/notegraph/pkg/render.ToPNG
package nodelink
