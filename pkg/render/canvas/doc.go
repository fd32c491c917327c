// Package canvas draws a note layout as a standalone SVG document.
//
// Edges are straight line segments between node centres, drawn first so
// nodes sit on top of them. Nodes are filled circles of the layout's node
// radius with the title centred inside. Self-links, which are zero-length as
// line segments, are drawn as a small loop on the outside of the node.
//
//	svg := canvas.RenderSVG(layout, canvas.WithStyle(render.DefaultStyle()))
//
// Output is deterministic: the same layout and options always produce the
// same bytes.
package canvas
