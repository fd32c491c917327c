// Package render turns computed note layouts into visual output.
//
// # Overview
//
// Layout and drawing are separate stages. pkg/radial computes geometry;
// the renderers here only map that geometry onto a surface:
//
//   - [canvas]: direct SVG output (lines, filled circles, centred labels)
//   - [nodelink]: Graphviz DOT with pinned positions, rendered in-process
//
// Both consume the serialized [graph.Layout], so a layout.json written by
// one run can be rendered by another.
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg).
//
//	svg := canvas.RenderSVG(layout)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// # Styles
//
// [Style] holds the colours and font settings shared by both renderers.
// [DefaultStyle] matches the classic look: grey edges, dark nodes with
// white labels.
//
// [canvas]: github.com/matzehuels/notegraph/pkg/render/canvas
// [nodelink]: github.com/matzehuels/notegraph/pkg/render/nodelink
// [graph.Layout]: github.com/matzehuels/notegraph/pkg/graph.Layout
package render
