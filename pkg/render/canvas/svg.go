package canvas

import (
	"bytes"
	"fmt"
	"html"
	"math"

	"github.com/matzehuels/notegraph/pkg/graph"
	"github.com/matzehuels/notegraph/pkg/note"
	"github.com/matzehuels/notegraph/pkg/radial"
	"github.com/matzehuels/notegraph/pkg/render"
)

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style     render.Style
	maxLabel  int
	selfLoops bool
}

// WithStyle sets colours and fonts. Unset fields fall back to
// [render.DefaultStyle].
func WithStyle(s render.Style) SVGOption { return func(r *svgRenderer) { r.style = s.WithDefaults() } }

// WithMaxLabel truncates labels longer than n runes; zero disables truncation.
func WithMaxLabel(n int) SVGOption { return func(r *svgRenderer) { r.maxLabel = n } }

// WithoutSelfLoops skips drawing self-links.
func WithoutSelfLoops() SVGOption { return func(r *svgRenderer) { r.selfLoops = false } }

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{style: render.DefaultStyle(), selfLoops: true}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// RenderSVG renders l as an SVG document sized to the layout viewport.
func RenderSVG(l graph.Layout, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)

	nodeR := l.NodeRadius
	if nodeR <= 0 {
		nodeR = graph.DefaultNodeRadius
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%.0f" height="%.0f">`+"\n",
		num(l.Width), num(l.Height), l.Width, l.Height)

	if r.style.Background != "" {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", attr(r.style.Background))
	}

	fmt.Fprintf(&buf, `  <g class="edges" stroke="%s" stroke-width="%s" fill="none">`+"\n",
		attr(r.style.EdgeColor), num(r.style.EdgeWidth))
	for _, seg := range l.ToRadial().EdgeSegments() {
		if seg.SelfLoop() {
			if r.selfLoops {
				renderSelfLoop(&buf, l, seg, nodeR)
			}
			continue
		}
		fmt.Fprintf(&buf, `    <line x1="%s" y1="%s" x2="%s" y2="%s" data-source="%s" data-target="%s"/>`+"\n",
			num(seg.From.X), num(seg.From.Y), num(seg.To.X), num(seg.To.Y), attr(string(seg.Source)), attr(string(seg.Target)))
	}
	buf.WriteString("  </g>\n")

	fmt.Fprintf(&buf, `  <g class="nodes" font-family="%s" font-size="%s" text-anchor="middle" dominant-baseline="middle">`+"\n",
		attr(r.style.FontFamily), num(r.style.FontSize))
	for _, n := range l.Nodes {
		fmt.Fprintf(&buf, `    <g class="node" data-id="%s">`+"\n", attr(n.ID))
		fmt.Fprintf(&buf, `      <circle cx="%s" cy="%s" r="%s" fill="%s"/>`+"\n",
			num(n.X), num(n.Y), num(nodeR), attr(r.style.NodeColor))
		fmt.Fprintf(&buf, `      <text x="%s" y="%s" fill="%s">%s</text>`+"\n",
			num(n.X), num(n.Y), attr(r.style.LabelColor), html.EscapeString(render.Truncate(n.DisplayLabel(), r.maxLabel)))
		buf.WriteString("    </g>\n")
	}
	buf.WriteString("  </g>\n")

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// renderSelfLoop draws a loop on the side of the node facing away from the
// layout centre, so it does not cross the circle's interior.
func renderSelfLoop(buf *bytes.Buffer, l graph.Layout, seg radial.Segment[note.ID], nodeR float64) {
	dx, dy := seg.From.X-l.CenterX, seg.From.Y-l.CenterY
	d := math.Hypot(dx, dy)
	if d == 0 {
		dx, dy, d = 0, -1, 1
	}
	cx := seg.From.X + dx/d*nodeR
	cy := seg.From.Y + dy/d*nodeR
	fmt.Fprintf(buf, `    <circle cx="%s" cy="%s" r="%s" data-source="%s" data-target="%s"/>`+"\n",
		num(cx), num(cy), num(nodeR/2), attr(string(seg.Source)), attr(string(seg.Target)))
}

// num formats a coordinate with two decimals, trimming trailing zeros.
func num(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	for s[len(s)-1] == '0' {
		s = s[:len(s)-1]
	}
	if s[len(s)-1] == '.' {
		s = s[:len(s)-1]
	}
	if s == "-0" {
		return "0"
	}
	return s
}

func attr(s string) string { return html.EscapeString(s) }
