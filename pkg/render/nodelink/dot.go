package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/notegraph/pkg/graph"
	"github.com/matzehuels/notegraph/pkg/render"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Arrows draws arrowheads on edges. The canvas renderer draws plain
	// segments, so arrows are off by default.
	Arrows bool

	// Style sets colours and fonts. Unset fields fall back to
	// [render.DefaultStyle].
	Style render.Style

	// MaxLabel truncates labels longer than this many runes. Zero keeps
	// labels whole.
	MaxLabel int

	// HideSelfLoops omits edges from a node to itself.
	HideSelfLoops bool
}

// ToDOT converts a layout to Graphviz DOT with every node pinned at its
// computed position. The resulting DOT string can be rendered using
// [RenderSVG].
func ToDOT(l graph.Layout, opts Options) string {
	style := opts.Style.WithDefaults()
	nodeR := l.NodeRadius
	if nodeR <= 0 {
		nodeR = graph.DefaultNodeRadius
	}
	bg := style.Background
	if bg == "" {
		bg = "transparent"
	}
	arrow := "none"
	if opts.Arrows {
		arrow = "normal"
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  inputscale=72;\n")
	buf.WriteString("  notranslate=true;\n")
	buf.WriteString("  splines=line;\n")
	fmt.Fprintf(&buf, "  bgcolor=%q;\n", bg)
	fmt.Fprintf(&buf, "  bb=\"0,0,%s,%s\";\n", coord(l.Width), coord(l.Height))
	fmt.Fprintf(&buf, "  node [shape=circle, fixedsize=true, width=%s, style=filled, fillcolor=%q, color=%q, fontcolor=%q, fontname=%q, fontsize=%s];\n",
		coord(2*nodeR/72), style.NodeColor, style.NodeColor, style.LabelColor, style.FontFamily, coord(style.FontSize))
	fmt.Fprintf(&buf, "  edge [color=%q, penwidth=%s, arrowhead=%s];\n", style.EdgeColor, coord(style.EdgeWidth), arrow)
	buf.WriteString("\n")

	seen := make(map[string]bool, len(l.Nodes))
	for _, n := range l.Nodes {
		if seen[n.ID] {
			continue
		}
		seen[n.ID] = true
		attrs := []string{
			fmt.Sprintf("label=%q", render.Truncate(n.DisplayLabel(), opts.MaxLabel)),
			fmt.Sprintf("pos=\"%s,%s!\"", coord(n.X), coord(l.Height-n.Y)),
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range l.Edges {
		if !seen[e.Source] || !seen[e.Target] {
			continue
		}
		if opts.HideSelfLoops && e.Source == e.Target {
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.Source, e.Target)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func coord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// RenderSVG renders a DOT graph to SVG using Graphviz's neato engine, which
// honours pinned positions.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's svg element, which carries pt units,
// with a plain pixel viewBox of the same size.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
