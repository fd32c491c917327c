package canvas

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matzehuels/notegraph/pkg/graph"
	"github.com/matzehuels/notegraph/pkg/note"
	"github.com/matzehuels/notegraph/pkg/radial"
	"github.com/matzehuels/notegraph/pkg/render"
)

func sampleLayout() graph.Layout {
	records := note.ToRecords([]note.Note{
		{ID: "a", Title: "Alpha", Links: []note.ID{"b"}},
		{ID: "b", Title: "Beta", Links: []note.ID{"b", "zzz"}},
		{ID: "c", Links: []note.ID{"a"}},
	})
	return graph.FromRadial(radial.Compute(records, 600, 400), 0)
}

func TestRenderSVGStructure(t *testing.T) {
	svg := string(RenderSVG(sampleLayout()))

	checks := []string{
		`viewBox="0 0 600 400"`,
		`<g class="edges" stroke="#999"`,
		`<g class="nodes"`,
		`data-source="a" data-target="b"`,
		`data-source="c" data-target="a"`,
		`>Alpha</text>`,
		`>Beta</text>`,
		`>c</text>`,
		`r="20"`,
		`fill="#333"`,
	}
	for _, want := range checks {
		if !strings.Contains(svg, want) {
			t.Errorf("svg missing %q", want)
		}
	}
	if strings.Contains(svg, "zzz") {
		t.Error("svg references a dangling link target")
	}
	if got := strings.Count(svg, "<line "); got != 2 {
		t.Errorf("line count = %d, want 2", got)
	}
	if got := strings.Count(svg, `class="node"`); got != 3 {
		t.Errorf("node count = %d, want 3", got)
	}
}

func TestRenderSVGEdgesBeforeNodes(t *testing.T) {
	svg := string(RenderSVG(sampleLayout()))
	edges := strings.Index(svg, `class="edges"`)
	nodes := strings.Index(svg, `class="nodes"`)
	if edges < 0 || nodes < 0 || edges > nodes {
		t.Errorf("edges group at %d, nodes group at %d; edges must come first", edges, nodes)
	}
}

func TestRenderSVGSelfLoop(t *testing.T) {
	l := sampleLayout()

	svg := string(RenderSVG(l))
	if !strings.Contains(svg, `<circle cx="223.33" cy="332.79" r="10" data-source="b" data-target="b"/>`) {
		t.Errorf("self-loop circle for b not found:\n%s", svg)
	}

	svg = string(RenderSVG(l, WithoutSelfLoops()))
	if strings.Contains(svg, `data-source="b" data-target="b"`) {
		t.Error("self-loop drawn despite WithoutSelfLoops")
	}
}

func TestRenderSVGStyle(t *testing.T) {
	svg := string(RenderSVG(sampleLayout(), WithStyle(render.Style{
		Background: "white",
		NodeColor:  "steelblue",
	})))

	if !strings.Contains(svg, `<rect width="100%" height="100%" fill="white"/>`) {
		t.Error("background rect missing")
	}
	if !strings.Contains(svg, `fill="steelblue"`) {
		t.Error("node colour not applied")
	}
	if !strings.Contains(svg, `stroke="#999"`) {
		t.Error("unset edge colour not defaulted")
	}
}

func TestRenderSVGNoBackgroundByDefault(t *testing.T) {
	if strings.Contains(string(RenderSVG(sampleLayout())), "<rect") {
		t.Error("default style should not draw a background")
	}
}

func TestRenderSVGEscapesLabels(t *testing.T) {
	l := graph.Layout{
		Width: 100, Height: 100, CenterX: 50, CenterY: 50,
		Nodes: []graph.Node{{ID: `x"y`, Title: "<b>&</b>", X: 50, Y: 50}},
	}
	svg := string(RenderSVG(l))
	if strings.Contains(svg, "<b>") {
		t.Error("label not escaped")
	}
	if !strings.Contains(svg, "&lt;b&gt;&amp;&lt;/b&gt;") {
		t.Errorf("escaped label not found:\n%s", svg)
	}
	if !strings.Contains(svg, `data-id="x&#34;y"`) {
		t.Errorf("escaped id not found:\n%s", svg)
	}
}

func TestRenderSVGMaxLabel(t *testing.T) {
	l := graph.Layout{
		Width: 100, Height: 100,
		Nodes: []graph.Node{{ID: "1", Title: "Shopping list", X: 50, Y: 50}},
	}
	svg := string(RenderSVG(l, WithMaxLabel(5)))
	if !strings.Contains(svg, ">Shop…</text>") {
		t.Errorf("truncated label not found:\n%s", svg)
	}
}

func TestRenderSVGEmpty(t *testing.T) {
	svg := string(RenderSVG(graph.Layout{Width: 10, Height: 10}))
	if !strings.HasPrefix(svg, "<svg ") || !strings.HasSuffix(svg, "</svg>\n") {
		t.Errorf("not a complete document:\n%s", svg)
	}
	if strings.Contains(svg, "<circle") || strings.Contains(svg, "<line") {
		t.Error("empty layout drew shapes")
	}
}

func TestRenderSVGDeterministic(t *testing.T) {
	l := sampleLayout()
	first := RenderSVG(l)
	for i := 0; i < 5; i++ {
		if !bytes.Equal(first, RenderSVG(l)) {
			t.Fatal("RenderSVG output differs between calls")
		}
	}
}

func TestNum(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{500, "500"},
		{33.333333, "33.33"},
		{1.5, "1.5"},
		{-0.001, "0"},
		{-12.25, "-12.25"},
	}
	for _, tt := range tests {
		if got := num(tt.in); got != tt.want {
			t.Errorf("num(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
