package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/notegraph/pkg/errors"
	"github.com/matzehuels/notegraph/pkg/graph"
	"github.com/matzehuels/notegraph/pkg/observability"
)

const sampleNotesJSON = `{"notes": [
	{"id": 1, "title": "Inbox", "content": "Body [[2]]"},
	{"id": 2, "title": "Ideas", "links": [2, 42]}
]}`

// execute runs the root command with args and an isolated config location.
func execute(t *testing.T, args ...string) error {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Cleanup(observability.Reset)

	var logs bytes.Buffer
	c := New(&logs, LogInfo)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	return root.ExecuteContext(context.Background())
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := New(os.Stderr, LogInfo).RootCommand()

	var names []string
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	for _, want := range []string{"layout", "render", "visualize", "watch", "inspect", "add", "edit", "remove", "list", "completion"} {
		found := false
		for _, n := range names {
			if n == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("subcommand %q not registered (have %v)", want, names)
		}
	}
	if root.PersistentFlags().Lookup("config") == nil {
		t.Error("--config flag missing")
	}
}

func TestLayoutCommand(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "notes.json")
	writeFile(t, input, sampleNotesJSON)

	if err := execute(t, "layout", input, "--width", "600", "--height", "300"); err != nil {
		t.Fatalf("layout error = %v", err)
	}

	l, err := graph.ReadLayoutFile(filepath.Join(dir, "notes.layout.json"))
	if err != nil {
		t.Fatalf("read layout: %v", err)
	}
	if l.Width != 600 || l.Height != 300 || l.Radius != 100 {
		t.Errorf("geometry = %vx%v r=%v, want 600x300 r=100", l.Width, l.Height, l.Radius)
	}
	want := []graph.Edge{{Source: "1", Target: "2"}, {Source: "2", Target: "2"}}
	if diff := cmp.Diff(want, l.Edges); diff != "" {
		t.Errorf("edges mismatch (-want +got):\n%s", diff)
	}
}

func TestLayoutCommandUsesConfig(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "notes.json")
	writeFile(t, input, sampleNotesJSON)
	cfg := filepath.Join(dir, "custom.toml")
	writeFile(t, cfg, "width = 300\nheight = 900\n")
	out := filepath.Join(dir, "out.json")

	if err := execute(t, "--config", cfg, "layout", input, "-o", out, "--height", "600"); err != nil {
		t.Fatalf("layout error = %v", err)
	}
	l, err := graph.ReadLayoutFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if l.Width != 300 || l.Height != 600 {
		t.Errorf("viewport = %vx%v, want 300 from config and 600 from flag", l.Width, l.Height)
	}
}

func TestRenderAndVisualizeCommands(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "notes.json")
	writeFile(t, input, sampleNotesJSON)

	if err := execute(t, "render", input, "-f", "svg,dot,json"); err != nil {
		t.Fatalf("render error = %v", err)
	}
	svg, err := os.ReadFile(filepath.Join(dir, "notes.svg"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(svg, []byte(">Inbox</text>")) {
		t.Error("rendered svg missing Inbox label")
	}
	dot, err := os.ReadFile(filepath.Join(dir, "notes.dot"))
	if err != nil || !strings.HasPrefix(string(dot), "digraph G {") {
		t.Errorf("dot output = %.20q, %v", dot, err)
	}

	out := filepath.Join(dir, "again.svg")
	if err := execute(t, "visualize", filepath.Join(dir, "notes.layout.json"), "-o", out); err != nil {
		t.Fatalf("visualize error = %v", err)
	}
	again, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(svg, again) {
		t.Error("visualize output differs from render output for the same layout")
	}
}

func TestRenderCommandErrors(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "notes.json")
	writeFile(t, input, sampleNotesJSON)

	tests := []struct {
		name string
		args []string
	}{
		{"bad format", []string{"render", input, "-f", "gif"}},
		{"bad engine", []string{"render", input, "--engine", "cairo"}},
		{"missing file", []string{"render", filepath.Join(dir, "nope.json")}},
		{"negative width", []string{"layout", input, "--width", "-10"}},
		{"no args", []string{"render"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := execute(t, tt.args...); err == nil {
				t.Errorf("%v: expected error", tt.args)
			}
		})
	}
}

func TestOutputPathValidation(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "notes.json")
	writeFile(t, input, sampleNotesJSON)
	bad := filepath.Join(dir, "out\nput.svg")

	tests := []struct {
		name string
		args []string
	}{
		{"layout", []string{"layout", input, "-o", bad}},
		{"render", []string{"render", input, "-o", bad}},
		{"metrics file", []string{"--metrics-file", bad, "layout", input}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := execute(t, tt.args...)
			if !errors.Is(err, errors.ErrCodeInvalidPath) {
				t.Errorf("error = %v, want %s", err, errors.ErrCodeInvalidPath)
			}
			if _, statErr := os.Stat(bad); !os.IsNotExist(statErr) {
				t.Error("output written despite invalid path")
			}
		})
	}
}

func TestMetricsFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "notes.json")
	writeFile(t, input, sampleNotesJSON)
	metrics := filepath.Join(dir, "notegraph.prom")

	if err := execute(t, "--metrics-file", metrics, "layout", input); err != nil {
		t.Fatalf("layout error = %v", err)
	}
	data, err := os.ReadFile(metrics)
	if err != nil {
		t.Fatalf("metrics file not written: %v", err)
	}
	for _, want := range []string{"notegraph_layout_nodes 2", "notegraph_layout_dropped_links 1", `notegraph_imports_total{status="ok"} 1`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("metrics missing %q:\n%s", want, data)
		}
	}
}
