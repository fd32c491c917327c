// Package pkg provides the libraries behind notegraph, a tool that lays out
// a collection of linked notes as a radial graph.
//
// # Overview
//
// Every note becomes a node placed on a circle in input order, and every
// link between two known notes becomes an edge. The layout is fully
// deterministic: the same notes in the same order always produce the same
// coordinates. Rendering is kept separate from layout, so the computed
// geometry can be stored as JSON and rendered later.
//
// # Architecture
//
// The typical data flow through notegraph:
//
//	notes.json / notes.yaml
//	         ↓
//	    [io] package (import notes)
//	         ↓
//	    [note] package (filter, resolve [[links]])
//	         ↓
//	    [radial] package (compute positions and edges)
//	         ↓
//	    [graph] package (layout.json wire format)
//	         ↓
//	    [render] packages (SVG, DOT, PNG, PDF)
//
// [pipeline] wires these stages together for the CLI.
//
// # Quick Start
//
//	notes, _ := noteio.ImportFile("notes.json")
//	l := radial.Compute(note.ToRecords(notes), 800, 600)
//	svg := canvas.RenderSVG(graph.FromRadial(l, graph.DefaultNodeRadius))
//
// Or, with options, hooks and concurrent rendering of several formats:
//
//	result, err := pipeline.NewRunner(logger).Execute(ctx, notes, pipeline.Options{
//	    Formats: []string{"svg", "json"},
//	})
//
// # Main Packages
//
// [radial] - The layout engine. Generic over the node identifier, pure and
// safe for concurrent use. Links to unknown notes are dropped silently.
//
// [note] - Note records, [[wiki-link]] parsing, search and tag filtering, and
// an in-memory store.
//
// [io] - JSON and YAML import and export of note collections.
//
// [graph] - Serialization of computed layouts.
//
// [render/canvas] - Dependency-free SVG renderer: straight edges, filled
// circles and centred labels.
//
// [render/nodelink] - Graphviz DOT output with pinned positions, rendered
// in-process with go-graphviz.
//
// [render] - Shared style and SVG to PDF/PNG conversion.
//
// [pipeline] - Import, layout and render orchestration with validation.
//
// [observability] - Hooks for pipeline stages and file watching.
//
// [errors] - Coded errors with user-facing messages.
//
// [radial]: https://pkg.go.dev/github.com/matzehuels/notegraph/pkg/radial
// [note]: https://pkg.go.dev/github.com/matzehuels/notegraph/pkg/note
// [io]: https://pkg.go.dev/github.com/matzehuels/notegraph/pkg/io
// [graph]: https://pkg.go.dev/github.com/matzehuels/notegraph/pkg/graph
// [render]: https://pkg.go.dev/github.com/matzehuels/notegraph/pkg/render
// [render/canvas]: https://pkg.go.dev/github.com/matzehuels/notegraph/pkg/render/canvas
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/notegraph/pkg/render/nodelink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/notegraph/pkg/pipeline
// [observability]: https://pkg.go.dev/github.com/matzehuels/notegraph/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/notegraph/pkg/errors
package pkg
