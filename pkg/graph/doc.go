// Package graph provides the serialization format for computed note layouts.
//
// This package defines the canonical wire format for notegraph's layout
// data, used for layout.json files and for handing a layout from the
// layout step to a later render step.
//
// # Architecture
//
// The package sits at the serialization boundary between the layout engine
// and external files:
//
//   - pkg/radial.Layout: In-memory layout (generic over the id type)
//   - [Layout]: Serialized layout (this package)
//
// Use [FromRadial] and [Layout.ToRadial] to convert between them.
//
// # Layout Serialization
//
//	{
//	  "width": 600, "height": 400,
//	  "center_x": 300, "center_y": 200, "radius": 133.33,
//	  "node_radius": 20,
//	  "nodes": [{"id": "1", "title": "Inbox", "x": 433.33, "y": 200}],
//	  "edges": [{"source": "1", "target": "1"}]
//	}
//
// Node order is the layout's input order and is preserved on round trips.
//
// Common operations:
//
//	data, _ := graph.MarshalLayout(graph.FromRadial(l, 20))
//	parsed, _ := graph.UnmarshalLayout(data)
//	graph.WriteLayoutFile(parsed, "layout.json")
//
// # Concurrency
//
// All functions are safe for concurrent use on distinct values.
package graph
