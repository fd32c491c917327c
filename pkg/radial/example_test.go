package radial_test

import (
	"fmt"

	"github.com/matzehuels/notegraph/pkg/radial"
)

func ExampleCompute() {
	records := []radial.Record[int]{
		{ID: 1, Title: "Inbox", Links: []int{2, 99}},
		{ID: 2, Title: "Ideas", Links: []int{2}},
	}

	l := radial.Compute(records, 600, 600)
	for _, n := range l.Nodes {
		fmt.Printf("%d %s (%.0f, %.0f)\n", n.ID, n.Title, n.X, n.Y)
	}
	for _, e := range l.Edges {
		fmt.Printf("%d -> %d\n", e.Source, e.Target)
	}
	// Output:
	// 1 Inbox (500, 300)
	// 2 Ideas (100, 300)
	// 1 -> 2
	// 2 -> 2
}

func ExampleLayout_NodeAt() {
	l := radial.Compute([]radial.Record[string]{{ID: "solo", Title: "Solo"}}, 400, 300)

	id, ok := l.NodeAt(205, 148, 20)
	fmt.Println(id, ok)
	// Output:
	// solo true
}
