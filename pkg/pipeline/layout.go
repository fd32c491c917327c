package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/notegraph/pkg/note"
	"github.com/matzehuels/notegraph/pkg/observability"
	"github.com/matzehuels/notegraph/pkg/radial"
)

// =============================================================================
// Layout Generation
// =============================================================================

// Layout filters notes by opts.Query and opts.Tag and computes their radial
// layout in the opts viewport. Links into notes removed by the filter are
// dropped like any other dangling link.
//
// Layout never fails. Call opts.SetDefaults first; a zero viewport yields
// degenerate geometry, not an error.
func Layout(ctx context.Context, notes []note.Note, opts Options) radial.Layout[note.ID] {
	l, _ := computeLayout(ctx, notes, opts)
	return l
}

// computeLayout is Layout that also returns the number of dropped links.
func computeLayout(ctx context.Context, notes []note.Note, opts Options) (radial.Layout[note.ID], int) {
	selected := note.Filter(notes, opts.Query, opts.Tag)
	records := note.ToRecords(selected)

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, len(records))
	start := time.Now()

	l := radial.Compute(records, opts.Width, opts.Height)

	dropped := len(radial.Dropped(records))
	hooks.OnLayoutComplete(ctx, len(l.Nodes), len(l.Edges), dropped, time.Since(start))

	if opts.Logger != nil {
		if len(selected) != len(notes) {
			opts.Logger.Debug("filtered notes", "query", opts.Query, "tag", opts.Tag, "kept", len(selected), "total", len(notes))
		}
		if dropped > 0 {
			opts.Logger.Debug("ignored links to unknown notes", "count", dropped)
		}
	}
	return l, dropped
}
