package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/notegraph/pkg/graph"
	noteio "github.com/matzehuels/notegraph/pkg/io"
	"github.com/matzehuels/notegraph/pkg/note"
	"github.com/matzehuels/notegraph/pkg/observability"
	"github.com/matzehuels/notegraph/pkg/radial"
)

// Runner executes the pipeline with a shared logger.
//
// The Runner is stateless except for the logger; it doesn't store pipeline
// results. Multiple goroutines can safely use the same Runner with different
// options.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. If logger is nil, log.Default() is used.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// ExecuteFile imports notes from path and runs the layout and render stages.
func (r *Runner) ExecuteFile(ctx context.Context, path string, opts Options) (*Result, error) {
	notes, importTime, err := r.Import(ctx, path)
	if err != nil {
		return nil, err
	}
	result, err := r.Execute(ctx, notes, opts)
	if err != nil {
		return nil, err
	}
	result.Stats.ImportTime = importTime
	return result, nil
}

// Import reads a notes file, emitting import hooks around the read.
func (r *Runner) Import(ctx context.Context, path string) ([]note.Note, time.Duration, error) {
	hooks := observability.Pipeline()
	hooks.OnImportStart(ctx, path)
	start := time.Now()

	notes, err := noteio.ImportFile(path)
	elapsed := time.Since(start)
	hooks.OnImportComplete(ctx, path, len(notes), elapsed, err)
	if err != nil {
		return nil, elapsed, err
	}

	r.Logger.Debug("imported notes", "path", path, "notes", len(notes), "duration", elapsed)
	return notes, elapsed, nil
}

// Execute runs the layout → render pipeline over notes.
func (r *Runner) Execute(ctx context.Context, notes []note.Note, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}

	// Stage 1: Layout
	layoutStart := time.Now()
	l, dropped := computeLayout(ctx, notes, opts)
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Notes = len(l.Nodes)
	result.Layout = graph.FromRadial(l, opts.NodeRadius)
	result.Stats.NodeCount = len(l.Nodes)
	result.Stats.EdgeCount = len(l.Edges)
	result.Stats.Dropped = dropped

	r.Logger.Info("computed layout",
		"nodes", result.Stats.NodeCount,
		"edges", result.Stats.EdgeCount,
		"duration", result.Stats.LayoutTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, err := Render(ctx, result.Layout, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ComputeLayout is [Layout] with the runner's logger applied.
func (r *Runner) ComputeLayout(ctx context.Context, notes []note.Note, opts Options) radial.Layout[note.ID] {
	r.applyLogger(&opts)
	opts.SetDefaults()
	return Layout(ctx, notes, opts)
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
