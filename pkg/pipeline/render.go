package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/notegraph/pkg/errors"
	"github.com/matzehuels/notegraph/pkg/graph"
	"github.com/matzehuels/notegraph/pkg/observability"
	"github.com/matzehuels/notegraph/pkg/render"
	"github.com/matzehuels/notegraph/pkg/render/canvas"
	"github.com/matzehuels/notegraph/pkg/render/nodelink"
)

// Render generates output artifacts in the requested formats. Formats are
// produced concurrently; SVG is generated once and shared by PNG and PDF.
// The first failing format cancels the rest.
func Render(ctx context.Context, l graph.Layout, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	artifacts, err := renderAll(ctx, l, opts)

	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return artifacts, nil
}

func renderAll(ctx context.Context, l graph.Layout, opts Options) (map[string][]byte, error) {
	if l.NodeRadius <= 0 {
		l.NodeRadius = opts.NodeRadius
	}

	g, ctx := errgroup.WithContext(ctx)
	dot := sync.OnceValue(func() string {
		return nodelink.ToDOT(l, nodelink.Options{
			Arrows:        opts.Arrows,
			Style:         opts.Style,
			MaxLabel:      opts.MaxLabel,
			HideSelfLoops: opts.HideSelfLoops,
		})
	})
	svg := sync.OnceValues(func() ([]byte, error) {
		return renderSVG(ctx, l, dot, opts)
	})

	var mu sync.Mutex
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		g.Go(func() error {
			data, err := renderFormat(ctx, format, l, dot, svg, opts)
			if err != nil {
				return errors.Wrap(errors.ErrCodeRender, err, "render %s", format)
			}
			mu.Lock()
			artifacts[format] = data
			mu.Unlock()
			opts.Logger.Debug("rendered", "format", format, "bytes", len(data))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return artifacts, nil
}

func renderFormat(ctx context.Context, format string, l graph.Layout, dot func() string, svg func() ([]byte, error), opts Options) ([]byte, error) {
	switch format {
	case FormatJSON:
		return graph.MarshalLayout(l)
	case FormatDOT:
		return []byte(dot()), nil
	case FormatSVG:
		return svg()
	case FormatPNG:
		data, err := svg()
		if err != nil {
			return nil, err
		}
		return render.ToPNG(ctx, data, opts.Scale)
	case FormatPDF:
		data, err := svg()
		if err != nil {
			return nil, err
		}
		return render.ToPDF(ctx, data)
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

func renderSVG(ctx context.Context, l graph.Layout, dot func() string, opts Options) ([]byte, error) {
	switch opts.Engine {
	case EngineGraphviz:
		return nodelink.RenderSVG(ctx, dot())
	default:
		svgOpts := []canvas.SVGOption{canvas.WithStyle(opts.Style), canvas.WithMaxLabel(opts.MaxLabel)}
		if opts.HideSelfLoops {
			svgOpts = append(svgOpts, canvas.WithoutSelfLoops())
		}
		return canvas.RenderSVG(l, svgOpts...), nil
	}
}

// RenderFromLayoutData renders output from serialized layout JSON.
// This is useful when the layout was computed earlier and stored.
func RenderFromLayoutData(ctx context.Context, layoutData []byte, opts Options) (map[string][]byte, error) {
	l, err := graph.UnmarshalLayout(layoutData)
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	return Render(ctx, l, opts)
}
