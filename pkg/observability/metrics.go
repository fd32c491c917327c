package observability

import (
	"context"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics records pipeline and watch events as Prometheus metrics. It
// implements both PipelineHooks and WatchHooks and is usually combined with
// other hooks through MultiPipeline and MultiWatch.
//
// The CLI has no server; metrics are written once per run with
// prometheus.WriteToTextfile for a node_exporter textfile collector.
type Metrics struct {
	ImportsTotal    *prometheus.CounterVec
	NotesImported   prometheus.Gauge
	LayoutsTotal    prometheus.Counter
	LayoutDuration  prometheus.Histogram
	LayoutNodes     prometheus.Gauge
	LayoutEdges     prometheus.Gauge
	DroppedLinks    prometheus.Gauge
	RendersTotal    *prometheus.CounterVec
	RenderDuration  prometheus.Histogram
	WatchPolls      prometheus.Counter
	WatchChanges    prometheus.Counter
	WatchErrorTotal prometheus.Counter

	registry *prometheus.Registry
}

// NewMetrics creates a Metrics instance registered on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{registry: reg}

	m.ImportsTotal = promauto.With(reg).NewCounterVec(
		prometheus.CounterOpts{
			Name: "notegraph_imports_total",
			Help: "Total number of note file imports",
		},
		[]string{"status"},
	)
	m.NotesImported = promauto.With(reg).NewGauge(prometheus.GaugeOpts{
		Name: "notegraph_notes_imported",
		Help: "Number of notes read by the last import",
	})

	m.LayoutsTotal = promauto.With(reg).NewCounter(prometheus.CounterOpts{
		Name: "notegraph_layouts_total",
		Help: "Total number of computed layouts",
	})
	m.LayoutDuration = promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
		Name:    "notegraph_layout_duration_seconds",
		Help:    "Layout computation duration in seconds",
		Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 1},
	})
	m.LayoutNodes = promauto.With(reg).NewGauge(prometheus.GaugeOpts{
		Name: "notegraph_layout_nodes",
		Help: "Number of nodes in the last layout",
	})
	m.LayoutEdges = promauto.With(reg).NewGauge(prometheus.GaugeOpts{
		Name: "notegraph_layout_edges",
		Help: "Number of edges in the last layout",
	})
	m.DroppedLinks = promauto.With(reg).NewGauge(prometheus.GaugeOpts{
		Name: "notegraph_layout_dropped_links",
		Help: "Number of links to unknown notes ignored by the last layout",
	})

	m.RendersTotal = promauto.With(reg).NewCounterVec(
		prometheus.CounterOpts{
			Name: "notegraph_renders_total",
			Help: "Total number of render runs",
		},
		[]string{"formats", "status"},
	)
	m.RenderDuration = promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
		Name:    "notegraph_render_duration_seconds",
		Help:    "Render duration in seconds across all requested formats",
		Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5},
	})

	m.WatchPolls = promauto.With(reg).NewCounter(prometheus.CounterOpts{
		Name: "notegraph_watch_polls_total",
		Help: "Total number of watched file checks",
	})
	m.WatchChanges = promauto.With(reg).NewCounter(prometheus.CounterOpts{
		Name: "notegraph_watch_changes_total",
		Help: "Total number of detected file changes",
	})
	m.WatchErrorTotal = promauto.With(reg).NewCounter(prometheus.CounterOpts{
		Name: "notegraph_watch_errors_total",
		Help: "Total number of failed checks or re-renders while watching",
	})

	return m
}

// Registry returns the registry holding all metrics.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteFile writes the current metric values in the Prometheus text format.
func (m *Metrics) WriteFile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func (m *Metrics) OnImportStart(context.Context, string) {}

func (m *Metrics) OnImportComplete(_ context.Context, _ string, noteCount int, _ time.Duration, err error) {
	m.ImportsTotal.WithLabelValues(status(err)).Inc()
	if err == nil {
		m.NotesImported.Set(float64(noteCount))
	}
}

func (m *Metrics) OnLayoutStart(context.Context, int) {}

func (m *Metrics) OnLayoutComplete(_ context.Context, nodeCount, edgeCount, dropped int, d time.Duration) {
	m.LayoutsTotal.Inc()
	m.LayoutDuration.Observe(d.Seconds())
	m.LayoutNodes.Set(float64(nodeCount))
	m.LayoutEdges.Set(float64(edgeCount))
	m.DroppedLinks.Set(float64(dropped))
}

func (m *Metrics) OnRenderStart(context.Context, []string) {}

func (m *Metrics) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	m.RendersTotal.WithLabelValues(strings.Join(formats, ","), status(err)).Inc()
	m.RenderDuration.Observe(d.Seconds())
}

func (m *Metrics) OnPoll(context.Context, string) { m.WatchPolls.Inc() }

func (m *Metrics) OnChange(context.Context, string, time.Time) { m.WatchChanges.Inc() }

func (m *Metrics) OnError(context.Context, string, error) { m.WatchErrorTotal.Inc() }

// =============================================================================
// Fan-out
// =============================================================================

// MultiPipeline returns PipelineHooks that forward every event to each of
// hooks in order. Nil entries are skipped.
func MultiPipeline(hooks ...PipelineHooks) PipelineHooks {
	var m multiPipeline
	for _, h := range hooks {
		if h != nil {
			m = append(m, h)
		}
	}
	return m
}

type multiPipeline []PipelineHooks

func (m multiPipeline) OnImportStart(ctx context.Context, path string) {
	for _, h := range m {
		h.OnImportStart(ctx, path)
	}
}

func (m multiPipeline) OnImportComplete(ctx context.Context, path string, noteCount int, d time.Duration, err error) {
	for _, h := range m {
		h.OnImportComplete(ctx, path, noteCount, d, err)
	}
}

func (m multiPipeline) OnLayoutStart(ctx context.Context, noteCount int) {
	for _, h := range m {
		h.OnLayoutStart(ctx, noteCount)
	}
}

func (m multiPipeline) OnLayoutComplete(ctx context.Context, nodeCount, edgeCount, dropped int, d time.Duration) {
	for _, h := range m {
		h.OnLayoutComplete(ctx, nodeCount, edgeCount, dropped, d)
	}
}

func (m multiPipeline) OnRenderStart(ctx context.Context, formats []string) {
	for _, h := range m {
		h.OnRenderStart(ctx, formats)
	}
}

func (m multiPipeline) OnRenderComplete(ctx context.Context, formats []string, d time.Duration, err error) {
	for _, h := range m {
		h.OnRenderComplete(ctx, formats, d, err)
	}
}

// MultiWatch returns WatchHooks that forward every event to each of hooks in
// order. Nil entries are skipped.
func MultiWatch(hooks ...WatchHooks) WatchHooks {
	var m multiWatch
	for _, h := range hooks {
		if h != nil {
			m = append(m, h)
		}
	}
	return m
}

type multiWatch []WatchHooks

func (m multiWatch) OnPoll(ctx context.Context, path string) {
	for _, h := range m {
		h.OnPoll(ctx, path)
	}
}

func (m multiWatch) OnChange(ctx context.Context, path string, modTime time.Time) {
	for _, h := range m {
		h.OnChange(ctx, path, modTime)
	}
}

func (m multiWatch) OnError(ctx context.Context, path string, err error) {
	for _, h := range m {
		h.OnError(ctx, path, err)
	}
}
