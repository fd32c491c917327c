package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// logHooks reports pipeline and watch events at debug level.
type logHooks struct {
	logger *log.Logger
}

func (h *logHooks) OnImportStart(_ context.Context, path string) {
	h.logger.Debug("importing notes", "path", path)
}

func (h *logHooks) OnImportComplete(_ context.Context, path string, noteCount int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("import failed", "path", path, "err", err)
		return
	}
	h.logger.Debug("import complete", "path", path, "notes", noteCount, "duration", d)
}

func (h *logHooks) OnLayoutStart(_ context.Context, noteCount int) {
	h.logger.Debug("computing layout", "notes", noteCount)
}

func (h *logHooks) OnLayoutComplete(_ context.Context, nodeCount, edgeCount, dropped int, d time.Duration) {
	h.logger.Debug("layout complete", "nodes", nodeCount, "edges", edgeCount, "dropped", dropped, "duration", d)
}

func (h *logHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("rendering", "formats", formats)
}

func (h *logHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("render failed", "formats", formats, "err", err)
		return
	}
	h.logger.Debug("render complete", "formats", formats, "duration", d)
}

func (h *logHooks) OnPoll(_ context.Context, path string) {}

func (h *logHooks) OnChange(_ context.Context, path string, modTime time.Time) {
	h.logger.Debug("file changed", "path", path, "mtime", modTime.Format(time.RFC3339))
}

func (h *logHooks) OnError(_ context.Context, path string, err error) {
	h.logger.Warn("watch", "path", path, "err", err)
}
