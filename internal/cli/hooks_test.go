package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/notegraph/pkg/observability"
)

var (
	_ observability.PipelineHooks = (*logHooks)(nil)
	_ observability.WatchHooks    = (*logHooks)(nil)
)

func TestLogHooksDebugOutput(t *testing.T) {
	var buf bytes.Buffer
	h := &logHooks{logger: newLogger(&buf, LogDebug)}
	ctx := context.Background()

	h.OnImportStart(ctx, "notes.json")
	h.OnImportComplete(ctx, "notes.json", 3, time.Millisecond, nil)
	h.OnLayoutStart(ctx, 3)
	h.OnLayoutComplete(ctx, 3, 2, 1, time.Millisecond)
	h.OnRenderStart(ctx, []string{"svg"})
	h.OnRenderComplete(ctx, []string{"svg"}, time.Millisecond, errors.New("boom"))

	out := buf.String()
	for _, want := range []string{"importing notes", "import complete", "computing layout", "dropped=1", "rendering", "render failed", "boom"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestLogHooksQuietAtInfo(t *testing.T) {
	var buf bytes.Buffer
	h := &logHooks{logger: newLogger(&buf, LogInfo)}
	ctx := context.Background()

	h.OnLayoutStart(ctx, 3)
	h.OnLayoutComplete(ctx, 3, 2, 1, time.Millisecond)
	h.OnChange(ctx, "notes.json", time.Now())
	if buf.Len() != 0 {
		t.Errorf("expected no output at info level, got %q", buf.String())
	}

	h.OnError(ctx, "notes.json", errors.New("gone"))
	if !strings.Contains(buf.String(), "gone") {
		t.Errorf("watch errors should be logged at info level, got %q", buf.String())
	}
}
