package cli

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/notegraph/pkg/observability"
	"github.com/matzehuels/notegraph/pkg/pipeline"
)

const defaultWatchInterval = time.Second

// watchCommand creates the watch command, which re-renders a notes file
// whenever it changes.
func (c *CLI) watchCommand() *cobra.Command {
	var (
		output   string
		interval time.Duration
		flags    optionFlags
	)

	cmd := &cobra.Command{
		Use:   "watch [notes.json|notes.yaml|dir]",
		Short: "Re-render a notes file whenever it changes",
		Long: `Re-render a notes file whenever it changes.

The file is polled at --interval. A change in modification time or size
triggers a fresh layout and render with the same options as 'render'.
Errors are reported and watching continues. Stop with Ctrl-C.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeNotesFile,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.options(cmd, &flags)
			if err != nil {
				return err
			}
			if interval <= 0 {
				return fmt.Errorf("interval must be positive, got %s", interval)
			}
			return c.runWatch(cmd.Context(), args[0], opts, output, interval)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().DurationVar(&interval, "interval", defaultWatchInterval, "polling interval")
	flags.registerLayout(cmd)
	flags.registerRender(cmd)

	return cmd
}

// runWatch renders once, then again after every detected change, until ctx
// is cancelled.
func (c *CLI) runWatch(ctx context.Context, input string, opts pipeline.Options, output string, interval time.Duration) error {
	if err := checkOutput(output); err != nil {
		return err
	}
	runner := pipeline.NewRunner(loggerFromContext(ctx))
	rebuild := func(ctx context.Context) error {
		result, err := runner.ExecuteFile(ctx, input, opts)
		if err != nil {
			return err
		}
		paths, err := writeArtifacts(result.Artifacts, opts.Formats, input, output)
		if err != nil {
			return err
		}
		printSuccess("%s Rendered %d notes", time.Now().Format("15:04:05"), result.Notes)
		for _, p := range paths {
			printFile(p)
		}
		return nil
	}

	w := &watcher{path: input, interval: interval, onChange: rebuild}
	printInfo("Watching %s (every %s)", input, interval)
	return w.run(ctx)
}

// =============================================================================
// Watcher - polling change detection
// =============================================================================

// watcher polls a file and calls onChange when its modification time or size
// differs from the last observed state. The first poll always counts as a
// change.
type watcher struct {
	path     string
	interval time.Duration
	onChange func(context.Context) error

	seen    bool
	modTime time.Time
	size    int64
}

// poll stats the file once and reports whether it changed since the last poll.
func (w *watcher) poll(ctx context.Context) (bool, error) {
	observability.Watch().OnPoll(ctx, w.path)
	modTime, size, err := stat(w.path)
	if err != nil {
		return false, err
	}
	if w.seen && modTime.Equal(w.modTime) && size == w.size {
		return false, nil
	}
	w.seen = true
	w.modTime = modTime
	w.size = size
	observability.Watch().OnChange(ctx, w.path, w.modTime)
	return true, nil
}

// stat returns the modification time and size of path. For a directory it
// returns the latest modification time and the total size of everything
// below it, so edits to any note count as a change. Hidden entries are
// skipped like the directory importer skips them.
func stat(path string) (time.Time, int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, 0, err
	}
	if !info.IsDir() {
		return info.ModTime(), info.Size(), nil
	}

	latest, total := info.ModTime(), int64(0)
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p != path && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		fi, err := d.Info()
		if err != nil {
			return err
		}
		if fi.ModTime().After(latest) {
			latest = fi.ModTime()
		}
		if !d.IsDir() {
			total += fi.Size()
		}
		return nil
	})
	return latest, total, err
}

// check polls once and runs onChange on a change. Failures are reported to
// the watch hooks and returned.
func (w *watcher) check(ctx context.Context) error {
	changed, err := w.poll(ctx)
	if err == nil && changed {
		err = w.onChange(ctx)
	}
	if err != nil {
		observability.Watch().OnError(ctx, w.path, err)
	}
	return err
}

// run checks immediately and then on every tick until ctx is done. Errors do
// not stop the loop; a repeated error is printed once.
func (w *watcher) run(ctx context.Context) error {
	var lastErr string
	report := func(err error) {
		if err == nil {
			lastErr = ""
			return
		}
		if msg := err.Error(); msg != lastErr {
			printError("%s", msg)
			lastErr = msg
		}
	}

	report(w.check(ctx))

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			report(w.check(ctx))
		}
	}
}
