package cli

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func TestWatcherPoll(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.json")
	writeFile(t, path, `[]`)
	ctx := context.Background()
	w := &watcher{path: path}

	changed, err := w.poll(ctx)
	if err != nil || !changed {
		t.Fatalf("first poll = %v, %v; want change", changed, err)
	}

	changed, err = w.poll(ctx)
	if err != nil || changed {
		t.Fatalf("second poll = %v, %v; want no change", changed, err)
	}

	// Same size, newer mtime.
	later := time.Now().Add(time.Hour)
	if err := os.Chtimes(path, later, later); err != nil {
		t.Fatal(err)
	}
	if changed, _ := w.poll(ctx); !changed {
		t.Error("mtime change not detected")
	}

	// Different size, mtime forced back to the last seen value.
	writeFile(t, path, `[{"id":1,"title":"x"}]`)
	if err := os.Chtimes(path, later, later); err != nil {
		t.Fatal(err)
	}
	if changed, _ := w.poll(ctx); !changed {
		t.Error("size change not detected")
	}
}

func TestWatcherPollDirectory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "a.md")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, path, "# A")
	ctx := context.Background()
	w := &watcher{path: dir}

	if changed, err := w.poll(ctx); err != nil || !changed {
		t.Fatalf("first poll = %v, %v; want change", changed, err)
	}
	if changed, _ := w.poll(ctx); changed {
		t.Fatal("second poll reported a change")
	}

	later := time.Now().Add(time.Hour)
	if err := os.Chtimes(path, later, later); err != nil {
		t.Fatal(err)
	}
	if changed, _ := w.poll(ctx); !changed {
		t.Error("edit of a nested note not detected")
	}
}

func TestWatcherPollDirectorySkipsHidden(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.md"), "# A")
	gitDir := filepath.Join(dir, ".git")
	if err := os.Mkdir(gitDir, 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(gitDir, "HEAD"), "ref: refs/heads/main")
	ctx := context.Background()
	w := &watcher{path: dir}

	if changed, err := w.poll(ctx); err != nil || !changed {
		t.Fatalf("first poll = %v, %v; want change", changed, err)
	}

	writeFile(t, filepath.Join(gitDir, "index"), "binary index data")
	later := time.Now().Add(time.Hour)
	for _, p := range []string{gitDir, filepath.Join(gitDir, "HEAD"), filepath.Join(gitDir, "index")} {
		if err := os.Chtimes(p, later, later); err != nil {
			t.Fatal(err)
		}
	}
	if changed, err := w.poll(ctx); err != nil || changed {
		t.Errorf("poll after .git update = %v, %v; want no change", changed, err)
	}
}

func TestWatcherPollMissing(t *testing.T) {
	w := &watcher{path: filepath.Join(t.TempDir(), "gone.json")}
	if _, err := w.poll(context.Background()); err == nil {
		t.Error("poll() expected error for missing file")
	}
}

func TestWatcherCheck(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.json")
	writeFile(t, path, `[]`)

	var calls int
	w := &watcher{path: path, onChange: func(context.Context) error {
		calls++
		return nil
	}}

	for i := 0; i < 3; i++ {
		if err := w.check(context.Background()); err != nil {
			t.Fatalf("check() error = %v", err)
		}
	}
	if calls != 1 {
		t.Errorf("onChange calls = %d, want 1", calls)
	}

	boom := stderrors.New("boom")
	w = &watcher{path: path, onChange: func(context.Context) error { return boom }}
	if err := w.check(context.Background()); !stderrors.Is(err, boom) {
		t.Errorf("check() error = %v, want boom", err)
	}
}

func TestWatcherRunStopsOnCancel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.json")
	writeFile(t, path, `[]`)

	var calls atomic.Int32
	w := &watcher{path: path, interval: 10 * time.Millisecond, onChange: func(context.Context) error {
		calls.Add(1)
		return nil
	}}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- w.run(ctx) }()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("run() error = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("run() did not return after cancellation")
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("onChange calls = %d, want 1 (file unchanged)", got)
	}
}
