package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/notegraph/pkg/errors"
	noteio "github.com/matzehuels/notegraph/pkg/io"
	"github.com/matzehuels/notegraph/pkg/note"
)

func TestRunAddCreatesFile(t *testing.T) {
	c := New(os.Stderr, LogInfo)
	path := filepath.Join(t.TempDir(), "notes.yaml")

	if err := c.runAdd(path, note.Note{Title: "Inbox", Content: "see [[2]]"}); err != nil {
		t.Fatalf("runAdd() error = %v", err)
	}
	if err := c.runAdd(path, note.Note{Title: "Ideas", Tags: []note.Tag{"draft"}}); err != nil {
		t.Fatalf("runAdd() error = %v", err)
	}

	notes, err := noteio.ImportFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := []note.Note{
		{ID: "1", Title: "Inbox", Content: "see [[2]]"},
		{ID: "2", Title: "Ideas", Tags: []note.Tag{"draft"}},
	}
	if diff := cmp.Diff(want, notes); diff != "" {
		t.Errorf("notes mismatch (-want +got):\n%s", diff)
	}
}

func TestRunAddValidation(t *testing.T) {
	c := New(os.Stderr, LogInfo)
	path := filepath.Join(t.TempDir(), "notes.json")

	err := c.runAdd(path, note.Note{Title: "   "})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("blank title: error = %v, want %s", err, errors.ErrCodeInvalidInput)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Error("file written despite validation error")
	}

	if err := c.runAdd(path, note.Note{ID: "a", Title: "A"}); err != nil {
		t.Fatal(err)
	}
	err = c.runAdd(path, note.Note{ID: "a", Title: "Again"})
	if !errors.Is(err, errors.ErrCodeInvalidNoteID) {
		t.Errorf("duplicate id: error = %v, want %s", err, errors.ErrCodeInvalidNoteID)
	}

	err = c.runAdd(filepath.Join(t.TempDir(), "notes.txt"), note.Note{Title: "x"})
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("bad extension: error = %v, want %s", err, errors.ErrCodeInvalidFormat)
	}
}

func TestRunRemove(t *testing.T) {
	c := New(os.Stderr, LogInfo)
	path := filepath.Join(t.TempDir(), "notes.json")
	writeFile(t, path, `[{"id":1,"title":"A"},{"id":2,"title":"B","links":[1]}]`)

	if err := c.runRemove(path, "1"); err != nil {
		t.Fatalf("runRemove() error = %v", err)
	}
	notes, err := noteio.ImportFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := []note.Note{{ID: "2", Title: "B", Links: []note.ID{"1"}}}
	if diff := cmp.Diff(want, notes); diff != "" {
		t.Errorf("notes mismatch (-want +got):\n%s", diff)
	}

	if err := c.runRemove(path, "1"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("second remove: error = %v, want %s", err, errors.ErrCodeNotFound)
	}
}

func TestRunRemoveKeepsNotesWithoutID(t *testing.T) {
	c := New(os.Stderr, LogInfo)
	path := filepath.Join(t.TempDir(), "notes.json")
	writeFile(t, path, `[{"title":"A"},{"id":1,"title":"B"},{"id":2,"title":"C"}]`)

	if err := c.runRemove(path, "2"); err != nil {
		t.Fatalf("runRemove() error = %v", err)
	}
	notes, err := noteio.ImportFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := []note.Note{{ID: "3", Title: "A"}, {ID: "1", Title: "B"}}
	if diff := cmp.Diff(want, notes); diff != "" {
		t.Errorf("notes mismatch (-want +got):\n%s", diff)
	}
}

func TestRunAddKeepsNotesWithoutID(t *testing.T) {
	c := New(os.Stderr, LogInfo)
	path := filepath.Join(t.TempDir(), "notes.yaml")
	writeFile(t, path, "- title: A\n- id: \"1\"\n  title: B\n")

	if err := c.runAdd(path, note.Note{Title: "C"}); err != nil {
		t.Fatalf("runAdd() error = %v", err)
	}
	notes, err := noteio.ImportFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := []note.Note{{ID: "2", Title: "A"}, {ID: "1", Title: "B"}, {ID: "3", Title: "C"}}
	if diff := cmp.Diff(want, notes); diff != "" {
		t.Errorf("notes mismatch (-want +got):\n%s", diff)
	}
}

func TestRunEdit(t *testing.T) {
	c := New(os.Stderr, LogInfo)
	path := filepath.Join(t.TempDir(), "notes.json")
	writeFile(t, path, `[
		{"id":1,"title":"Inbox","content":"old","tags":["todo"],"links":[2]},
		{"id":2,"title":"Ideas"}
	]`)

	title := "Today"
	e := noteEdit{title: &title, setLink: true}
	if err := c.runEdit(path, "1", e); err != nil {
		t.Fatalf("runEdit() error = %v", err)
	}
	notes, err := noteio.ImportFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := []note.Note{
		{ID: "1", Title: "Today", Content: "old", Tags: []note.Tag{"todo"}},
		{ID: "2", Title: "Ideas"},
	}
	if diff := cmp.Diff(want, notes); diff != "" {
		t.Errorf("notes mismatch (-want +got):\n%s", diff)
	}

	if err := c.runEdit(path, "9", e); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("unknown id: error = %v, want %s", err, errors.ErrCodeNotFound)
	}
	blank := " "
	if err := c.runEdit(path, "2", noteEdit{title: &blank}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("blank title: error = %v, want %s", err, errors.ErrCodeInvalidInput)
	}
}

func TestEditCommandFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.json")
	writeFile(t, path, `[{"id":1,"title":"Inbox","content":"body","tags":["a"]}]`)

	if err := execute(t, "edit", path, "1", "--tag", "b", "--tag", "c", "--content", "see [[2]]"); err != nil {
		t.Fatalf("edit error = %v", err)
	}
	notes, err := noteio.ImportFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := []note.Note{{ID: "1", Title: "Inbox", Content: "see [[2]]", Tags: []note.Tag{"b", "c"}}}
	if diff := cmp.Diff(want, notes); diff != "" {
		t.Errorf("notes mismatch (-want +got):\n%s", diff)
	}
}

func TestRunList(t *testing.T) {
	var out bytes.Buffer
	c := New(os.Stderr, LogInfo)
	c.out = &out

	path := filepath.Join(t.TempDir(), "notes.json")
	writeFile(t, path, `[
		{"id":1,"title":"Inbox","tags":["todo"],"links":[2, 9]},
		{"id":2,"title":"Ideas","tags":[{"name":"draft"}]}
	]`)

	if err := c.runList(path, "", "todo"); err != nil {
		t.Fatalf("runList() error = %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "Inbox") || strings.Contains(got, "Ideas") {
		t.Errorf("tag filter not applied:\n%s", got)
	}
	if !strings.Contains(got, "9") {
		t.Errorf("unresolved link not listed:\n%s", got)
	}
}

func TestNotesTable(t *testing.T) {
	notes := []note.Note{{ID: "1", Title: "Inbox", Tags: []note.Tag{"a", "b"}, Content: "[[2]]"}}
	got := notesTable(notes, map[note.ID]bool{"1": true, "2": true})
	for _, want := range []string{"ID", "Title", "Inbox", "a, b", "2"} {
		if !strings.Contains(got, want) {
			t.Errorf("table missing %q:\n%s", want, got)
		}
	}
}
