package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/notegraph/pkg/note"
)

// WriteJSON encodes notes as an indented JSON array.
// The output can be re-imported with [ReadJSON].
func WriteJSON(notes []note.Note, w io.Writer) error {
	if notes == nil {
		notes = []note.Note{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(notes); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

type envelope struct {
	Notes []note.Note `json:"notes" yaml:"notes"`
}

// WriteYAML encodes notes under a top-level "notes" key.
// The output can be re-imported with [ReadYAML].
func WriteYAML(notes []note.Note, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(envelope{Notes: notes}); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return enc.Close()
}

// ExportFile writes notes to path in the format implied by its extension.
func ExportFile(notes []note.Note, path string) error {
	format, err := DetectFormat(path)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	if format == FormatYAML {
		err = WriteYAML(notes, f)
	} else {
		err = WriteJSON(notes, f)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
