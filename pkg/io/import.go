package io

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/notegraph/pkg/errors"
	"github.com/matzehuels/notegraph/pkg/note"
)

// Supported file formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ReadJSON decodes a note collection from r.
//
// ReadJSON does not close r. The returned notes are in file order.
func ReadJSON(r io.Reader) ([]note.Note, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read notes")
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}

	if data[0] == '[' {
		var notes []note.Note
		if err := json.Unmarshal(data, &notes); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode notes")
		}
		return notes, nil
	}

	var env struct {
		Notes json.RawMessage `json:"notes"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode notes")
	}
	if env.Notes == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, `expected a list of notes or an object with a "notes" field`)
	}
	var notes []note.Note
	if err := json.Unmarshal(env.Notes, &notes); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode notes")
	}
	return notes, nil
}

// ReadYAML decodes a note collection from r.
//
// ReadYAML does not close r. The returned notes are in file order.
func ReadYAML(r io.Reader) ([]note.Note, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if stderrors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode notes")
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}

	root := doc.Content[0]
	switch root.Kind {
	case yaml.SequenceNode:
		var notes []note.Note
		if err := root.Decode(&notes); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode notes")
		}
		return notes, nil
	case yaml.MappingNode:
		var env struct {
			Notes yaml.Node `yaml:"notes"`
		}
		if err := root.Decode(&env); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode notes")
		}
		if env.Notes.Kind == 0 {
			return nil, errors.New(errors.ErrCodeInvalidInput, `line %d: expected a list of notes or a mapping with a "notes" key`, root.Line)
		}
		var notes []note.Note
		if err := env.Notes.Decode(&notes); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode notes")
		}
		return notes, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "line %d: expected a list of notes or a notes mapping", root.Line)
	}
}

// DetectFormat maps a file extension to FormatJSON or FormatYAML.
func DetectFormat(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported notes file %s (want .json, .yaml or .yml)", path)
	}
}

// ImportFile reads the notes file at path, choosing the decoder from the
// file extension. A directory is read with ImportDir.
func ImportFile(path string) ([]note.Note, error) {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return ImportDir(path)
	}

	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()

	var notes []note.Note
	if format == FormatYAML {
		notes, err = ReadYAML(f)
	} else {
		notes, err = ReadJSON(f)
	}
	if err != nil {
		return nil, fmt.Errorf("import %s: %w", path, err)
	}
	return notes, nil
}
