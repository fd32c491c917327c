package io

import (
	"bufio"
	"bytes"
	stderrors "errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/notegraph/pkg/errors"
	"github.com/matzehuels/notegraph/pkg/note"
)

// frontMatter is the optional YAML header of a Markdown note.
type frontMatter struct {
	ID    note.ID    `yaml:"id"`
	Title string     `yaml:"title"`
	Tags  []note.Tag `yaml:"tags"`
	Links []note.ID  `yaml:"links"`
}

// isMarkdown reports whether name has a Markdown extension.
func isMarkdown(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".md", ".markdown":
		return true
	}
	return false
}

// ImportDir reads every Markdown file below root as one note.
//
// Files are visited in lexical path order, which fixes the note order and so
// the layout. Hidden files and directories are skipped, as is anything matched
// by a .gitignore in root. The note id is the slash-separated path relative to
// root without extension ("projects/plan" for projects/plan.md) unless the
// front matter sets one. The title comes from the front matter, then the
// first "# " heading, then the file name.
func ImportDir(root string) ([]note.Note, error) {
	info, err := os.Stat(root)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", root)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", root)
	}
	if !info.IsDir() {
		return nil, errors.New(errors.ErrCodeInvalidPath, "%s is not a directory", root)
	}

	var ignored *ignore.GitIgnore
	if gi, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore")); err == nil {
		ignored = gi
	}

	var notes []note.Note
	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p == root {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !isMarkdown(d.Name()) {
			return nil
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if ignored != nil && ignored.MatchesPath(rel) {
			return nil
		}

		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		n, err := parseMarkdown(rel, data)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "parse %s", rel)
		}
		notes = append(notes, n)
		return nil
	})
	if err != nil {
		var coded *errors.Error
		if stderrors.As(err, &coded) {
			return nil, err
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read %s", root)
	}
	return notes, nil
}

// parseMarkdown turns the contents of the Markdown file at the slash
// separated relative path rel into a note.
func parseMarkdown(rel string, data []byte) (note.Note, error) {
	var fm frontMatter
	body := data
	if header, rest, ok := splitFrontMatter(data); ok {
		if err := yaml.Unmarshal(header, &fm); err != nil {
			return note.Note{}, err
		}
		body = rest
	}

	n := note.Note{
		ID:      fm.ID,
		Title:   fm.Title,
		Content: strings.TrimSpace(string(body)),
		Tags:    fm.Tags,
		Links:   fm.Links,
	}
	if n.ID == "" {
		n.ID = note.ID(strings.TrimSuffix(rel, path.Ext(rel)))
	}
	if n.Title == "" {
		n.Title = firstHeading(body)
	}
	if n.Title == "" {
		n.Title = strings.TrimSuffix(path.Base(rel), path.Ext(rel))
	}
	return n, nil
}

// splitFrontMatter separates a leading block delimited by "---" lines from
// the rest of data.
func splitFrontMatter(data []byte) (header, rest []byte, ok bool) {
	data = bytes.TrimPrefix(data, []byte("\ufeff"))
	first, after, found := bytes.Cut(data, []byte("\n"))
	if !found || string(bytes.TrimSpace(first)) != "---" {
		return nil, data, false
	}
	offset := 0
	for len(after[offset:]) > 0 {
		line, next, more := bytes.Cut(after[offset:], []byte("\n"))
		if string(bytes.TrimSpace(line)) == "---" {
			return after[:offset], next, true
		}
		if !more {
			break
		}
		offset += len(line) + 1
	}
	return nil, data, false
}

// firstHeading returns the text of the first level-one ATX heading in body.
func firstHeading(body []byte) string {
	sc := bufio.NewScanner(bytes.NewReader(body))
	for sc.Scan() {
		if title, ok := strings.CutPrefix(strings.TrimSpace(sc.Text()), "# "); ok {
			return strings.TrimSpace(title)
		}
	}
	return ""
}
