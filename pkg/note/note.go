package note

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/notegraph/pkg/radial"
)

// ID identifies a note. IDs are opaque strings; numeric ids in JSON or YAML
// input are kept in their literal form ("1", "42").
type ID string

// UnmarshalJSON accepts both string and number ids.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("note id must be a string or number, got %s", data)
	}
	*id = ID(n.String())
	return nil
}

// UnmarshalYAML accepts any scalar id.
func (id *ID) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: note id must be a scalar", value.Line)
	}
	*id = ID(value.Value)
	return nil
}

// Tag is a note label. In JSON it may be written as a plain string or as an
// object with a "name" field.
type Tag string

// UnmarshalJSON accepts "work" and {"id": 1, "name": "work"}.
func (t *Tag) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		var obj struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		*t = Tag(obj.Name)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*t = Tag(s)
	return nil
}

// UnmarshalYAML accepts a scalar or a mapping with a "name" key.
func (t *Tag) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.MappingNode {
		var obj struct {
			Name string `yaml:"name"`
		}
		if err := value.Decode(&obj); err != nil {
			return err
		}
		*t = Tag(obj.Name)
		return nil
	}
	*t = Tag(value.Value)
	return nil
}

// Note is a user-authored record.
type Note struct {
	ID      ID     `json:"id" yaml:"id"`
	Title   string `json:"title" yaml:"title"`
	Content string `json:"content,omitempty" yaml:"content,omitempty"`
	Tags    []Tag  `json:"tags,omitempty" yaml:"tags,omitempty"`
	Links   []ID   `json:"links,omitempty" yaml:"links,omitempty"`
}

// AllLinks returns the explicit links followed by content references that
// are not already listed. Repeated explicit links are kept as given.
func (n Note) AllLinks() []ID {
	parsed := ParseLinks(n.Content)
	if len(parsed) == 0 {
		return slices.Clone(n.Links)
	}
	out := slices.Clone(n.Links)
	for _, id := range parsed {
		if !slices.Contains(n.Links, id) {
			out = append(out, id)
		}
	}
	return out
}

// HasTag reports whether the note carries tag exactly.
func (n Note) HasTag(tag string) bool {
	return slices.Contains(n.Tags, Tag(tag))
}

// Clone returns a deep copy of n.
func (n Note) Clone() Note {
	n.Tags = slices.Clone(n.Tags)
	n.Links = slices.Clone(n.Links)
	return n
}

// ToRecords converts notes into layout records, preserving order.
func ToRecords(notes []Note) []radial.Record[ID] {
	records := make([]radial.Record[ID], len(notes))
	for i, n := range notes {
		records[i] = radial.Record[ID]{ID: n.ID, Title: n.Title, Links: n.AllLinks()}
	}
	return records
}
