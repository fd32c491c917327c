package note

import "strings"

// Filter returns the notes matching query and tag, in their original order.
//
// query matches case-insensitively as a substring of the title, the content
// or any tag; an empty query matches everything. tag, when non-empty, must
// equal one of the note's tags exactly.
func Filter(notes []Note, query, tag string) []Note {
	q := strings.ToLower(strings.TrimSpace(query))
	var out []Note
	for _, n := range notes {
		if tag != "" && !n.HasTag(tag) {
			continue
		}
		if q != "" && !matches(n, q) {
			continue
		}
		out = append(out, n)
	}
	return out
}

func matches(n Note, q string) bool {
	if strings.Contains(strings.ToLower(n.Title), q) || strings.Contains(strings.ToLower(n.Content), q) {
		return true
	}
	for _, t := range n.Tags {
		if strings.Contains(strings.ToLower(string(t)), q) {
			return true
		}
	}
	return false
}
