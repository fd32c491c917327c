package note

import (
	"regexp"
	"strings"
)

var linkRe = regexp.MustCompile(`\[\[([^\[\]]*)\]\]`)

// ParseLinks extracts [[target]] references from content in order of first
// appearance. A display label after "|" and a heading after "#" are not part
// of the target, so [[2#Plan|the plan]] links to "2". Targets are trimmed;
// empty and repeated targets are skipped.
func ParseLinks(content string) []ID {
	var links []ID
	seen := make(map[ID]bool)
	for _, m := range linkRe.FindAllStringSubmatch(content, -1) {
		target, _, _ := strings.Cut(m[1], "|")
		target, _, _ = strings.Cut(target, "#")
		id := ID(strings.TrimSpace(target))
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		links = append(links, id)
	}
	return links
}
