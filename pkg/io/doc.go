// Package io reads and writes note collections as JSON or YAML and imports
// directories of Markdown notes.
//
// # Overview
//
// Note files feed the layout pipeline. Two shapes are accepted in either
// encoding: a bare array of notes, or an object with a "notes" array.
//
//	[
//	  {"id": 1, "title": "Inbox", "content": "see [[2]]"},
//	  {"id": 2, "title": "Ideas", "tags": ["work"], "links": [1]}
//	]
//
//	notes:
//	  - id: 1
//	    title: Inbox
//	    content: see [[2]]
//
// # Note Fields
//
// Required:
//   - id: string or number
//   - title: display label
//
// Optional:
//   - content: free text; [[id]] references become links
//   - tags: strings or {"name": ...} objects
//   - links: explicit link targets
//
// # Markdown Directories
//
// A directory of Markdown files is read as one collection, one note per
// file in lexical path order. Each file may start with a YAML front matter
// block setting id, title, tags and links:
//
//	---
//	title: Project plan
//	tags: [work]
//	---
//	Depends on [[projects/budget]].
//
// Without front matter the id is the relative path without extension and the
// title is the first "# " heading. Files matched by the directory's
// .gitignore are skipped.
//
// Link targets are not checked here. Links to ids that are not in the file
// are kept and later dropped silently by the layout.
//
// # Errors
//
// Failures carry codes from [errors]: FILE_NOT_FOUND for missing files,
// INVALID_FORMAT for unknown extensions and INVALID_INPUT for malformed
// content.
//
// [errors]: github.com/matzehuels/notegraph/pkg/errors
package io
