package errors

import (
	"strings"
	"unicode"
)

// MaxNoteIDLength bounds note identifiers.
const MaxNoteIDLength = 256

// ValidateNoteID validates a note identifier.
//
// Identifiers are opaque, but they appear inside [[...]] link markup and as
// SVG/DOT attribute values, so the rules reject what would break either:
//   - No empty ids
//   - No control characters
//   - No "[[" or "]]" sequences
//   - Maximum length of MaxNoteIDLength bytes
func ValidateNoteID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidNoteID, "note id cannot be empty")
	}

	if len(id) > MaxNoteIDLength {
		return New(ErrCodeInvalidNoteID, "note id too long (max %d characters)", MaxNoteIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidNoteID, "note id contains invalid control characters")
		}
	}

	for _, pattern := range []string{"[[", "]]"} {
		if strings.Contains(id, pattern) {
			return New(ErrCodeInvalidNoteID, "note id contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// ValidateTitle validates a note title. Titles must contain at least one
// non-space character.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return New(ErrCodeInvalidInput, "note title must be a non-empty string")
	}
	return nil
}

// ValidatePath validates an output path supplied on the command line.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}
