package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// slugPattern constrains document IDs to lowercase slug form.
var slugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// Document represents a catalogued markdown document.
// Documents are immutable after the catalog is loaded; all derived
// structures (chunks, tree nodes) are rebuilt wholesale from them.
type Document struct {
	// ID is the unique slug-form identifier.
	ID string

	// Title is the human-readable title.
	Title string

	// Category is a slash-delimited path, e.g. "Agents/Core".
	Category string

	// Tags are the document's catalogue tags, in catalogue order.
	Tags []string

	// FilePath locates the markdown source relative to the docs root.
	FilePath string

	// Description is an optional short summary.
	Description string
}

// Validate checks the catalog invariants for a single document.
func (d Document) Validate() error {
	if d.ID == "" || !slugPattern.MatchString(d.ID) {
		return fmt.Errorf("%w: document ID %q is not a valid slug", ErrInvalidInput, d.ID)
	}
	if d.Title == "" {
		return fmt.Errorf("%w: document %q has no title", ErrInvalidInput, d.ID)
	}
	if d.Category == "" {
		return fmt.Errorf("%w: document %q has no category", ErrInvalidInput, d.ID)
	}
	for _, segment := range strings.Split(d.Category, "/") {
		if segment == "" {
			return fmt.Errorf("%w: document %q has empty category segment in %q",
				ErrInvalidInput, d.ID, d.Category)
		}
	}
	if d.FilePath == "" {
		return fmt.Errorf("%w: document %q has no file path", ErrInvalidInput, d.ID)
	}
	return nil
}

// CategorySegments returns the category path split on "/".
func (d Document) CategorySegments() []string {
	return strings.Split(d.Category, "/")
}

// ContentChunk is a bounded-length slice of a document's text.
// It is the unit over which the search index is built. Chunk order
// is stable: Index is the 0-based position within the document.
type ContentChunk struct {
	// DocumentID links to the parent Document.
	DocumentID string

	// Index is the 0-based ordinal position within the document.
	Index int

	// Content is the text content of this chunk.
	Content string
}
