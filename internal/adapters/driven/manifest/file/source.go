package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/docdeck/docdeck-cli/internal/core/domain"
	"github.com/docdeck/docdeck-cli/internal/core/ports/driven"
)

// Ensure Source implements the interface.
var _ driven.ManifestSource = (*Source)(nil)

// documentJSON is the manifest wire shape of one document record.
type documentJSON struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	FilePath    string   `json:"filePath"`
	Description string   `json:"description,omitempty"`
}

// Source loads the document manifest from a JSON file. The manifest is
// a static build artifact: a missing file or a payload that is not an
// array is fatal, not recoverable.
type Source struct {
	path string
}

// NewSource creates a manifest source reading from path.
func NewSource(path string) *Source {
	return &Source{path: path}
}

// Path returns the manifest file path.
func (s *Source) Path() string {
	return s.path
}

// Load reads and decodes the full manifest.
func (s *Source) Load(_ context.Context) ([]domain.Document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", domain.ErrManifest, s.path, err)
	}

	var wire []documentJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("%w: %s is not a document array: %w", domain.ErrManifest, s.path, err)
	}

	docs := make([]domain.Document, 0, len(wire))
	for _, w := range wire {
		docs = append(docs, domain.Document{
			ID:          w.ID,
			Title:       w.Title,
			Category:    w.Category,
			Tags:        w.Tags,
			FilePath:    w.FilePath,
			Description: w.Description,
		})
	}
	return docs, nil
}
