package driving

import (
	"context"

	"github.com/docdeck/docdeck-cli/internal/core/domain"
)

// FilterOptions narrows a catalog listing. All filters are optional.
// Query matches case-insensitively against title, description, category
// and tags; Categories and Tags are each inclusive-OR within themselves
// and AND with each other when both are supplied.
type FilterOptions struct {
	Query      string
	Categories []string
	Tags       []string

	// Limit truncates the result. Zero means the default (50).
	Limit int
}

// CatalogService provides access to the loaded document catalog.
type CatalogService interface {
	// Load reads the manifest and replaces the in-memory catalog.
	// A missing or malformed manifest is fatal.
	Load(ctx context.Context) error

	// Documents returns all documents in catalog order.
	Documents() []domain.Document

	// Get returns the document with the given ID.
	Get(id string) (domain.Document, error)

	// Filter returns documents matching opts, in catalog order.
	Filter(opts FilterOptions) []domain.Document

	// UniqueCategories returns all category paths, sorted and deduplicated.
	UniqueCategories() []string

	// UniqueTags returns all tags, sorted and deduplicated.
	UniqueTags() []string
}

// ContentService loads document bodies with graceful degradation.
type ContentService interface {
	// Load returns the markdown text at filePath. On any fetch failure
	// it returns a labelled placeholder body instead of an error, so
	// content loading can never crash navigation.
	Load(ctx context.Context, filePath string) string
}
