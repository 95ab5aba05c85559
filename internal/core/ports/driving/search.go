package driving

import (
	"context"

	"github.com/docdeck/docdeck-cli/internal/core/domain"
)

// SearchService provides fuzzy full-text search over content chunks.
type SearchService interface {
	// Build replaces the index with one built from chunks.
	// Rebuilding from the same chunks is idempotent, not additive.
	Build(chunks []domain.ContentChunk)

	// Search answers a ranked query. Results are sorted ascending by
	// score (best first) with ties broken by original chunk order.
	// An empty or whitespace-only query returns an empty slice.
	// Searching before Build returns domain.ErrIndexNotBuilt.
	Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error)
}
