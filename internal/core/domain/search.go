package domain

// MatchRange is a half-open [Start, End) byte offset range into a
// chunk's content, usable for highlighting.
type MatchRange struct {
	Start int
	End   int
}

// SearchResult represents a single fuzzy-search hit.
// Results are never persisted; they are recomputed per query.
type SearchResult struct {
	// DocumentID identifies the matched document.
	DocumentID string

	// DocumentTitle is the matched document's title, denormalised
	// so the UI does not need a catalog lookup per result.
	DocumentTitle string

	// ChunkIndex is the position of the matched chunk within its document.
	ChunkIndex int

	// Content is the matched chunk's full text.
	Content string

	// Score is the match quality in [0, 1]. Lower is better;
	// 0 means an exact substring match.
	Score float64

	// Matches are the highlight offsets into Content, in ascending order.
	Matches []MatchRange
}

// SearchOptions configures a search query.
type SearchOptions struct {
	// Limit is the maximum number of results. Zero means the default (50).
	Limit int
}
