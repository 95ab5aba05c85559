package driving

import "github.com/docdeck/docdeck-cli/internal/core/domain"

// AnalyticsService is the durable per-user learning state store.
// Every mutation is persisted synchronously before it returns.
type AnalyticsService interface {
	// TrackView records one view of the document, creating its record
	// if absent. View counts never decrease.
	TrackView(docID string) error

	// TrackTimeSpent accumulates reading time in seconds.
	TrackTimeSpent(docID string, seconds int) error

	// MarkCompleted marks the document finished. One-way.
	MarkCompleted(docID string) error

	// Record returns the analytics record for docID.
	Record(docID string) (domain.AnalyticsRecord, bool)

	// GetMostViewed returns up to limit records sorted by view count
	// descending.
	GetMostViewed(limit int) []RankedRecord

	// GetRecentlyViewed returns up to limit records sorted by last
	// viewed time descending.
	GetRecentlyViewed(limit int) []RankedRecord

	// ToggleFavorite flips favorite membership and reports the new state.
	ToggleFavorite(docID string) (bool, error)

	// IsFavorite reports favorite membership.
	IsFavorite(docID string) bool

	// Favorites returns the favorite document IDs, sorted.
	Favorites() []string

	// AddSearch records a query in the search history: trimmed, empty
	// ignored, case-insensitive duplicates moved to the front keeping
	// the newest casing, capped at domain.MaxSearchHistory entries.
	AddSearch(query string) error

	// SearchHistory returns recent queries, newest first.
	SearchHistory() []string

	// ClearHistory empties the search history.
	ClearHistory() error

	// AddCustomTag appends a user tag for a document, deduplicated.
	AddCustomTag(docID, tag string) error

	// CustomTags returns the user tags for a document, in added order.
	CustomTags(docID string) []string

	// SetLearningPaths installs the available learning paths, keeping
	// any persisted completion state for paths that still exist.
	SetLearningPaths(paths []domain.LearningPath) error

	// LearningPaths returns all learning paths with completion state.
	LearningPaths() []domain.LearningPath

	// CompletePathDocument marks docID completed within the given
	// learning path. Unknown path IDs are a no-op.
	CompletePathDocument(pathID, docID string) error
}

// RankedRecord pairs a document ID with its analytics record for the
// sorted query helpers.
type RankedRecord struct {
	DocumentID string
	Record     domain.AnalyticsRecord
}
