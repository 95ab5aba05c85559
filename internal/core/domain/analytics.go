package domain

import "time"

// AnalyticsRecord tracks per-document reading state for a single user.
// Records advance through unseen -> viewed -> (optionally) completed;
// completion is one-way.
type AnalyticsRecord struct {
	// ViewCount is the number of times the document was opened.
	ViewCount int

	// LastViewed is the time of the most recent view.
	LastViewed time.Time

	// TimeSpent is the accumulated reading time in seconds.
	TimeSpent int

	// Completed marks the document as finished.
	Completed bool
}

// LearningPath is an ordered curriculum of documents with tracked
// per-user completion state.
type LearningPath struct {
	// ID is the unique path identifier.
	ID string

	// Name is the display name.
	Name string

	// Difficulty is a free-form level label ("beginner", "advanced", ...).
	Difficulty string

	// Documents lists the curriculum document IDs in reading order.
	Documents []string

	// EstimatedTime is the expected total reading time in minutes.
	EstimatedTime int

	// CompletedDocuments is the set of finished document IDs.
	// Always a subset of Documents.
	CompletedDocuments map[string]struct{}
}

// Progress returns how many of the path's documents are completed.
func (p LearningPath) Progress() (completed, total int) {
	return len(p.CompletedDocuments), len(p.Documents)
}

// MaxSearchHistory caps the persisted search history length.
const MaxSearchHistory = 20
