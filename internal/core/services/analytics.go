package services

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/docdeck/docdeck-cli/internal/core/domain"
	"github.com/docdeck/docdeck-cli/internal/core/ports/driven"
	"github.com/docdeck/docdeck-cli/internal/core/ports/driving"
	"github.com/docdeck/docdeck-cli/internal/logger"
)

// Ensure AnalyticsService implements the interface.
var _ driving.AnalyticsService = (*AnalyticsService)(nil)

// State store keys, one JSON blob per store.
const (
	keyRecords   = "docdeck-analytics"
	keyFavorites = "docdeck-favorites"
	keyHistory   = "docdeck-search-history"
	keyTags      = "docdeck-custom-tags"
	keyPaths     = "docdeck-learning-paths"
	keyProfile   = "docdeck-profile-id"
)

// AnalyticsService tracks per-user reading state: view counts, time
// spent, completion, favorites, learning-path progress, search history
// and custom tags. Every mutation is written through the codec to the
// state store before the mutating call returns. A blob that fails to
// decode on startup resets that store alone to its empty default.
type AnalyticsService struct {
	store driven.StateStore
	now   func() time.Time

	mu         sync.Mutex
	records    map[string]domain.AnalyticsRecord
	favorites  map[string]struct{}
	history    []string
	customTags map[string][]string
	paths      []domain.LearningPath
	profileID  string
}

// NewAnalyticsService creates an analytics service backed by store and
// loads any persisted state. First run stamps a profile ID.
func NewAnalyticsService(store driven.StateStore) (*AnalyticsService, error) {
	s := &AnalyticsService{
		store:      store,
		now:        time.Now,
		records:    make(map[string]domain.AnalyticsRecord),
		favorites:  make(map[string]struct{}),
		history:    []string{},
		customTags: make(map[string][]string),
	}

	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// SetClock overrides the time source. Useful for testing.
func (s *AnalyticsService) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// ProfileID returns the persisted per-profile install ID.
func (s *AnalyticsService) ProfileID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profileID
}

// load restores all stores from the durable medium. Decode failures
// are recoverable: the affected store falls back to empty.
func (s *AnalyticsService) load() error {
	logger.Section("Analytics Load")

	if blob, ok, err := s.store.Get(keyRecords); err != nil {
		return fmt.Errorf("read analytics records: %w", err)
	} else if ok {
		if records, err := decodeRecords(blob); err != nil {
			logger.Warn("Corrupt analytics records, resetting: %v", err)
		} else {
			s.records = records
		}
	}

	if blob, ok, err := s.store.Get(keyFavorites); err != nil {
		return fmt.Errorf("read favorites: %w", err)
	} else if ok {
		if favorites, err := decodeSet(blob); err != nil {
			logger.Warn("Corrupt favorites, resetting: %v", err)
		} else {
			s.favorites = favorites
		}
	}

	if blob, ok, err := s.store.Get(keyHistory); err != nil {
		return fmt.Errorf("read search history: %w", err)
	} else if ok {
		if history, err := decodeHistory(blob); err != nil {
			logger.Warn("Corrupt search history, resetting: %v", err)
		} else if history != nil {
			s.history = history
		}
	}

	if blob, ok, err := s.store.Get(keyTags); err != nil {
		return fmt.Errorf("read custom tags: %w", err)
	} else if ok {
		if tags, err := decodeTags(blob); err != nil {
			logger.Warn("Corrupt custom tags, resetting: %v", err)
		} else {
			s.customTags = tags
		}
	}

	if blob, ok, err := s.store.Get(keyPaths); err != nil {
		return fmt.Errorf("read learning paths: %w", err)
	} else if ok {
		if paths, err := decodePaths(blob); err != nil {
			logger.Warn("Corrupt learning paths, resetting: %v", err)
		} else {
			s.paths = paths
		}
	}

	id, ok, err := s.store.Get(keyProfile)
	if err != nil {
		return fmt.Errorf("read profile ID: %w", err)
	}
	if !ok || id == "" {
		id = uuid.New().String()
		if err := s.store.Set(keyProfile, id); err != nil {
			return fmt.Errorf("stamp profile ID: %w", err)
		}
		logger.Info("New profile: %s", id)
	}
	s.profileID = id

	logger.Debug("Loaded %d records, %d favorites, %d history entries",
		len(s.records), len(s.favorites), len(s.history))
	return nil
}

// TrackView records one view of the document, creating its record if
// absent. View counts never decrease.
func (s *AnalyticsService) TrackView(docID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.records[docID]
	rec.ViewCount++
	rec.LastViewed = s.now()
	s.records[docID] = rec

	return s.persistRecords()
}

// TrackTimeSpent accumulates reading time in seconds, creating the
// record if absent.
func (s *AnalyticsService) TrackTimeSpent(docID string, seconds int) error {
	if seconds <= 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.records[docID]
	rec.TimeSpent += seconds
	s.records[docID] = rec

	return s.persistRecords()
}

// MarkCompleted marks the document finished. There is no way back.
func (s *AnalyticsService) MarkCompleted(docID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.records[docID]
	rec.Completed = true
	s.records[docID] = rec

	return s.persistRecords()
}

// Record returns the analytics record for docID.
func (s *AnalyticsService) Record(docID string) (domain.AnalyticsRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[docID]
	return rec, ok
}

// GetMostViewed returns up to limit records sorted by view count
// descending, ties broken by document ID for determinism.
func (s *AnalyticsService) GetMostViewed(limit int) []driving.RankedRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	ranked := s.rankedSnapshot()
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Record.ViewCount != ranked[j].Record.ViewCount {
			return ranked[i].Record.ViewCount > ranked[j].Record.ViewCount
		}
		return ranked[i].DocumentID < ranked[j].DocumentID
	})
	return truncateRanked(ranked, limit)
}

// GetRecentlyViewed returns up to limit records sorted by last viewed
// time descending, ties broken by document ID for determinism.
func (s *AnalyticsService) GetRecentlyViewed(limit int) []driving.RankedRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	ranked := s.rankedSnapshot()
	sort.SliceStable(ranked, func(i, j int) bool {
		if !ranked[i].Record.LastViewed.Equal(ranked[j].Record.LastViewed) {
			return ranked[i].Record.LastViewed.After(ranked[j].Record.LastViewed)
		}
		return ranked[i].DocumentID < ranked[j].DocumentID
	})
	return truncateRanked(ranked, limit)
}

// rankedSnapshot copies the records map into a sortable slice.
// Caller must hold the lock.
func (s *AnalyticsService) rankedSnapshot() []driving.RankedRecord {
	ranked := make([]driving.RankedRecord, 0, len(s.records))
	for id, rec := range s.records {
		ranked = append(ranked, driving.RankedRecord{DocumentID: id, Record: rec})
	}
	return ranked
}

func truncateRanked(ranked []driving.RankedRecord, limit int) []driving.RankedRecord {
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// ToggleFavorite flips favorite membership and reports the new state.
func (s *AnalyticsService) ToggleFavorite(docID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var favorite bool
	if _, ok := s.favorites[docID]; ok {
		delete(s.favorites, docID)
	} else {
		s.favorites[docID] = struct{}{}
		favorite = true
	}

	return favorite, s.persistFavorites()
}

// IsFavorite reports favorite membership.
func (s *AnalyticsService) IsFavorite(docID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.favorites[docID]
	return ok
}

// Favorites returns the favorite document IDs, sorted.
func (s *AnalyticsService) Favorites() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, 0, len(s.favorites))
	for id := range s.favorites {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// AddSearch records a query in the history. The query is trimmed and
// empty input ignored; an existing entry, compared case-insensitively,
// moves to the front with the newest-typed casing instead of
// duplicating; the history is capped at domain.MaxSearchHistory.
func (s *AnalyticsService) AddSearch(query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	history := make([]string, 0, len(s.history)+1)
	history = append(history, query)
	for _, q := range s.history {
		if !strings.EqualFold(q, query) {
			history = append(history, q)
		}
	}
	if len(history) > domain.MaxSearchHistory {
		history = history[:domain.MaxSearchHistory]
	}
	s.history = history

	return s.persistHistory()
}

// SearchHistory returns recent queries, newest first.
func (s *AnalyticsService) SearchHistory() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, len(s.history))
	copy(out, s.history)
	return out
}

// ClearHistory empties the search history. This is the only
// destructive operation the store exposes.
func (s *AnalyticsService) ClearHistory() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.history = []string{}
	return s.persistHistory()
}

// AddCustomTag appends a user tag for a document, deduplicated.
func (s *AnalyticsService) AddCustomTag(docID, tag string) error {
	tag = strings.TrimSpace(tag)
	if docID == "" || tag == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.customTags[docID] {
		if existing == tag {
			return nil
		}
	}
	s.customTags[docID] = append(s.customTags[docID], tag)

	return s.persistTags()
}

// CustomTags returns the user tags for a document, in added order.
func (s *AnalyticsService) CustomTags(docID string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	tags := s.customTags[docID]
	out := make([]string, len(tags))
	copy(out, tags)
	return out
}

// SetLearningPaths installs the available learning paths. Completion
// state persisted for a path that still exists is kept; state for
// removed paths is dropped.
func (s *AnalyticsService) SetLearningPaths(paths []domain.LearningPath) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	completed := make(map[string]map[string]struct{}, len(s.paths))
	for _, p := range s.paths {
		completed[p.ID] = p.CompletedDocuments
	}

	installed := make([]domain.LearningPath, 0, len(paths))
	for _, p := range paths {
		if p.CompletedDocuments == nil {
			p.CompletedDocuments = make(map[string]struct{})
		}
		if prior, ok := completed[p.ID]; ok {
			allowed := make(map[string]struct{}, len(p.Documents))
			for _, id := range p.Documents {
				allowed[id] = struct{}{}
			}
			for id := range prior {
				// Completion only survives for documents still on the path.
				if _, ok := allowed[id]; ok {
					p.CompletedDocuments[id] = struct{}{}
				}
			}
		}
		installed = append(installed, p)
	}
	s.paths = installed

	return s.persistPaths()
}

// LearningPaths returns all learning paths with completion state.
func (s *AnalyticsService) LearningPaths() []domain.LearningPath {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.LearningPath, len(s.paths))
	copy(out, s.paths)
	return out
}

// CompletePathDocument marks docID completed within the given path.
// Unknown path IDs and documents not on the path are a no-op.
func (s *AnalyticsService) CompletePathDocument(pathID, docID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.paths {
		if s.paths[i].ID != pathID {
			continue
		}
		if !containsAny(s.paths[i].Documents, docID) {
			return nil
		}
		if s.paths[i].CompletedDocuments == nil {
			s.paths[i].CompletedDocuments = make(map[string]struct{})
		}
		s.paths[i].CompletedDocuments[docID] = struct{}{}
		return s.persistPaths()
	}

	logger.Debug("CompletePathDocument: unknown path %q", pathID)
	return nil
}

// Persistence helpers. Callers must hold the lock.

func (s *AnalyticsService) persistRecords() error {
	blob, err := encodeRecords(s.records)
	if err != nil {
		return err
	}
	return s.store.Set(keyRecords, blob)
}

func (s *AnalyticsService) persistFavorites() error {
	blob, err := encodeSet(s.favorites)
	if err != nil {
		return err
	}
	return s.store.Set(keyFavorites, blob)
}

func (s *AnalyticsService) persistHistory() error {
	blob, err := encodeHistory(s.history)
	if err != nil {
		return err
	}
	return s.store.Set(keyHistory, blob)
}

func (s *AnalyticsService) persistTags() error {
	blob, err := encodeTags(s.customTags)
	if err != nil {
		return err
	}
	return s.store.Set(keyTags, blob)
}

func (s *AnalyticsService) persistPaths() error {
	blob, err := encodePaths(s.paths)
	if err != nil {
		return err
	}
	return s.store.Set(keyPaths, blob)
}
