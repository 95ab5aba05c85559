package services

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docdeck/docdeck-cli/internal/adapters/driven/storage/memory"
	"github.com/docdeck/docdeck-cli/internal/core/domain"
)

// --- Test helpers ---

func newTestAnalytics(t *testing.T) (*AnalyticsService, *memory.StateStore) {
	t.Helper()
	store := memory.NewStateStore()
	service, err := NewAnalyticsService(store)
	require.NoError(t, err)
	return service, store
}

// fixedTime is a stable instant in UTC; timestamps round-trip through
// the codec at nanosecond precision.
var fixedTime = time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

// --- Tests ---

func TestAnalyticsService_TrackView_CountsViews(t *testing.T) {
	service, _ := newTestAnalytics(t)
	service.SetClock(func() time.Time { return fixedTime })

	for i := 0; i < 5; i++ {
		require.NoError(t, service.TrackView("doc-1"))
	}

	rec, ok := service.Record("doc-1")
	require.True(t, ok)
	assert.Equal(t, 5, rec.ViewCount)
	assert.Equal(t, fixedTime, rec.LastViewed)
}

func TestAnalyticsService_TrackView_PersistsAcrossRestart(t *testing.T) {
	service, store := newTestAnalytics(t)
	viewed := fixedTime.Add(123456789 * time.Nanosecond)
	service.SetClock(func() time.Time { return viewed })
	require.NoError(t, service.TrackView("doc-1"))
	require.NoError(t, service.TrackView("doc-1"))

	reloaded, err := NewAnalyticsService(store)
	require.NoError(t, err)

	rec, ok := reloaded.Record("doc-1")
	require.True(t, ok)
	assert.Equal(t, 2, rec.ViewCount)
	assert.True(t, rec.LastViewed.Equal(viewed))
}

func TestAnalyticsService_TrackTimeSpent(t *testing.T) {
	service, _ := newTestAnalytics(t)

	require.NoError(t, service.TrackTimeSpent("doc-1", 30))
	require.NoError(t, service.TrackTimeSpent("doc-1", 45))
	require.NoError(t, service.TrackTimeSpent("doc-1", 0))
	require.NoError(t, service.TrackTimeSpent("doc-1", -10))

	rec, ok := service.Record("doc-1")
	require.True(t, ok)
	assert.Equal(t, 75, rec.TimeSpent)
}

func TestAnalyticsService_MarkCompleted(t *testing.T) {
	service, _ := newTestAnalytics(t)

	require.NoError(t, service.MarkCompleted("doc-1"))

	rec, ok := service.Record("doc-1")
	require.True(t, ok)
	assert.True(t, rec.Completed)
}

func TestAnalyticsService_GetMostViewed(t *testing.T) {
	service, _ := newTestAnalytics(t)
	for i := 0; i < 3; i++ {
		require.NoError(t, service.TrackView("doc-busy"))
	}
	require.NoError(t, service.TrackView("doc-quiet"))

	ranked := service.GetMostViewed(10)

	require.Len(t, ranked, 2)
	assert.Equal(t, "doc-busy", ranked[0].DocumentID)
	assert.Equal(t, 3, ranked[0].Record.ViewCount)
	assert.Equal(t, "doc-quiet", ranked[1].DocumentID)
}

func TestAnalyticsService_GetMostViewed_TieBreaksByID(t *testing.T) {
	service, _ := newTestAnalytics(t)
	require.NoError(t, service.TrackView("zebra"))
	require.NoError(t, service.TrackView("alpha"))

	ranked := service.GetMostViewed(10)

	require.Len(t, ranked, 2)
	assert.Equal(t, "alpha", ranked[0].DocumentID)
	assert.Equal(t, "zebra", ranked[1].DocumentID)
}

func TestAnalyticsService_GetRecentlyViewed(t *testing.T) {
	service, _ := newTestAnalytics(t)
	now := fixedTime
	service.SetClock(func() time.Time { now = now.Add(time.Minute); return now })

	require.NoError(t, service.TrackView("doc-old"))
	require.NoError(t, service.TrackView("doc-new"))

	ranked := service.GetRecentlyViewed(1)

	require.Len(t, ranked, 1)
	assert.Equal(t, "doc-new", ranked[0].DocumentID)
}

func TestAnalyticsService_ToggleFavorite_TwiceIsIdentity(t *testing.T) {
	service, _ := newTestAnalytics(t)

	on, err := service.ToggleFavorite("doc-1")
	require.NoError(t, err)
	assert.True(t, on)
	assert.True(t, service.IsFavorite("doc-1"))

	off, err := service.ToggleFavorite("doc-1")
	require.NoError(t, err)
	assert.False(t, off)
	assert.False(t, service.IsFavorite("doc-1"))
	assert.Empty(t, service.Favorites())
}

func TestAnalyticsService_Favorites_Sorted(t *testing.T) {
	service, _ := newTestAnalytics(t)
	_, err := service.ToggleFavorite("zebra")
	require.NoError(t, err)
	_, err = service.ToggleFavorite("alpha")
	require.NoError(t, err)

	assert.Equal(t, []string{"alpha", "zebra"}, service.Favorites())
}

func TestAnalyticsService_AddSearch_DedupesToFront(t *testing.T) {
	service, _ := newTestAnalytics(t)

	require.NoError(t, service.AddSearch("swarm"))
	require.NoError(t, service.AddSearch("other"))
	require.NoError(t, service.AddSearch(" swarm "))

	assert.Equal(t, []string{"swarm", "other"}, service.SearchHistory())
}

func TestAnalyticsService_AddSearch_CaseVariantsCollapse(t *testing.T) {
	service, _ := newTestAnalytics(t)

	require.NoError(t, service.AddSearch("swarm"))
	require.NoError(t, service.AddSearch("Swarm "))

	// One entry, newest casing at the front.
	assert.Equal(t, []string{"Swarm"}, service.SearchHistory())
}

func TestAnalyticsService_AddSearch_IgnoresEmpty(t *testing.T) {
	service, _ := newTestAnalytics(t)

	require.NoError(t, service.AddSearch(""))
	require.NoError(t, service.AddSearch("   "))

	assert.Empty(t, service.SearchHistory())
}

func TestAnalyticsService_AddSearch_CapsHistory(t *testing.T) {
	service, _ := newTestAnalytics(t)

	for i := 0; i < domain.MaxSearchHistory+5; i++ {
		require.NoError(t, service.AddSearch(fmt.Sprintf("query-%d", i)))
	}

	history := service.SearchHistory()
	require.Len(t, history, domain.MaxSearchHistory)
	assert.Equal(t, fmt.Sprintf("query-%d", domain.MaxSearchHistory+4), history[0])
}

func TestAnalyticsService_ClearHistory(t *testing.T) {
	service, store := newTestAnalytics(t)
	require.NoError(t, service.AddSearch("swarm"))

	require.NoError(t, service.ClearHistory())

	assert.Empty(t, service.SearchHistory())

	reloaded, err := NewAnalyticsService(store)
	require.NoError(t, err)
	assert.Empty(t, reloaded.SearchHistory())
}

func TestAnalyticsService_CustomTags_Deduplicated(t *testing.T) {
	service, _ := newTestAnalytics(t)

	require.NoError(t, service.AddCustomTag("doc-1", "todo"))
	require.NoError(t, service.AddCustomTag("doc-1", "review"))
	require.NoError(t, service.AddCustomTag("doc-1", "todo"))

	assert.Equal(t, []string{"todo", "review"}, service.CustomTags("doc-1"))
	assert.Empty(t, service.CustomTags("doc-2"))
}

func TestAnalyticsService_LearningPaths_CompletionAndProgress(t *testing.T) {
	service, _ := newTestAnalytics(t)
	require.NoError(t, service.SetLearningPaths([]domain.LearningPath{
		{ID: "basics", Name: "Basics", Documents: []string{"doc-a", "doc-b"}},
	}))

	require.NoError(t, service.CompletePathDocument("basics", "doc-a"))
	require.NoError(t, service.CompletePathDocument("basics", "not-on-path"))
	require.NoError(t, service.CompletePathDocument("unknown-path", "doc-a"))

	paths := service.LearningPaths()
	require.Len(t, paths, 1)
	completed, total := paths[0].Progress()
	assert.Equal(t, 1, completed)
	assert.Equal(t, 2, total)
	_, ok := paths[0].CompletedDocuments["doc-a"]
	assert.True(t, ok)
}

func TestAnalyticsService_SetLearningPaths_KeepsSurvivingCompletion(t *testing.T) {
	service, _ := newTestAnalytics(t)
	require.NoError(t, service.SetLearningPaths([]domain.LearningPath{
		{ID: "basics", Documents: []string{"doc-a", "doc-b"}},
	}))
	require.NoError(t, service.CompletePathDocument("basics", "doc-a"))
	require.NoError(t, service.CompletePathDocument("basics", "doc-b"))

	// doc-b drops off the path; its completion state goes with it.
	require.NoError(t, service.SetLearningPaths([]domain.LearningPath{
		{ID: "basics", Documents: []string{"doc-a", "doc-c"}},
	}))

	paths := service.LearningPaths()
	require.Len(t, paths, 1)
	completed, total := paths[0].Progress()
	assert.Equal(t, 1, completed)
	assert.Equal(t, 2, total)
}

func TestAnalyticsService_LearningPaths_PersistAcrossRestart(t *testing.T) {
	service, store := newTestAnalytics(t)
	require.NoError(t, service.SetLearningPaths([]domain.LearningPath{
		{ID: "basics", Name: "Basics", Documents: []string{"doc-a"}},
	}))
	require.NoError(t, service.CompletePathDocument("basics", "doc-a"))

	reloaded, err := NewAnalyticsService(store)
	require.NoError(t, err)

	paths := reloaded.LearningPaths()
	require.Len(t, paths, 1)
	assert.Equal(t, "Basics", paths[0].Name)
	_, ok := paths[0].CompletedDocuments["doc-a"]
	assert.True(t, ok)
}

func TestAnalyticsService_CorruptBlobResetsThatStoreOnly(t *testing.T) {
	store := memory.NewStateStore()
	require.NoError(t, store.Set(keyRecords, "{definitely not json"))
	require.NoError(t, store.Set(keyFavorites, `["doc-1"]`))

	service, err := NewAnalyticsService(store)
	require.NoError(t, err)

	_, ok := service.Record("doc-1")
	assert.False(t, ok)
	assert.True(t, service.IsFavorite("doc-1"))
}

func TestAnalyticsService_PersistFailurePropagates(t *testing.T) {
	service, store := newTestAnalytics(t)
	store.SetErr = errors.New("disk full")

	err := service.TrackView("doc-1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestAnalyticsService_ProfileID_StableAcrossRestart(t *testing.T) {
	service, store := newTestAnalytics(t)
	id := service.ProfileID()
	require.NotEmpty(t, id)

	reloaded, err := NewAnalyticsService(store)
	require.NoError(t, err)

	assert.Equal(t, id, reloaded.ProfileID())
}
