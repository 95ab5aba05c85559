package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docdeck/docdeck-cli/internal/core/domain"
)

func TestCodec_Records_RoundTrip(t *testing.T) {
	// Sub-second timestamps must survive the round trip unchanged, so
	// recency ordering is stable across a restart.
	records := map[string]domain.AnalyticsRecord{
		"doc-a": {ViewCount: 3, LastViewed: fixedTime.Add(749907610 * time.Nanosecond), TimeSpent: 120, Completed: true},
		"doc-b": {ViewCount: 1, LastViewed: fixedTime.Add(time.Hour + 42*time.Millisecond)},
	}

	blob, err := encodeRecords(records)
	require.NoError(t, err)
	decoded, err := decodeRecords(blob)
	require.NoError(t, err)

	assert.Equal(t, records, decoded)
}

func TestCodec_Records_Empty(t *testing.T) {
	blob, err := encodeRecords(map[string]domain.AnalyticsRecord{})
	require.NoError(t, err)

	decoded, err := decodeRecords(blob)
	require.NoError(t, err)
	assert.Empty(t, decoded)
}

func TestCodec_Records_CanonicalEncoding(t *testing.T) {
	// Two maps with identical content encode to identical blobs,
	// regardless of how they were populated.
	first := make(map[string]domain.AnalyticsRecord)
	first["zebra"] = domain.AnalyticsRecord{ViewCount: 1, LastViewed: fixedTime}
	first["alpha"] = domain.AnalyticsRecord{ViewCount: 2, LastViewed: fixedTime}

	second := make(map[string]domain.AnalyticsRecord)
	second["alpha"] = domain.AnalyticsRecord{ViewCount: 2, LastViewed: fixedTime}
	second["zebra"] = domain.AnalyticsRecord{ViewCount: 1, LastViewed: fixedTime}

	blobA, err := encodeRecords(first)
	require.NoError(t, err)
	blobB, err := encodeRecords(second)
	require.NoError(t, err)

	assert.Equal(t, blobA, blobB)
}

func TestCodec_Records_DecodeError(t *testing.T) {
	_, err := decodeRecords("{not an array")
	assert.Error(t, err)
}

func TestCodec_Set_RoundTrip(t *testing.T) {
	set := map[string]struct{}{
		"doc-a": {},
		"doc-b": {},
		"doc-c": {},
	}

	blob, err := encodeSet(set)
	require.NoError(t, err)
	decoded, err := decodeSet(blob)
	require.NoError(t, err)

	assert.Equal(t, set, decoded)
}

func TestCodec_Set_EmptyEncodesAsArray(t *testing.T) {
	blob, err := encodeSet(map[string]struct{}{})
	require.NoError(t, err)

	assert.Equal(t, "[]", blob)

	decoded, err := decodeSet(blob)
	require.NoError(t, err)
	assert.Empty(t, decoded)
}

func TestCodec_History_PreservesOrder(t *testing.T) {
	history := []string{"newest", "middle", "oldest", "middle"}

	blob, err := encodeHistory(history)
	require.NoError(t, err)
	decoded, err := decodeHistory(blob)
	require.NoError(t, err)

	assert.Equal(t, history, decoded)
}

func TestCodec_History_NilEncodesAsEmpty(t *testing.T) {
	blob, err := encodeHistory(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", blob)
}

func TestCodec_Tags_RoundTrip(t *testing.T) {
	tags := map[string][]string{
		"doc-a": {"todo", "review"},
		"doc-b": {"reference"},
	}

	blob, err := encodeTags(tags)
	require.NoError(t, err)
	decoded, err := decodeTags(blob)
	require.NoError(t, err)

	assert.Equal(t, tags, decoded)
}

func TestCodec_Paths_RoundTripWithNestedSet(t *testing.T) {
	paths := []domain.LearningPath{
		{
			ID:            "basics",
			Name:          "Basics",
			Difficulty:    "beginner",
			Documents:     []string{"doc-a", "doc-b"},
			EstimatedTime: 45,
			CompletedDocuments: map[string]struct{}{
				"doc-b": {},
				"doc-a": {},
			},
		},
		{
			ID:                 "advanced",
			Name:               "Advanced",
			Documents:          []string{"doc-c"},
			CompletedDocuments: map[string]struct{}{},
		},
	}

	blob, err := encodePaths(paths)
	require.NoError(t, err)
	decoded, err := decodePaths(blob)
	require.NoError(t, err)

	assert.Equal(t, paths, decoded)
}

func TestCodec_Paths_OrderPreserved(t *testing.T) {
	paths := []domain.LearningPath{
		{ID: "z-last-installed-first", CompletedDocuments: map[string]struct{}{}},
		{ID: "a-second", CompletedDocuments: map[string]struct{}{}},
	}

	blob, err := encodePaths(paths)
	require.NoError(t, err)
	decoded, err := decodePaths(blob)
	require.NoError(t, err)

	require.Len(t, decoded, 2)
	assert.Equal(t, "z-last-installed-first", decoded[0].ID)
	assert.Equal(t, "a-second", decoded[1].ID)
}
