package services

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/docdeck/docdeck-cli/internal/core/domain"
)

// The analytics state lives in maps and sets for O(1) keyed access,
// but the durable medium is a flat string key-value store that only
// holds JSON trees. This file is the single codec boundary between
// the two representations: maps become key-sorted [key, value] pair
// arrays, sets become sorted element arrays, and nested sets inside
// composite records are unwrapped recursively. Sorting makes the
// encoding canonical, so serialize -> deserialize reproduces exactly
// the same map contents and set membership regardless of insertion
// order. Search history is an ordered sequence, not a set, and is
// stored verbatim.

// analyticsRecordJSON is the wire shape of one analytics record.
type analyticsRecordJSON struct {
	ViewCount  int    `json:"viewCount"`
	LastViewed string `json:"lastViewed"`
	TimeSpent  int    `json:"timeSpent"`
	Completed  bool   `json:"completed"`
}

// learningPathJSON is the wire shape of one learning path. The nested
// completion set is flattened to a sorted array.
type learningPathJSON struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	Difficulty         string   `json:"difficulty"`
	Documents          []string `json:"documents"`
	EstimatedTime      int      `json:"estimatedTime"`
	CompletedDocuments []string `json:"completedDocuments"`
}

// encodeRecords serializes the records map as key-sorted [key, record]
// pairs.
func encodeRecords(records map[string]domain.AnalyticsRecord) (string, error) {
	keys := make([]string, 0, len(records))
	for k := range records {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([][2]json.RawMessage, 0, len(keys))
	for _, k := range keys {
		rec := records[k]
		keyJSON, err := json.Marshal(k)
		if err != nil {
			return "", fmt.Errorf("encode record key: %w", err)
		}
		valJSON, err := json.Marshal(analyticsRecordJSON{
			ViewCount:  rec.ViewCount,
			LastViewed: rec.LastViewed.UTC().Format(time.RFC3339Nano),
			TimeSpent:  rec.TimeSpent,
			Completed:  rec.Completed,
		})
		if err != nil {
			return "", fmt.Errorf("encode record %q: %w", k, err)
		}
		pairs = append(pairs, [2]json.RawMessage{keyJSON, valJSON})
	}

	data, err := json.Marshal(pairs)
	if err != nil {
		return "", fmt.Errorf("encode records: %w", err)
	}
	return string(data), nil
}

// decodeRecords reconstructs the records map from its pair-array form.
func decodeRecords(blob string) (map[string]domain.AnalyticsRecord, error) {
	var pairs [][2]json.RawMessage
	if err := json.Unmarshal([]byte(blob), &pairs); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}

	records := make(map[string]domain.AnalyticsRecord, len(pairs))
	for _, pair := range pairs {
		var key string
		if err := json.Unmarshal(pair[0], &key); err != nil {
			return nil, fmt.Errorf("decode record key: %w", err)
		}
		var wire analyticsRecordJSON
		if err := json.Unmarshal(pair[1], &wire); err != nil {
			return nil, fmt.Errorf("decode record %q: %w", key, err)
		}
		lastViewed, err := time.Parse(time.RFC3339Nano, wire.LastViewed)
		if err != nil && wire.LastViewed != "" {
			return nil, fmt.Errorf("decode record %q timestamp: %w", key, err)
		}
		records[key] = domain.AnalyticsRecord{
			ViewCount:  wire.ViewCount,
			LastViewed: lastViewed,
			TimeSpent:  wire.TimeSpent,
			Completed:  wire.Completed,
		}
	}
	return records, nil
}

// encodeSet serializes a string set as a sorted element array.
func encodeSet(set map[string]struct{}) (string, error) {
	elems := make([]string, 0, len(set))
	for e := range set {
		elems = append(elems, e)
	}
	sort.Strings(elems)

	data, err := json.Marshal(elems)
	if err != nil {
		return "", fmt.Errorf("encode set: %w", err)
	}
	return string(data), nil
}

// decodeSet reconstructs a string set from its array form.
func decodeSet(blob string) (map[string]struct{}, error) {
	var elems []string
	if err := json.Unmarshal([]byte(blob), &elems); err != nil {
		return nil, fmt.Errorf("decode set: %w", err)
	}

	set := make(map[string]struct{}, len(elems))
	for _, e := range elems {
		set[e] = struct{}{}
	}
	return set, nil
}

// encodeHistory serializes the search history. Order is meaningful
// here (newest first), so the sequence is stored verbatim.
func encodeHistory(history []string) (string, error) {
	if history == nil {
		history = []string{}
	}
	data, err := json.Marshal(history)
	if err != nil {
		return "", fmt.Errorf("encode history: %w", err)
	}
	return string(data), nil
}

// decodeHistory reconstructs the search history sequence.
func decodeHistory(blob string) ([]string, error) {
	var history []string
	if err := json.Unmarshal([]byte(blob), &history); err != nil {
		return nil, fmt.Errorf("decode history: %w", err)
	}
	return history, nil
}

// encodeTags serializes the custom tags map as key-sorted
// [docID, tags] pairs. Tag order within a document is user order and
// is preserved.
func encodeTags(tags map[string][]string) (string, error) {
	keys := make([]string, 0, len(tags))
	for k := range tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([][2]json.RawMessage, 0, len(keys))
	for _, k := range keys {
		keyJSON, err := json.Marshal(k)
		if err != nil {
			return "", fmt.Errorf("encode tag key: %w", err)
		}
		valJSON, err := json.Marshal(tags[k])
		if err != nil {
			return "", fmt.Errorf("encode tags for %q: %w", k, err)
		}
		pairs = append(pairs, [2]json.RawMessage{keyJSON, valJSON})
	}

	data, err := json.Marshal(pairs)
	if err != nil {
		return "", fmt.Errorf("encode tags: %w", err)
	}
	return string(data), nil
}

// decodeTags reconstructs the custom tags map from its pair-array form.
func decodeTags(blob string) (map[string][]string, error) {
	var pairs [][2]json.RawMessage
	if err := json.Unmarshal([]byte(blob), &pairs); err != nil {
		return nil, fmt.Errorf("decode tags: %w", err)
	}

	tags := make(map[string][]string, len(pairs))
	for _, pair := range pairs {
		var key string
		if err := json.Unmarshal(pair[0], &key); err != nil {
			return nil, fmt.Errorf("decode tag key: %w", err)
		}
		var vals []string
		if err := json.Unmarshal(pair[1], &vals); err != nil {
			return nil, fmt.Errorf("decode tags for %q: %w", key, err)
		}
		tags[key] = vals
	}
	return tags, nil
}

// encodePaths serializes the learning paths, unwrapping each path's
// nested completion set into a sorted array. Path order is the
// installation order and is preserved.
func encodePaths(paths []domain.LearningPath) (string, error) {
	wire := make([]learningPathJSON, 0, len(paths))
	for _, p := range paths {
		completed := make([]string, 0, len(p.CompletedDocuments))
		for id := range p.CompletedDocuments {
			completed = append(completed, id)
		}
		sort.Strings(completed)

		docs := p.Documents
		if docs == nil {
			docs = []string{}
		}
		wire = append(wire, learningPathJSON{
			ID:                 p.ID,
			Name:               p.Name,
			Difficulty:         p.Difficulty,
			Documents:          docs,
			EstimatedTime:      p.EstimatedTime,
			CompletedDocuments: completed,
		})
	}

	data, err := json.Marshal(wire)
	if err != nil {
		return "", fmt.Errorf("encode paths: %w", err)
	}
	return string(data), nil
}

// decodePaths reconstructs the learning paths, rebuilding each nested
// completion set from its array form.
func decodePaths(blob string) ([]domain.LearningPath, error) {
	var wire []learningPathJSON
	if err := json.Unmarshal([]byte(blob), &wire); err != nil {
		return nil, fmt.Errorf("decode paths: %w", err)
	}

	paths := make([]domain.LearningPath, 0, len(wire))
	for _, w := range wire {
		completed := make(map[string]struct{}, len(w.CompletedDocuments))
		for _, id := range w.CompletedDocuments {
			completed[id] = struct{}{}
		}
		paths = append(paths, domain.LearningPath{
			ID:                 w.ID,
			Name:               w.Name,
			Difficulty:         w.Difficulty,
			Documents:          w.Documents,
			EstimatedTime:      w.EstimatedTime,
			CompletedDocuments: completed,
		})
	}
	return paths, nil
}
