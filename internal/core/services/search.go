package services

import (
	"context"
	"math"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/docdeck/docdeck-cli/internal/core/domain"
	"github.com/docdeck/docdeck-cli/internal/core/ports/driving"
	"github.com/docdeck/docdeck-cli/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// Search tuning constants.
const (
	// DefaultSearchLimit caps results when the caller gives no limit.
	DefaultSearchLimit = 50

	// minTokenLength is the shortest query token considered matchable.
	minTokenLength = 3

	// matchThreshold is the maximum relative edit distance for a token
	// to count as matched.
	matchThreshold = 0.3

	// locationWindow is the positional drift, in bytes, over which the
	// proximity penalty ramps from 0 to 1.
	locationWindow = 100

	// maxBitapPattern is the longest token the bitap machine handles.
	// Longer tokens fall back to exact substring matching, which keeps
	// prose-length queries linear per chunk.
	maxBitapPattern = 31
)

// indexedChunk is a chunk prepared for repeated querying.
type indexedChunk struct {
	chunk   domain.ContentChunk
	lowered string
}

// foldLower lowercases ASCII letters only. The fold preserves byte
// length, so match offsets computed on the folded text index the
// original chunk content exactly even when it contains multi-byte
// runes. Non-ASCII letters match case-sensitively.
func foldLower(s string) string {
	i := 0
	for ; i < len(s); i++ {
		if c := s[i]; c >= 'A' && c <= 'Z' {
			break
		}
	}
	if i == len(s) {
		return s
	}
	b := []byte(s)
	for ; i < len(b); i++ {
		if c := b[i]; c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

// SearchService answers ranked fuzzy queries over content chunks.
// It owns its index state explicitly; rebuilds replace the index
// wholesale rather than adding to it.
type SearchService struct {
	catalog driving.CatalogService

	mu     sync.RWMutex
	chunks []indexedChunk
}

// NewSearchService creates a search service. The catalog is used to
// resolve document titles on results and may be nil in tests.
func NewSearchService(catalog driving.CatalogService) *SearchService {
	return &SearchService{catalog: catalog}
}

// Build replaces the index with one built from chunks.
func (s *SearchService) Build(chunks []domain.ContentChunk) {
	indexed := make([]indexedChunk, len(chunks))
	for i, c := range chunks {
		indexed[i] = indexedChunk{
			chunk:   c,
			lowered: foldLower(c.Content),
		}
	}

	s.mu.Lock()
	s.chunks = indexed
	s.mu.Unlock()

	logger.Info("Search index built: %d chunks", len(chunks))
}

// Search performs a fuzzy query over all indexed chunks. Results are
// sorted ascending by score, ties broken by original chunk order, and
// the ordering is deterministic for identical inputs.
func (s *SearchService) Search(
	_ context.Context, query string, opts domain.SearchOptions,
) ([]domain.SearchResult, error) {
	logger.Section("Search Execution")
	logger.Debug("Query: %q", query)

	query = strings.TrimSpace(query)
	if query == "" {
		logger.Debug("Empty query, returning no results")
		return []domain.SearchResult{}, nil
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	lowered := foldLower(query)
	patterns := compileQuery(lowered)
	if len(patterns) == 0 {
		// Every token is below the matchable length.
		logger.Debug("No matchable tokens in query")
		return []domain.SearchResult{}, nil
	}

	s.mu.RLock()
	chunks := s.chunks
	s.mu.RUnlock()

	if chunks == nil {
		return nil, domain.ErrIndexNotBuilt
	}

	results := make([]domain.SearchResult, 0)
	for _, ic := range chunks {
		score, ranges, ok := scoreChunk(ic.lowered, lowered, patterns)
		if !ok {
			continue
		}
		results = append(results, domain.SearchResult{
			DocumentID:    ic.chunk.DocumentID,
			DocumentTitle: s.titleFor(ic.chunk.DocumentID),
			ChunkIndex:    ic.chunk.Index,
			Content:       ic.chunk.Content,
			Score:         score,
			Matches:       ranges,
		})
	}

	// Stable sort keeps chunk order as the tiebreak.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score < results[j].Score
	})

	if len(results) > limit {
		results = results[:limit]
	}

	logger.Debug("Results: %d", len(results))
	return results, nil
}

// titleFor resolves a document title, tolerating a missing catalog.
func (s *SearchService) titleFor(docID string) string {
	if s.catalog == nil {
		return ""
	}
	doc, err := s.catalog.Get(docID)
	if err != nil {
		return ""
	}
	return doc.Title
}

// bitapPattern is a query token compiled for the bitap machine.
// Masks are built once per query, not per chunk.
type bitapPattern struct {
	text      string
	masks     [256]uint64
	maxErrors int
}

// compileQuery splits a lowered query into compiled matchable tokens.
// Tokens shorter than minTokenLength (in runes) are dropped; all input
// bytes, including regex metacharacters and multi-byte runes, are
// treated as literal content.
func compileQuery(lowered string) []bitapPattern {
	fields := strings.Fields(lowered)
	patterns := make([]bitapPattern, 0, len(fields))
	for _, tok := range fields {
		if utf8.RuneCountInString(tok) < minTokenLength {
			continue
		}
		p := bitapPattern{
			text:      tok,
			maxErrors: int(matchThreshold * float64(len(tok))),
		}
		if len(tok) <= maxBitapPattern {
			for i := 0; i < len(tok); i++ {
				p.masks[tok[i]] |= 1 << uint(i)
			}
		}
		patterns = append(patterns, p)
	}
	return patterns
}

// scoreChunk matches every compiled token against the chunk content.
// The chunk matches only if all tokens do. The returned score is the
// mean token score clamped to [0, 1]; 0 means the whole query appears
// verbatim.
func scoreChunk(content, query string, patterns []bitapPattern) (float64, []domain.MatchRange, bool) {
	// Exact whole-query substring is a perfect match.
	if idx := strings.Index(content, query); idx >= 0 {
		return 0, []domain.MatchRange{{Start: idx, End: idx + len(query)}}, true
	}

	anchor := -1
	total := 0.0
	ranges := make([]domain.MatchRange, 0, len(patterns))

	for i := range patterns {
		m, ok := matchToken(content, &patterns[i], anchor)
		if !ok {
			return 0, nil, false
		}
		total += m.score
		ranges = append(ranges, domain.MatchRange{Start: m.start, End: m.end})
		anchor = m.start
	}

	score := total / float64(len(patterns))
	if score > 1 {
		score = 1
	}
	return score, mergeRanges(ranges), true
}

// tokenMatch is one token's best match location within a chunk.
type tokenMatch struct {
	start int
	end   int
	score float64
}

// matchToken finds the best match for a single token. The anchor is
// the previous token's match position; drift from it is penalised
// through the location window.
func matchToken(content string, p *bitapPattern, anchor int) (tokenMatch, bool) {
	if len(p.text) > maxBitapPattern {
		idx := strings.Index(content, p.text)
		if idx < 0 {
			return tokenMatch{}, false
		}
		return tokenMatch{
			start: idx,
			end:   idx + len(p.text),
			score: proximityPenalty(idx, anchor),
		}, true
	}

	loc, errs, ok := bitapSearch(content, p, anchor)
	if !ok {
		return tokenMatch{}, false
	}
	return tokenMatch{
		start: loc,
		end:   loc + len(p.text),
		score: float64(errs)/float64(len(p.text)) + proximityPenalty(loc, anchor),
	}, true
}

// proximityPenalty is the positional drift cost in [0, 1]. The first
// token of a query has no anchor and pays nothing.
func proximityPenalty(loc, anchor int) float64 {
	if anchor < 0 {
		return 0
	}
	d := loc - anchor
	if d < 0 {
		d = -d
	}
	p := float64(d) / float64(locationWindow)
	if p > 1 {
		p = 1
	}
	return p
}

// bitapSearch runs a Wu-Manber shift-and scan of content for the
// pattern, allowing up to p.maxErrors edits (substitutions, insertions,
// deletions). It returns the match position with the lowest combined
// edit + proximity score, preferring earlier positions on ties, which
// keeps results deterministic.
func bitapSearch(content string, p *bitapPattern, anchor int) (loc, errs int, ok bool) {
	m := len(p.text)
	accept := uint64(1) << uint(m-1)

	// r[d] bit j: pattern[0..j] matches a suffix of the scanned text
	// with at most d errors.
	r := make([]uint64, p.maxErrors+1)
	for d := range r {
		r[d] = (uint64(1) << uint(d)) - 1
	}

	bestScore := math.Inf(1)
	bestLoc, bestErrs := -1, 0

	for i := 0; i < len(content); i++ {
		cm := p.masks[content[i]]
		var prevOld uint64

		matchedAt := -1
		for d := 0; d <= p.maxErrors; d++ {
			old := r[d]
			if d == 0 {
				r[0] = ((old << 1) | 1) & cm
			} else {
				r[d] = (((old << 1) | 1) & cm) | // match
					prevOld | // insertion
					((prevOld | r[d-1]) << 1) | // substitution, deletion
					((uint64(1) << uint(d)) - 1)
			}
			prevOld = old
			if matchedAt < 0 && r[d]&accept != 0 {
				matchedAt = d
			}
		}

		if matchedAt >= 0 {
			start := i - m + 1
			if start < 0 {
				start = 0
			}
			cand := float64(matchedAt)/float64(m) + proximityPenalty(start, anchor)
			if cand < bestScore {
				bestScore = cand
				bestLoc = start
				bestErrs = matchedAt
			}
		}
	}

	if bestLoc < 0 {
		return 0, 0, false
	}
	return bestLoc, bestErrs, true
}

// mergeRanges sorts highlight ranges and merges overlaps.
func mergeRanges(ranges []domain.MatchRange) []domain.MatchRange {
	if len(ranges) <= 1 {
		return ranges
	}

	sort.Slice(ranges, func(i, j int) bool {
		if ranges[i].Start != ranges[j].Start {
			return ranges[i].Start < ranges[j].Start
		}
		return ranges[i].End < ranges[j].End
	})

	merged := ranges[:1]
	for _, r := range ranges[1:] {
		last := &merged[len(merged)-1]
		if r.Start <= last.End {
			if r.End > last.End {
				last.End = r.End
			}
			continue
		}
		merged = append(merged, r)
	}
	return merged
}
