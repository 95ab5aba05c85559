package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/docdeck/docdeck-cli/internal/core/domain"
	"github.com/docdeck/docdeck-cli/internal/core/ports/driven"
	"github.com/docdeck/docdeck-cli/internal/core/ports/driving"
	"github.com/docdeck/docdeck-cli/internal/logger"
)

// Ensure CatalogService implements the interface.
var _ driving.CatalogService = (*CatalogService)(nil)

// DefaultFilterLimit is the maximum filter result size when the
// caller does not specify one.
const DefaultFilterLimit = 50

// CatalogService holds the loaded document catalog and answers flat
// filtering and enumeration queries over it. The catalog is replaced
// wholesale on Load; documents are immutable afterwards.
type CatalogService struct {
	manifest driven.ManifestSource

	mu   sync.RWMutex
	docs []domain.Document
	byID map[string]domain.Document
}

// NewCatalogService creates a catalog service reading from manifest.
func NewCatalogService(manifest driven.ManifestSource) *CatalogService {
	return &CatalogService{
		manifest: manifest,
	}
}

// Load reads the manifest and replaces the in-memory catalog.
// Any manifest failure is fatal: the application cannot start
// without a catalog.
func (s *CatalogService) Load(ctx context.Context) error {
	logger.Section("Catalog Load")

	docs, err := s.manifest.Load(ctx)
	if err != nil {
		return fmt.Errorf("load manifest: %w", err)
	}

	byID := make(map[string]domain.Document, len(docs))
	for _, doc := range docs {
		if err := doc.Validate(); err != nil {
			return fmt.Errorf("%w: %w", domain.ErrManifest, err)
		}
		if _, exists := byID[doc.ID]; exists {
			return fmt.Errorf("%w: duplicate document ID %q", domain.ErrManifest, doc.ID)
		}
		byID[doc.ID] = doc
	}

	s.mu.Lock()
	s.docs = docs
	s.byID = byID
	s.mu.Unlock()

	logger.Info("Catalog loaded: %d documents", len(docs))
	return nil
}

// Documents returns all documents in catalog order.
func (s *CatalogService) Documents() []domain.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Document, len(s.docs))
	copy(out, s.docs)
	return out
}

// Get returns the document with the given ID.
func (s *CatalogService) Get(id string) (domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.byID == nil {
		return domain.Document{}, domain.ErrCatalogNotLoaded
	}
	doc, ok := s.byID[id]
	if !ok {
		return domain.Document{}, fmt.Errorf("document %q: %w", id, domain.ErrNotFound)
	}
	return doc, nil
}

// Filter returns documents matching opts, in catalog order. There is
// no ranking here; ranked lookup is the search service's job.
func (s *CatalogService) Filter(opts driving.FilterOptions) []domain.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultFilterLimit
	}

	query := strings.ToLower(strings.TrimSpace(opts.Query))

	matched := make([]domain.Document, 0, limit)
	for _, doc := range s.docs {
		if query != "" && !matchesQuery(doc, query) {
			continue
		}
		if len(opts.Categories) > 0 && !containsAny(opts.Categories, doc.Category) {
			continue
		}
		if len(opts.Tags) > 0 && !matchesAnyTag(doc.Tags, opts.Tags) {
			continue
		}

		matched = append(matched, doc)
		if len(matched) >= limit {
			break
		}
	}

	return matched
}

// matchesQuery reports whether the query is a case-insensitive
// substring of any searchable document field.
func matchesQuery(doc domain.Document, query string) bool {
	if strings.Contains(strings.ToLower(doc.Title), query) {
		return true
	}
	if strings.Contains(strings.ToLower(doc.Description), query) {
		return true
	}
	if strings.Contains(strings.ToLower(doc.Category), query) {
		return true
	}
	for _, tag := range doc.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

// containsAny reports whether candidates contains value.
func containsAny(candidates []string, value string) bool {
	for _, c := range candidates {
		if c == value {
			return true
		}
	}
	return false
}

// matchesAnyTag reports whether the document has at least one of the
// requested tags.
func matchesAnyTag(docTags, requested []string) bool {
	for _, want := range requested {
		for _, have := range docTags {
			if have == want {
				return true
			}
		}
	}
	return false
}

// UniqueCategories returns all category paths, sorted and deduplicated.
func (s *CatalogService) UniqueCategories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{}, len(s.docs))
	for _, doc := range s.docs {
		seen[doc.Category] = struct{}{}
	}

	out := make([]string, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// UniqueTags returns all tags, sorted and deduplicated.
func (s *CatalogService) UniqueTags() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	for _, doc := range s.docs {
		for _, tag := range doc.Tags {
			seen[tag] = struct{}{}
		}
	}

	out := make([]string, 0, len(seen))
	for t := range seen {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
