package services

import (
	"context"
	"fmt"

	"github.com/docdeck/docdeck-cli/internal/core/ports/driven"
	"github.com/docdeck/docdeck-cli/internal/core/ports/driving"
	"github.com/docdeck/docdeck-cli/internal/logger"
)

// Ensure ContentService implements the interface.
var _ driving.ContentService = (*ContentService)(nil)

// ContentService loads document bodies through a ContentFetcher,
// degrading to a labelled placeholder on any failure. A single
// unreadable document must never crash navigation or indexing.
type ContentService struct {
	fetcher driven.ContentFetcher
}

// NewContentService creates a content service using fetcher.
func NewContentService(fetcher driven.ContentFetcher) *ContentService {
	return &ContentService{fetcher: fetcher}
}

// Load returns the markdown text at filePath, or a placeholder body
// naming the path and the error when the fetch fails.
func (s *ContentService) Load(ctx context.Context, filePath string) string {
	content, err := s.fetcher.Fetch(ctx, filePath)
	if err != nil {
		logger.Warn("Content fetch failed for %s: %v", filePath, err)
		return placeholderBody(filePath, err)
	}
	return content
}

// placeholderBody builds the deterministic degraded content shown when
// a document cannot be loaded.
func placeholderBody(filePath string, err error) string {
	return fmt.Sprintf(
		"# Document Not Found\n\nThe document at `%s` could not be loaded.\n\nError: %v\n",
		filePath, err,
	)
}
