// Package local implements the ContentFetcher port over the local
// filesystem, rooted at a docs directory.
package local

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/docdeck/docdeck-cli/internal/core/domain"
	"github.com/docdeck/docdeck-cli/internal/core/ports/driven"
)

// Ensure Fetcher implements the interface.
var _ driven.ContentFetcher = (*Fetcher)(nil)

// Fetcher reads markdown files from a directory tree.
type Fetcher struct {
	root string
}

// New creates a fetcher rooted at root.
func New(root string) *Fetcher {
	return &Fetcher{root: root}
}

// Fetch reads the document at filePath relative to the root.
// Paths escaping the root are rejected.
func (f *Fetcher) Fetch(_ context.Context, filePath string) (string, error) {
	rel := filepath.Clean(filepath.FromSlash(strings.TrimLeft(filePath, "/")))
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: path %q escapes docs root", domain.ErrInvalidInput, filePath)
	}

	data, err := os.ReadFile(filepath.Join(f.root, rel))
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", filePath, err)
	}
	return string(data), nil
}
