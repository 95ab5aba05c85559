package driven

import "context"

// ContentFetcher retrieves the raw markdown text for a document.
// A fetch failure is a per-item condition: implementations return an
// error and the content service degrades to a placeholder body, so a
// single unreadable document never affects navigation or the rest of
// the index.
type ContentFetcher interface {
	// Fetch returns the raw markdown at filePath.
	Fetch(ctx context.Context, filePath string) (string, error)
}
