package driving

import "github.com/docdeck/docdeck-cli/internal/core/domain"

// NavigationService derives navigation structures from the catalog.
// All methods are pure: no hidden state, safe to call repeatedly.
type NavigationService interface {
	// BuildTree derives the category tree from documents, returning
	// the root nodes in first-seen category order.
	BuildTree(documents []domain.Document) []*domain.TreeNode

	// Flatten returns a pre-order traversal of tree. Every node's
	// parent appears earlier in the returned sequence.
	Flatten(roots []*domain.TreeNode) []*domain.TreeNode

	// Breadcrumbs derives the navigation trail for a document file path.
	Breadcrumbs(filePath string) []domain.Breadcrumb

	// TableOfContents scans markdown heading lines into TOC entries.
	TableOfContents(markdown string) []domain.TOCEntry
}
