// Package domain defines the core business entities for Docdeck.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: A catalogued markdown document with metadata
//   - ContentChunk: The bounded unit of text the search index is built over
//   - SearchResult: A scored fuzzy-search hit with highlight offsets
//   - TreeNode: A node in the derived category navigation tree
//   - AnalyticsRecord / LearningPath: Per-user persisted learning state
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
