package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrManifest indicates the document manifest is missing or malformed.
	// This is fatal: the application cannot start without a catalog.
	ErrManifest = errors.New("invalid document manifest")

	// ErrCatalogNotLoaded indicates a catalog operation was attempted
	// before Load succeeded.
	ErrCatalogNotLoaded = errors.New("catalog not loaded")

	// ErrIndexNotBuilt indicates a search was attempted before the
	// index was built.
	ErrIndexNotBuilt = errors.New("search index not built")
)
