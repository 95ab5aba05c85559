package driven

import (
	"context"

	"github.com/docdeck/docdeck-cli/internal/core/domain"
)

// ManifestSource loads the static document manifest the catalog is
// built from. A missing or malformed manifest is a boot-time failure:
// implementations return an error wrapping domain.ErrManifest and the
// application does not start.
type ManifestSource interface {
	// Load reads and validates the full document manifest.
	Load(ctx context.Context) ([]domain.Document, error)
}
