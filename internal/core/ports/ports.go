package ports

import (
	"context"

	"github.com/kamal-hamza/svgcheck/internal/core/domain"
)

// DocumentationSource defines the port for reading declared icon sizes
type DocumentationSource interface {
	// Load parses the documentation and returns filename -> declared size
	Load(ctx context.Context) (domain.DocIndex, error)
}

// AssetRepository defines the port for enumerating icons on disk
type AssetRepository interface {
	// List returns every .svg file in the asset directory with its size
	List(ctx context.Context) ([]domain.AssetFile, error)
}

// Validator defines the port for the external markup validator
type Validator interface {
	// Validate runs the validator once over dir.
	// A returned error means the validator could not be run at all.
	Validate(ctx context.Context, dir string) (*domain.ValidationOutcome, error)
}
