package repository

import (
	"context"
	"fmt"
	"os"

	"github.com/kamal-hamza/svgcheck/internal/core/domain"
	"github.com/kamal-hamza/svgcheck/internal/core/ports"
	"github.com/kamal-hamza/svgcheck/pkg/docindex"
	"github.com/kamal-hamza/svgcheck/pkg/workspace"
)

// ReadmeRepository reads declared icon sizes from the project README
type ReadmeRepository struct {
	workspace *workspace.Workspace
}

func NewReadmeRepository(w *workspace.Workspace) *ReadmeRepository {
	return &ReadmeRepository{workspace: w}
}

var _ ports.DocumentationSource = (*ReadmeRepository)(nil)

// Load reads the README and parses its size table
func (r *ReadmeRepository) Load(ctx context.Context) (domain.DocIndex, error) {
	data, err := os.ReadFile(r.workspace.ReadmePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read README: %w", err)
	}

	return docindex.ParseText(string(data)), nil
}
