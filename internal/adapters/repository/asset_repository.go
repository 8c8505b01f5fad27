package repository

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/kamal-hamza/svgcheck/internal/core/domain"
	"github.com/kamal-hamza/svgcheck/internal/core/ports"
	"github.com/kamal-hamza/svgcheck/pkg/workspace"
)

type FileAssetRepository struct {
	workspace *workspace.Workspace
}

// NewFileAssetRepository creates a repository over the workspace svg directory
func NewFileAssetRepository(w *workspace.Workspace) *FileAssetRepository {
	return &FileAssetRepository{
		workspace: w,
	}
}

// Ensure it implements the interface
var _ ports.AssetRepository = (*FileAssetRepository)(nil)

// List returns every .svg file in the svg directory, sorted by name.
// Other entries are ignored. Directories are skipped even if their name ends in .svg.
func (r *FileAssetRepository) List(ctx context.Context) ([]domain.AssetFile, error) {
	entries, err := os.ReadDir(r.workspace.SVGPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read svg directory: %w", err)
	}

	var assets []domain.AssetFile
	for _, entry := range entries {
		if !domain.IsSVG(entry.Name()) {
			continue
		}

		// Stat follows symlinks so a linked icon reports the target size
		info, err := os.Stat(r.workspace.GetSVGPath(entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", entry.Name(), err)
		}
		if info.IsDir() {
			continue
		}

		assets = append(assets, domain.AssetFile{
			Filename: entry.Name(),
			Size:     info.Size(),
		})
	}

	sort.Slice(assets, func(i, j int) bool {
		return assets[i].Filename < assets[j].Filename
	})

	return assets, nil
}

// Get returns a single asset by filename
func (r *FileAssetRepository) Get(ctx context.Context, filename string) (*domain.AssetFile, error) {
	if !domain.IsSVG(filename) {
		return nil, fmt.Errorf("not an svg file: %s", filename)
	}

	info, err := os.Stat(r.workspace.GetSVGPath(filename))
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", filename)
	}

	return &domain.AssetFile{Filename: filename, Size: info.Size()}, nil
}
