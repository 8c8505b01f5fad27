package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/kamal-hamza/svgcheck/internal/core/ports"
)

// InventoryService lines up icons on disk with README entries
type InventoryService struct {
	docs   ports.DocumentationSource
	assets ports.AssetRepository
}

// NewInventoryService creates a new inventory service
func NewInventoryService(docs ports.DocumentationSource, assets ports.AssetRepository) *InventoryService {
	return &InventoryService{
		docs:   docs,
		assets: assets,
	}
}

// InventoryRow describes one filename seen on disk, in the README, or both
type InventoryRow struct {
	Filename string
	Size     int64 // Actual size, 0 when not on disk
	Declared int64 // README size, 0 when not listed
	OnDisk   bool
	InReadme bool
}

// Matches returns true if the file exists and the README size is correct
func (r InventoryRow) Matches() bool {
	return r.OnDisk && r.InReadme && r.Size == r.Declared
}

// Status returns a short label for the row
func (r InventoryRow) Status() string {
	switch {
	case !r.OnDisk:
		return "orphan"
	case !r.InReadme:
		return "undocumented"
	case r.Size != r.Declared:
		return "mismatch"
	default:
		return "ok"
	}
}

// InventoryRequest represents a request to list icons
type InventoryRequest struct {
	// OnlyProblems drops rows whose README size is correct
	OnlyProblems bool
}

// InventoryResponse represents the response from listing icons
type InventoryResponse struct {
	Rows  []InventoryRow
	Total int
}

// Execute merges the README index with the directory listing, sorted by filename
func (s *InventoryService) Execute(ctx context.Context, req InventoryRequest) (*InventoryResponse, error) {
	index, err := s.docs.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load documentation: %w", err)
	}

	assets, err := s.assets.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list icons: %w", err)
	}

	rows := make(map[string]*InventoryRow)
	for _, asset := range assets {
		rows[asset.Filename] = &InventoryRow{
			Filename: asset.Filename,
			Size:     asset.Size,
			OnDisk:   true,
		}
	}
	for _, entry := range index.Entries() {
		row, ok := rows[entry.Filename]
		if !ok {
			row = &InventoryRow{Filename: entry.Filename}
			rows[entry.Filename] = row
		}
		row.Declared = entry.DeclaredSize
		row.InReadme = true
	}

	var result []InventoryRow
	for _, row := range rows {
		if req.OnlyProblems && row.Matches() {
			continue
		}
		result = append(result, *row)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Filename < result[j].Filename
	})

	return &InventoryResponse{
		Rows:  result,
		Total: len(result),
	}, nil
}

// Find returns the row for a single filename
func (s *InventoryService) Find(ctx context.Context, filename string) (*InventoryRow, error) {
	resp, err := s.Execute(ctx, InventoryRequest{})
	if err != nil {
		return nil, err
	}
	for i := range resp.Rows {
		if resp.Rows[i].Filename == filename {
			return &resp.Rows[i], nil
		}
	}
	return nil, fmt.Errorf("icon not found: %s", filename)
}
