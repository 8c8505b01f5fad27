package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kamal-hamza/svgcheck/internal/core/domain"
	"github.com/kamal-hamza/svgcheck/internal/core/ports"
	"github.com/kamal-hamza/svgcheck/pkg/vnuparser"
)

// Stage names reported through CheckRequest.Progress
const (
	StageReadme    = "Getting file sizes from README"
	StageValidate  = "Validating SVGs with the W3C validator (vnu)"
	StageSkip      = "Skipping W3C validation"
	StageRunChecks = "Running tests"
)

// CheckService cross-checks icons against the README and the validator
type CheckService struct {
	docs      ports.DocumentationSource
	assets    ports.AssetRepository
	validator ports.Validator
	svgDir    string
	budget    int64
}

// NewCheckService creates a new check service.
// svgDir is handed to the validator as-is; budget <= 0 uses the default.
func NewCheckService(docs ports.DocumentationSource, assets ports.AssetRepository, validator ports.Validator, svgDir string, budget int64) *CheckService {
	if budget <= 0 {
		budget = domain.DefaultSizeBudget
	}
	return &CheckService{
		docs:      docs,
		assets:    assets,
		validator: validator,
		svgDir:    svgDir,
		budget:    budget,
	}
}

// CheckRequest represents a request to run every check
type CheckRequest struct {
	SkipValidation bool
	// Progress is called before each stage. May be nil.
	Progress func(stage string)
}

// CheckResponse represents the response from a full run
type CheckResponse struct {
	Report     *domain.Report
	Validation domain.ValidationReport
	Duration   time.Duration
}

// Execute runs the full pass. A returned error is a setup failure and no report
// is produced; assertion failures are recorded in the report instead.
func (s *CheckService) Execute(ctx context.Context, req CheckRequest) (*CheckResponse, error) {
	start := time.Now()
	progress := req.Progress
	if progress == nil {
		progress = func(string) {}
	}

	progress(StageReadme)
	index, err := s.docs.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load documentation: %w", err)
	}

	validation := domain.NewValidationReport()
	if req.SkipValidation {
		progress(StageSkip)
	} else {
		progress(StageValidate)
		outcome, err := s.validator.Validate(ctx, s.svgDir)
		if err != nil {
			return nil, fmt.Errorf("failed to run validator: %w", err)
		}
		if !outcome.OK {
			validation = vnuparser.ParseLines(outcome.ErrorLines)
		}
	}

	progress(StageRunChecks)
	assets, err := s.assets.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list icons: %w", err)
	}

	report := &domain.Report{ValidationSkipped: req.SkipValidation}
	seen := make(map[string]bool, len(assets))

	for _, asset := range assets {
		report.Files = append(report.Files, s.CheckFile(asset, index, validation))
		seen[asset.Filename] = true
	}

	report.Orphans = index.Missing(seen)

	return &CheckResponse{
		Report:     report,
		Validation: validation,
		Duration:   time.Since(start),
	}, nil
}

// CheckFile evaluates the four per-file checks. Each one is evaluated on its own.
func (s *CheckService) CheckFile(asset domain.AssetFile, index domain.DocIndex, validation domain.ValidationReport) domain.FileReport {
	declared, listed := index.Lookup(asset.Filename)

	fr := domain.FileReport{
		Asset:  asset,
		Errors: validation.Errors(asset.Filename),
	}
	if listed {
		fr.Declared = &declared
	}

	// 1. Size budget
	budget := domain.CheckResult{Name: domain.CheckUnderBudget, Passed: asset.Size < s.budget}
	if !budget.Passed {
		budget.Detail = fmt.Sprintf("%d bytes, must be under %d", asset.Size, s.budget)
	}

	// 2. Listed in README
	inReadme := domain.CheckResult{Name: domain.CheckInReadme, Passed: listed}
	if !listed {
		inReadme.Detail = "not listed in README"
	}

	// 3. Declared size matches
	sizeMatch := domain.CheckResult{Name: domain.CheckSizeMatches, Passed: listed && declared == asset.Size}
	switch {
	case !listed:
		sizeMatch.Detail = fmt.Sprintf("actual %d bytes, README has no entry", asset.Size)
	case declared != asset.Size:
		sizeMatch.Detail = fmt.Sprintf("actual %d bytes, README says %d", asset.Size, declared)
	}

	// 4. Validator
	valid := domain.CheckResult{Name: domain.CheckValidMarkup, Passed: !validation.HasErrors(asset.Filename)}
	if !valid.Passed {
		valid.Detail = strings.Join(fr.Errors, "\n")
	}

	fr.Checks = []domain.CheckResult{budget, inReadme, sizeMatch, valid}
	return fr
}

// Budget returns the size limit in use
func (s *CheckService) Budget() int64 {
	return s.budget
}
