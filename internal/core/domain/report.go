package domain

// CheckName identifies one of the per-file assertions
type CheckName string

const (
	CheckUnderBudget CheckName = "should be under 1KB"
	CheckInReadme    CheckName = "should be included in readme"
	CheckSizeMatches CheckName = "should match readme size"
	CheckValidMarkup CheckName = "should be validated by the w3c validator"
	CheckNoOrphans   CheckName = "all files in readme should exist"
)

// DefaultSizeBudget is the exclusive upper bound on icon size in bytes
const DefaultSizeBudget int64 = 1024

// CheckResult is the outcome of one assertion
type CheckResult struct {
	Name   CheckName `json:"name"`
	Passed bool      `json:"passed"`
	Detail string    `json:"detail,omitempty"`
}

// FileReport collects the results for a single asset
type FileReport struct {
	Asset    AssetFile     `json:"asset"`
	Declared *int64        `json:"declared,omitempty"`
	Errors   []string      `json:"errors,omitempty"`
	Checks   []CheckResult `json:"checks"`
}

// Passed returns true if every check on the file passed
func (f FileReport) Passed() bool {
	for _, c := range f.Checks {
		if !c.Passed {
			return false
		}
	}
	return true
}

// Failures returns only the failed checks
func (f FileReport) Failures() []CheckResult {
	var failed []CheckResult
	for _, c := range f.Checks {
		if !c.Passed {
			failed = append(failed, c)
		}
	}
	return failed
}

// Report is the result of a full run
type Report struct {
	Files             []FileReport         `json:"files"`
	Orphans           []DocumentationEntry `json:"orphans"`
	ValidationSkipped bool                 `json:"validation_skipped"`
}

// OrphanCheck returns the aggregate "no orphaned entries" result
func (r *Report) OrphanCheck() CheckResult {
	if len(r.Orphans) == 0 {
		return CheckResult{Name: CheckNoOrphans, Passed: true}
	}
	return CheckResult{
		Name:   CheckNoOrphans,
		Passed: false,
		Detail: "not found on disk: " + FormatEntries(r.Orphans),
	}
}

// CheckCount returns the number of assertions evaluated, including the orphan check
func (r *Report) CheckCount() int {
	n := 1
	for _, f := range r.Files {
		n += len(f.Checks)
	}
	return n
}

// FailureCount returns the number of failed assertions, including the orphan check
func (r *Report) FailureCount() int {
	n := 0
	for _, f := range r.Files {
		n += len(f.Failures())
	}
	if !r.OrphanCheck().Passed {
		n++
	}
	return n
}

// Passed returns true if every assertion passed
func (r *Report) Passed() bool {
	return r.FailureCount() == 0
}
