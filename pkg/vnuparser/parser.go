package vnuparser

import (
	"regexp"
	"strings"

	"github.com/kamal-hamza/svgcheck/internal/core/domain"
)

var (
	// Match vnu error lines like:
	// "file:/repo/images/svg/broken.svg":3.5-3.40: error: Element "foo" not allowed here.
	// Group 1 is the filename plus the rest of the line, group 2 the bare filename.
	// The filename may not contain a slash or quote, so the first .svg after svg/ wins.
	errorLinePattern = regexp.MustCompile(`svg/(([^/"]+?\.svg).*)`)
)

// MatchLine extracts a validation error from one line of validator output
func MatchLine(line string) (domain.ValidationError, bool) {
	matches := errorLinePattern.FindStringSubmatch(line)
	if matches == nil {
		return domain.ValidationError{}, false
	}

	return domain.ValidationError{
		Filename: matches[2],
		Messages: []string{matches[1]},
	}, true
}

// ParseLines builds a validation report from already-split output lines.
// Empty and unrecognised lines are skipped.
func ParseLines(lines []string) domain.ValidationReport {
	report := domain.NewValidationReport()
	for _, line := range lines {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		if verr, ok := MatchLine(line); ok {
			report.Add(verr.Filename, verr.Message())
		}
	}
	return report
}

// Parse splits raw validator output into lines and parses them
func Parse(output string) domain.ValidationReport {
	return ParseLines(SplitLines(output))
}

// SplitLines returns the non-empty lines of output
func SplitLines(output string) []string {
	var lines []string
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimRight(line, "\r")
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
