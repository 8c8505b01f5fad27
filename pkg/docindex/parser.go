package docindex

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/kamal-hamza/svgcheck/internal/core/domain"
)

var (
	// Match README table rows like:
	// <td><img src="images/svg/check.svg" alt="check"><br>600 bytes</td>
	// Group 1 is the filename after /svg/, group 2 the byte count.
	rowPattern = regexp.MustCompile(`<td>.*/svg/(.*\.svg).*<br>(\d+) bytes`)
)

// MatchLine extracts a documentation entry from a single README line.
// Lines that do not look like a size row return false.
func MatchLine(line string) (domain.DocumentationEntry, bool) {
	matches := rowPattern.FindStringSubmatch(line)
	if matches == nil {
		return domain.DocumentationEntry{}, false
	}

	size, err := strconv.ParseInt(matches[2], 10, 64)
	if err != nil {
		// Only reachable on overflow
		return domain.DocumentationEntry{}, false
	}

	return domain.DocumentationEntry{
		Filename:     matches[1],
		DeclaredSize: size,
	}, true
}

// Parse builds the declared-size index from README lines
func Parse(lines []string) domain.DocIndex {
	index := domain.NewDocIndex()
	for _, line := range lines {
		if entry, ok := MatchLine(line); ok {
			index.Add(entry)
		}
	}
	return index
}

// ParseText splits text into lines and parses them.
// Lines have no length limit.
func ParseText(text string) domain.DocIndex {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, "\r")
	}
	return Parse(lines)
}

// FormatSize returns the size fragment as it appears in a README cell
func FormatSize(size int64) string {
	return fmt.Sprintf("<br>%d bytes", size)
}

// FormatRow returns a minimal table cell for a file that the parser accepts
func FormatRow(svgDir, filename string, size int64) string {
	dir := strings.TrimSuffix(svgDir, "/")
	return fmt.Sprintf(`<td><img src="%s/%s" alt="%s">%s</td>`,
		dir, filename, strings.TrimSuffix(filename, domain.SVGSuffix), FormatSize(size))
}
