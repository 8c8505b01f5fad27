package domain

import (
	"fmt"
	"sort"
	"strings"
)

// DocumentationEntry is a single row of the README size table
type DocumentationEntry struct {
	Filename     string `json:"filename"`
	DeclaredSize int64  `json:"declared_size"`
}

// DocIndex maps filename to the size declared in the README
type DocIndex map[string]int64

// NewDocIndex creates an empty index
func NewDocIndex() DocIndex {
	return make(DocIndex)
}

// Add records an entry. A later entry for the same file replaces the earlier one.
func (idx DocIndex) Add(entry DocumentationEntry) {
	idx[entry.Filename] = entry.DeclaredSize
}

// Lookup returns the declared size for a file
func (idx DocIndex) Lookup(filename string) (int64, bool) {
	size, ok := idx[filename]
	return size, ok
}

// Entries returns all entries sorted by filename
func (idx DocIndex) Entries() []DocumentationEntry {
	entries := make([]DocumentationEntry, 0, len(idx))
	for name, size := range idx {
		entries = append(entries, DocumentationEntry{Filename: name, DeclaredSize: size})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Filename < entries[j].Filename
	})
	return entries
}

// Missing returns the entries whose filename is not in seen, sorted by filename
func (idx DocIndex) Missing(seen map[string]bool) []DocumentationEntry {
	var missing []DocumentationEntry
	for _, entry := range idx.Entries() {
		if !seen[entry.Filename] {
			missing = append(missing, entry)
		}
	}
	return missing
}

// FormatEntries renders entries as {a.svg: 100, b.svg: 200}
func FormatEntries(entries []DocumentationEntry) string {
	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = fmt.Sprintf("%s: %d", e.Filename, e.DeclaredSize)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
