package domain

import "strings"

// SVGSuffix is the only extension the checker looks at. Matching is case-sensitive.
const SVGSuffix = ".svg"

// AssetFile represents an icon found on disk
type AssetFile struct {
	Filename string `json:"filename"`
	Size     int64  `json:"size"` // Actual size in bytes
}

// IsSVG reports whether a directory entry name should be checked
func IsSVG(name string) bool {
	return strings.HasSuffix(name, SVGSuffix)
}
