package workspace

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kamal-hamza/svgcheck/pkg/config"
)

// Workspace represents the icon project being checked
type Workspace struct {
	RootPath   string
	ReadmePath string
	SVGPath    string
	ConfigPath string
}

// New resolves workspace paths against root.
// configPath may be empty, in which case the default file in root is used.
func New(root, configPath string) (*Workspace, error) {
	rootPath, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project root: %w", err)
	}

	if configPath == "" {
		configPath = filepath.Join(rootPath, config.FileName)
	}

	return &Workspace{
		RootPath:   rootPath,
		ConfigPath: configPath,
	}, nil
}

// Apply points the README and svg paths at the locations named in cfg
func (w *Workspace) Apply(cfg *config.Config) {
	w.ReadmePath = w.resolve(cfg.Readme)
	w.SVGPath = w.resolve(cfg.SVGDir)
}

func (w *Workspace) resolve(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(w.RootPath, path)
}

// Exists checks if the project root is a directory
func (w *Workspace) Exists() bool {
	return isDir(w.RootPath)
}

// HasSVGDir checks if the svg directory exists
func (w *Workspace) HasSVGDir() bool {
	return isDir(w.SVGPath)
}

// HasReadme checks if the README exists and is a regular file
func (w *Workspace) HasReadme() bool {
	info, err := os.Stat(w.ReadmePath)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// GetSVGPath returns the full path for an icon file
func (w *Workspace) GetSVGPath(filename string) string {
	return filepath.Join(w.SVGPath, filename)
}

// Rel returns path relative to the project root, or path unchanged if that fails
func (w *Workspace) Rel(path string) string {
	rel, err := filepath.Rel(w.RootPath, path)
	if err != nil {
		return path
	}
	return rel
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}
