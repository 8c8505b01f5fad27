package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the default config file name, looked up in the project root
const FileName = ".svgcheck.yaml"

// EnvVnuJar overrides the vnu jar location when set
const EnvVnuJar = "SVGCHECK_VNU_JAR"

type Config struct {
	// Paths (relative to the project root)
	Readme string `yaml:"readme"`
	SVGDir string `yaml:"svg_dir"`

	// Checks
	SizeBudget int64 `yaml:"size_budget"`

	// Validator Settings
	Java           string `yaml:"java"`
	VnuJar         string `yaml:"vnu_jar"`
	FilterPattern  string `yaml:"filter_pattern"`
	SkipValidation bool   `yaml:"skip_validation"`

	// Watch
	WatchDebounceMS int `yaml:"watch_debounce_ms"`

	// UI Settings
	ColorTheme string `yaml:"color_theme"`
}

// DefaultConfig returns a Config struct with default values
func DefaultConfig() *Config {
	return &Config{
		Readme:          "README.md",
		SVGDir:          "images/svg/",
		SizeBudget:      1024,
		Java:            "java",
		VnuJar:          filepath.Join("node_modules", "vnu-jar", "build", "dist", "vnu.jar"),
		FilterPattern:   ".*aria-label.*",
		SkipValidation:  false,
		WatchDebounceMS: 500,
		ColorTheme:      "auto",
	}
}

// Load reads configuration from the specified file path
func Load(path string) (*Config, error) {
	// Start with default config
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		// If file doesn't exist, return default config (not an error)
		if os.IsNotExist(err) {
			cfg.applyEnv()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyDefaults()
	cfg.applyEnv()

	return cfg, nil
}

// applyDefaults restores essential values that were blanked out in the file
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()

	if c.Readme == "" {
		c.Readme = defaults.Readme
	}
	if c.SVGDir == "" {
		c.SVGDir = defaults.SVGDir
	}
	if c.SizeBudget <= 0 {
		c.SizeBudget = defaults.SizeBudget
	}
	if c.Java == "" {
		c.Java = defaults.Java
	}
	if c.VnuJar == "" {
		c.VnuJar = defaults.VnuJar
	}
	if c.FilterPattern == "" {
		c.FilterPattern = defaults.FilterPattern
	}
	if c.WatchDebounceMS <= 0 {
		c.WatchDebounceMS = defaults.WatchDebounceMS
	}
	if !isValidTheme(c.ColorTheme) {
		c.ColorTheme = defaults.ColorTheme
	}
}

func (c *Config) applyEnv() {
	if jar := os.Getenv(EnvVnuJar); jar != "" {
		c.VnuJar = jar
	}
}

// Save persists the current configuration to the specified file path
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func isValidTheme(theme string) bool {
	validThemes := []string{"auto", "dark", "light"}
	for _, valid := range validThemes {
		if theme == valid {
			return true
		}
	}
	return false
}
