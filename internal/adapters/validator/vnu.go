package validator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/kamal-hamza/svgcheck/internal/core/domain"
	"github.com/kamal-hamza/svgcheck/pkg/config"
	"github.com/kamal-hamza/svgcheck/pkg/vnuparser"
)

// VnuValidator implements the Validator port using the Nu HTML Checker jar
type VnuValidator struct {
	Java          string
	JarPath       string
	FilterPattern string
}

// NewVnuValidator creates a validator from configuration
func NewVnuValidator(cfg *config.Config) *VnuValidator {
	return &VnuValidator{
		Java:          cfg.Java,
		JarPath:       cfg.VnuJar,
		FilterPattern: cfg.FilterPattern,
	}
}

// Args returns the command line passed to java
func (v *VnuValidator) Args(dir string) []string {
	// --skip-non-svg   : ignore anything that is not an SVG
	// --filterpattern  : drop messages we do not care about (aria-label)
	return []string{
		"-jar", v.JarPath,
		"--skip-non-svg",
		"--filterpattern", v.FilterPattern,
		dir,
	}
}

// Validate runs vnu once over dir.
// A zero exit status means no errors. A non-zero exit returns the output lines
// for parsing. Failing to start the process at all is returned as an error.
func (v *VnuValidator) Validate(ctx context.Context, dir string) (*domain.ValidationOutcome, error) {
	if !fileExists(v.JarPath) {
		return nil, fmt.Errorf("vnu jar not found at %s", v.JarPath)
	}

	cmd := exec.CommandContext(ctx, v.Java, v.Args(dir)...)
	output, err := cmd.CombinedOutput()
	if err == nil {
		return &domain.ValidationOutcome{OK: true}, nil
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return nil, fmt.Errorf("failed to run validator: %w", err)
	}

	if ctx.Err() != nil {
		return nil, fmt.Errorf("validator interrupted: %w", ctx.Err())
	}

	return &domain.ValidationOutcome{
		OK:         false,
		ErrorLines: vnuparser.SplitLines(string(output)),
	}, nil
}

// IsAvailable checks if the java binary is installed and available
func (v *VnuValidator) IsAvailable() bool {
	_, err := exec.LookPath(v.Java)
	return err == nil
}

// HasJar checks if the configured jar exists
func (v *VnuValidator) HasJar() bool {
	return fileExists(v.JarPath)
}

// fileExists checks if a file exists and is a regular file
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
