package config

import (
	"fmt"
	"path/filepath"
)

// ValidationError represents a single validation error with context.
type ValidationError struct {
	Path    string // e.g., "download.timeout"
	Message string // e.g., "must not be negative"
	Hint    string // e.g., "use a Go duration such as 10m"
}

func (e ValidationError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("%s: %s; %s", e.Path, e.Message, e.Hint)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// Validate checks the structural settings. Choice fields (install, network,
// pruning) are checked by the command that owns their menus.
// It aggregates all errors and returns them, allowing the caller to print all issues at once.
func (c *Config) Validate() []error {
	var errs []error

	if c.BinaryPath == "" {
		errs = append(errs, ValidationError{
			Path:    "binary_path",
			Message: "must not be empty",
			Hint:    "default is " + DefaultBinaryPath,
		})
	}

	if c.Download.Timeout < 0 {
		errs = append(errs, ValidationError{
			Path:    "download.timeout",
			Message: fmt.Sprintf("must not be negative, got %s", c.Download.Timeout),
			Hint:    "use a duration such as 10m, or 0 to disable",
		})
	}

	if c.Systemd.UnitDir != "" && !filepath.IsAbs(c.Systemd.UnitDir) {
		errs = append(errs, ValidationError{
			Path:    "systemd.unit_dir",
			Message: "must be an absolute path",
		})
	}

	return errs
}
