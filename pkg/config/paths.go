package config

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultHome returns ~/.cored.
func DefaultHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return defaultHomeDir
	}
	return filepath.Join(home, defaultHomeDir)
}

// ExpandHome expands a leading ~ and environment variables.
func ExpandHome(path string) string {
	expanded := os.ExpandEnv(path)
	if expanded == "~" || strings.HasPrefix(expanded, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			expanded = filepath.Join(home, expanded[1:])
		}
	}
	return expanded
}

// AbsPath expands path and makes it absolute.
func AbsPath(path string) (string, error) {
	return filepath.Abs(ExpandHome(path))
}
