// Package config provides configuration utilities for the application.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Veraticus/denials/internal/common"
)

// ExpandPath expands ~ and environment variables in a file path.
// It handles both ~ for home directory and $VAR style environment variables.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	// First expand tilde if present
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = home
		}
	}

	return os.ExpandEnv(path)
}

// ResolveJSONPath validates a claims or results path and returns its absolute form.
// The path must be non-empty and end in .json.
func ResolveJSONPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", common.NewConfigError("path must not be empty", nil)
	}

	expanded := ExpandPath(trimmed)
	if !strings.EqualFold(filepath.Ext(expanded), ".json") {
		return "", common.NewConfigError(fmt.Sprintf("path %q must end in .json", path), nil)
	}

	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", common.NewConfigError(fmt.Sprintf("cannot resolve path %q", path), err)
	}
	return abs, nil
}
