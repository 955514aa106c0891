package util

import (
	"fmt"
	"os"
	"path/filepath"
)

const appName = "churnboard"

// GetXDGConfigDir returns the config directory for churnboard.
// It respects XDG_CONFIG_HOME if set, otherwise falls back to ~/.config/churnboard
func GetXDGConfigDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(homeDir, ".config", appName), nil
}

// ExpandHome replaces a leading ~/ with the user's home directory.
func ExpandHome(path string) string {
	if len(path) < 2 || path[0] != '~' || path[1] != '/' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
