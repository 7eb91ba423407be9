// Package config provides XDG path helpers.
package config

import (
	"os"
	"path/filepath"
)

const appDir = "protype"

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// XDGDataHome returns the XDG data home or a default fallback.
func XDGDataHome() string {
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".local", "share")
}

// DefaultStatsPath returns the default path for the best/low score document.
func DefaultStatsPath() string {
	return filepath.Join(XDGDataHome(), appDir, "typing_stats.json")
}

// DefaultDBPath returns the default path for the SQLite round history.
func DefaultDBPath() string {
	return filepath.Join(XDGDataHome(), appDir, "protype.db")
}

// DefaultLogPath returns the debug log written by the terminal UI.
func DefaultLogPath() string {
	return filepath.Join(XDGDataHome(), appDir, "debug.log")
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), appDir, "config.toml")
}
