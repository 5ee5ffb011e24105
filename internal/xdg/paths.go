// Package xdg resolves the user-level paths took touches on disk,
// following the XDG Base Directory conventions.
package xdg

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
)

const appName = "took"

// ConfigHome returns $XDG_CONFIG_HOME or ~/.config.
func ConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join("~", ".config")
	}

	return filepath.Join(home, ".config")
}

// StateHome returns $XDG_STATE_HOME or ~/.local/state.
func StateHome() string {
	if v := os.Getenv("XDG_STATE_HOME"); v != "" {
		return v
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join("~", ".local", "state")
	}

	return filepath.Join(home, ".local", "state")
}

// ConfigFile returns the path of the took configuration file.
func ConfigFile() string {
	return filepath.Join(ConfigHome(), appName, "config.toml")
}

// LogFile returns the path of the took log file.
func LogFile() string {
	return filepath.Join(StateHome(), appName, "took.log")
}

// EnsureParentDir creates the parent directory of path if needed.
func EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "creating %s", dir)
	}

	return nil
}
