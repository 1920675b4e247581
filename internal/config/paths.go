package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// Dir returns the taskmgr config directory under the user config base.
// On Linux, this typically resolves to $XDG_CONFIG_HOME/taskmgr; on macOS
// to ~/Library/Application Support/taskmgr; and on Windows to %AppData%/taskmgr.
// Falls back to HOME when UserConfigDir is unavailable.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil || strings.TrimSpace(base) == "" {
		if home, herr := os.UserHomeDir(); herr == nil {
			base = home
		} else {
			return "", errors.New("cannot determine config directory")
		}
	}
	return filepath.Join(base, "taskmgr"), nil
}

// Path returns the default config file location.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}
