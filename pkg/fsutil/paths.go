package fsutil

import (
	"os"
	"path/filepath"
	"runtime"
)

// AppName is the name of the application used in paths.
const AppName = "podaac-subset"

// NetrcEnv overrides the default netrc location, as curl and wget honour it.
const NetrcEnv = "NETRC"

// DefaultNetrcPath returns the per-user netrc file: $NETRC if set, otherwise
// ~/.netrc (~/_netrc on Windows).
func DefaultNetrcPath() (string, error) {
	if p := os.Getenv(NetrcEnv); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	name := ".netrc"
	if runtime.GOOS == "windows" {
		name = "_netrc"
	}
	return filepath.Join(home, name), nil
}

// ConfigDir returns the platform-specific configuration directory for the application.
// On Linux: ~/.config/podaac-subset
// On macOS: ~/Library/Application Support/podaac-subset
// On Windows: %AppData%\podaac-subset
func ConfigDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, AppName), nil
}
