// Package fsutil provides the small set of file system helpers used when placing granules on disk.
package fsutil

import (
	"fmt"
	"os"
)

// EnsureDir creates a directory and all necessary parents with DirModeDefault permissions.
// An existing directory is left untouched; an existing non-directory is an error.
func EnsureDir(path string) error {
	if path == "" {
		return fmt.Errorf("directory path cannot be empty")
	}
	if info, err := os.Stat(path); err == nil {
		if !info.IsDir() {
			return fmt.Errorf("%s exists and is not a directory", path)
		}
		return nil
	}
	return os.MkdirAll(path, DirModeDefault)
}
