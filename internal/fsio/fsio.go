// Package fsio wraps the filesystem operations the CLI needs (reading
// and rewriting source files in place) behind afero.Fs so tests can
// swap in an in-memory filesystem instead of touching disk.
package fsio

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
)

// FS is the filesystem the CLI operates against. It defaults to the
// real OS filesystem and is only ever replaced in tests.
var FS afero.Fs = afero.NewOsFs()

// ReadFile reads path's full contents.
func ReadFile(path string) ([]byte, error) {
	data, err := afero.ReadFile(FS, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// WriteFile overwrites path with data, preserving its existing mode if
// the file already exists (0644 for a new file).
func WriteFile(path string, data []byte) error {
	mode := os.FileMode(0o644)
	if info, err := FS.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := afero.WriteFile(FS, path, data, mode); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Exists reports whether path exists on FS.
func Exists(path string) (bool, error) {
	return afero.Exists(FS, path)
}
