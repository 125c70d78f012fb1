// Package fileutil provides common file operations.
package fileutil

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
)

// Default permissions for generated files and directories.
const (
	DirMode  fs.FileMode = 0755
	FileMode fs.FileMode = 0644
)

// EnsureDir creates dir and any missing ancestors.
// It reports whether the directory had to be created.
func EnsureDir(dir string) (bool, error) {
	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return false, fmt.Errorf("%s exists and is not a directory", dir)
		}
		return false, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("stat %s: %w", dir, err)
	}

	if err := os.MkdirAll(dir, DirMode); err != nil {
		return false, fmt.Errorf("create directory %s: %w", dir, err)
	}
	return true, nil
}

// WriteFile writes data to path, replacing any existing file atomically.
// Parent directories are created as needed, and dirCreated reports whether
// that happened. New files get FileMode; existing files keep their
// permissions.
func WriteFile(path string, data []byte) (dirCreated bool, err error) {
	dirCreated, err = EnsureDir(filepath.Dir(path))
	if err != nil {
		return false, err
	}

	_, statErr := os.Stat(path)
	isNew := errors.Is(statErr, fs.ErrNotExist)

	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return dirCreated, fmt.Errorf("write %s: %w", path, err)
	}

	if isNew {
		if err := os.Chmod(path, FileMode); err != nil {
			return dirCreated, fmt.Errorf("set permissions on %s: %w", path, err)
		}
	}
	return dirCreated, nil
}
