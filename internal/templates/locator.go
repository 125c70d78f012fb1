// Package templates locates template files and renders them.
package templates

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Locator finds template files in a directory.
type Locator struct {
	// Suffix identifies template files (e.g. ".mustache").
	Suffix string

	logger *slog.Logger
}

// NewLocator creates a Locator for files ending in suffix.
func NewLocator(suffix string, logger *slog.Logger) *Locator {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Locator{Suffix: suffix, logger: logger}
}

// Locate returns the absolute paths of template files directly inside dir,
// in directory listing order. Subdirectories are not descended into.
// A directory that cannot be read is logged and yields no templates.
func (l *Locator) Locate(dir string) []string {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		l.logger.Error("resolve template directory", "dir", dir, "error", err)
		return nil
	}

	entries, err := os.ReadDir(absDir)
	if err != nil {
		l.logger.Error("read template directory", "dir", absDir, "error", err)
		return nil
	}

	var templates []string
	for _, entry := range entries {
		if !strings.HasSuffix(entry.Name(), l.Suffix) {
			continue
		}

		path := filepath.Join(absDir, entry.Name())
		info, err := os.Stat(path)
		if err != nil {
			l.logger.Warn("stat template", "path", path, "error", err)
			continue
		}
		if info.IsDir() {
			continue
		}

		l.logger.Debug("found template", "path", path)
		templates = append(templates, path)
	}

	return templates
}

// Match returns the first template in inventory whose path ends with name
// or with name followed by suffix. An empty name matches nothing.
func Match(inventory []string, name, suffix string) (string, bool) {
	if name == "" {
		return "", false
	}

	withSuffix := name + suffix
	for _, path := range inventory {
		if strings.HasSuffix(path, name) || strings.HasSuffix(path, withSuffix) {
			return path, true
		}
	}
	return "", false
}
