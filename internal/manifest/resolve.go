package manifest

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

// Resolver selects, validates, and merges manifest sources.
type Resolver struct {
	logger *slog.Logger
}

// NewResolver creates a Resolver that reports through logger.
func NewResolver(logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Resolver{logger: logger}
}

// Candidate is a manifest file considered during resolution.
type Candidate struct {
	// Path is the absolute file path.
	Path string

	// Document is set when the file was accepted.
	Document *Document

	// Issues lists schema violations, if any.
	Issues []ValidationIssue

	// Err is the reason the file was rejected.
	Err error
}

// Accepted reports whether the candidate passed validation.
func (c Candidate) Accepted() bool {
	return c.Err == nil && c.Document != nil
}

// Resolve produces the merged manifest for dir from src.
func (r *Resolver) Resolve(dir string, src Source) (*Manifest, error) {
	tree, err := r.ResolveTree(dir, src)
	if err != nil {
		return nil, err
	}
	return Decode(tree)
}

// ResolveTree produces the merged manifest tree without decoding it.
func (r *Resolver) ResolveTree(dir string, src Source) (map[string]any, error) {
	r.logger.Debug("resolving manifest", "mode", src.Mode(), "dir", dir)

	if src.FromData {
		return r.parseData(src.Data), nil
	}

	candidates, err := r.Candidates(dir, src.Path)
	if err != nil {
		return nil, err
	}

	var docs []Document
	for _, c := range candidates {
		if c.Accepted() {
			docs = append(docs, *c.Document)
		}
	}
	return MergeDocuments(docs), nil
}

// parseData parses raw manifest content. Parse failures are logged and
// yield an empty tree, which Decode later rejects.
func (r *Resolver) parseData(data []byte) map[string]any {
	tree, err := ParseTree(data)
	if err != nil {
		r.logger.Error("error reading manifest data", "error", err)
		return make(map[string]any)
	}
	return tree
}

// Candidates returns every manifest file considered for dir, in merge
// order. With an explicit path, only that file is considered and a
// rejection is fatal. Otherwise discovery runs: the first existing default
// file name is tried, and if it is not usable every *.yml / *.yaml file in
// dir is tried. Rejected discovery candidates are logged and skipped.
// The candidates are returned alongside any fatal error.
func (r *Resolver) Candidates(dir, path string) ([]Candidate, error) {
	var candidates []Candidate

	if path != "" {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("resolve manifest path %s: %w", path, err)
		}
		c := r.load(absPath)
		candidates = append(candidates, c)
		if c.Err != nil {
			r.logger.Error("manifest file rejected", "path", absPath, "error", c.Err)
			return candidates, c.Err
		}
		return candidates, nil
	}

	for _, name := range DefaultFileNames {
		candidatePath := filepath.Join(dir, name)
		if !isFile(candidatePath) {
			continue
		}
		c := r.load(candidatePath)
		r.report(c)
		candidates = append(candidates, c)
		if c.Accepted() {
			return candidates, nil
		}
		break
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return candidates, fmt.Errorf("read working directory %s: %w", dir, err)
	}

	// A rejected default file is not loaded twice.
	seen := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		seen[c.Path] = true
	}

	accepted := 0
	for _, entry := range entries {
		if !hasManifestExtension(entry.Name()) {
			continue
		}
		candidatePath := filepath.Join(dir, entry.Name())
		if seen[candidatePath] || !isFile(candidatePath) {
			continue
		}
		c := r.load(candidatePath)
		r.report(c)
		candidates = append(candidates, c)
		if c.Accepted() {
			accepted++
		}
	}

	if accepted == 0 {
		r.logger.Error("no valid manifest files available", "dir", dir)
		return candidates, fmt.Errorf("%w in %s", ErrNoManifest, dir)
	}

	return candidates, nil
}

// load reads, parses, and validates one manifest file.
func (r *Resolver) load(path string) Candidate {
	c := Candidate{Path: path}

	doc, result, err := LoadDocument(path)
	if err != nil {
		c.Err = err
		return c
	}

	if !result.Valid {
		c.Issues = result.Issues
		c.Err = fmt.Errorf("%w: %s: %s", ErrInvalidManifest, path, result.Summary())
		return c
	}

	c.Document = doc
	return c
}

// report logs the outcome of a discovery candidate.
func (r *Resolver) report(c Candidate) {
	if c.Accepted() {
		r.logger.Debug("found valid manifest file", "path", c.Path)
		return
	}
	r.logger.Warn("skipping manifest file", "path", c.Path, "error", c.Err)
}

// Decode converts a merged manifest tree into a Manifest.
// The tree must carry a files sequence.
func Decode(tree map[string]any) (*Manifest, error) {
	files, ok := tree["files"]
	if !ok || files == nil {
		return nil, ErrMissingFiles
	}
	if _, isList := files.([]any); !isList {
		return nil, fmt.Errorf("%w: got %T", ErrMissingFiles, files)
	}

	var m Manifest
	if err := mapstructure.Decode(tree, &m); err != nil {
		return nil, fmt.Errorf("%w: decode manifest: %w", ErrInvalidManifest, err)
	}

	return &m, nil
}

// IsConfigurationError reports whether err is a fatal configuration error.
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

func hasManifestExtension(name string) bool {
	for _, ext := range ManifestExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// isFile reports whether path exists and is not a directory.
// Symlinks are followed.
func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
