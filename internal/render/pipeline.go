// Package render turns a resolved manifest into output files.
package render

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mxcd/templater/internal/fileutil"
	"github.com/mxcd/templater/internal/manifest"
	"github.com/mxcd/templater/internal/templates"
)

// ErrTemplateNotFound indicates a manifest entry names a template that is
// not in the inventory.
var ErrTemplateNotFound = fmt.Errorf("%w: template not found", manifest.ErrConfiguration)

// Options controls pipeline side effects.
type Options struct {
	// DryRun renders without writing files.
	DryRun bool

	// Console echoes rendered output to Stdout.
	Console bool

	// Stdout receives console output. Defaults to os.Stdout.
	Stdout io.Writer
}

// Pipeline renders manifest entries in order.
type Pipeline struct {
	engine templates.Renderer
	opts   Options
	logger *slog.Logger
}

// NewPipeline creates a Pipeline rendering with engine.
func NewPipeline(engine templates.Renderer, opts Options, logger *slog.Logger) *Pipeline {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Pipeline{engine: engine, opts: opts, logger: logger}
}

// Result describes one rendered entry.
type Result struct {
	Entry    manifest.FileEntry
	Template string // Matched template path
	Output   string // Absolute destination path
	Written  bool
}

// Run renders every entry of m against inventory. Entries are processed
// strictly in order and the first failure stops the run; results for the
// entries completed so far are returned with the error.
func (p *Pipeline) Run(workDir string, m *manifest.Manifest, inventory []string) ([]Result, error) {
	results := make([]Result, 0, len(m.Files))

	for i, entry := range m.Files {
		result, err := p.renderEntry(workDir, entry, inventory)
		if err != nil {
			return results, fmt.Errorf("files[%d]: %w", i, err)
		}
		results = append(results, result)
	}

	return results, nil
}

func (p *Pipeline) renderEntry(workDir string, entry manifest.FileEntry, inventory []string) (Result, error) {
	result := Result{Entry: entry}

	templatePath, ok := templates.Match(inventory, entry.Template, p.engine.Suffix())
	if !ok {
		p.logger.Error("template not found", "template", entry.Template)
		return result, fmt.Errorf("%w: '%s'", ErrTemplateNotFound, entry.Template)
	}
	result.Template = templatePath

	text, err := os.ReadFile(templatePath)
	if err != nil {
		return result, fmt.Errorf("read template %s: %w", templatePath, err)
	}

	output, err := p.engine.Render(filepath.Base(templatePath), string(text), entry.Values)
	if err != nil {
		return result, err
	}

	outputPath, err := filepath.Abs(filepath.Join(workDir, entry.Destination))
	if err != nil {
		return result, fmt.Errorf("resolve destination %s: %w", entry.Destination, err)
	}
	result.Output = outputPath

	if !p.opts.DryRun {
		if err := p.write(outputPath, output); err != nil {
			return result, err
		}
		result.Written = true
	} else {
		p.logger.Debug("dry run, not writing file", "path", outputPath)
	}

	if p.opts.Console {
		fmt.Fprintf(p.opts.Stdout, "# From template '%s'\n", entry.Template)
		fmt.Fprintln(p.opts.Stdout, output)
	}

	return result, nil
}

func (p *Pipeline) write(outputPath, output string) error {
	p.logger.Debug("writing file", "path", outputPath)
	created, err := fileutil.WriteFile(outputPath, []byte(output))
	if created {
		p.logger.Debug("created parent dir", "dir", filepath.Dir(outputPath))
	}
	return err
}
