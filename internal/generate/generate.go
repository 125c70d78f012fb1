// Package generate wires manifest resolution, template discovery, and
// rendering into a single invocation.
package generate

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/mxcd/templater/internal/manifest"
	"github.com/mxcd/templater/internal/render"
	"github.com/mxcd/templater/internal/templates"
)

// Options configures one generator run.
type Options struct {
	// WorkingDirectory holds the templates and, in discovery mode, the
	// manifests. Output paths are relative to it. Defaults to ".".
	WorkingDirectory string

	// ManifestPath selects explicit path mode.
	ManifestPath string

	// ManifestData is raw manifest content, used when FromData is set.
	ManifestData []byte

	// FromData selects raw text mode.
	FromData bool

	// DryRun renders without writing files.
	DryRun bool

	// Console echoes rendered output to Stdout.
	Console bool

	// Engine is the template engine name (see templates.Engines).
	Engine string

	// Stdout receives console output.
	Stdout io.Writer

	// Logger receives diagnostics.
	Logger *slog.Logger
}

// Report summarizes a completed run.
type Report struct {
	WorkingDirectory string
	Templates        []string
	Results          []render.Result
}

// Run resolves the manifest, locates templates, and renders every entry.
func Run(opts Options) (*Report, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	dir := opts.WorkingDirectory
	if dir == "" {
		dir = "."
	}
	workDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}
	logger.Debug("working directory", "dir", workDir)

	engine, err := templates.NewRenderer(opts.Engine)
	if err != nil {
		return nil, err
	}

	report := &Report{WorkingDirectory: workDir}
	report.Templates = templates.NewLocator(engine.Suffix(), logger).Locate(workDir)

	src := manifest.Source{
		Path:     opts.ManifestPath,
		Data:     opts.ManifestData,
		FromData: opts.FromData,
	}
	m, err := manifest.NewResolver(logger).Resolve(workDir, src)
	if err != nil {
		return report, err
	}
	logger.Debug("resolved manifest", "files", len(m.Files))

	pipeline := render.NewPipeline(engine, render.Options{
		DryRun:  opts.DryRun,
		Console: opts.Console,
		Stdout:  opts.Stdout,
	}, logger)

	results, err := pipeline.Run(workDir, m, report.Templates)
	report.Results = results
	if err != nil {
		return report, err
	}

	return report, nil
}
