package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mxcd/templater/internal/config"
	"github.com/mxcd/templater/internal/logging"
	"github.com/mxcd/templater/internal/manifest"
	"github.com/mxcd/templater/internal/templates"
	"github.com/mxcd/templater/internal/ui"
)

// newValidateCmd builds the validate command.
func newValidateCmd() *cobra.Command {
	validateCmd := &cobra.Command{
		Use:   "validate [workingDirectory]",
		Short: "Validate manifests and template references",
		Long: `Validate manifests without rendering or writing anything.

This command:
  1. Runs manifest discovery (or loads --manifest) and reports every
     candidate file with its schema issues
  2. Merges the accepted manifests
  3. Checks that every entry's template exists in the working directory

Examples:
  templater validate
  templater validate ./config --manifest ./config/prod.yml
  templater validate -e gotmpl`,
		Args: cobra.MaximumNArgs(1),
		RunE: runValidate,
	}

	validateCmd.Flags().String(config.KeyManifest, "", "Manifest file")

	return validateCmd
}

func runValidate(cmd *cobra.Command, args []string) error {
	settings, err := config.Load(config.New(), cmd.Flags(), args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	logger := logging.New(cmd.ErrOrStderr(), settings.Verbose)
	dir := settings.WorkingDirectory

	ui.Info(out, "Working directory: %s", dir)
	ui.Header(out, "=== Manifests ===")
	candidates, err := manifest.NewResolver(logger).Candidates(dir, settings.Manifest)
	var docs []manifest.Document
	for _, c := range candidates {
		name := displayPath(dir, c.Path)
		if c.Accepted() {
			ui.Success(out, "%s", name)
			docs = append(docs, *c.Document)
			continue
		}
		ui.Error(out, "%s", name)
		if len(c.Issues) == 0 {
			fmt.Fprintf(out, "    %v\n", c.Err)
		}
		for _, issue := range c.Issues {
			fmt.Fprintf(out, "    %s\n", issue)
		}
	}
	if err != nil {
		return err
	}

	m, err := manifest.Decode(manifest.MergeDocuments(docs))
	if err != nil {
		return err
	}

	engine, err := templates.NewRenderer(settings.Engine)
	if err != nil {
		return err
	}
	inventory := templates.NewLocator(engine.Suffix(), logger).Locate(dir)

	fmt.Fprintln(out)
	ui.Header(out, "=== Files ===")
	missing := 0
	for _, entry := range m.Files {
		path, ok := templates.Match(inventory, entry.Template, engine.Suffix())
		if !ok {
			ui.Error(out, "%s <- template '%s' not found", entry.Destination, entry.Template)
			missing++
			continue
		}
		ui.Success(out, "%s <- %s", entry.Destination, filepath.Base(path))
	}

	fmt.Fprintln(out)
	if missing > 0 {
		return fmt.Errorf("%w: %d template(s) missing", manifest.ErrConfiguration, missing)
	}
	ui.Green.Fprintf(out, "Manifest is valid: %d file(s) declared\n", len(m.Files))
	return nil
}

// displayPath shortens path relative to dir when possible.
func displayPath(dir, path string) string {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return path
	}
	return rel
}
