// Package cmd provides the CLI commands for templater.
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mxcd/templater/internal/config"
	"github.com/mxcd/templater/internal/generate"
	"github.com/mxcd/templater/internal/logging"
	"github.com/mxcd/templater/internal/templates"
	"github.com/mxcd/templater/internal/ui"
)

const version = "1.0.2"

// NewRootCmd builds the templater command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "templater [workingDirectory]",
		Short: "Render files from templates declared in a manifest",
		Long: `templater - manifest-driven file generator

Reads a YAML manifest listing output files, finds the matching templates in
the working directory, renders each one with its values, and writes the
results relative to the working directory.

MANIFEST SOURCES
  --manifest <file>     Use exactly this manifest (must be valid)
  --stdin               Read the manifest from standard input
  (default)             manifest.yml or manifest.yaml, otherwise every
                        *.yml / *.yaml in the working directory, merged

MANIFEST FORMAT
  files:
    - destination: out/app.conf
      template: app            # matches app or app.mustache
      values:
        name: myapp

Every flag can also be set through the environment, e.g. TEMPLATER_DRY_RUN=true.

Examples:
  templater                      # Render using the current directory
  templater ./config --dry-run --console
  cat manifest.yml | templater --stdin ./config`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runGenerate,
	}

	rootCmd.Flags().String(config.KeyManifest, "", "Manifest file")
	rootCmd.Flags().Bool(config.KeyStdin, false, "Read manifest content from standard input")
	rootCmd.Flags().BoolP(config.KeyDryRun, "n", false, "Do not write any files")
	rootCmd.Flags().Bool(config.KeyConsole, false, "Print templated text to console")
	rootCmd.MarkFlagsMutuallyExclusive(config.KeyManifest, config.KeyStdin)

	rootCmd.PersistentFlags().Bool(config.KeyVerbose, false, "Increased console output")
	rootCmd.PersistentFlags().StringP(config.KeyEngine, "e", templates.EngineMustache,
		fmt.Sprintf("Template engine %v", templates.Engines))

	rootCmd.AddCommand(newValidateCmd())
	rootCmd.AddCommand(newTemplatesCmd())

	rootCmd.SetVersionTemplate("templater version {{.Version}}\n")

	return rootCmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		ui.Error(os.Stderr, "%v", err)
		os.Exit(1)
	}
}

func runGenerate(cmd *cobra.Command, args []string) error {
	settings, err := config.Load(config.New(), cmd.Flags(), args)
	if err != nil {
		return err
	}

	logger := logging.New(cmd.ErrOrStderr(), settings.Verbose)
	logger.Debug("settings", "settings", fmt.Sprintf("%+v", *settings))

	var data []byte
	if settings.Stdin {
		data, err = readStdin(cmd)
		if err != nil {
			return err
		}
	}

	report, err := generate.Run(generate.Options{
		WorkingDirectory: settings.WorkingDirectory,
		ManifestPath:     settings.Manifest,
		ManifestData:     data,
		FromData:         settings.Stdin,
		DryRun:           settings.DryRun,
		Console:          settings.Console,
		Engine:           settings.Engine,
		Stdout:           cmd.OutOrStdout(),
		Logger:           logger,
	})
	if err != nil {
		return err
	}

	written := 0
	for _, r := range report.Results {
		if r.Written {
			written++
		}
	}
	logger.Debug("generation complete", "rendered", len(report.Results), "written", written)

	return nil
}

// readStdin reads all of standard input.
func readStdin(cmd *cobra.Command) ([]byte, error) {
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		ui.Yellow.Fprintln(cmd.ErrOrStderr(), "Reading manifest from terminal, finish with Ctrl-D")
	}

	data, err := io.ReadAll(in)
	if err != nil {
		return nil, fmt.Errorf("read manifest from stdin: %w", err)
	}
	return data, nil
}
