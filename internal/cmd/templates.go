package cmd

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mxcd/templater/internal/config"
	"github.com/mxcd/templater/internal/logging"
	"github.com/mxcd/templater/internal/templates"
	"github.com/mxcd/templater/internal/ui"
)

// newTemplatesCmd builds the templates command.
func newTemplatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "templates [workingDirectory]",
		Short: "List available templates",
		Long:  `List the template files in the working directory for the selected engine.`,
		Args:  cobra.MaximumNArgs(1),
		RunE:  runListTemplates,
	}
}

func runListTemplates(cmd *cobra.Command, args []string) error {
	settings, err := config.Load(config.New(), cmd.Flags(), args)
	if err != nil {
		return err
	}

	engine, err := templates.NewRenderer(settings.Engine)
	if err != nil {
		return err
	}

	logger := logging.New(cmd.ErrOrStderr(), settings.Verbose)
	inventory := templates.NewLocator(engine.Suffix(), logger).Locate(settings.WorkingDirectory)

	out := cmd.OutOrStdout()
	if len(inventory) == 0 {
		ui.Warning(out, "No %s templates found in %s", engine.Suffix(), settings.WorkingDirectory)
		return nil
	}

	ui.Header(out, "Templates (%s):", engine.Name())
	for i, path := range inventory {
		ui.Step(out, i+1, "%s", filepath.Base(path))
	}
	return nil
}
