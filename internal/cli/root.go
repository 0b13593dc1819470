package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-metawizard/pkg/prompt"
)

var version = "dev"

// SetVersion overrides the version reported by --version.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// App carries the process level dependencies of the commands.
type App struct {
	Out    io.Writer
	Err    io.Writer
	Driver func(out io.Writer) prompt.Driver
}

func (a *App) defaults() {
	if a.Out == nil {
		a.Out = os.Stdout
	}
	if a.Err == nil {
		a.Err = os.Stderr
	}
	if a.Driver == nil {
		a.Driver = func(out io.Writer) prompt.Driver {
			return prompt.NewSurveyDriver(prompt.WithInfoWriter(out))
		}
	}
}

// NewRootCommand assembles the command tree for app.
func NewRootCommand(app *App) *cobra.Command {
	if app == nil {
		app = &App{}
	}
	app.defaults()

	root := &cobra.Command{
		Use:     "metawizard",
		Version: version,
		Short:   "Column decision wizard for model search setups",
		Long: `metawizard walks every column of a dataset and records which coefficient
distributions, transformations and model-specification levels the downstream
model search may try, then collects the run hyperparameters.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}
	root.SetVersionTemplate("{{.Version}}\n")
	root.SetOut(app.Out)
	root.SetErr(app.Err)

	root.AddCommand(newRunCmd(app))
	root.AddCommand(newInspectCmd(app))
	root.AddCommand(newSchemaCmd(app))
	return root
}

// Execute runs the CLI against the process stdio.
func Execute() error {
	return NewRootCommand(&App{}).Execute()
}
