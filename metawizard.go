package metawizard

import (
	"context"
	"fmt"

	"github.com/goliatone/go-metawizard/pkg/config"
	"github.com/goliatone/go-metawizard/pkg/dataset"
	"github.com/goliatone/go-metawizard/pkg/export"
	"github.com/goliatone/go-metawizard/pkg/hyper"
	"github.com/goliatone/go-metawizard/pkg/interactive"
	"github.com/goliatone/go-metawizard/pkg/prompt"
	"github.com/goliatone/go-metawizard/pkg/report"
	"github.com/goliatone/go-metawizard/pkg/session"
)

// Config aliases config.Config for callers of the top-level package.
type Config = config.Config

// Result aliases interactive.Result.
type Result = interactive.Result

// DecisionRecord aliases session.DecisionRecord.
type DecisionRecord = session.DecisionRecord

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return config.Default()
}

// LoadConfig reads a JSON or YAML config file over the defaults.
func LoadConfig(path string) (Config, error) {
	return config.Load(path)
}

// NewRegistry returns the export registry with every built-in format,
// including the template backed html and txt reports rendered by engine.
func NewRegistry(engine *report.Engine) (*export.Registry, error) {
	registry := export.DefaultRegistry()
	if err := report.Register(registry, engine); err != nil {
		return nil, err
	}
	return registry, nil
}

// NewRunner wires a runner from cfg: CSV loading, the session and wizard
// options, and a writer over every built-in format. Extra options are
// applied last.
func NewRunner(cfg Config, driver prompt.Driver, options ...interactive.Option) (*interactive.Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	engine, err := report.New()
	if err != nil {
		return nil, err
	}
	registry, err := NewRegistry(engine)
	if err != nil {
		return nil, err
	}
	if !registry.Has(cfg.Output.Format) {
		return nil, fmt.Errorf("%w: %q (available: %v)", export.ErrUnknownFormat, cfg.Output.Format, registry.List())
	}

	base := []interactive.Option{
		interactive.WithDriver(driver),
		interactive.WithLoader(dataset.NewCSVLoader()),
		interactive.WithSession(session.New(cfg.SessionOptions()...)),
		interactive.WithWizard(hyper.NewWizard(cfg.WizardOptions()...)),
		interactive.WithWriter(export.NewWriter(export.WithRegistry(registry))),
		interactive.WithOutput(interactive.Output{
			Dir:           cfg.Output.Dir,
			DecisionsFile: cfg.Output.DecisionsFile,
			Format:        cfg.Output.Format,
		}),
		interactive.WithAlgorithmWizard(cfg.AlgorithmWizard),
	}
	return interactive.New(append(base, options...)...), nil
}

// Run processes the dataset at path with a runner built from cfg.
func Run(ctx context.Context, path string, cfg Config, driver prompt.Driver) (Result, error) {
	runner, err := NewRunner(cfg, driver)
	if err != nil {
		return Result{}, err
	}
	return runner.Run(ctx, path)
}
