// Package interactive drives a full wizard run in the terminal: dataset load,
// role selection, the per column loop, then the hyperparameter and optional
// algorithm forms. All input goes through a prompt.Driver.
package interactive

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-metawizard/pkg/export"
	"github.com/goliatone/go-metawizard/pkg/hyper"
	"github.com/goliatone/go-metawizard/pkg/logger"
	"github.com/goliatone/go-metawizard/pkg/prompt"
	"github.com/goliatone/go-metawizard/pkg/session"
)

// ErrNoDriver is returned by Run when no prompt driver was configured.
var ErrNoDriver = errors.New("interactive: prompt driver is required")

// Output selects where and how the decision table is written.
type Output struct {
	Dir           string
	DecisionsFile string
	Format        string
}

// Result summarizes a completed run.
type Result struct {
	SessionID     string
	Roles         session.Roles
	Records       []session.DecisionRecord
	Partial       bool
	DecisionsPath string
	Hyper         hyper.Record
	HyperPath     string
	Algorithm     *hyper.AlgorithmRecord
	AlgorithmPath string
}

// Option configures a Runner.
type Option func(*Runner)

// WithDriver sets the prompt driver.
func WithDriver(d prompt.Driver) Option {
	return func(r *Runner) {
		if d != nil {
			r.driver = d
		}
	}
}

// WithSession replaces the default session.
func WithSession(s *session.Session) Option {
	return func(r *Runner) {
		if s != nil {
			r.session = s
		}
	}
}

// WithWizard replaces the default hyperparameter wizard.
func WithWizard(w *hyper.Wizard) Option {
	return func(r *Runner) {
		if w != nil {
			r.wizard = w
		}
	}
}

// WithLoader sets the dataset loader.
func WithLoader(l session.Loader) Option {
	return func(r *Runner) {
		if l != nil {
			r.loader = l
		}
	}
}

// WithWriter replaces the default export writer.
func WithWriter(w *export.Writer) Option {
	return func(r *Runner) {
		if w != nil {
			r.writer = w
		}
	}
}

// WithOutput sets the output location and format.
func WithOutput(out Output) Option {
	return func(r *Runner) {
		if out.Dir != "" {
			r.output.Dir = out.Dir
		}
		if out.DecisionsFile != "" {
			r.output.DecisionsFile = out.DecisionsFile
		}
		if out.Format != "" {
			r.output.Format = out.Format
		}
	}
}

// WithAlgorithmWizard enables the algorithm parameter form after the
// hyperparameter form.
func WithAlgorithmWizard(enabled bool) Option {
	return func(r *Runner) {
		r.algorithmWizard = enabled
	}
}

// Runner wires the session state machine to a prompt driver.
type Runner struct {
	driver          prompt.Driver
	session         *session.Session
	wizard          *hyper.Wizard
	loader          session.Loader
	writer          *export.Writer
	output          Output
	algorithmWizard bool
	log             *logger.Logger
}

// New builds a Runner. A loader and driver must be supplied before Run.
func New(opts ...Option) *Runner {
	r := &Runner{
		session: session.New(),
		wizard:  hyper.NewWizard(),
		writer:  export.NewWriter(),
		output: Output{
			Dir:           ".",
			DecisionsFile: "decisions.csv",
			Format:        "csv",
		},
		log: logger.New("interactive:runner"),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Session exposes the underlying session.
func (r *Runner) Session() *session.Session { return r.session }

// Run performs a complete wizard pass over the dataset at path.
func (r *Runner) Run(ctx context.Context, path string) (Result, error) {
	if r.driver == nil {
		return Result{}, ErrNoDriver
	}
	if r.loader == nil {
		return Result{}, errors.New("interactive: dataset loader is required")
	}

	if err := r.session.Load(ctx, r.loader, path); err != nil {
		return Result{}, err
	}
	r.log.Printf("loaded %s", path)

	if err := r.chooseRoles(ctx); err != nil {
		return Result{}, err
	}

	records, partial, err := r.walkColumns(ctx)
	if err != nil {
		return Result{}, err
	}
	return r.finish(ctx, records, partial)
}

func (r *Runner) finish(ctx context.Context, records []session.DecisionRecord, partial bool) (Result, error) {
	roles, _ := r.session.Roles()
	res := Result{
		SessionID: r.session.ID().String(),
		Roles:     roles,
		Records:   records,
		Partial:   partial,
	}

	path, err := r.writer.DecisionsPath(r.output.Dir, r.output.DecisionsFile, r.output.Format)
	if err != nil {
		return Result{}, err
	}
	doc := export.Decisions{SessionID: res.SessionID, Roles: roles, Records: records}
	if err := r.writer.WriteDecisions(ctx, path, r.output.Format, doc); err != nil {
		return Result{}, err
	}
	res.DecisionsPath = path
	if err := r.info(ctx, "Decisions saved to %s (%d columns)", path, len(records)); err != nil {
		return Result{}, err
	}

	rec, err := r.collectHyper(ctx)
	if err != nil {
		return Result{}, err
	}
	res.Hyper = rec
	if res.HyperPath, err = r.writer.WriteHyper(ctx, r.output.Dir, rec); err != nil {
		return Result{}, err
	}
	if err := r.info(ctx, "Hyperparameters saved to %s", res.HyperPath); err != nil {
		return Result{}, err
	}

	if r.algorithmWizard {
		alg, err := r.collectAlgorithm(ctx)
		if err != nil {
			return Result{}, err
		}
		res.Algorithm = &alg
		if res.AlgorithmPath, err = r.writer.WriteAlgorithm(ctx, r.output.Dir, alg); err != nil {
			return Result{}, err
		}
		if err := r.info(ctx, "Algorithm parameters saved to %s", res.AlgorithmPath); err != nil {
			return Result{}, err
		}
	}
	return res, nil
}

func (r *Runner) info(ctx context.Context, format string, args ...any) error {
	return r.driver.Info(ctx, fmt.Sprintf(format, args...))
}
