package hyper

import (
	"fmt"
	"strings"
	"sync"

	"github.com/goliatone/go-metawizard/pkg/logger"
	"github.com/goliatone/go-metawizard/pkg/visibility"
)

var log = logger.New("hyper:wizard")

// Option configures a Wizard.
type Option func(*Wizard)

// WithModelTypes replaces the closed model type set.
func WithModelTypes(types ...string) Option {
	return func(w *Wizard) {
		if len(types) > 0 {
			w.modelTypes = append([]string(nil), types...)
		}
	}
}

// WithSplitPolicy selects how validation splits are checked.
func WithSplitPolicy(policy SplitPolicy) Option {
	return func(w *Wizard) {
		if policy != "" {
			w.splitPolicy = policy
		}
	}
}

// WithDefaults sets the form returned by DefaultForm.
func WithDefaults(form Form) Option {
	return func(w *Wizard) {
		w.defaults = form
	}
}

// Wizard validates hyperparameter forms and keeps the last saved record.
type Wizard struct {
	mu          sync.Mutex
	modelTypes  []string
	splitPolicy SplitPolicy
	defaults    Form
	rules       visibility.Rules

	record    *Record
	algorithm *AlgorithmRecord
}

// NewWizard builds a Wizard with the default model types and strict splits.
func NewWizard(opts ...Option) *Wizard {
	w := &Wizard{
		modelTypes:  DefaultModelTypes(),
		splitPolicy: SplitStrict,
		rules:       Rules,
		defaults: Form{
			ObjectiveMode:  string(Single),
			MaxTimeSeconds: DefaultMaxTimeSeconds,
			Iterations:     DefaultIterations,
			TrainPct:       DefaultTrainPct,
			ValidationPct:  DefaultValidationPct,
			TestPct:        DefaultTestPct,
		},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(w)
		}
	}
	return w
}

// ModelTypes returns the allowed model types.
func (w *Wizard) ModelTypes() []string {
	return append([]string(nil), w.modelTypes...)
}

// SplitPolicy returns the configured split policy.
func (w *Wizard) SplitPolicy() SplitPolicy { return w.splitPolicy }

// DefaultForm returns the initial form values.
func (w *Wizard) DefaultForm() Form {
	form := w.defaults
	form.ModelTypes = append([]string(nil), w.defaults.ModelTypes...)
	return form
}

// Save validates form and stores the resulting record, replacing any record
// saved earlier. A failed save keeps the previous record.
func (w *Wizard) Save(form Form) (Record, error) {
	record, err := w.build(form)
	if err != nil {
		return Record{}, err
	}

	w.mu.Lock()
	stored := record.clone()
	w.record = &stored
	w.mu.Unlock()

	log.Printf("saved hyperparameters: mode=%s primary=%s validation=%v", record.ObjectiveMode, record.PrimaryMetric, record.HasValidationSplit)
	return record, nil
}

// Record returns the last saved record.
func (w *Wizard) Record() (Record, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.record == nil {
		return Record{}, false
	}
	return w.record.clone(), true
}

func (w *Wizard) enabled(form Form, field string) (bool, error) {
	ok, err := form.enabledBy(w.rules, field)
	if err != nil {
		return false, fmt.Errorf("%w: rule for %s: %v", ErrValidation, field, err)
	}
	return ok, nil
}

func (w *Wizard) build(form Form) (Record, error) {
	modelTypes, err := w.canonicalModelTypes(form.ModelTypes)
	if err != nil {
		return Record{}, err
	}

	mode, err := ParseObjectiveMode(form.ObjectiveMode)
	if err != nil {
		return Record{}, err
	}
	form.ObjectiveMode = string(mode)
	primary, err := ParseMetric(form.PrimaryMetric)
	if err != nil {
		return Record{}, fmt.Errorf("%s: %w", FieldPrimaryMetric, err)
	}

	secondaryEnabled, err := w.enabled(form, FieldSecondaryMetric)
	if err != nil {
		return Record{}, err
	}
	var secondary *Metric
	if secondaryEnabled {
		if strings.TrimSpace(form.SecondaryMetric) == "" {
			return Record{}, fmt.Errorf("%w: %s is required in Multi mode", ErrValidation, FieldSecondaryMetric)
		}
		metric, err := ParseMetric(form.SecondaryMetric)
		if err != nil {
			return Record{}, fmt.Errorf("%s: %w", FieldSecondaryMetric, err)
		}
		secondary = &metric
	}

	if form.MaxTimeSeconds <= 0 {
		return Record{}, fmt.Errorf("%w: %s must be positive, got %d", ErrValidation, FieldMaxTime, form.MaxTimeSeconds)
	}
	if form.Iterations < MinIterations || form.Iterations > MaxIterations {
		return Record{}, fmt.Errorf("%w: %s must be in [%d, %d], got %d", ErrValidation, FieldIterations, MinIterations, MaxIterations, form.Iterations)
	}

	record := Record{
		ModelTypes:                      modelTypes,
		ObjectiveMode:                   mode,
		PrimaryMetric:                   primary,
		SecondaryMetric:                 secondary,
		MaxTimeSeconds:                  form.MaxTimeSeconds,
		MaxIterationsWithoutImprovement: form.Iterations,
		HasValidationSplit:              form.HasValidationSplit,
		TrainPct:                        form.TrainPct,
		ValidationPct:                   0,
		TestPct:                         100,
	}
	if err := checkPct(FieldTrainPct, record.TrainPct); err != nil {
		return Record{}, err
	}

	splitEnabled, err := w.enabled(form, FieldValidationPct)
	if err != nil {
		return Record{}, err
	}
	if splitEnabled {
		record.ValidationPct = form.ValidationPct
		record.TestPct = form.TestPct
		if err := checkPct(FieldValidationPct, record.ValidationPct); err != nil {
			return Record{}, err
		}
		if err := checkPct(FieldTestPct, record.TestPct); err != nil {
			return Record{}, err
		}
		if w.splitPolicy == SplitStrict {
			if sum := record.TrainPct + record.ValidationPct + record.TestPct; sum != 100 {
				return Record{}, fmt.Errorf("%w: %d+%d+%d=%d", ErrInvalidSplit, record.TrainPct, record.ValidationPct, record.TestPct, sum)
			}
		}
	}

	return record, nil
}

func (w *Wizard) canonicalModelTypes(raw []string) ([]string, error) {
	var out []string
	seen := make(map[string]struct{}, len(raw))
	for _, candidate := range raw {
		canonical := ""
		for _, known := range w.modelTypes {
			if strings.EqualFold(strings.TrimSpace(candidate), known) {
				canonical = known
				break
			}
		}
		if canonical == "" {
			return nil, fmt.Errorf("%w: unknown model type %q", ErrValidation, candidate)
		}
		if _, dup := seen[canonical]; dup {
			continue
		}
		seen[canonical] = struct{}{}
		out = append(out, canonical)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: at least one model type is required", ErrValidation)
	}
	return out, nil
}

func checkPct(field string, value int) error {
	if value < 0 || value > 100 {
		return fmt.Errorf("%w: %s must be in [0, 100], got %d", ErrValidation, field, value)
	}
	return nil
}
