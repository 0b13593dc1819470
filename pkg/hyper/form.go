package hyper

import (
	"sync"

	"github.com/goliatone/go-metawizard/pkg/visibility"
	"github.com/goliatone/go-metawizard/pkg/visibility/expr"
)

// Field names used by enabling rules and Form.Values.
const (
	FieldModelTypes         = "model_types"
	FieldObjectiveMode      = "objective_mode"
	FieldPrimaryMetric      = "primary_metric"
	FieldSecondaryMetric    = "secondary_metric"
	FieldMaxTime            = "max_time_seconds"
	FieldIterations         = "max_iterations_without_improvement"
	FieldHasValidationSplit = "has_validation_split"
	FieldTrainPct           = "train_pct"
	FieldValidationPct      = "validation_pct"
	FieldTestPct            = "test_pct"
)

// Rules lists the dependent fields of the form.
var Rules = visibility.Rules{
	FieldSecondaryMetric: `objective_mode == "Multi"`,
	FieldValidationPct:   FieldHasValidationSplit,
	FieldTestPct:         FieldHasValidationSplit,
}

var (
	evaluatorOnce sync.Once
	evaluator     visibility.Evaluator
)

func rulesEvaluator() visibility.Evaluator {
	evaluatorOnce.Do(func() {
		evaluator = expr.New()
	})
	return evaluator
}

// Form holds the raw values entered by the caller. Every field is present
// regardless of whether it is currently enabled.
type Form struct {
	ModelTypes         []string
	ObjectiveMode      string
	PrimaryMetric      string
	SecondaryMetric    string
	MaxTimeSeconds     int
	Iterations         int
	HasValidationSplit bool
	TrainPct           int
	ValidationPct      int
	TestPct            int
}

// Values exposes the form as a map keyed by field name.
func (f Form) Values() map[string]any {
	return map[string]any{
		FieldModelTypes:         append([]string(nil), f.ModelTypes...),
		FieldObjectiveMode:      f.ObjectiveMode,
		FieldPrimaryMetric:      f.PrimaryMetric,
		FieldSecondaryMetric:    f.SecondaryMetric,
		FieldMaxTime:            f.MaxTimeSeconds,
		FieldIterations:         f.Iterations,
		FieldHasValidationSplit: f.HasValidationSplit,
		FieldTrainPct:           f.TrainPct,
		FieldValidationPct:      f.ValidationPct,
		FieldTestPct:            f.TestPct,
	}
}

// Enabled reports whether field currently accepts input. A rule that fails to
// evaluate reports the field as disabled; use FieldEnabled to see the error.
func (f Form) Enabled(field string) bool {
	ok, err := f.FieldEnabled(field)
	return err == nil && ok
}

// FieldEnabled evaluates the rule attached to field against the form.
func (f Form) FieldEnabled(field string) (bool, error) {
	return f.enabledBy(Rules, field)
}

func (f Form) enabledBy(rules visibility.Rules, field string) (bool, error) {
	return rules.Enabled(rulesEvaluator(), field, f.Values())
}
