package hyper

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-metawizard/pkg/visibility"
)

func validForm() Form {
	return Form{
		ModelTypes:     []string{"Poisson"},
		ObjectiveMode:  "Single",
		PrimaryMetric:  "BIC",
		MaxTimeSeconds: DefaultMaxTimeSeconds,
		Iterations:     DefaultIterations,
		TrainPct:       80,
		ValidationPct:  10,
		TestPct:        10,
	}
}

func metricPtr(m Metric) *Metric { return &m }

func TestSaveSingleDiscardsSecondaryMetric(t *testing.T) {
	t.Parallel()

	form := validForm()
	form.SecondaryMetric = "AIC"

	got, err := NewWizard().Save(form)
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	want := Record{
		ModelTypes:                      []string{"Poisson"},
		ObjectiveMode:                   Single,
		PrimaryMetric:                   BIC,
		MaxTimeSeconds:                  DefaultMaxTimeSeconds,
		MaxIterationsWithoutImprovement: DefaultIterations,
		TrainPct:                        80,
		ValidationPct:                   0,
		TestPct:                         100,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("record mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveMultiKeepsSecondaryMetric(t *testing.T) {
	t.Parallel()

	form := validForm()
	form.ObjectiveMode = "multi"
	form.SecondaryMetric = "rmse"
	form.HasValidationSplit = true
	form.TrainPct, form.ValidationPct, form.TestPct = 70, 15, 15

	got, err := NewWizard().Save(form)
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if diff := cmp.Diff(metricPtr(RMSE), got.SecondaryMetric); diff != "" {
		t.Fatalf("secondary mismatch (-want +got):\n%s", diff)
	}
	if got.ObjectiveMode != Multi {
		t.Fatalf("expected Multi, got %s", got.ObjectiveMode)
	}
	if got.TrainPct != 70 || got.ValidationPct != 15 || got.TestPct != 15 {
		t.Fatalf("unexpected splits %d/%d/%d", got.TrainPct, got.ValidationPct, got.TestPct)
	}
}

func TestSaveWithoutValidationSplitForcesTestToHundred(t *testing.T) {
	t.Parallel()

	form := validForm()
	form.HasValidationSplit = false
	form.TrainPct, form.ValidationPct, form.TestPct = 65, 20, 30

	got, err := NewWizard().Save(form)
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if got.TrainPct != 65 || got.ValidationPct != 0 || got.TestPct != 100 {
		t.Fatalf("unexpected splits %d/%d/%d", got.TrainPct, got.ValidationPct, got.TestPct)
	}
}

func TestSaveSplitPolicies(t *testing.T) {
	t.Parallel()

	form := validForm()
	form.HasValidationSplit = true
	form.TrainPct, form.ValidationPct, form.TestPct = 80, 20, 20

	if _, err := NewWizard().Save(form); !errors.Is(err, ErrInvalidSplit) {
		t.Fatalf("strict policy: expected ErrInvalidSplit, got %v", err)
	}

	got, err := NewWizard(WithSplitPolicy(SplitLenient)).Save(form)
	if err != nil {
		t.Fatalf("lenient policy returned error: %v", err)
	}
	if got.ValidationPct != 20 || got.TestPct != 20 {
		t.Fatalf("lenient policy changed splits: %+v", got)
	}
}

func TestSaveValidation(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		mutate func(*Form)
		want   error
	}{
		{"no model types", func(f *Form) { f.ModelTypes = nil }, ErrValidation},
		{"unknown model type", func(f *Form) { f.ModelTypes = []string{"Gaussian"} }, ErrValidation},
		{"bad objective mode", func(f *Form) { f.ObjectiveMode = "Pareto" }, ErrInvalidChoice},
		{"bad primary metric", func(f *Form) { f.PrimaryMetric = "MAE" }, ErrInvalidChoice},
		{"multi without secondary", func(f *Form) { f.ObjectiveMode = "Multi" }, ErrValidation},
		{"multi bad secondary", func(f *Form) { f.ObjectiveMode = "Multi"; f.SecondaryMetric = "MAE" }, ErrInvalidChoice},
		{"zero max time", func(f *Form) { f.MaxTimeSeconds = 0 }, ErrValidation},
		{"iterations below range", func(f *Form) { f.Iterations = 0 }, ErrValidation},
		{"iterations above range", func(f *Form) { f.Iterations = 1001 }, ErrValidation},
		{"train above range", func(f *Form) { f.TrainPct = 101 }, ErrValidation},
		{"negative validation", func(f *Form) {
			f.HasValidationSplit = true
			f.ValidationPct = -5
		}, ErrValidation},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			form := validForm()
			tc.mutate(&form)
			if _, err := NewWizard().Save(form); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestSaveModelTypesAreCanonicalAndUnique(t *testing.T) {
	t.Parallel()

	form := validForm()
	form.ModelTypes = []string{"negative binomial", "Poisson", "POISSON"}

	got, err := NewWizard().Save(form)
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if diff := cmp.Diff([]string{"Negative Binomial", "Poisson"}, got.ModelTypes); diff != "" {
		t.Fatalf("model types mismatch (-want +got):\n%s", diff)
	}

	custom := NewWizard(WithModelTypes("Logit"))
	form.ModelTypes = []string{"Poisson"}
	if _, err := custom.Save(form); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected configured set to reject Poisson, got %v", err)
	}
}

func TestResaveOverwritesAndFailureKeepsPrevious(t *testing.T) {
	t.Parallel()

	w := NewWizard()
	if _, ok := w.Record(); ok {
		t.Fatalf("expected no record before first save")
	}

	if _, err := w.Save(validForm()); err != nil {
		t.Fatalf("first save: %v", err)
	}
	second := validForm()
	second.PrimaryMetric = "AIC"
	if _, err := w.Save(second); err != nil {
		t.Fatalf("second save: %v", err)
	}

	bad := validForm()
	bad.Iterations = 0
	if _, err := w.Save(bad); err == nil {
		t.Fatalf("expected failure")
	}

	got, ok := w.Record()
	if !ok || got.PrimaryMetric != AIC {
		t.Fatalf("expected AIC record to survive, got %+v (ok=%v)", got, ok)
	}
}

func TestFormEnabled(t *testing.T) {
	t.Parallel()

	form := validForm()
	if form.Enabled(FieldSecondaryMetric) {
		t.Fatalf("secondary metric enabled in Single mode")
	}
	if form.Enabled(FieldValidationPct) || form.Enabled(FieldTestPct) {
		t.Fatalf("split fields enabled without validation split")
	}
	if !form.Enabled(FieldTrainPct) || !form.Enabled(FieldPrimaryMetric) {
		t.Fatalf("unconditional fields must stay enabled")
	}

	form.ObjectiveMode = "Multi"
	form.HasValidationSplit = true
	if !form.Enabled(FieldSecondaryMetric) || !form.Enabled(FieldValidationPct) || !form.Enabled(FieldTestPct) {
		t.Fatalf("dependent fields should be enabled")
	}
}

func TestRulesEvaluate(t *testing.T) {
	t.Parallel()

	single := validForm()
	multi := validForm()
	multi.ObjectiveMode = "Multi"
	multi.HasValidationSplit = true

	for field := range Rules {
		for _, form := range []Form{single, multi} {
			if _, err := form.FieldEnabled(field); err != nil {
				t.Fatalf("rule for %s does not evaluate: %v", field, err)
			}
		}
	}
}

func TestSaveReportsBrokenRule(t *testing.T) {
	t.Parallel()

	w := NewWizard()
	w.rules = visibility.Rules{FieldSecondaryMetric: "(objective_mode"}

	if _, err := w.Save(validForm()); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation from a broken rule, got %v", err)
	}
	if _, ok := w.Record(); ok {
		t.Fatalf("no record should be stored after a failed save")
	}
}

func TestDefaultForm(t *testing.T) {
	t.Parallel()

	form := NewWizard().DefaultForm()
	want := Form{
		ObjectiveMode:  "Single",
		MaxTimeSeconds: 240000,
		Iterations:     100,
		TrainPct:       80,
		ValidationPct:  10,
		TestPct:        10,
	}
	if diff := cmp.Diff(want, form); diff != "" {
		t.Fatalf("default form mismatch (-want +got):\n%s", diff)
	}
}
