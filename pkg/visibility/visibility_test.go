package visibility_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-metawizard/pkg/visibility"
	"github.com/goliatone/go-metawizard/pkg/visibility/expr"
)

func TestRulesEnabled(t *testing.T) {
	t.Parallel()

	rules := visibility.Rules{
		"secondary_metric": `objective_mode == "Multi"`,
		"validation_pct":   "has_validation_split",
	}
	eval := expr.New()

	ok, err := rules.Enabled(eval, "primary_metric", nil)
	if err != nil || !ok {
		t.Fatalf("unruled field should be enabled, got %v, %v", ok, err)
	}

	values := map[string]any{"objective_mode": "Single", "has_validation_split": true}
	disabled, err := rules.Disabled(eval, values)
	if err != nil {
		t.Fatalf("Disabled returned error: %v", err)
	}
	if diff := cmp.Diff([]string{"secondary_metric"}, disabled); diff != "" {
		t.Fatalf("disabled mismatch (-want +got):\n%s", diff)
	}
}

func TestRulesWrapEvaluatorErrors(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	eval := visibility.EvaluatorFunc(func(string, map[string]any) (bool, error) { return false, boom })
	_, err := visibility.Rules{"f": "x"}.Enabled(eval, "f", nil)
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}
