package expr

import (
	"testing"
)

func TestEvaluatorComparisons(t *testing.T) {
	t.Parallel()

	eval := New()
	values := map[string]any{
		"objective_mode":       "Multi",
		"has_validation_split": true,
		"iterations":           100,
		"secondary":            nil,
		"output":               map[string]any{"format": "csv"},
	}

	cases := []struct {
		rule string
		want bool
	}{
		{`objective_mode == "Multi"`, true},
		{`objective_mode == 'Single'`, false},
		{`objective_mode != "Single"`, true},
		{`objective_mode == Multi`, true},
		{`has_validation_split`, true},
		{`!has_validation_split`, false},
		{`has_validation_split == true`, true},
		{`iterations == 100`, true},
		{`iterations != 100`, false},
		{`secondary == null`, true},
		{`missing`, false},
		{`output.format == "csv"`, true},
		{`objective_mode == "Multi" && !has_validation_split`, false},
		{`objective_mode == "Single" || has_validation_split`, true},
		{`!(objective_mode == "Single" || secondary != null)`, true},
		{``, true},
	}

	for _, tc := range cases {
		got, err := eval.Eval(tc.rule, values)
		if err != nil {
			t.Fatalf("Eval(%q) returned error: %v", tc.rule, err)
		}
		if got != tc.want {
			t.Fatalf("Eval(%q) = %v, want %v", tc.rule, got, tc.want)
		}
	}
}

func TestEvaluatorStringTruthiness(t *testing.T) {
	t.Parallel()

	eval := New()
	for value, want := range map[string]bool{"true": true, "false": false, "": false, "yes": true} {
		got, err := eval.Eval("flag", map[string]any{"flag": value})
		if err != nil {
			t.Fatalf("Eval returned error: %v", err)
		}
		if got != want {
			t.Fatalf("flag=%q: got %v, want %v", value, got, want)
		}
	}
}

func TestEvaluatorSyntaxErrors(t *testing.T) {
	t.Parallel()

	eval := New()
	for _, rule := range []string{
		`a = "b"`,
		`a == "unterminated`,
		`(a == "b"`,
		`a ==`,
		`== "b"`,
		`a b`,
	} {
		if _, err := eval.Eval(rule, nil); err == nil {
			t.Fatalf("Eval(%q): expected error", rule)
		}
	}
}
