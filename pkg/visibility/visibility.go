// Package visibility declares when a form field is enabled. Rules are small
// boolean expressions over the other field values of the form, for example
// `objective_mode == "Multi"`.
package visibility

import (
	"fmt"
	"sort"
)

// Evaluator decides whether a rule holds for the given values.
type Evaluator interface {
	Eval(rule string, values map[string]any) (bool, error)
}

// EvaluatorFunc adapts a function into an Evaluator.
type EvaluatorFunc func(rule string, values map[string]any) (bool, error)

// Eval delegates to the underlying function.
func (fn EvaluatorFunc) Eval(rule string, values map[string]any) (bool, error) {
	return fn(rule, values)
}

// Rules maps a field name to the rule that enables it. Fields without a rule
// are always enabled.
type Rules map[string]string

// Enabled evaluates the rule attached to field.
func (r Rules) Enabled(eval Evaluator, field string, values map[string]any) (bool, error) {
	rule, ok := r[field]
	if !ok || eval == nil {
		return true, nil
	}
	ok, err := eval.Eval(rule, values)
	if err != nil {
		return false, fmt.Errorf("visibility: field %q: %w", field, err)
	}
	return ok, nil
}

// Disabled returns the sorted names of every field whose rule does not hold.
func (r Rules) Disabled(eval Evaluator, values map[string]any) ([]string, error) {
	var out []string
	for field := range r {
		ok, err := r.Enabled(eval, field, values)
		if err != nil {
			return nil, err
		}
		if !ok {
			out = append(out, field)
		}
	}
	sort.Strings(out)
	return out, nil
}
