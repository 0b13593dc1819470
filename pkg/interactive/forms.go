package interactive

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-metawizard/pkg/hyper"
	"github.com/goliatone/go-metawizard/pkg/prompt"
)

// collectHyper fills the hyperparameter form until the wizard accepts it.
// Answers from a rejected attempt become the defaults of the next one.
func (r *Runner) collectHyper(ctx context.Context) (hyper.Record, error) {
	form := r.wizard.DefaultForm()
	for {
		if err := r.fillHyperForm(ctx, &form); err != nil {
			return hyper.Record{}, err
		}
		rec, err := r.wizard.Save(form)
		if err == nil {
			return rec, nil
		}
		if !errors.Is(err, hyper.ErrValidation) && !errors.Is(err, hyper.ErrInvalidChoice) && !errors.Is(err, hyper.ErrInvalidSplit) {
			return hyper.Record{}, err
		}
		if err := r.info(ctx, "Hyperparameters not saved: %v", err); err != nil {
			return hyper.Record{}, err
		}
	}
}

func (r *Runner) fillHyperForm(ctx context.Context, form *hyper.Form) error {
	modelTypes := r.wizard.ModelTypes()
	var defaults []int
	for _, mt := range form.ModelTypes {
		if idx := prompt.IndexOf(modelTypes, mt); idx >= 0 {
			defaults = append(defaults, idx)
		}
	}
	picked, err := r.driver.MultiSelect(ctx, prompt.SelectConfig{
		Message:  "Model types",
		Options:  modelTypes,
		Defaults: defaults,
	})
	if err != nil {
		return err
	}
	form.ModelTypes = nil
	for _, p := range picked {
		form.ModelTypes = append(form.ModelTypes, pick(modelTypes, p))
	}

	modes := []string{string(hyper.Single), string(hyper.Multi)}
	mode, err := r.driver.Select(ctx, prompt.SelectConfig{
		Message:      "Objective",
		Options:      modes,
		DefaultIndex: max(prompt.IndexOf(modes, form.ObjectiveMode), 0),
	})
	if err != nil {
		return err
	}
	form.ObjectiveMode = pick(modes, mode)

	metrics := metricNames()
	primary, err := r.driver.Select(ctx, prompt.SelectConfig{
		Message:      "Primary objective metric",
		Options:      metrics,
		DefaultIndex: prompt.IndexOf(metrics, form.PrimaryMetric),
	})
	if err != nil {
		return err
	}
	form.PrimaryMetric = pick(metrics, primary)

	if form.Enabled(hyper.FieldSecondaryMetric) {
		secondary, err := r.driver.Select(ctx, prompt.SelectConfig{
			Message:      "Secondary objective metric",
			Options:      metrics,
			DefaultIndex: prompt.IndexOf(metrics, form.SecondaryMetric),
		})
		if err != nil {
			return err
		}
		form.SecondaryMetric = pick(metrics, secondary)
	}

	if form.MaxTimeSeconds, err = r.intInput(ctx, "MAXTIME (seconds)", form.MaxTimeSeconds); err != nil {
		return err
	}
	if form.Iterations, err = r.intInput(ctx, fmt.Sprintf("Iterations without improvement (%d-%d)", hyper.MinIterations, hyper.MaxIterations), form.Iterations); err != nil {
		return err
	}

	if form.HasValidationSplit, err = r.driver.Confirm(ctx, prompt.ConfirmConfig{
		Message: "Do you want a validation split?",
		Default: form.HasValidationSplit,
	}); err != nil {
		return err
	}
	if form.TrainPct, err = r.intInput(ctx, "Train split (%)", form.TrainPct); err != nil {
		return err
	}
	if form.Enabled(hyper.FieldValidationPct) {
		if form.ValidationPct, err = r.intInput(ctx, "Validation split (%)", form.ValidationPct); err != nil {
			return err
		}
	}
	if form.Enabled(hyper.FieldTestPct) {
		if form.TestPct, err = r.intInput(ctx, "Test split (%)", form.TestPct); err != nil {
			return err
		}
	}
	return nil
}

// collectAlgorithm asks for an algorithm and each of its parameters.
func (r *Runner) collectAlgorithm(ctx context.Context) (hyper.AlgorithmRecord, error) {
	algorithms := hyper.Algorithms()
	options := make([]string, len(algorithms))
	for i, alg := range algorithms {
		options[i] = fmt.Sprintf("%s (%s)", alg.Title(), alg)
	}

	for {
		idx, err := r.driver.Select(ctx, prompt.SelectConfig{
			Message: "Search algorithm",
			Options: options,
		})
		if err != nil {
			return hyper.AlgorithmRecord{}, err
		}
		if idx < 0 || idx >= len(algorithms) {
			continue
		}
		alg := algorithms[idx]

		form := hyper.AlgorithmForm{Algorithm: string(alg), Values: map[string]float64{}}
		for _, p := range hyper.Params(alg) {
			v, err := r.floatInput(ctx, fmt.Sprintf("%s [%g-%g]", p.Label, p.Min, p.Max), p.Default)
			if err != nil {
				return hyper.AlgorithmRecord{}, err
			}
			form.Values[p.Key] = v
		}

		rec, err := r.wizard.SaveAlgorithm(form)
		if err == nil {
			return rec, nil
		}
		if !errors.Is(err, hyper.ErrValidation) && !errors.Is(err, hyper.ErrInvalidChoice) {
			return hyper.AlgorithmRecord{}, err
		}
		if err := r.info(ctx, "Algorithm parameters not saved: %v", err); err != nil {
			return hyper.AlgorithmRecord{}, err
		}
	}
}

func (r *Runner) intInput(ctx context.Context, message string, def int) (int, error) {
	for {
		raw, err := r.driver.Input(ctx, prompt.InputConfig{Message: message, Default: strconv.Itoa(def)})
		if err != nil {
			return 0, err
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return def, nil
		}
		v, err := strconv.Atoi(raw)
		if err == nil {
			return v, nil
		}
		if err := r.info(ctx, "%s: %q is not a whole number", message, raw); err != nil {
			return 0, err
		}
	}
}

func (r *Runner) floatInput(ctx context.Context, message string, def float64) (float64, error) {
	for {
		raw, err := r.driver.Input(ctx, prompt.InputConfig{Message: message, Default: strconv.FormatFloat(def, 'f', -1, 64)})
		if err != nil {
			return 0, err
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return def, nil
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err == nil {
			return v, nil
		}
		if err := r.info(ctx, "%s: %q is not a number", message, raw); err != nil {
			return 0, err
		}
	}
}

func metricNames() []string {
	out := make([]string, 0, len(hyper.Metrics()))
	for _, m := range hyper.Metrics() {
		out = append(out, string(m))
	}
	return out
}
