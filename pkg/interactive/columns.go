package interactive

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-metawizard/pkg/prompt"
	"github.com/goliatone/go-metawizard/pkg/session"
)

type action string

const (
	actionNext                  action = "Choose levels and continue"
	actionAddDistribution       action = "Add distribution"
	actionRemoveDistributions   action = "Remove distributions"
	actionAddTransformation     action = "Add transformation"
	actionRemoveTransformations action = "Remove transformations"
	actionRoles                 action = "Change column roles"
	actionSave                  action = "Save decisions"
)

// walkColumns runs the per column menu until the traversal ends or the
// analyst saves early. partial is true for an early save.
func (r *Runner) walkColumns(ctx context.Context) ([]session.DecisionRecord, bool, error) {
	for {
		view, err := r.session.Current()
		if errors.Is(err, session.ErrDone) {
			records, err := r.session.Export()
			return records, false, err
		}
		if err != nil {
			return nil, false, err
		}

		if err := r.info(ctx, "%s", describe(view)); err != nil {
			return nil, false, err
		}

		actions := []action{
			actionNext,
			actionAddDistribution,
			actionRemoveDistributions,
			actionAddTransformation,
			actionRemoveTransformations,
			actionRoles,
		}
		if r.session.CanSave() {
			actions = append(actions, actionSave)
		}
		options := make([]string, len(actions))
		for i, a := range actions {
			options[i] = string(a)
		}

		idx, err := r.driver.Select(ctx, prompt.SelectConfig{
			Message: fmt.Sprintf("Column %q", view.Metadata.Name),
			Options: options,
		})
		if err != nil {
			return nil, false, err
		}
		if idx < 0 || idx >= len(actions) {
			continue
		}

		switch actions[idx] {
		case actionNext:
			err = r.advance(ctx, view)
		case actionAddDistribution:
			err = r.addChoice(ctx, "distribution", session.DistributionChoices(), r.session.AddDistribution)
		case actionRemoveDistributions:
			err = r.removeChoices(ctx, "distributions", view.Entry.Distributions, r.session.RemoveDistributions)
		case actionAddTransformation:
			err = r.addChoice(ctx, "transformation", session.TransformationChoices(), r.session.AddTransformation)
		case actionRemoveTransformations:
			err = r.removeChoices(ctx, "transformations", view.Entry.Transformations, r.session.RemoveTransformations)
		case actionRoles:
			err = r.chooseRoles(ctx)
		case actionSave:
			records, saveErr := r.session.Decisions()
			if saveErr == nil {
				cursor, total := r.session.Progress()
				return records, cursor < total, nil
			}
			if !errors.Is(saveErr, session.ErrSaveDisabled) && !errors.Is(saveErr, session.ErrNothingToSave) {
				return nil, false, saveErr
			}
			err = r.info(ctx, "Cannot save yet: %v", saveErr)
		}
		if err != nil {
			return nil, false, err
		}
	}
}

func (r *Runner) advance(ctx context.Context, view session.ColumnView) error {
	var (
		options  []string
		levelIdx []int
		defaults []int
	)
	for i := 0; i < session.LevelCount; i++ {
		if i == session.GroupedLevel && !view.Level5Selectable {
			continue
		}
		if view.Defaults[i] {
			defaults = append(defaults, len(options))
		}
		options = append(options, fmt.Sprintf("%s: %s", session.Label(i), session.LevelNames[i]))
		levelIdx = append(levelIdx, i)
	}

	picked, err := r.driver.MultiSelect(ctx, prompt.SelectConfig{
		Message:  fmt.Sprintf("Levels allowed for %q", view.Metadata.Name),
		Options:  options,
		Defaults: defaults,
	})
	if err != nil {
		return err
	}

	var levels session.Levels
	for _, p := range picked {
		if p >= 0 && p < len(levelIdx) {
			levels[levelIdx[p]] = true
		}
	}
	rec, err := r.session.Advance(levels)
	if err != nil {
		return err
	}
	r.log.Printf("recorded %s", rec.Column)
	return nil
}

func (r *Runner) addChoice(ctx context.Context, kind string, choices []string, add func(string) error) error {
	name, err := r.driver.Input(ctx, prompt.InputConfig{
		Message: fmt.Sprintf("Enter %s name (%s)", kind, strings.Join(choices, ", ")),
	})
	if err != nil {
		return err
	}
	err = add(strings.TrimSpace(name))
	if errors.Is(err, session.ErrInvalidChoice) || errors.Is(err, session.ErrDuplicateEntry) {
		return r.info(ctx, "Not added: %v", err)
	}
	return err
}

func (r *Runner) removeChoices(ctx context.Context, kind string, current []string, remove func(...int) error) error {
	if len(current) == 0 {
		return r.info(ctx, "No %s to remove", kind)
	}
	picked, err := r.driver.MultiSelect(ctx, prompt.SelectConfig{
		Message: fmt.Sprintf("Select %s to remove", kind),
		Options: current,
	})
	if err != nil {
		return err
	}
	if len(picked) == 0 {
		return nil
	}
	err = remove(picked...)
	if errors.Is(err, session.ErrIndexOutOfRange) {
		return r.info(ctx, "Not removed: %v", err)
	}
	return err
}

func describe(view session.ColumnView) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Column %d/%d: %s (%s)", view.Index+1, view.Total, view.Metadata.Name, view.Metadata.Type)
	if view.Metadata.Min != nil || view.Metadata.Max != nil {
		fmt.Fprintf(&b, " min=%v max=%v", view.Metadata.Min, view.Metadata.Max)
	}
	fmt.Fprintf(&b, "\n  distributions: %s", listOrNone(view.Entry.Distributions))
	fmt.Fprintf(&b, "\n  transformations: %s", listOrNone(view.Entry.Transformations))
	return b.String()
}

func listOrNone(items []string) string {
	if len(items) == 0 {
		return "(none)"
	}
	return strings.Join(items, ", ")
}
