package interactive

import (
	"context"
	"errors"

	"github.com/goliatone/go-metawizard/pkg/prompt"
	"github.com/goliatone/go-metawizard/pkg/session"
)

// chooseRoles asks for outcome, grouping and panel until the session accepts
// them.
func (r *Runner) chooseRoles(ctx context.Context) error {
	columns := r.session.Registry().Columns()
	optional := append([]string{session.None}, columns...)
	current, _ := r.session.Roles()

	for {
		outcome, err := r.driver.Select(ctx, prompt.SelectConfig{
			Message:      "Outcome column (Y)",
			Options:      columns,
			DefaultIndex: prompt.IndexOf(columns, current.Outcome),
		})
		if err != nil {
			return err
		}
		grouping, err := r.driver.Select(ctx, prompt.SelectConfig{
			Message:      "Grouping column",
			Options:      optional,
			DefaultIndex: max(prompt.IndexOf(optional, current.Grouping), 0),
			Help:         "Level 5 (grouped random parameters) needs a grouping column.",
		})
		if err != nil {
			return err
		}
		panel, err := r.driver.Select(ctx, prompt.SelectConfig{
			Message:      "Panel column",
			Options:      optional,
			DefaultIndex: max(prompt.IndexOf(optional, current.Panel), 0),
		})
		if err != nil {
			return err
		}

		roles := session.Roles{
			Outcome:  pick(columns, outcome),
			Grouping: pick(optional, grouping),
			Panel:    pick(optional, panel),
		}
		res, err := r.session.SetRoles(roles)
		if errors.Is(err, session.ErrValidation) || errors.Is(err, session.ErrEmptyProcessableSet) {
			if err := r.info(ctx, "Invalid roles: %v", err); err != nil {
				return err
			}
			continue
		}
		if err != nil {
			return err
		}

		if res.Reset {
			if err := r.info(ctx, "Roles changed: traversal restarted, %d decisions discarded", res.Discarded); err != nil {
				return err
			}
		}
		return r.info(ctx, "%d columns to process", len(res.Processable))
	}
}

func pick(options []string, idx int) string {
	if idx < 0 || idx >= len(options) {
		return ""
	}
	return options[idx]
}
