package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-metawizard/pkg/export"
	"github.com/goliatone/go-metawizard/pkg/session"
)

type levelView struct {
	Label string
	Name  string
}

type rowView struct {
	Column          string
	Levels          []bool
	LevelSummary    string
	Distributions   string
	Transformations string
}

// HTML renders the decision table as a standalone HTML page.
type HTML struct {
	Engine *Engine
}

// Text renders the decision table as plain text.
type Text struct {
	Engine *Engine
}

var (
	_ export.Format = HTML{}
	_ export.Format = Text{}
)

func (HTML) Name() string      { return "html" }
func (HTML) Extension() string { return ".html" }

// Encode renders decisions.html.tpl.
func (h HTML) Encode(w io.Writer, doc export.Decisions) error {
	engine, err := engineOrDefault(h.Engine)
	if err != nil {
		return err
	}
	return engine.Render("decisions.html", viewContext(doc, sanitizeText), w)
}

func (Text) Name() string      { return "txt" }
func (Text) Extension() string { return ".txt" }

// Encode renders decisions.txt.tpl.
func (t Text) Encode(w io.Writer, doc export.Decisions) error {
	engine, err := engineOrDefault(t.Engine)
	if err != nil {
		return err
	}
	return engine.Render("decisions.txt", viewContext(doc, strings.TrimSpace), w)
}

// Register adds the HTML and text formats to r.
func Register(r *export.Registry, engine *Engine) error {
	if err := r.Register(HTML{Engine: engine}); err != nil {
		return err
	}
	return r.Register(Text{Engine: engine})
}

func engineOrDefault(e *Engine) (*Engine, error) {
	if e != nil {
		return e, nil
	}
	return New()
}

func viewContext(doc export.Decisions, clean func(string) string) pongo2.Context {
	levels := make([]levelView, session.LevelCount)
	for i := range levels {
		levels[i] = levelView{Label: session.Label(i), Name: session.LevelNames[i]}
	}

	rows := make([]rowView, 0, len(doc.Records))
	for _, rec := range doc.Records {
		row := rowView{
			Column:          clean(rec.Column),
			Levels:          rec.Levels[:],
			Distributions:   joinOrDash(rec.Distributions),
			Transformations: joinOrDash(rec.Transformations),
		}
		var on []string
		for i, enabled := range rec.Levels {
			if enabled {
				on = append(on, strconv.Itoa(i+1))
			}
		}
		row.LevelSummary = joinOrDash(on)
		rows = append(rows, row)
	}

	return pongo2.Context{
		"session_id": doc.SessionID,
		"outcome":    clean(doc.Roles.Outcome),
		"grouping":   clean(doc.Roles.Grouping),
		"panel":      clean(doc.Roles.Panel),
		"levels":     levels,
		"rows":       rows,
		"columns":    session.LevelCount + 3,
	}
}

func joinOrDash(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}
