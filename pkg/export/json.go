package export

import (
	"encoding/json"
	"io"

	"github.com/goliatone/go-metawizard/pkg/session"
)

// JSON encodes the decision table as an indented document.
type JSON struct{}

func (JSON) Name() string      { return "json" }
func (JSON) Extension() string { return ".json" }

type jsonRecord struct {
	Column          string          `json:"column"`
	Levels          map[string]bool `json:"levels"`
	Distributions   []string        `json:"distributions"`
	Transformations []string        `json:"transformations"`
}

type jsonDocument struct {
	SessionID string        `json:"session_id,omitempty"`
	Roles     session.Roles `json:"roles"`
	Decisions []jsonRecord  `json:"decisions"`
}

// Encode writes the decisions with levels keyed by label.
func (JSON) Encode(w io.Writer, doc Decisions) error {
	out := jsonDocument{
		SessionID: doc.SessionID,
		Roles:     doc.Roles,
		Decisions: make([]jsonRecord, 0, len(doc.Records)),
	}
	for _, rec := range doc.Records {
		levels := make(map[string]bool, session.LevelCount)
		for i, on := range rec.Levels {
			levels[session.Label(i)] = on
		}
		out.Decisions = append(out.Decisions, jsonRecord{
			Column:          rec.Column,
			Levels:          levels,
			Distributions:   nonNil(rec.Distributions),
			Transformations: nonNil(rec.Transformations),
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
