package session

import (
	"fmt"
	"strings"
)

// None is the role value used when no grouping or panel column is selected.
const None = "None"

// LevelCount is the number of model-specification levels recorded per column.
const LevelCount = 6

// GroupedLevel is the zero-based index of level 5 (grouped random
// parameters), the only level that requires a grouping column.
const GroupedLevel = 4

// LevelNames describes each level, in order.
var LevelNames = [LevelCount]string{
	"Off",
	"Fixed Effects",
	"Random Parameters",
	"Correlated Random Parameters",
	"Grouped Random Parameters",
	"Heterogeneity in Means",
}

// Levels is the per-column decision vector. Index 0 is level 1.
type Levels [LevelCount]bool

// AllLevels returns a vector with every level enabled.
func AllLevels() Levels {
	var l Levels
	for i := range l {
		l[i] = true
	}
	return l
}

// Label returns the display label for the zero-based level index, e.g.
// "Level 3".
func Label(index int) string {
	return fmt.Sprintf("Level %d", index+1)
}

// Metadata is the static description of a dataset column. Min and Max are nil
// when the column holds no values.
type Metadata struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Min  any    `json:"min"`
	Max  any    `json:"max"`
}

// Roles assigns the outcome, grouping and panel columns. Grouping and Panel
// use None when unset.
type Roles struct {
	Outcome  string `json:"outcome"`
	Grouping string `json:"grouping"`
	Panel    string `json:"panel"`
}

// HasGrouping reports whether a grouping column is selected.
func (r Roles) HasGrouping() bool {
	return !isNone(r.Grouping)
}

// normalized maps blank grouping and panel values to None. Names are
// otherwise kept verbatim so they match dataset columns exactly.
func (r Roles) normalized() Roles {
	out := r
	if isNone(out.Grouping) {
		out.Grouping = None
	}
	if isNone(out.Panel) {
		out.Panel = None
	}
	return out
}

func isNone(value string) bool {
	return strings.TrimSpace(value) == "" || value == None
}

// Entry is the per-column allow-list of distributions and transformations.
type Entry struct {
	Column          string   `json:"column"`
	Distributions   []string `json:"distributions"`
	Transformations []string `json:"transformations"`
}

func (e Entry) clone() Entry {
	return Entry{
		Column:          e.Column,
		Distributions:   append([]string{}, e.Distributions...),
		Transformations: append([]string{}, e.Transformations...),
	}
}

// DecisionRecord is the finalized outcome of processing one column.
type DecisionRecord struct {
	Column          string   `json:"column"`
	Levels          Levels   `json:"levels"`
	Distributions   []string `json:"distributions"`
	Transformations []string `json:"transformations"`
}

// RoleResult is returned by SetRoles. Reset is true when a previous role
// assignment existed: its cursor and Discarded decision records were dropped.
type RoleResult struct {
	Processable []string
	Reset       bool
	Discarded   int
}

// ColumnView is what Current exposes for the column under the cursor.
type ColumnView struct {
	Index            int
	Total            int
	Metadata         Metadata
	Entry            Entry
	Level5Selectable bool
	Defaults         Levels
}

// IsLast reports whether the view is the last processable column.
func (v ColumnView) IsLast() bool {
	return v.Total > 0 && v.Index == v.Total-1
}
