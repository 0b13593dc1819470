package export

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/goliatone/go-metawizard/pkg/hyper"
	"github.com/goliatone/go-metawizard/pkg/session"
)

// HyperFile and AlgorithmFile are the fixed names picked up downstream.
const (
	HyperFile     = "setup_hyper.csv"
	AlgorithmFile = "setup_algorithm.csv"
)

// DecisionHeader returns the decision CSV header.
func DecisionHeader() []string {
	header := []string{"Column"}
	for i := 0; i < session.LevelCount; i++ {
		header = append(header, session.Label(i))
	}
	return append(header, "Distributions", "Transformations")
}

// HyperHeader returns the hyperparameter CSV header.
func HyperHeader() []string {
	return []string{
		"Model Types",
		"Objective Type",
		"Primary Objective Metric",
		"Secondary Objective Metric",
		"MAXTIME",
		"Iterations",
		"Train Split",
		"Validation Split",
		"Test Split",
	}
}

// CSV is the canonical decision table format.
type CSV struct{}

func (CSV) Name() string      { return "csv" }
func (CSV) Extension() string { return ".csv" }

// Encode writes one row per decision record in traversal order.
func (CSV) Encode(w io.Writer, doc Decisions) error {
	rows := make([][]string, 0, len(doc.Records)+1)
	rows = append(rows, DecisionHeader())
	for _, rec := range doc.Records {
		row := []string{rec.Column}
		for _, on := range rec.Levels {
			row = append(row, boolCell(on))
		}
		row = append(row, listCell(rec.Distributions), listCell(rec.Transformations))
		rows = append(rows, row)
	}
	return writeRows(w, rows)
}

// EncodeHyper writes the single row hyperparameter CSV.
func EncodeHyper(w io.Writer, rec hyper.Record) error {
	row := []string{
		listCell(rec.ModelTypes),
		string(rec.ObjectiveMode),
		string(rec.PrimaryMetric),
		rec.SecondaryMetricName(),
		strconv.Itoa(rec.MaxTimeSeconds),
		strconv.Itoa(rec.MaxIterationsWithoutImprovement),
		strconv.Itoa(rec.TrainPct),
		strconv.Itoa(rec.ValidationPct),
		strconv.Itoa(rec.TestPct),
	}
	return writeRows(w, [][]string{HyperHeader(), row})
}

// EncodeAlgorithm writes the algorithm code followed by one column per
// parameter label.
func EncodeAlgorithm(w io.Writer, rec hyper.AlgorithmRecord) error {
	header := []string{"Algorithm"}
	row := []string{string(rec.Algorithm)}
	for _, p := range rec.Params {
		header = append(header, p.Label)
		row = append(row, strconv.FormatFloat(p.Value, 'f', -1, 64))
	}
	return writeRows(w, [][]string{header, row})
}

func writeRows(w io.Writer, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	return cw.Error()
}

func boolCell(v bool) string {
	if v {
		return "True"
	}
	return "False"
}

// listCell renders a list as `['a', 'b']`, the form the downstream reader
// parses.
func listCell(items []string) string {
	if len(items) == 0 {
		return "[]"
	}
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = quoteItem(item)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

func quoteItem(s string) string {
	if strings.Contains(s, "'") && !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}
	return "'" + strings.ReplaceAll(strings.ReplaceAll(s, `\`, `\\`), "'", `\'`) + "'"
}
