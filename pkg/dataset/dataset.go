// Package dataset reads tabular files into the column list and per column
// metadata consumed by the wizard session.
package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goliatone/go-metawizard/pkg/logger"
	"github.com/goliatone/go-metawizard/pkg/session"
)

// ErrLoad reports a dataset that could not be read or parsed.
var ErrLoad = errors.New("dataset: load failed")

// Column type names, following dataframe dtype naming.
const (
	TypeInt    = "int64"
	TypeFloat  = "float64"
	TypeBool   = "bool"
	TypeObject = "object"
)

// Table is the parsed shape of a dataset.
type Table struct {
	Columns  []string
	Metadata map[string]session.Metadata
	// Rows counts data rows kept; Skipped counts rows dropped for having the
	// wrong number of fields.
	Rows    int
	Skipped int
}

// Option configures a CSVLoader.
type Option func(*CSVLoader)

// WithComma sets the field delimiter.
func WithComma(r rune) Option {
	return func(l *CSVLoader) {
		if r != 0 {
			l.comma = r
		}
	}
}

// WithMissingValues replaces the set of cell values treated as missing.
func WithMissingValues(values ...string) Option {
	return func(l *CSVLoader) {
		l.missing = make(map[string]struct{}, len(values))
		for _, v := range values {
			l.missing[v] = struct{}{}
		}
	}
}

// CSVLoader loads comma separated files with a header row.
type CSVLoader struct {
	comma   rune
	missing map[string]struct{}
	log     *logger.Logger
}

var _ session.Loader = (*CSVLoader)(nil)

// DefaultMissingValues lists the cell values read as missing.
func DefaultMissingValues() []string {
	return []string{
		"", "#N/A", "#N/A N/A", "#NA", "-1.#IND", "-1.#QNAN", "-NaN", "-nan",
		"1.#IND", "1.#QNAN", "<NA>", "N/A", "NA", "NULL", "NaN", "None",
		"n/a", "nan", "null",
	}
}

// NewCSVLoader returns a loader using commas and the default missing markers.
func NewCSVLoader(opts ...Option) *CSVLoader {
	l := &CSVLoader{comma: ','}
	WithMissingValues(DefaultMissingValues()...)(l)
	for _, opt := range opts {
		if opt != nil {
			opt(l)
		}
	}
	l.log = logger.New("dataset:csv")
	return l
}

// Load implements session.Loader.
func (l *CSVLoader) Load(ctx context.Context, path string) ([]string, map[string]session.Metadata, error) {
	table, err := l.ReadFile(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	return table.Columns, table.Metadata, nil
}

// ReadFile opens path and parses it.
func (l *CSVLoader) ReadFile(ctx context.Context, path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return Table{}, fmt.Errorf("%w: %v", ErrLoad, err)
	}
	defer f.Close()

	table, err := l.Read(ctx, f)
	if err != nil {
		return Table{}, err
	}
	l.log.Printf("read %s: %d columns, %d rows, %d skipped", path, len(table.Columns), table.Rows, table.Skipped)
	return table, nil
}

// Read parses CSV content from r.
func (l *CSVLoader) Read(ctx context.Context, r io.Reader) (Table, error) {
	if err := ctx.Err(); err != nil {
		return Table{}, err
	}
	reader := csv.NewReader(r)
	reader.Comma = l.comma
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return Table{}, fmt.Errorf("%w: missing header row", ErrLoad)
	}
	if err != nil {
		return Table{}, fmt.Errorf("%w: %v", ErrLoad, err)
	}

	columns, err := parseHeader(header)
	if err != nil {
		return Table{}, err
	}

	stats := make([]*columnStats, len(columns))
	for i := range stats {
		stats[i] = newColumnStats()
	}

	table := Table{Columns: columns}
	line := 1
	for {
		if line%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return Table{}, err
			}
		}
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Table{}, fmt.Errorf("%w: %v", ErrLoad, err)
		}
		line++

		if len(record) != len(columns) {
			table.Skipped++
			l.log.Printf("skipping line %d: expected %d fields, got %d", line, len(columns), len(record))
			continue
		}
		for i, cell := range record {
			if _, missing := l.missing[cell]; missing {
				stats[i].observeMissing()
				continue
			}
			stats[i].observe(cell)
		}
		table.Rows++
	}

	table.Metadata = make(map[string]session.Metadata, len(columns))
	for i, name := range columns {
		table.Metadata[name] = stats[i].metadata(name)
	}
	return table, nil
}

func parseHeader(header []string) ([]string, error) {
	columns := make([]string, len(header))
	seen := make(map[string]struct{}, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		if strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("%w: empty column name at position %d", ErrLoad, i+1)
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("%w: duplicate column name %q", ErrLoad, name)
		}
		seen[name] = struct{}{}
		columns[i] = name
	}
	return columns, nil
}
