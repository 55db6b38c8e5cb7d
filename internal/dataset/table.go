// Package dataset loads model-evaluation results files into a typed table.
package dataset

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/isw2/evalplot/internal/metrics"
)

// absentValues are the cell contents that count as a missing metric value.
var absentValues = []string{"", "NA", "NaN", "nan", "null", "<nil>"}

// LoadError reports a results file that cannot be turned into a Table.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// MissingColumnsError lists the required header names a file lacks.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing expected column(s): %s", strings.Join(e.Columns, ", "))
}

// Table is an immutable view of a results file: one row per evaluation run.
type Table struct {
	df         dataframe.DataFrame
	models     []string
	selections []string
}

// LoadResults reads and validates the results file at path.
// Every failure is returned as a *LoadError.
func LoadResults(path string) (*Table, error) {
	f, err := openResults(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close() //nolint:errcheck

	records, err := ReadRecords(f)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	if len(records) == 0 {
		return nil, &LoadError{Path: path, Err: errors.New("file is empty (no header row)")}
	}

	t, err := NewTable(records)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	slog.Debug("Results loaded", "path", path, "rows", t.Len(), "columns", len(records[0]))
	return t, nil
}

// NewTable builds a Table from a header record followed by data records.
func NewTable(records [][]string) (*Table, error) {
	if len(records) == 0 {
		return nil, errors.New("no header row")
	}
	if err := checkHeader(records[0]); err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, errors.New("no data rows")
	}

	types := map[string]series.Type{
		metrics.ModelColumn:            series.String,
		metrics.FeatureSelectionColumn: series.String,
	}
	for _, m := range metrics.All {
		types[m] = series.Float
	}

	df := dataframe.LoadRecords(trimMetrics(records),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.WithTypes(types),
		dataframe.NaNValues(absentValues),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("parse records: %w", df.Err)
	}

	// Identifier columns are read from the raw records so that an
	// identifier spelled like an absent marker (e.g. "NA") keeps its text.
	header := records[0]
	modelIdx := indexOf(header, metrics.ModelColumn)
	fsIdx := indexOf(header, metrics.FeatureSelectionColumn)
	models := make([]string, 0, len(records)-1)
	selections := make([]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		models = append(models, strings.TrimSpace(rec[modelIdx]))
		selections = append(selections, strings.TrimSpace(rec[fsIdx]))
	}

	return &Table{df: df, models: models, selections: selections}, nil
}

func checkHeader(header []string) error {
	var missing, repeated []string
	for _, col := range metrics.RequiredColumns() {
		n := 0
		for _, h := range header {
			if h == col {
				n++
			}
		}
		switch {
		case n == 0:
			missing = append(missing, col)
		case n > 1:
			repeated = append(repeated, col)
		}
	}
	if len(missing) > 0 {
		return &MissingColumnsError{Columns: missing}
	}
	if len(repeated) > 0 {
		return fmt.Errorf("duplicate column(s): %s", strings.Join(repeated, ", "))
	}
	return nil
}

// trimMetrics returns a copy of records with surrounding whitespace removed
// from every metric cell, so " 0.5" parses as a number. Other cells are
// left as read.
func trimMetrics(records [][]string) [][]string {
	header := records[0]
	cols := make([]int, 0, len(metrics.All))
	for _, m := range metrics.All {
		cols = append(cols, indexOf(header, m))
	}
	out := make([][]string, len(records))
	out[0] = header
	for i, rec := range records[1:] {
		row := append([]string(nil), rec...)
		for _, c := range cols {
			row[c] = strings.TrimSpace(row[c])
		}
		out[i+1] = row
	}
	return out
}

func indexOf(header []string, name string) int {
	for i, h := range header {
		if h == name {
			return i
		}
	}
	return -1
}

// Len returns the number of evaluation runs.
func (t *Table) Len() int { return len(t.models) }

// HasColumn reports whether the table carries the named column.
func (t *Table) HasColumn(name string) bool {
	return indexOf(t.df.Names(), name) >= 0
}

// Models returns the Model value of every row.
func (t *Table) Models() []string { return append([]string(nil), t.models...) }

// FeatureSelections returns the Feature Selection value of every row.
func (t *Table) FeatureSelections() []string { return append([]string(nil), t.selections...) }

// Column returns the numeric values of a metric column, NaN marking absent cells.
func (t *Table) Column(metric string) ([]float64, error) {
	if !t.HasColumn(metric) {
		return nil, fmt.Errorf("column %q not found", metric)
	}
	col := t.df.Col(metric)
	if col.Err != nil {
		return nil, fmt.Errorf("column %q: %w", metric, col.Err)
	}
	return col.Float(), nil
}

// ModelOrder returns the distinct models in first-seen order.
func (t *Table) ModelOrder() []string { return firstSeen(t.models) }

// FeatureSelectionOrder returns the distinct feature-selection methods in
// first-seen order. Colour assignment in every chart follows this order.
func (t *Table) FeatureSelectionOrder() []string { return firstSeen(t.selections) }

func firstSeen(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0)
	for _, v := range values {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
