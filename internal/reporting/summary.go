// Package reporting turns aggregated evaluation results into text, markdown,
// HTML, JSON and spreadsheet summaries.
package reporting

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/isw2/evalplot/internal/dataset"
	"github.com/isw2/evalplot/internal/metrics"
	"github.com/isw2/evalplot/internal/statistics"
)

// Format selects a summary output.
type Format string

const (
	FormatTable    Format = "table"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatXLSX     Format = "xlsx"
)

// Formats lists every supported format.
var Formats = []Format{FormatTable, FormatJSON, FormatMarkdown, FormatHTML, FormatXLSX}

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	names := make([]string, len(Formats))
	for i, known := range Formats {
		names[i] = string(known)
	}
	return "", fmt.Errorf("unknown format %q (want one of %s)", s, strings.Join(names, ", "))
}

// Options tunes BuildSummary.
type Options struct {
	// CI adds a bootstrap confidence interval to every cell.
	CI              bool
	ConfidenceLevel float64
}

// Cell is one metric mean of a summary row.
type Cell struct {
	Mean float64
	// N is the number of present values behind Mean.
	N      int
	StdDev float64
	Best   bool
	CI     *statistics.ConfidenceInterval
}

// Row is one Model / Feature Selection pair.
type Row struct {
	Label            string
	Model            string
	FeatureSelection string
	Runs             int
	Cells            []Cell
}

// Summary is the report model shared by every output format.
type Summary struct {
	Source    string
	TotalRuns int
	Metrics   []string
	Rows      []Row
	// Highlights holds the best pair per metric: the largest mean, or the
	// smallest for error rates.
	Highlights      statistics.HighlightMap
	WithCI          bool
	ConfidenceLevel float64
}

// BuildSummary aggregates t over metricNames.
func BuildSummary(source string, t *dataset.Table, metricNames []string, opts Options) (*Summary, error) {
	mt, err := statistics.ComputeMeans(t, metricNames)
	if err != nil {
		return nil, err
	}
	hm := mt.Highlights()
	low := mt.Lowest()
	for _, m := range mt.Metrics {
		if !metrics.LowerIsBetter(m) {
			continue
		}
		if h, ok := low[m]; ok {
			hm[m] = h
		}
	}

	s := &Summary{
		Source:          source,
		TotalRuns:       t.Len(),
		Metrics:         mt.Metrics,
		Highlights:      hm,
		WithCI:          opts.CI,
		ConfidenceLevel: opts.ConfidenceLevel,
	}
	for _, r := range mt.Rows {
		row := Row{
			Label:            r.Label,
			Model:            r.Key.Model,
			FeatureSelection: r.Key.FeatureSelection,
			Runs:             r.Runs,
			Cells:            make([]Cell, len(mt.Metrics)),
		}
		for j, m := range mt.Metrics {
			c := Cell{
				Mean:   r.Means[j],
				N:      r.Counts[j],
				StdDev: metrics.StdDev(mt.Values(r.Label, m)),
				Best:   hm.IsHighlighted(m, r.Label, r.Means[j]),
			}
			if opts.CI {
				ci := mt.CellCI(r.Label, m, opts.ConfidenceLevel)
				c.CI = &ci
			}
			row.Cells[j] = c
		}
		s.Rows = append(s.Rows, row)
	}
	return s, nil
}

// formatMean renders a mean rounded to four places; absent means print "-".
func formatMean(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	return decimal.NewFromFloat(v).StringFixed(4)
}

// formatCell renders a cell with its optional interval and best marker.
func formatCell(c Cell, mark string) string {
	s := formatMean(c.Mean)
	if c.CI != nil && !math.IsNaN(c.CI.Lower) {
		s += fmt.Sprintf(" [%s, %s]", formatMean(c.CI.Lower), formatMean(c.CI.Upper))
	}
	if c.Best {
		s += mark
	}
	return s
}

// roundMean is the value written to machine-readable outputs.
func roundMean(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	f, _ := decimal.NewFromFloat(v).Round(6).Float64()
	return &f
}
