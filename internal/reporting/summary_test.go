package reporting

import (
	"bytes"
	"encoding/json"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/isw2/evalplot/internal/dataset"
	"github.com/isw2/evalplot/internal/metrics"
)

// newTable builds a table whose rows give model, feature selection and a
// Precision value; other metrics are 0.5.
func newTable(t *testing.T, runs ...[3]string) *dataset.Table {
	t.Helper()
	return newMetricTable(t, metrics.Precision, runs...)
}

// newMetricTable is newTable with the varying value placed in metric.
func newMetricTable(t *testing.T, metric string, runs ...[3]string) *dataset.Table {
	t.Helper()
	header := append([]string{metrics.ModelColumn, metrics.FeatureSelectionColumn}, metrics.All...)
	records := [][]string{header}
	for _, r := range runs {
		rec := []string{r[0], r[1]}
		for _, m := range metrics.All {
			if m == metric {
				rec = append(rec, r[2])
			} else {
				rec = append(rec, "0.5")
			}
		}
		records = append(records, rec)
	}
	tbl, err := dataset.NewTable(records)
	require.NoError(t, err)
	return tbl
}

func fourPairs(t *testing.T) *dataset.Table {
	return newTable(t,
		[3]string{"A", "X", "0.8"},
		[3]string{"A", "Y", "0.6"},
		[3]string{"B", "X", "0.9"},
		[3]string{"B", "Y", "0.7"},
	)
}

func TestParseFormat(t *testing.T) {
	for _, f := range Formats {
		got, err := ParseFormat(strings.ToUpper(string(f)))
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}

	_, err := ParseFormat("pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "table, json, markdown, html, xlsx")
}

func TestBuildSummary(t *testing.T) {
	s, err := BuildSummary("results.csv", fourPairs(t), metrics.Main, Options{})
	require.NoError(t, err)

	assert.Equal(t, 4, s.TotalRuns)
	assert.Equal(t, metrics.Main, s.Metrics)
	require.Len(t, s.Rows, 4)
	assert.Equal(t, "A / X", s.Rows[0].Label)
	assert.Equal(t, "A", s.Rows[0].Model)
	assert.Equal(t, "X", s.Rows[0].FeatureSelection)

	// Precision winner is B / X only.
	for _, r := range s.Rows {
		assert.Equal(t, r.Label == "B / X", r.Cells[0].Best, r.Label)
		assert.Nil(t, r.Cells[0].CI)
	}
	// All rows tie on Recall: the first row wins.
	assert.True(t, s.Rows[0].Cells[1].Best)
	assert.False(t, s.Rows[1].Cells[1].Best)
}

func TestBuildSummary_CI(t *testing.T) {
	tbl := newTable(t,
		[3]string{"A", "X", "0.8"},
		[3]string{"A", "X", "0.6"},
		[3]string{"A", "X", "0.7"},
	)
	s, err := BuildSummary("r.csv", tbl, []string{metrics.Precision}, Options{CI: true, ConfidenceLevel: 0.95})
	require.NoError(t, err)

	ci := s.Rows[0].Cells[0].CI
	require.NotNil(t, ci)
	assert.InDelta(t, 0.7, ci.Mean, 1e-9)
	assert.LessOrEqual(t, ci.Lower, ci.Mean)
	assert.GreaterOrEqual(t, ci.Upper, ci.Mean)
	assert.Equal(t, 3, s.Rows[0].Cells[0].N)
}

func TestBuildSummary_StdDev(t *testing.T) {
	tbl := newTable(t,
		[3]string{"A", "X", "0.2"},
		[3]string{"A", "X", "0.4"},
		[3]string{"B", "X", "0.9"},
	)
	s, err := BuildSummary("r.csv", tbl, []string{metrics.Precision}, Options{})
	require.NoError(t, err)

	require.Len(t, s.Rows, 2)
	assert.InDelta(t, math.Sqrt(0.02), s.Rows[0].Cells[0].StdDev, 1e-12)
	// a single run has no spread
	assert.Equal(t, 0.0, s.Rows[1].Cells[0].StdDev)
}

func TestBuildSummary_ErrorRatesPreferLowest(t *testing.T) {
	tbl := newMetricTable(t, metrics.FPR,
		[3]string{"Bad", "X", "0.95"},
		[3]string{"Good", "X", "0.05"},
	)
	s, err := BuildSummary("r.csv", tbl, []string{metrics.FPR}, Options{})
	require.NoError(t, err)

	assert.Equal(t, "Good / X", s.Highlights[metrics.FPR].Label)
	assert.True(t, s.Rows[1].Cells[0].Best)
	assert.False(t, s.Rows[0].Cells[0].Best)

	out := FormatInterpretation(s)
	assert.Contains(t, out, "  False Positive Rate (FPR): Good / X 0.0500 (lower is better)\n")
	assert.NotContains(t, out, "Bad / X")

	md := Markdown(s)
	assert.Contains(t, md, "- **False Positive Rate (FPR)**: Good / X, 0.0500 (lower is better)")
}

func TestBuildSummary_UnknownMetric(t *testing.T) {
	_, err := BuildSummary("r.csv", fourPairs(t), []string{"Nope"}, Options{})
	require.Error(t, err)
}

func TestFormatMean(t *testing.T) {
	assert.Equal(t, "0.9000", formatMean(0.9))
	assert.Equal(t, "0.1235", formatMean(0.12346))
	assert.Equal(t, "-0.2500", formatMean(-0.25))
	assert.Equal(t, "-", formatMean(math.NaN()))
}

func TestWriteTable(t *testing.T) {
	s, err := BuildSummary("results.csv", fourPairs(t), []string{metrics.Precision, metrics.Recall}, Options{})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, s))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "results.csv: 4 runs, 4 Model / Feature Selection pairs\n"))
	assert.Contains(t, out, "Model / Feature Selection  n  Precision  Recall\n")
	assert.Contains(t, out, "B / X                      1  0.9000*    0.5000\n")
	assert.Contains(t, out, "A / X                      1  0.8000     0.5000*\n")
	assert.Contains(t, out, "Precision: B / X 0.9000")
}

func TestWriteTable_ThousandsSeparator(t *testing.T) {
	s := &Summary{Source: "big.csv", TotalRuns: 12345, Metrics: []string{}}
	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, s))
	assert.Contains(t, buf.String(), "big.csv: 12,345 runs")
}

func TestWriteTable_AbsentMean(t *testing.T) {
	tbl := newTable(t, [3]string{"A", "X", "NaN"}, [3]string{"B", "X", "0.4"})
	s, err := BuildSummary("r.csv", tbl, []string{metrics.Precision}, Options{})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, s))
	assert.Contains(t, buf.String(), "A / X                      1  -\n")
	assert.Contains(t, buf.String(), "B / X                      1  0.4000*\n")
}

func TestMarkdownAndHTML(t *testing.T) {
	s, err := BuildSummary("results.csv", fourPairs(t), []string{metrics.Precision}, Options{})
	require.NoError(t, err)

	md := Markdown(s)
	assert.Contains(t, md, "| Model | Feature Selection | n | Precision |\n|---|---|---:|---:|\n")
	assert.Contains(t, md, "| B | X | 1 | **0.9000** |\n")
	assert.Contains(t, md, "| A | Y | 1 | 0.6000 |\n")
	assert.Contains(t, md, "- **Precision**: B / X, 0.9000 (Good (70-90%))")

	var buf bytes.Buffer
	require.NoError(t, WriteHTML(&buf, s))
	html := buf.String()
	assert.Contains(t, html, "<table>")
	assert.Contains(t, html, "<th>Model</th>")
	assert.Contains(t, html, "Precision</th>")
	assert.Contains(t, html, "<strong>0.9000</strong>")
}

func TestWriteJSON(t *testing.T) {
	tbl := newTable(t, [3]string{"A", "X", "NaN"}, [3]string{"B", "X", "0.4"})
	s, err := BuildSummary("r.csv", tbl, []string{metrics.Precision}, Options{})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, s))

	var got struct {
		TotalRuns int `json:"total_runs"`
		Rows      []struct {
			Label  string              `json:"label"`
			Means  map[string]*float64 `json:"means"`
			Counts map[string]int      `json:"counts"`
		} `json:"rows"`
		Highlights map[string]struct {
			Label string  `json:"label"`
			Mean  float64 `json:"mean"`
		} `json:"highlights"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))

	assert.Equal(t, 2, got.TotalRuns)
	require.Len(t, got.Rows, 2)
	assert.Nil(t, got.Rows[0].Means[metrics.Precision])
	assert.Equal(t, 0, got.Rows[0].Counts[metrics.Precision])
	require.NotNil(t, got.Rows[1].Means[metrics.Precision])
	assert.InDelta(t, 0.4, *got.Rows[1].Means[metrics.Precision], 1e-9)
	assert.Equal(t, "B / X", got.Highlights[metrics.Precision].Label)
	assert.NotContains(t, buf.String(), `"ci"`)
}

func TestWriteXLSX(t *testing.T) {
	s, err := BuildSummary("results.csv", fourPairs(t), []string{metrics.Precision, metrics.Recall}, Options{CI: true, ConfidenceLevel: 0.95})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "summary.xlsx")
	require.NoError(t, WriteXLSX(path, s))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{MeansSheet, BestSheet}, f.GetSheetList())

	rows, err := f.GetRows(MeansSheet)
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, []string{"Model", "Feature Selection", "n",
		"Precision", "Precision CI low", "Precision CI high",
		"Recall", "Recall CI low", "Recall CI high"}, rows[0])
	assert.Equal(t, []string{"B", "X", "1", "0.9", "0.9", "0.9", "0.5", "0.5", "0.5"}, rows[3])

	best, err := f.GetRows(BestSheet)
	require.NoError(t, err)
	require.Len(t, best, 3)
	assert.Equal(t, []string{"Precision", "B / X", "0.9", "Good (70-90%)"}, best[1])
}
