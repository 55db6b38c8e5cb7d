package statistics

import (
	"fmt"
	"math"
	"sort"

	"github.com/isw2/evalplot/internal/dataset"
	"github.com/isw2/evalplot/internal/metrics"
)

// HighlightTolerance is how close a mean must be to a metric's maximum for
// its bar to be highlighted.
const HighlightTolerance = 1e-6

// MeanRow holds the per-metric means of one Model / Feature Selection pair.
type MeanRow struct {
	Key   dataset.GroupKey `json:"-"`
	Label string           `json:"label"`
	// Means is aligned with MeanTable.Metrics; NaN when no value was present.
	Means []float64 `json:"-"`
	// Counts holds the number of present values behind each mean.
	Counts []int `json:"-"`
	// Runs is the number of rows that carry this pair.
	Runs int `json:"runs"`
}

// MeanTable is the aggregated view: one row per composite label, ordered by
// label.
type MeanTable struct {
	Metrics []string  `json:"metrics"`
	Rows    []MeanRow `json:"rows"`

	values map[string]map[string][]float64
}

// MeanLong is one (label, metric, mean) triple of the melted Mean Table.
type MeanLong struct {
	Label  string  `json:"label"`
	Metric string  `json:"metric"`
	Mean   float64 `json:"mean"`
}

// Highlight records the winning pair for one metric.
type Highlight struct {
	Label string  `json:"label"`
	Mean  float64 `json:"mean"`
	Row   int     `json:"-"`
}

// HighlightMap maps a metric name to its best composite label.
type HighlightMap map[string]Highlight

// ComputeMeans groups the table by composite label and averages each of
// metricNames, ignoring absent values.
func ComputeMeans(t *dataset.Table, metricNames []string) (*MeanTable, error) {
	cols := make([][]float64, len(metricNames))
	for j, m := range metricNames {
		col, err := t.Column(m)
		if err != nil {
			return nil, fmt.Errorf("mean of %s: %w", m, err)
		}
		cols[j] = col
	}

	models := t.Models()
	selections := t.FeatureSelections()

	index := make(map[string]int)
	var keys []dataset.GroupKey
	runs := make(map[string]int)
	for i := range models {
		k := dataset.GroupKey{Model: models[i], FeatureSelection: selections[i]}
		label := k.Label()
		if _, ok := index[label]; !ok {
			index[label] = len(keys)
			keys = append(keys, k)
		}
		runs[label]++
	}

	mt := &MeanTable{
		Metrics: append([]string(nil), metricNames...),
		values:  make(map[string]map[string][]float64, len(keys)),
	}
	for _, k := range keys {
		mt.values[k.Label()] = make(map[string][]float64, len(metricNames))
	}
	for i := range models {
		label := dataset.GroupKey{Model: models[i], FeatureSelection: selections[i]}.Label()
		for j, m := range metricNames {
			mt.values[label][m] = append(mt.values[label][m], cols[j][i])
		}
	}

	sort.SliceStable(keys, func(a, b int) bool { return keys[a].Label() < keys[b].Label() })

	for _, k := range keys {
		label := k.Label()
		row := MeanRow{
			Key:    k,
			Label:  label,
			Means:  make([]float64, len(metricNames)),
			Counts: make([]int, len(metricNames)),
			Runs:   runs[label],
		}
		for j, m := range metricNames {
			vs := mt.values[label][m]
			row.Means[j] = metrics.Mean(vs)
			row.Counts[j] = metrics.Count(vs)
		}
		mt.Rows = append(mt.Rows, row)
	}
	return mt, nil
}

// Labels returns the composite labels in table order.
func (mt *MeanTable) Labels() []string {
	out := make([]string, len(mt.Rows))
	for i, r := range mt.Rows {
		out[i] = r.Label
	}
	return out
}

// Mean returns the mean of metric for label.
func (mt *MeanTable) Mean(label, metric string) (float64, bool) {
	j := metrics.IndexOf(mt.Metrics, metric)
	if j < 0 {
		return math.NaN(), false
	}
	for _, r := range mt.Rows {
		if r.Label == label {
			return r.Means[j], true
		}
	}
	return math.NaN(), false
}

// Values returns the raw values (absent ones included) behind one cell.
func (mt *MeanTable) Values(label, metric string) []float64 {
	return append([]float64(nil), mt.values[label][metric]...)
}

// Melt flattens the table to one entry per (label, metric), metric-major.
func (mt *MeanTable) Melt() []MeanLong {
	out := make([]MeanLong, 0, len(mt.Rows)*len(mt.Metrics))
	for j, m := range mt.Metrics {
		for _, r := range mt.Rows {
			out = append(out, MeanLong{Label: r.Label, Metric: m, Mean: r.Means[j]})
		}
	}
	return out
}

// Highlights finds, for every metric, the row with the largest mean. The
// first row wins a tie. Absent means are skipped; a metric without any
// present mean gets no entry.
func (mt *MeanTable) Highlights() HighlightMap {
	return mt.pick(func(v, best float64) bool { return v > best })
}

// Lowest is Highlights with the smallest mean winning instead.
func (mt *MeanTable) Lowest() HighlightMap {
	return mt.pick(func(v, best float64) bool { return v < best })
}

func (mt *MeanTable) pick(better func(v, best float64) bool) HighlightMap {
	hm := make(HighlightMap, len(mt.Metrics))
	for j, m := range mt.Metrics {
		best := -1
		for i, r := range mt.Rows {
			v := r.Means[j]
			if math.IsNaN(v) {
				continue
			}
			if best < 0 || better(v, mt.Rows[best].Means[j]) {
				best = i
			}
		}
		if best >= 0 {
			hm[m] = Highlight{Label: mt.Rows[best].Label, Mean: mt.Rows[best].Means[j], Row: best}
		}
	}
	return hm
}

// IsHighlighted reports whether the (label, metric) bar with the given mean
// is the highlighted one: the label must be the metric's winner and the
// mean must equal the winning mean within HighlightTolerance.
func (hm HighlightMap) IsHighlighted(metric, label string, mean float64) bool {
	h, ok := hm[metric]
	if !ok || math.IsNaN(mean) {
		return false
	}
	return h.Label == label && metrics.ApproxEqual(mean, h.Mean, HighlightTolerance)
}
