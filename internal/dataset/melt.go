package dataset

import "math"

// LabelSeparator joins a model and a feature-selection method into the
// composite label used by the aggregate views.
const LabelSeparator = " / "

// GroupKey identifies one (Model, Feature Selection) combination.
type GroupKey struct {
	Model            string
	FeatureSelection string
}

// Label returns the composite "Model / Feature Selection" label.
func (k GroupKey) Label() string {
	return k.Model + LabelSeparator + k.FeatureSelection
}

// LongRow is one row of the melted view: a single metric value of one run.
type LongRow struct {
	Model            string  `json:"model"`
	FeatureSelection string  `json:"feature_selection"`
	Metric           string  `json:"metric"`
	Value            float64 `json:"value"`
}

// Key returns the group the row belongs to.
func (r LongRow) Key() GroupKey {
	return GroupKey{Model: r.Model, FeatureSelection: r.FeatureSelection}
}

// Melt turns the wide table into one row per (run, metric) for the given
// metrics. Rows are metric-major: every run for the first metric, then every
// run for the second, and so on. Absent values are kept as NaN.
func (t *Table) Melt(metricNames []string) ([]LongRow, error) {
	out := make([]LongRow, 0, t.Len()*len(metricNames))
	for _, m := range metricNames {
		values, err := t.Column(m)
		if err != nil {
			return nil, err
		}
		for i, v := range values {
			out = append(out, LongRow{
				Model:            t.models[i],
				FeatureSelection: t.selections[i],
				Metric:           m,
				Value:            v,
			})
		}
	}
	return out, nil
}

// GroupValues collects the present values of metric for every
// (Model, Feature Selection) pair. Pairs with no present value are omitted.
func (t *Table) GroupValues(metric string) (map[GroupKey][]float64, error) {
	values, err := t.Column(metric)
	if err != nil {
		return nil, err
	}
	groups := make(map[GroupKey][]float64)
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		k := GroupKey{Model: t.models[i], FeatureSelection: t.selections[i]}
		groups[k] = append(groups[k], v)
	}
	return groups, nil
}
