package reporting

import (
	"encoding/json"
	"io"

	"github.com/isw2/evalplot/internal/statistics"
)

type jsonInterval struct {
	Lower *float64 `json:"lower"`
	Upper *float64 `json:"upper"`
}

type jsonRow struct {
	Label            string                   `json:"label"`
	Model            string                   `json:"model"`
	FeatureSelection string                   `json:"feature_selection"`
	Runs             int                      `json:"runs"`
	Means            map[string]*float64      `json:"means"`
	Counts           map[string]int           `json:"counts"`
	StdDev           map[string]*float64      `json:"std"`
	CI               map[string]*jsonInterval `json:"ci,omitempty"`
}

type jsonSummary struct {
	Source          string                  `json:"source"`
	TotalRuns       int                     `json:"total_runs"`
	Metrics         []string                `json:"metrics"`
	ConfidenceLevel float64                 `json:"confidence_level,omitempty"`
	Rows            []jsonRow               `json:"rows"`
	Highlights      statistics.HighlightMap `json:"highlights"`
}

// WriteJSON writes the summary as indented JSON. Absent means are null.
func WriteJSON(w io.Writer, s *Summary) error {
	out := jsonSummary{
		Source:     s.Source,
		TotalRuns:  s.TotalRuns,
		Metrics:    s.Metrics,
		Rows:       make([]jsonRow, 0, len(s.Rows)),
		Highlights: s.Highlights,
	}
	if s.WithCI {
		out.ConfidenceLevel = s.ConfidenceLevel
	}
	for _, r := range s.Rows {
		jr := jsonRow{
			Label:            r.Label,
			Model:            r.Model,
			FeatureSelection: r.FeatureSelection,
			Runs:             r.Runs,
			Means:            make(map[string]*float64, len(s.Metrics)),
			Counts:           make(map[string]int, len(s.Metrics)),
			StdDev:           make(map[string]*float64, len(s.Metrics)),
		}
		for j, m := range s.Metrics {
			c := r.Cells[j]
			jr.Means[m] = roundMean(c.Mean)
			jr.Counts[m] = c.N
			jr.StdDev[m] = roundMean(c.StdDev)
			if c.CI != nil {
				if jr.CI == nil {
					jr.CI = make(map[string]*jsonInterval, len(s.Metrics))
				}
				jr.CI[m] = &jsonInterval{Lower: roundMean(c.CI.Lower), Upper: roundMean(c.CI.Upper)}
			}
		}
		out.Rows = append(out.Rows, jr)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
