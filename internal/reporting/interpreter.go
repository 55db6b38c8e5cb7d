package reporting

import (
	"fmt"
	"math"
	"strings"

	"github.com/isw2/evalplot/internal/metrics"
)

// InterpretScore returns a plain-language label for a numeric score (0–1).
func InterpretScore(score float64) string {
	pct := score * 100
	switch {
	case pct > 90:
		return "Excellent (>90%)"
	case pct >= 70:
		return "Good (70-90%)"
	case pct >= 50:
		return "Needs Work (50-70%)"
	default:
		return "Poor (<50%)"
	}
}

// rating describes the best mean of metric. Error rates are not rated on
// the score bands.
func rating(metric string, mean float64) string {
	if metrics.LowerIsBetter(metric) {
		return "lower is better"
	}
	return InterpretScore(mean)
}

// InterpretSpread explains how wide a confidence interval is relative to
// the score scale.
func InterpretSpread(lower, upper float64) string {
	if math.IsNaN(lower) || math.IsNaN(upper) {
		return "no data"
	}
	width := (upper - lower) * 100
	switch {
	case width == 0:
		return "single run, no spread"
	case width <= 5:
		return fmt.Sprintf("stable (±%.1f pts)", width/2)
	case width <= 15:
		return fmt.Sprintf("moderate spread (±%.1f pts)", width/2)
	default:
		return fmt.Sprintf("wide spread (±%.1f pts), consider more runs", width/2)
	}
}

// FormatInterpretation produces the plain-language part of a summary: the
// winning Model / Feature Selection pair for every metric and how good its
// mean is.
func FormatInterpretation(s *Summary) string {
	var b strings.Builder

	b.WriteString("=== Best per metric ===\n\n")
	for _, m := range s.Metrics {
		h, ok := s.Highlights[m]
		if !ok {
			b.WriteString(fmt.Sprintf("  %s: no values\n", m))
			continue
		}
		b.WriteString(fmt.Sprintf("  %s: %s %s (%s)\n", m, h.Label, formatMean(h.Mean), rating(m, h.Mean)))
		if s.WithCI {
			ci := s.Rows[h.Row].Cells[indexOf(s.Metrics, m)].CI
			if ci != nil {
				b.WriteString(fmt.Sprintf("    %s\n", InterpretSpread(ci.Lower, ci.Upper)))
			}
		}
	}
	return b.String()
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}
