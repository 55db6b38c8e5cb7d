package reporting

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isw2/evalplot/internal/metrics"
)

func TestInterpretScore(t *testing.T) {
	tests := []struct {
		name  string
		score float64
		want  string
	}{
		{"excellent high", 0.95, "Excellent (>90%)"},
		{"excellent boundary", 0.91, "Excellent (>90%)"},
		{"good high", 0.90, "Good (70-90%)"},
		{"good mid", 0.80, "Good (70-90%)"},
		{"good low", 0.70, "Good (70-90%)"},
		{"needs work high", 0.69, "Needs Work (50-70%)"},
		{"needs work mid", 0.60, "Needs Work (50-70%)"},
		{"needs work low", 0.50, "Needs Work (50-70%)"},
		{"poor high", 0.49, "Poor (<50%)"},
		{"poor zero", 0.0, "Poor (<50%)"},
		{"poor negative kappa", -0.2, "Poor (<50%)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := InterpretScore(tt.score)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInterpretSpread(t *testing.T) {
	tests := []struct {
		name         string
		lower, upper float64
		want         string
	}{
		{"no data", math.NaN(), math.NaN(), "no data"},
		{"single run", 0.8, 0.8, "single run, no spread"},
		{"stable", 0.80, 0.84, "stable (±2.0 pts)"},
		{"moderate", 0.70, 0.80, "moderate spread (±5.0 pts)"},
		{"wide", 0.40, 0.80, "wide spread (±20.0 pts), consider more runs"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InterpretSpread(tt.lower, tt.upper))
		})
	}
}

func TestFormatInterpretation(t *testing.T) {
	s, err := BuildSummary("results.csv", fourPairs(t), []string{metrics.Precision, metrics.Recall}, Options{})
	require.NoError(t, err)

	out := FormatInterpretation(s)
	assert.Contains(t, out, "=== Best per metric ===")
	assert.Contains(t, out, "  Precision: B / X 0.9000 (Good (70-90%))\n")
	assert.Contains(t, out, "  Recall: A / X 0.5000 (Needs Work (50-70%))\n")
	assert.NotContains(t, out, "spread")
}

func TestFormatInterpretation_WithCI(t *testing.T) {
	s, err := BuildSummary("results.csv", fourPairs(t), []string{metrics.Precision}, Options{CI: true, ConfidenceLevel: 0.95})
	require.NoError(t, err)

	out := FormatInterpretation(s)
	assert.Contains(t, out, "single run, no spread")
}
