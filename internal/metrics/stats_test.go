package metrics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

const epsilon = 1e-9

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestMean(t *testing.T) {
	nan := math.NaN()
	tests := []struct {
		name   string
		input  []float64
		expect float64
	}{
		{"single", []float64{5.0}, 5.0},
		{"multiple", []float64{1, 2, 3, 4, 5}, 3.0},
		{"all_same", []float64{7, 7, 7}, 7.0},
		{"negative", []float64{-2, 0, 2}, 0},
		{"absent_skipped", []float64{0.8, nan, 0.6}, 0.7},
		{"inf_skipped", []float64{math.Inf(1), 0.5}, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Mean(tt.input)
			if !approxEqual(got, tt.expect) {
				t.Errorf("Mean(%v) = %f, want %f", tt.input, got, tt.expect)
			}
		})
	}
}

func TestMean_NoValues(t *testing.T) {
	assert.True(t, math.IsNaN(Mean(nil)))
	assert.True(t, math.IsNaN(Mean([]float64{math.NaN(), math.NaN()})))
}

func TestStdDev(t *testing.T) {
	tests := []struct {
		name   string
		input  []float64
		expect float64
	}{
		{"empty", nil, 0},
		{"single", []float64{5.0}, 0},
		{"uniform", []float64{3, 3, 3}, 0},
		{"pair", []float64{1, 3}, math.Sqrt2},
		{"absent_skipped", []float64{1, math.NaN(), 3}, math.Sqrt2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StdDev(tt.input)
			if !approxEqual(got, tt.expect) {
				t.Errorf("StdDev(%v) = %f, want %f", tt.input, got, tt.expect)
			}
		})
	}
}

func TestCountAndPresent(t *testing.T) {
	in := []float64{0.1, math.NaN(), 0.3, math.Inf(-1)}
	assert.Equal(t, 2, Count(in))
	assert.Equal(t, []float64{0.1, 0.3}, Present(in))
	assert.Empty(t, Present(nil))
}

func TestApproxEqual(t *testing.T) {
	assert.True(t, ApproxEqual(0.9, 0.9+1e-7, 1e-6))
	assert.False(t, ApproxEqual(0.9, 0.9+1e-5, 1e-6))
}
