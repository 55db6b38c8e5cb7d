package metrics

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Present drops absent values (NaN) and infinities, keeping order.
func Present(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		out = append(out, v)
	}
	return out
}

// Mean computes the arithmetic mean of the present values.
// Returns NaN when no value is present, so callers can tell "no data"
// apart from a real zero.
func Mean(values []float64) float64 {
	vs := Present(values)
	if len(vs) == 0 {
		return math.NaN()
	}
	return stat.Mean(vs, nil)
}

// StdDev computes the sample standard deviation of the present values.
// Returns 0 when fewer than two values are present.
func StdDev(values []float64) float64 {
	vs := Present(values)
	if len(vs) < 2 {
		return 0
	}
	return stat.StdDev(vs, nil)
}

// Count returns how many values are present.
func Count(values []float64) int {
	n := 0
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			n++
		}
	}
	return n
}

// ApproxEqual reports whether a and b differ by at most tol.
func ApproxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}
