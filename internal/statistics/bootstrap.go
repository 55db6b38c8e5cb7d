// Package statistics aggregates evaluation runs into the Mean Table and
// Highlight Map, plus bootstrap confidence intervals for the summary report.
package statistics

import (
	"math"
	"math/rand"
	"sort"

	"github.com/isw2/evalplot/internal/metrics"
)

// ConfidenceInterval holds the result of a bootstrap confidence interval computation.
type ConfidenceInterval struct {
	Lower           float64 `json:"lower"`
	Upper           float64 `json:"upper"`
	Mean            float64 `json:"mean"`
	ConfidenceLevel float64 `json:"confidence_level"`
	NumBootstraps   int     `json:"num_bootstraps"`
}

// DefaultBootstrapIterations is the number of bootstrap resamples.
const DefaultBootstrapIterations = 10000

// ReportSeed seeds the resampling behind summary reports so that two runs on
// the same file print the same intervals.
const ReportSeed = 20240601

// BootstrapCI computes a percentile bootstrap confidence interval of the mean
// of the present values. Absent values (NaN) are dropped first. With fewer
// than two present values the interval collapses onto the mean.
func BootstrapCI(values []float64, confidenceLevel float64) ConfidenceInterval {
	return BootstrapCIWithSeed(values, confidenceLevel, -1)
}

// BootstrapCIWithSeed is like BootstrapCI but accepts a seed for reproducibility.
// A negative seed uses a non-deterministic source.
func BootstrapCIWithSeed(values []float64, confidenceLevel float64, seed int64) ConfidenceInterval {
	scores := metrics.Present(values)
	n := len(scores)
	if n < 2 {
		m := math.NaN()
		if n == 1 {
			m = scores[0]
		}
		return ConfidenceInterval{
			Lower:           m,
			Upper:           m,
			Mean:            m,
			ConfidenceLevel: confidenceLevel,
		}
	}

	var rng *rand.Rand
	if seed >= 0 {
		rng = rand.New(rand.NewSource(seed))
	} else {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}

	m := metrics.Mean(scores)
	iters := DefaultBootstrapIterations

	bootMeans := make([]float64, iters)
	sample := make([]float64, n)
	for i := 0; i < iters; i++ {
		for j := 0; j < n; j++ {
			sample[j] = scores[rng.Intn(n)]
		}
		bootMeans[i] = metrics.Mean(sample)
	}

	sort.Float64s(bootMeans)

	alpha := 1.0 - confidenceLevel
	loIdx := int(math.Floor(alpha / 2.0 * float64(iters)))
	hiIdx := int(math.Floor((1.0 - alpha/2.0) * float64(iters)))
	if hiIdx >= iters {
		hiIdx = iters - 1
	}

	return ConfidenceInterval{
		Lower:           bootMeans[loIdx],
		Upper:           bootMeans[hiIdx],
		Mean:            m,
		ConfidenceLevel: confidenceLevel,
		NumBootstraps:   iters,
	}
}

// CellCI computes the interval for one (label, metric) cell of the Mean Table.
func (mt *MeanTable) CellCI(label, metric string, confidenceLevel float64) ConfidenceInterval {
	return BootstrapCIWithSeed(mt.Values(label, metric), confidenceLevel, ReportSeed)
}
