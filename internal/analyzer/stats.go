package analyzer

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// popVariance computes the population variance (divisor N, not N-1), which
// is what the contrast metrics are defined over.
func popVariance(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	mean := stat.Mean(data, nil)
	var sum float64
	for _, v := range data {
		d := v - mean
		sum += d * d
	}
	return sum / float64(len(data))
}

// popStdDev is the population standard deviation of data.
func popStdDev(data []float64) float64 {
	return math.Sqrt(popVariance(data))
}
