// Package statistics holds the small amount of score math the
// aggregation and ranking layers need: population dispersion, the
// consistency measure derived from it, and a bootstrap confidence
// interval for multi-repetition runs.
package statistics

import "math"

// Mean computes the arithmetic mean of a float64 slice.
// Returns 0 for empty input.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Variance computes the population variance of a float64 slice.
// Returns 0 for empty input.
func Variance(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := Mean(values)
	sumSq := 0.0
	for _, v := range values {
		d := v - m
		sumSq += d * d
	}
	return sumSq / float64(len(values))
}

// StdDev computes the population standard deviation.
func StdDev(values []float64) float64 {
	return math.Sqrt(Variance(values))
}

// Consistency maps score dispersion across repetitions to [0,1]:
// max(0, 1-stddev). The boolean is false when fewer than 2 values are
// available; callers must surface that as "insufficient data", not as
// a computed zero.
func Consistency(values []float64) (float64, bool) {
	if len(values) < 2 {
		return 0, false
	}
	c := 1.0 - StdDev(values)
	if c < 0 {
		c = 0
	}
	return c, true
}
