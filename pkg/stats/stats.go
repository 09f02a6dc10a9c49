// Package stats provides statistical utility functions for analyzers.
package stats

import (
	"math"
	"sort"
)

// Gini computes the Gini coefficient of a contribution distribution.
// The result is in [0,1]: 0 is perfect equality, values approaching 1
// indicate concentration in few contributors. Fewer than two values or a
// zero total is defined as 0, not an error.
func Gini(values []float64) float64 {
	if len(values) <= 1 {
		return 0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	n := len(sorted)
	var total float64
	for _, v := range sorted {
		total += v
	}
	if total == 0 {
		return 0
	}

	// Standard rank formula over ascending values, 1-indexed.
	var numerator float64
	for i, v := range sorted {
		numerator += float64(2*(i+1)-n-1) * v
	}
	return numerator / (float64(n) * total)
}

// Mean returns the arithmetic mean, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// PopVariance returns the population variance (divide by n, not n-1).
// Daily-count consistency scoring depends on this normalization.
func PopVariance(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean := Mean(values)
	var sum float64
	for _, v := range values {
		diff := v - mean
		sum += diff * diff
	}
	return sum / float64(len(values))
}

// StdDev returns the population standard deviation.
func StdDev(values []float64) float64 {
	return math.Sqrt(PopVariance(values))
}

// Percentile calculates the p-th percentile of a sorted slice.
// The slice must already be sorted in ascending order.
// Returns 0 if the slice is empty.
func Percentile(sorted []float64, p int) float64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := (p * len(sorted)) / 100
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

// Clamp limits v to the inclusive range [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
