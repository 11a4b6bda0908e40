// Package stats holds the small numeric helpers shared by the feature builders.
// Every helper maps an undefined result (empty input, zero denominator, NaN) to 0
package stats

import (
	"math"
	"sort"
)

// Ratio returns num/den, or 0 when den is 0
func Ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return Finite(num / den)
}

// Ratioi is Ratio over ints
func Ratioi(num, den int) float64 { return Ratio(float64(num), float64(den)) }

// Median returns the median of xs (mean of the two middle values for even lengths), 0 for empty input.
// xs is not modified
func Median(xs []float64) float64 {
	n := len(xs)
	if n == 0 {
		return 0
	}
	s := append([]float64(nil), xs...)
	sort.Float64s(s)
	if n%2 == 1 {
		return Finite(s[n/2])
	}
	return Finite((s[n/2-1] + s[n/2]) / 2)
}

// Mediani is Median over ints
func Mediani(xs []int) float64 {
	f := make([]float64, len(xs))
	for i, x := range xs {
		f[i] = float64(x)
	}
	return Median(f)
}

// Finite maps NaN and ±Inf to 0
func Finite(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	return x
}
