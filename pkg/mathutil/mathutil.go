package mathutil

import "math"

// ClampMin returns x floored at min. NaN is mapped to min so a bad
// intermediate never leaks into a displayed value.
func ClampMin(x, min float64) float64 {
	if x < min || math.IsNaN(x) {
		return min
	}
	return x
}

// SafeDiv divides n by d, returning 0 when d is (numerically) zero.
func SafeDiv(n, d float64) float64 {
	const eps = 1e-12
	if d > eps || d < -eps {
		return n / d
	}
	return 0
}

// Linspace returns n evenly spaced values from lo to hi inclusive.
// n <= 0 yields nil; n == 1 yields [lo]. lo > hi produces a descending grid.
func Linspace(lo, hi float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{lo}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + step*float64(i)
	}
	// avoid drift on the final point
	out[n-1] = hi
	return out
}
