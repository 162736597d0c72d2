//go:build !fastmath

package dynamics

import "math"

func mathSqrt(x float64) float64 {
	return math.Sqrt(x)
}

// amplitudeDB returns 20·log10(x) for x > 0.
func amplitudeDB(x float64) float64 {
	return 20 * math.Log10(x)
}
