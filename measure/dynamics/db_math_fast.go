//go:build fastmath

package dynamics

import (
	"math"

	"github.com/meko-christian/algo-approx"
)

// dbPerNeper converts a natural log to 20·log10.
const dbPerNeper = 20 / math.Ln10

func mathSqrt(x float64) float64 {
	return approx.FastSqrt(x)
}

// amplitudeDB returns 20·log10(x) for x > 0.
func amplitudeDB(x float64) float64 {
	return approx.FastLog(x) * dbPerNeper
}
