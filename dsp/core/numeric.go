package core

import "math"

// Floors applied before taking logarithms.
const (
	EnergyFloor = 1e-12
	PeakFloor   = 1e-9
)

// Clamp limits value to the inclusive range [min, max].
func Clamp(value, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// FlushDenormals converts tiny denormal-like values to exact zero.
func FlushDenormals(x float64) float64 {
	const epsilon = 1e-30
	if x > -epsilon && x < epsilon {
		return 0
	}

	return x
}

// QuantizeByte maps v to a byte by clamping to [0, 255] and rounding half up.
func QuantizeByte(v float64) uint8 {
	if math.IsNaN(v) {
		return 0
	}
	return uint8(Clamp(v, 0, 255) + 0.5)
}

// AmplitudeToDB converts a linear amplitude to dB (20*log10), flooring the
// amplitude at floor first so the result is always finite.
func AmplitudeToDB(linear, floor float64) float64 {
	return 20 * math.Log10(math.Max(linear, floor))
}

// PowerToDB converts a linear power to dB (10*log10), flooring the power at
// floor first so the result is always finite.
func PowerToDB(power, floor float64) float64 {
	return 10 * math.Log10(math.Max(power, floor))
}
