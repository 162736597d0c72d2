package testutil

import (
	"math"
	"math/rand/v2"
	"slices"
)

// Sine returns length samples of amplitude·sin(2π·freqHz·n/sampleRate).
func Sine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// BinSine returns a sine completing exactly bin cycles in size samples, so
// that a size-point transform puts all its energy into one bin.
func BinSine(bin, size int, amplitude float64) []float64 {
	return Sine(float64(bin), float64(size), amplitude, size)
}

// Noise returns uniform white noise in [-amplitude, amplitude). The same
// seed always yields the same samples.
func Noise(seed uint64, amplitude float64, length int) []float64 {
	rng := rand.New(rand.NewPCG(seed, 0x9e3779b97f4a7c15))
	out := make([]float64, length)
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Impulse returns length zeros with a single 1 at pos, if pos is in range.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// DC returns length copies of value.
func DC(value float64, length int) []float64 {
	if length <= 0 {
		return []float64{}
	}
	return slices.Repeat([]float64{value}, length)
}
