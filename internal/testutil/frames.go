package testutil

import "math"

// Interleave merges equally long channel signals into one interleaved block.
// Channels shorter than the first are padded with zeros.
func Interleave(channels ...[]float64) []float64 {
	if len(channels) == 0 {
		return nil
	}
	frames := len(channels[0])
	out := make([]float64, frames*len(channels))
	for ch, sig := range channels {
		for i := 0; i < frames && i < len(sig); i++ {
			out[i*len(channels)+ch] = sig[i]
		}
	}
	return out
}

// DualMono duplicates a mono signal into an interleaved stereo block.
func DualMono(mono []float64) []float64 {
	return Interleave(mono, mono)
}

// Concat joins signals end to end.
func Concat(parts ...[]float64) []float64 {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	out := make([]float64, 0, n)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// Float32 converts a signal to float32.
func Float32(in []float64) []float32 {
	out := make([]float32, len(in))
	for i, v := range in {
		out[i] = float32(v)
	}
	return out
}

// RMS returns the root mean square of a signal, or 0 when it is empty.
func RMS(in []float64) float64 {
	if len(in) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range in {
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(in)))
}
