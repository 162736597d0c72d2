package design

import (
	"math"

	"github.com/cwbudde/algo-meter/dsp/filter/biquad"
)

const defaultQ = 1 / math.Sqrt2

// FirstOrderHighpass designs a one-pole high-pass at freq (Hz) via the
// bilinear transform with frequency prewarping. The result occupies the
// first-order part of a biquad (B2 = A2 = 0).
func FirstOrderHighpass(freq, sampleRate float64) biquad.Coefficients {
	k, ok := bilinearK(freq, sampleRate)
	if !ok {
		return biquad.Coefficients{}
	}
	norm := 1 / (1 + k)
	return biquad.Coefficients{
		B0: norm,
		B1: -norm,
		A1: (k - 1) * norm,
	}
}

// HighShelf designs an RBJ high-shelf biquad with gain in dB and quality q.
func HighShelf(freq, gainDB, q, sampleRate float64) biquad.Coefficients {
	w0, ok := normalizedW0(freq, sampleRate)
	if !ok {
		return biquad.Coefficients{}
	}

	q = normalizedQ(q)
	cw := math.Cos(w0)
	sw := math.Sin(w0)
	alpha := sw / (2 * q)
	a := math.Pow(10, gainDB/40)
	beta := 2 * math.Sqrt(a) * alpha

	b0 := a * ((a + 1) + (a-1)*cw + beta)
	b1 := -2 * a * ((a - 1) + (a+1)*cw)
	b2 := a * ((a + 1) + (a-1)*cw - beta)
	a0 := (a + 1) - (a-1)*cw + beta
	a1 := 2 * ((a - 1) - (a+1)*cw)
	a2 := (a + 1) - (a-1)*cw - beta

	return normalizeBiquad(b0, b1, b2, a0, a1, a2)
}

// HighShelfSlope designs an RBJ high shelf parameterized by shelf slope S
// instead of Q. S = 1 is the steepest slope without overshoot.
func HighShelfSlope(freq, gainDB, slope, sampleRate float64) biquad.Coefficients {
	return HighShelf(freq, gainDB, ShelfSlopeToQ(gainDB, slope), sampleRate)
}

// ShelfSlopeToQ converts an RBJ shelf slope to the equivalent Q for the
// given gain: 1/Q = sqrt((A + 1/A)(1/S - 1) + 2). Slopes that make the
// radicand non-positive fall back to the Butterworth Q.
func ShelfSlopeToQ(gainDB, slope float64) float64 {
	if slope <= 0 || math.IsNaN(slope) || math.IsInf(slope, 0) {
		return defaultQ
	}
	a := math.Pow(10, gainDB/40)
	r := (a+1/a)*(1/slope-1) + 2
	if r <= 0 {
		return defaultQ
	}
	return 1 / math.Sqrt(r)
}

func bilinearK(freq, sampleRate float64) (float64, bool) {
	if sampleRate <= 0 || freq <= 0 || freq >= sampleRate/2 {
		return 0, false
	}
	return math.Tan(math.Pi * freq / sampleRate), true
}

func normalizedW0(freq, sampleRate float64) (float64, bool) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return 0, false
	}

	nyquist := sampleRate / 2
	if freq <= 0 || freq >= nyquist || math.IsNaN(freq) || math.IsInf(freq, 0) {
		return 0, false
	}

	return 2 * math.Pi * freq / sampleRate, true
}

func normalizedQ(q float64) float64 {
	if q <= 0 || math.IsNaN(q) || math.IsInf(q, 0) {
		return defaultQ
	}

	return q
}

func normalizeBiquad(b0, b1, b2, a0, a1, a2 float64) biquad.Coefficients {
	if a0 == 0 || math.IsNaN(a0) || math.IsInf(a0, 0) {
		return biquad.Coefficients{}
	}

	return biquad.Coefficients{
		B0: b0 / a0,
		B1: b1 / a0,
		B2: b2 / a0,
		A1: a1 / a0,
		A2: a2 / a0,
	}
}
