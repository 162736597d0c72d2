package resample

import (
	"math"

	"github.com/cwbudde/algo-meter/dsp/window"
)

const (
	minTaps = 8
	maxTaps = 128

	// maxPhaseTables bounds the number of precomputed fractional phases.
	maxPhaseTables = 4096
)

// tapsForQuality clamps quality to [minTaps, maxTaps] and rounds down to even.
func tapsForQuality(quality int) int {
	n := max(minTaps, min(maxTaps, quality))
	return n &^ 1
}

// kernel holds the periodic Hann taper and, for small phase counts, the
// tapered sinc coefficients of every fractional phase p/up.
type kernel struct {
	taps   int
	up     int
	taper  []float64
	phases [][]float64
}

func newKernel(taps, up int) *kernel {
	k := &kernel{
		taps:  taps,
		up:    up,
		taper: window.Generate(window.TypeHann, taps, window.WithPeriodic()),
	}
	if up <= maxPhaseTables {
		k.phases = make([][]float64, up)
		for p := range k.phases {
			k.phases[p] = make([]float64, taps)
			k.fill(k.phases[p], p)
		}
	}
	return k
}

// coefficients returns the coefficients for fractional phase p/up, using
// scratch when no table exists.
func (k *kernel) coefficients(p int, scratch []float64) []float64 {
	if k.phases != nil {
		return k.phases[p]
	}
	k.fill(scratch, p)
	return scratch
}

// fill writes sinc(j-h-frac)·w[j] for j in [0, taps).
func (k *kernel) fill(dst []float64, p int) {
	h := k.taps / 2
	frac := float64(p) / float64(k.up)
	for j := range dst[:k.taps] {
		dst[j] = sinc(float64(j-h)-frac) * k.taper[j]
	}
}

func sinc(x float64) float64 {
	if math.Abs(x) < 1e-12 {
		return 1
	}

	pix := math.Pi * x

	return math.Sin(pix) / pix
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}

	if a == 0 {
		return 1
	}

	return a
}
