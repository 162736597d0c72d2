package spectrum

import (
	"math"
	"math/bits"
)

// Frame geometry of the spectral engine.
const (
	FrameSize = 2048
	Bins      = FrameSize / 2

	log2FrameSize = 11
)

// FFT2048 is an in-place iterative radix-2 decimation-in-time FFT of
// exactly FrameSize points. The zero value is ready to use.
type FFT2048 struct{}

// Transform replaces re/im with their forward DFT X[k] = Σ x[n]·e^{-2πikn/N}.
func (FFT2048) Transform(re, im *[FrameSize]float64) {
	for i := 0; i < FrameSize; i++ {
		j := bitReverse11(i)
		if j > i {
			re[i], re[j] = re[j], re[i]
			im[i], im[j] = im[j], im[i]
		}
	}

	for size := 2; size <= FrameSize; size <<= 1 {
		half := size >> 1
		ang := -2 * math.Pi / float64(size)
		stepCos, stepSin := math.Cos(ang), math.Sin(ang)

		for start := 0; start < FrameSize; start += size {
			wr, wi := 1.0, 0.0
			for j := 0; j < half; j++ {
				i0 := start + j
				i1 := i0 + half

				vr := re[i1]*wr - im[i1]*wi
				vi := re[i1]*wi + im[i1]*wr
				ur, ui := re[i0], im[i0]

				re[i0], im[i0] = ur+vr, ui+vi
				re[i1], im[i1] = ur-vr, ui-vi

				wr, wi = wr*stepCos-wi*stepSin, wr*stepSin+wi*stepCos
			}
		}
	}
}

func bitReverse11(x int) int {
	return int(bits.Reverse16(uint16(x)) >> (16 - log2FrameSize))
}
