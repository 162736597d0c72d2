package conv

import (
	"errors"

	"github.com/cwbudde/algo-vecmath"
)

// Errors returned by convolution functions.
var (
	ErrEmptyInput       = errors.New("conv: empty input")
	ErrEmptyKernel      = errors.New("conv: empty kernel")
	ErrLengthMismatch   = errors.New("conv: buffer length mismatch")
	ErrInvalidBlockSize = errors.New("conv: invalid block size")
	ErrInvalidChannels  = errors.New("conv: invalid channel count")
	ErrClosed           = errors.New("conv: convolver closed")
)

// MaxBlockSize bounds the chunk length a Partitioned convolver allocates for.
const MaxBlockSize = 1 << 16

// simdThreshold is the kernel length from which the vectorized path is used.
const simdThreshold = 4

// Direct performs direct time-domain linear convolution of a and b.
// Returns a new slice of length len(a) + len(b) - 1.
func Direct(a, b []float64) ([]float64, error) {
	if len(a) == 0 {
		return nil, ErrEmptyInput
	}
	if len(b) == 0 {
		return nil, ErrEmptyKernel
	}

	result := make([]float64, len(a)+len(b)-1)
	DirectTo(result, a, b)

	return result, nil
}

// DirectTo performs direct convolution, writing to a pre-allocated destination.
// dst must have length len(a) + len(b) - 1.
func DirectTo(dst, a, b []float64) {
	var scratch []float64
	if len(b) >= simdThreshold {
		scratch = make([]float64, len(b))
	}
	directInto(dst, a, b, scratch)
}

// directInto clears dst and accumulates a*b into it. scratch must hold
// len(b) values when len(b) >= simdThreshold.
func directInto(dst, a, b, scratch []float64) {
	clear(dst)

	m := len(b)
	if m < simdThreshold {
		for i, x := range a {
			for j, h := range b {
				dst[i+j] += x * h
			}
		}
		return
	}

	temp := scratch[:m]
	for i, x := range a {
		vecmath.ScaleBlock(temp, b, x)
		vecmath.AddBlockInPlace(dst[i:i+m], temp)
	}
}
