package embed

import "github.com/cwbudde/algo-meter/dsp/conv"

type convolverEntry struct {
	conv    *conv.Partitioned
	in, out []float64
}

// ConvolverCreate returns a convolver handle for the impulse response ir,
// or 0 when ir is empty, blockSize is outside [1, conv.MaxBlockSize] or
// channels is not 1 or 2.
func (r *Registry) ConvolverCreate(ir []float32, blockSize, channels int32) int32 {
	c, err := conv.NewPartitioned(widen(nil, ir), int(blockSize), int(channels))
	if err != nil {
		return 0
	}
	return r.add(&convolverEntry{conv: c})
}

// ConvolverProcess convolves frames of interleaved input into output and
// returns the number of frames written, or 0 when either buffer is short.
func (r *Registry) ConvolverProcess(h int32, input, output []float32, frames int32) int32 {
	e, ok := lookup[*convolverEntry](r, h)
	if !ok {
		return 0
	}
	n := blockLen(input, frames, int32(e.conv.Channels()))
	if n == 0 || len(output) < n {
		return 0
	}

	e.in = widen(e.in, input[:n])
	if cap(e.out) < n {
		e.out = make([]float64, n)
	}
	e.out = e.out[:n]
	if err := e.conv.ProcessTo(e.out, e.in); err != nil {
		return 0
	}
	narrow(output, e.out)
	return frames
}

// ConvolverReset clears the retained tails.
func (r *Registry) ConvolverReset(h int32) {
	if e, ok := lookup[*convolverEntry](r, h); ok {
		e.conv.Reset()
	}
}
