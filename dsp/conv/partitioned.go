package conv

import (
	"fmt"

	"github.com/cwbudde/algo-meter/dsp/core"
	"github.com/cwbudde/algo-vecmath"
)

// Partitioned convolves an interleaved stream with a fixed impulse response.
//
// Input is processed in chunks of at most blockSize frames. Each chunk is
// convolved with the impulse response in full; the first chunk-length samples
// plus the tail retained from earlier chunks (added index by index) form the
// output, and the trailing len(ir)-1 samples become the new tail.
type Partitioned struct {
	ir        []float64
	blockSize int
	channels  int

	tails   [][]float64
	in      []float64
	acc     []float64
	scratch []float64

	closed bool
}

// NewPartitioned copies ir and prepares per-channel state. blockSize must be
// in [1, MaxBlockSize].
func NewPartitioned(ir []float64, blockSize, channels int) (*Partitioned, error) {
	if len(ir) == 0 {
		return nil, ErrEmptyKernel
	}
	if blockSize <= 0 || blockSize > MaxBlockSize {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBlockSize, blockSize)
	}
	if !core.ValidChannels(channels) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidChannels, channels)
	}

	l := len(ir)
	p := &Partitioned{
		ir:        append([]float64(nil), ir...),
		blockSize: blockSize,
		channels:  channels,
		tails:     make([][]float64, channels),
		in:        make([]float64, blockSize),
		acc:       make([]float64, blockSize+l-1),
		scratch:   make([]float64, l),
	}
	for ch := range p.tails {
		p.tails[ch] = make([]float64, l-1)
	}

	return p, nil
}

// BlockSize returns the maximum chunk length in frames.
func (p *Partitioned) BlockSize() int { return p.blockSize }

// Channels returns the interleaved channel count.
func (p *Partitioned) Channels() int { return p.channels }

// KernelLen returns the impulse response length.
func (p *Partitioned) KernelLen() int { return len(p.ir) }

// Process convolves input and returns a new output block of equal length.
func (p *Partitioned) Process(input []float64) ([]float64, error) {
	out := make([]float64, len(input))
	if err := p.ProcessTo(out, input); err != nil {
		return nil, err
	}
	return out, nil
}

// ProcessTo convolves input into dst, which must have the same length.
// input must hold whole frames. dst and input must not overlap.
func (p *Partitioned) ProcessTo(dst, input []float64) error {
	if p.closed {
		return ErrClosed
	}
	if len(dst) != len(input) {
		return fmt.Errorf("%w: dst %d, input %d", ErrLengthMismatch, len(dst), len(input))
	}
	if len(input)%p.channels != 0 {
		return fmt.Errorf("%w: %d samples for %d channels", ErrLengthMismatch, len(input), p.channels)
	}

	frames := len(input) / p.channels
	for start := 0; start < frames; start += p.blockSize {
		chunk := min(p.blockSize, frames-start)
		lo, hi := start*p.channels, (start+chunk)*p.channels
		for ch := 0; ch < p.channels; ch++ {
			p.processChunk(dst[lo:hi], input[lo:hi], ch, chunk)
		}
	}

	return nil
}

func (p *Partitioned) processChunk(dst, input []float64, ch, chunk int) {
	in := p.in[:chunk]
	core.Deinterleave(in, input, p.channels, ch)

	tail := p.tails[ch]
	acc := p.acc[:chunk+len(tail)]
	directInto(acc, in, p.ir, p.scratch)
	if len(tail) > 0 {
		vecmath.AddBlockInPlace(acc[:len(tail)], tail)
	}

	core.Interleave(dst, acc[:chunk], p.channels, ch)
	copy(tail, acc[chunk:])
}

// Reset clears the retained tails.
func (p *Partitioned) Reset() {
	for _, t := range p.tails {
		clear(t)
	}
}

// Close releases the buffers. Later processing calls return ErrClosed.
func (p *Partitioned) Close() {
	p.closed = true
	p.ir = nil
	p.tails = nil
	p.in = nil
	p.acc = nil
	p.scratch = nil
}
