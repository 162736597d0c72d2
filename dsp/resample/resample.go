package resample

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-meter/dsp/core"
	"github.com/cwbudde/algo-meter/dsp/delay"
	"github.com/tphakala/simd/f64"
)

var (
	// ErrInvalidRate indicates an invalid input/output sample rate.
	ErrInvalidRate = errors.New("resample: invalid sample rate")
	// ErrInvalidChannels indicates an unsupported channel count.
	ErrInvalidChannels = errors.New("resample: invalid channel count")
)

// Resampler converts an interleaved stream from inRate to outRate.
type Resampler struct {
	inRate   int
	outRate  int
	channels int

	// Output position o·down/up, reduced: pos is the integer part and
	// phase/up the fraction.
	up    int
	down  int
	pos   int
	phase int

	// newest is the index of the most recently written input frame.
	newest int

	k     *kernel
	lines []*delay.Line
	hist  []float64
	coef  []float64
}

// New creates a resampler. quality is the kernel length in taps, clamped to
// [8, 128] and rounded down to even.
func New(inRate, outRate, channels, quality int) (*Resampler, error) {
	if inRate <= 0 || outRate <= 0 {
		return nil, fmt.Errorf("%w: %d -> %d", ErrInvalidRate, inRate, outRate)
	}
	if !core.ValidChannels(channels) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidChannels, channels)
	}

	g := gcd(inRate, outRate)
	taps := tapsForQuality(quality)

	r := &Resampler{
		inRate:   inRate,
		outRate:  outRate,
		channels: channels,
		up:       outRate / g,
		down:     inRate / g,
		k:        newKernel(taps, outRate/g),
		lines:    make([]*delay.Line, channels),
		hist:     make([]float64, taps),
		coef:     make([]float64, taps),
	}
	for ch := range r.lines {
		line, err := delay.New(taps)
		if err != nil {
			return nil, fmt.Errorf("resample: delay line: %w", err)
		}
		r.lines[ch] = line
	}
	r.Reset()

	return r, nil
}

// Ratio returns the reduced output/input factors.
func (r *Resampler) Ratio() (up, down int) { return r.up, r.down }

// Channels returns the interleaved channel count.
func (r *Resampler) Channels() int { return r.channels }

// Taps returns the kernel length.
func (r *Resampler) Taps() int { return r.k.taps }

// Latency returns the group delay in input samples.
func (r *Resampler) Latency() int { return r.k.taps / 2 }

// MaxOutputFrames returns floor(inFrames·outRate/inRate)+1, the most frames
// one Resample call with inFrames input frames can produce.
func (r *Resampler) MaxOutputFrames(inFrames int) int {
	if inFrames <= 0 {
		return 0
	}
	return inFrames*r.up/r.down + 1
}

// Reset clears the delay lines and restarts the output position.
func (r *Resampler) Reset() {
	for _, l := range r.lines {
		l.Reset()
	}
	r.pos = 0
	r.phase = 0
	r.newest = -1
}

// Resample consumes whole frames of input and writes up to len(out)/channels
// output frames, returning the number written. Frames produced beyond that
// capacity are dropped; the stream position still advances past them.
//
// One call with in input frames yields at most floor(in·outRate/inRate)+1
// frames (see MaxOutputFrames) and at least floor(in·outRate/inRate). The
// exact count follows the stream position: after N input frames in total,
// ceil(N·outRate/inRate) frames have been produced, so a unity ratio yields
// exactly in frames per call.
func (r *Resampler) Resample(input, out []float64) int {
	channels := r.channels
	frames := core.Frames(input, channels)
	if frames == 0 {
		return 0
	}

	capacity := len(out) / channels
	written := 0
	for i := 0; i < frames; i++ {
		for ch, l := range r.lines {
			l.Write(input[i*channels+ch])
		}
		r.newest++

		// Emit while the kernel support (up to pos-1) is available.
		for r.pos <= r.newest {
			if written < capacity {
				for ch := range r.lines {
					out[written*channels+ch] = r.interpolate(ch)
				}
				written++
			}
			r.advance()
		}
	}

	return written
}

func (r *Resampler) advance() {
	r.phase += r.down
	r.pos += r.phase / r.up
	r.phase %= r.up
}

// interpolate evaluates the kernel for channel ch at the current position.
func (r *Resampler) interpolate(ch int) float64 {
	line := r.lines[ch]
	h := r.k.taps / 2

	// Input index pos-h+k for k in [-h, h); age 0 is the newest sample.
	first := r.pos - 2*h
	if r.phase == 0 {
		return line.Read(r.newest - (first + h) + 1)
	}

	for j := range r.hist {
		r.hist[j] = line.Read(r.newest - (first + j) + 1)
	}

	return f64.DotProduct(r.hist, r.k.coefficients(r.phase, r.coef))
}
