package spectrum

import (
	"errors"

	"github.com/cwbudde/algo-meter/dsp/core"
	"github.com/cwbudde/algo-meter/dsp/window"
	"github.com/cwbudde/algo-vecmath"
)

// ErrFrameSize is returned when Transform buffers do not match the frame
// geometry.
var ErrFrameSize = errors.New("spectrum: frame must be 2048 samples with 1024 magnitude and 2048 waveform bytes")

// Frame is one quantized analysis result.
type Frame struct {
	Magnitude [Bins]uint8
	Waveform  [FrameSize]uint8
}

// Analyzer runs windowed 2048-point transforms, either on caller frames via
// Transform or on a stream of interleaved blocks via Push and Consume.
//
// The streaming side keeps a single completed frame. A frame that completes
// before the previous one was consumed replaces it and increments Dropped;
// the producer never blocks.
type Analyzer struct {
	fft    FFT2048
	kind   window.Type
	window [FrameSize]float64

	re, im [FrameSize]float64
	mag    [Bins]float64

	acc    [FrameSize]float64
	accIdx int

	last    Frame
	ready   bool
	dropped uint64
}

// NewAnalyzer returns an analyzer using the given symmetric window.
func NewAnalyzer(kind window.Type) *Analyzer {
	a := &Analyzer{}
	a.SetWindow(kind)
	return a
}

// SetWindow changes the analysis window and clears streaming state.
func (a *Analyzer) SetWindow(kind window.Type) {
	a.kind = kind
	copy(a.window[:], window.Generate(kind, FrameSize))
	a.Reset()
}

// Window returns the active window type.
func (a *Analyzer) Window() window.Type { return a.kind }

// Transform analyzes exactly FrameSize samples into mag (Bins bytes) and
// wave (FrameSize bytes).
func (a *Analyzer) Transform(frame []float64, mag, wave []uint8) error {
	if len(frame) != FrameSize || len(mag) != Bins || len(wave) != FrameSize {
		return ErrFrameSize
	}
	a.transform(frame, (*[Bins]uint8)(mag), (*[FrameSize]uint8)(wave))
	return nil
}

func (a *Analyzer) transform(frame []float64, mag *[Bins]uint8, wave *[FrameSize]uint8) {
	for i, x := range frame {
		wave[i] = core.QuantizeByte((x*0.5 + 0.5) * 255)
	}

	// Callers guarantee len(frame) == FrameSize.
	_ = window.ApplyCoefficients(a.re[:], frame, a.window[:])
	core.Zero(a.im[:])
	a.fft.Transform(&a.re, &a.im)

	vecmath.Magnitude(a.mag[:], a.re[:Bins], a.im[:Bins])
	const scale = 2.0 / FrameSize * 255
	for k, m := range a.mag {
		mag[k] = core.QuantizeByte(m * scale)
	}
}

// Push accumulates an interleaved block of 1 or 2 channels as a mono sum
// (left plus right for stereo). Every time FrameSize samples have been
// collected the frame is analyzed into the mailbox and accumulation
// continues with the rest of the block. Push reports whether at least one
// frame completed. Invalid blocks are ignored.
//
// Hosts that drop the tail of a block after a completed frame will see
// different frame boundaries than Push.
func (a *Analyzer) Push(block []float64, channels int) bool {
	frames := core.Frames(block, channels)
	completed := false

	for i := 0; i < frames; i++ {
		sum := block[i*channels]
		if channels == 2 {
			sum += block[i*channels+1]
		}
		a.acc[a.accIdx] = sum
		a.accIdx++

		if a.accIdx == FrameSize {
			if a.ready {
				a.dropped++
			}
			a.transform(a.acc[:], &a.last.Magnitude, &a.last.Waveform)
			a.accIdx = 0
			a.ready = true
			completed = true
		}
	}

	return completed
}

// Consume copies the pending frame into dst and marks it consumed. It
// returns false, leaving dst untouched, when no frame is pending.
func (a *Analyzer) Consume(dst *Frame) bool {
	if !a.ready || dst == nil {
		return false
	}
	*dst = a.last
	a.ready = false
	return true
}

// Dropped returns how many completed frames were overwritten unconsumed.
func (a *Analyzer) Dropped() uint64 { return a.dropped }

// Reset clears the accumulator, the mailbox and the drop counter. The
// window is kept.
func (a *Analyzer) Reset() {
	a.accIdx = 0
	a.ready = false
	a.dropped = 0
}
