package embed

import (
	"github.com/cwbudde/algo-meter/dsp/spectrum"
	"github.com/cwbudde/algo-meter/dsp/window"
)

// Window selectors accepted by SpectrumCreate.
const (
	WindowNone int32 = 0
	WindowHann int32 = 1
)

type spectrumEntry struct {
	analyzer *spectrum.Analyzer
	frame    spectrum.Frame
	buf      []float64
}

func windowType(w int32) window.Type {
	if w == WindowHann {
		return window.TypeHann
	}
	return window.TypeRectangular
}

// SpectrumCreate returns a 2048-point spectral engine handle. Unknown
// window selectors fall back to WindowNone.
func (r *Registry) SpectrumCreate(windowKind int32) int32 {
	return r.add(&spectrumEntry{analyzer: spectrum.NewAnalyzer(windowType(windowKind))})
}

// SpectrumSetWindow changes the window and clears streaming state.
func (r *Registry) SpectrumSetWindow(h, windowKind int32) {
	if e, ok := lookup[*spectrumEntry](r, h); ok {
		e.analyzer.SetWindow(windowType(windowKind))
	}
}

// SpectrumTransform analyzes the first 2048 samples of input into mag
// (1024 bytes) and wave (2048 bytes). It returns 1 on success and 0 when
// any buffer is short.
func (r *Registry) SpectrumTransform(h int32, input []float32, mag, wave []uint8) int32 {
	e, ok := lookup[*spectrumEntry](r, h)
	if !ok || len(input) < spectrum.FrameSize || len(mag) < spectrum.Bins || len(wave) < spectrum.FrameSize {
		return 0
	}
	e.buf = widen(e.buf, input[:spectrum.FrameSize])
	if err := e.analyzer.Transform(e.buf, mag[:spectrum.Bins], wave[:spectrum.FrameSize]); err != nil {
		return 0
	}
	return 1
}

// SpectrumPush accumulates frames of an interleaved block and returns 1
// when at least one analysis frame completed.
func (r *Registry) SpectrumPush(h int32, block []float32, frames, channels int32) int32 {
	e, ok := lookup[*spectrumEntry](r, h)
	n := blockLen(block, frames, channels)
	if !ok || n == 0 {
		return 0
	}
	e.buf = widen(e.buf, block[:n])
	if e.analyzer.Push(e.buf, int(channels)) {
		return 1
	}
	return 0
}

// SpectrumConsume copies the pending frame into mag and wave and returns
// 1, or returns 0 when nothing is pending or a buffer is short. A short
// buffer leaves the frame pending.
func (r *Registry) SpectrumConsume(h int32, mag, wave []uint8) int32 {
	e, ok := lookup[*spectrumEntry](r, h)
	if !ok || len(mag) < spectrum.Bins || len(wave) < spectrum.FrameSize {
		return 0
	}
	if !e.analyzer.Consume(&e.frame) {
		return 0
	}
	copy(mag, e.frame.Magnitude[:])
	copy(wave, e.frame.Waveform[:])
	return 1
}

// SpectrumDropped returns how many completed frames were overwritten
// before being consumed, saturating at MaxInt32.
func (r *Registry) SpectrumDropped(h int32) int32 {
	e, ok := lookup[*spectrumEntry](r, h)
	if !ok {
		return 0
	}
	return int32(min(e.analyzer.Dropped(), 1<<31-1))
}

// SpectrumReset clears the accumulator and mailbox.
func (r *Registry) SpectrumReset(h int32) {
	if e, ok := lookup[*spectrumEntry](r, h); ok {
		e.analyzer.Reset()
	}
}

// DownsampleMagnitude writes every fourth of the 1024 magnitude bytes in
// src to dst and returns the count written, 256, or 0 when either buffer is
// short.
func DownsampleMagnitude(dst, src []uint8) int32 {
	if len(src) < spectrum.Bins || len(dst) < spectrum.DisplayBins {
		return 0
	}
	spectrum.DownsampleMagnitude((*[spectrum.DisplayBins]uint8)(dst), (*[spectrum.Bins]uint8)(src))
	return spectrum.DisplayBins
}

// DownsampleWaveform writes every fourth of the 2048 waveform bytes in src
// to dst and returns the count written, 512, or 0 when either buffer is
// short.
func DownsampleWaveform(dst, src []uint8) int32 {
	if len(src) < spectrum.FrameSize || len(dst) < spectrum.DisplayWaveform {
		return 0
	}
	spectrum.DownsampleWaveform((*[spectrum.DisplayWaveform]uint8)(dst), (*[spectrum.FrameSize]uint8)(src))
	return spectrum.DisplayWaveform
}
