package embed

import "github.com/cwbudde/algo-meter/measure/loudness"

type loudnessEntry struct {
	sampleRate float64
	oversample int
	meter      *loudness.Meter
	buf        []float64
}

// meterFor returns the meter for a channel count, rebuilding it with
// cleared state when the count changes.
func (e *loudnessEntry) meterFor(channels int) *loudness.Meter {
	if e.meter.Config().Channels != channels {
		e.meter = loudness.NewMeter(
			loudness.WithSampleRate(e.sampleRate),
			loudness.WithChannels(channels),
			loudness.WithTruePeakOversample(e.oversample),
		)
	}
	return e.meter
}

// LoudnessCreate returns a loudness meter handle. A non-positive sample
// rate selects 48 kHz; oversample is 1, 2 or 4.
func (r *Registry) LoudnessCreate(sampleRate, oversample int32) int32 {
	e := &loudnessEntry{sampleRate: float64(sampleRate), oversample: int(oversample)}
	e.meter = loudness.NewMeter(
		loudness.WithSampleRate(e.sampleRate),
		loudness.WithTruePeakOversample(e.oversample),
	)
	return r.add(e)
}

// LoudnessProcess feeds frames of an interleaved mono or stereo block.
// Switching the channel count between calls restarts the measurement.
func (r *Registry) LoudnessProcess(h int32, block []float32, frames, channels int32) {
	e, ok := lookup[*loudnessEntry](r, h)
	n := blockLen(block, frames, channels)
	if !ok || n == 0 {
		return
	}
	e.buf = widen(e.buf, block[:n])
	e.meterFor(int(channels)).ProcessBlock(e.buf)
}

// LoudnessReset clears the meter state.
func (r *Registry) LoudnessReset(h int32) {
	if e, ok := lookup[*loudnessEntry](r, h); ok {
		e.meter.Reset()
	}
}

func (r *Registry) loudnessValue(h int32, get func(*loudness.Meter) float64) float32 {
	e, ok := lookup[*loudnessEntry](r, h)
	if !ok {
		return 0
	}
	return float32(get(e.meter))
}

// LoudnessMomentary returns the 400 ms loudness in LUFS.
func (r *Registry) LoudnessMomentary(h int32) float32 {
	return r.loudnessValue(h, (*loudness.Meter).Momentary)
}

// LoudnessShortTerm returns the 3 s loudness in LUFS.
func (r *Registry) LoudnessShortTerm(h int32) float32 {
	return r.loudnessValue(h, (*loudness.Meter).ShortTerm)
}

// LoudnessIntegrated returns the gated integrated loudness in LUFS.
func (r *Registry) LoudnessIntegrated(h int32) float32 {
	return r.loudnessValue(h, (*loudness.Meter).Integrated)
}

// LoudnessRange returns the loudness range in LU.
func (r *Registry) LoudnessRange(h int32) float32 {
	return r.loudnessValue(h, (*loudness.Meter).LoudnessRange)
}

// LoudnessTruePeak returns the peak of the last block in dBFS.
func (r *Registry) LoudnessTruePeak(h int32) float32 {
	return r.loudnessValue(h, (*loudness.Meter).TruePeak)
}

// LoudnessMaxTruePeak returns the highest block peak since reset in dBFS.
func (r *Registry) LoudnessMaxTruePeak(h int32) float32 {
	return r.loudnessValue(h, (*loudness.Meter).MaxTruePeak)
}
