package dynamics

import (
	"math"

	"github.com/cwbudde/algo-meter/dsp/core"
)

// crestFloor is the RMS level below which the crest factor reads 0.
const crestFloor = 1e-12

// MinDB is the floor for RMSDB and PeakDB.
const MinDB = -240.0

type channelState struct {
	window rmsWindow
	rms    follower
	peak   follower
}

// Meter tracks smoothed RMS and peak envelopes for each channel of an
// interleaved stream.
type Meter struct {
	cfg MeterConfig
	ch  [core.MaxChannels]channelState
}

// NewMeter creates a dynamics meter with the given options.
func NewMeter(opts ...MeterOption) *Meter {
	m := &Meter{cfg: ApplyMeterOptions(opts...)}
	m.reconfigure()

	return m
}

func (m *Meter) reconfigure() {
	rate := m.cfg.SampleRate
	windowSamples := int(math.Round(m.cfg.RMSWindowMs * 0.001 * rate))

	for i := range m.ch {
		m.ch[i] = channelState{
			window: newRMSWindow(windowSamples),
			rms:    newFollower(m.cfg.AttackMs, m.cfg.ReleaseMs, rate),
			peak:   newFollower(m.cfg.AttackMs/2, m.cfg.ReleaseMs/2, rate),
		}
	}
}

// Config returns the meter configuration.
func (m *Meter) Config() MeterConfig { return m.cfg }

// SetTimes changes attack and release (ms) and re-derives the smoothing
// coefficients. Envelopes keep their current values.
func (m *Meter) SetTimes(attackMs, releaseMs float64) {
	m.cfg.AttackMs = attackMs
	m.cfg.ReleaseMs = releaseMs
	rate := m.cfg.SampleRate

	for i := range m.ch {
		rms := newFollower(attackMs, releaseMs, rate)
		rms.env = m.ch[i].rms.env
		peak := newFollower(attackMs/2, releaseMs/2, rate)
		peak.env = m.ch[i].peak.env
		m.ch[i].rms, m.ch[i].peak = rms, peak
	}
}

// ProcessBlock consumes an interleaved block with the configured channel
// count. Empty or malformed blocks are ignored.
func (m *Meter) ProcessBlock(block []float64) {
	channels := m.cfg.Channels
	frames := core.Frames(block, channels)
	if frames == 0 {
		return
	}

	for c := 0; c < channels; c++ {
		st := &m.ch[c]
		for i := 0; i < frames; i++ {
			x := block[i*channels+c]
			a := math.Abs(x)

			level := a
			if m.cfg.Detector == DetectorRMS {
				level = st.window.process(x)
			}
			st.rms.process(level)
			st.peak.process(a)
		}
	}
}

// Reset zeroes envelopes and RMS windows. Coefficients are kept.
func (m *Meter) Reset() {
	for i := range m.ch {
		m.ch[i].window.reset()
		m.ch[i].rms.env = 0
		m.ch[i].peak.env = 0
	}
}

func (m *Meter) valid(ch int) bool {
	return ch >= 0 && ch < m.cfg.Channels
}

// RMS returns the smoothed level envelope of channel ch, or 0 for an
// invalid channel.
func (m *Meter) RMS(ch int) float64 {
	if !m.valid(ch) {
		return 0
	}
	return m.ch[ch].rms.env
}

// Peak returns the smoothed peak envelope of channel ch, or 0 for an
// invalid channel.
func (m *Meter) Peak(ch int) float64 {
	if !m.valid(ch) {
		return 0
	}
	return m.ch[ch].peak.env
}

// Crest returns 20·log10(peak/rms) in dB, or 0 when the RMS envelope is
// below 1e-12 or ch is invalid.
func (m *Meter) Crest(ch int) float64 {
	rms := m.RMS(ch)
	if rms < crestFloor {
		return 0
	}
	return amplitudeDB(math.Max(m.Peak(ch), crestFloor) / rms)
}

// RMSDB returns RMS(ch) in dBFS, floored at MinDB.
func (m *Meter) RMSDB(ch int) float64 { return levelDB(m.RMS(ch)) }

// PeakDB returns Peak(ch) in dBFS, floored at MinDB.
func (m *Meter) PeakDB(ch int) float64 { return levelDB(m.Peak(ch)) }

func levelDB(x float64) float64 {
	if !(x > crestFloor) {
		return MinDB
	}
	return amplitudeDB(x)
}
