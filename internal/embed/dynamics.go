package embed

import "github.com/cwbudde/algo-meter/measure/dynamics"

// Detector kinds accepted by DynamicsSetDetector.
const (
	DetectorRMS       int32 = 0
	DetectorRectified int32 = 1
)

type dynamicsEntry struct {
	attackMs, releaseMs, sampleRate float64
	detector                        dynamics.Detector
	meter                           *dynamics.Meter
	buf                             []float64
}

func (e *dynamicsEntry) build(channels int) {
	e.meter = dynamics.NewMeter(
		dynamics.WithAttack(e.attackMs),
		dynamics.WithRelease(e.releaseMs),
		dynamics.WithSampleRate(e.sampleRate),
		dynamics.WithChannels(channels),
		dynamics.WithDetector(e.detector),
	)
}

// DynamicsCreate returns a dynamics meter handle with the given envelope
// times in milliseconds. A non-positive sample rate selects 48 kHz.
func (r *Registry) DynamicsCreate(attackMs, releaseMs, sampleRate float32) int32 {
	e := &dynamicsEntry{
		attackMs:   float64(attackMs),
		releaseMs:  float64(releaseMs),
		sampleRate: float64(sampleRate),
	}
	e.build(2)
	return r.add(e)
}

// DynamicsSetTimes changes the envelope times without clearing state.
func (r *Registry) DynamicsSetTimes(h int32, attackMs, releaseMs float32) {
	e, ok := lookup[*dynamicsEntry](r, h)
	if !ok {
		return
	}
	e.attackMs, e.releaseMs = float64(attackMs), float64(releaseMs)
	e.meter.SetTimes(e.attackMs, e.releaseMs)
}

// DynamicsSetDetector selects the level detector, DetectorRMS (the default)
// or DetectorRectified. A change clears the envelopes; unknown kinds are
// ignored.
func (r *Registry) DynamicsSetDetector(h, kind int32) {
	e, ok := lookup[*dynamicsEntry](r, h)
	if !ok {
		return
	}
	var d dynamics.Detector
	switch kind {
	case DetectorRMS:
		d = dynamics.DetectorRMS
	case DetectorRectified:
		d = dynamics.DetectorRectified
	default:
		return
	}
	if d == e.detector {
		return
	}
	e.detector = d
	e.build(e.meter.Config().Channels)
}

// DynamicsProcess feeds frames of an interleaved mono or stereo block.
// Switching the channel count between calls clears the envelopes.
func (r *Registry) DynamicsProcess(h int32, block []float32, frames, channels int32) {
	e, ok := lookup[*dynamicsEntry](r, h)
	n := blockLen(block, frames, channels)
	if !ok || n == 0 {
		return
	}
	if e.meter.Config().Channels != int(channels) {
		e.build(int(channels))
	}
	e.buf = widen(e.buf, block[:n])
	e.meter.ProcessBlock(e.buf)
}

// DynamicsReset clears the envelopes.
func (r *Registry) DynamicsReset(h int32) {
	if e, ok := lookup[*dynamicsEntry](r, h); ok {
		e.meter.Reset()
	}
}

func (r *Registry) dynamicsValue(h, ch int32, get func(*dynamics.Meter, int) float64) float32 {
	e, ok := lookup[*dynamicsEntry](r, h)
	if !ok {
		return 0
	}
	return float32(get(e.meter, int(ch)))
}

// DynamicsRMS returns the RMS envelope of channel ch.
func (r *Registry) DynamicsRMS(h, ch int32) float32 {
	return r.dynamicsValue(h, ch, (*dynamics.Meter).RMS)
}

// DynamicsPeak returns the peak envelope of channel ch.
func (r *Registry) DynamicsPeak(h, ch int32) float32 {
	return r.dynamicsValue(h, ch, (*dynamics.Meter).Peak)
}

// DynamicsCrest returns the crest factor of channel ch in dB.
func (r *Registry) DynamicsCrest(h, ch int32) float32 {
	return r.dynamicsValue(h, ch, (*dynamics.Meter).Crest)
}

// Left and right shorthands for stereo meters.

func (r *Registry) DynamicsRMSLeft(h int32) float32    { return r.DynamicsRMS(h, 0) }
func (r *Registry) DynamicsRMSRight(h int32) float32   { return r.DynamicsRMS(h, 1) }
func (r *Registry) DynamicsCrestLeft(h int32) float32  { return r.DynamicsCrest(h, 0) }
func (r *Registry) DynamicsCrestRight(h int32) float32 { return r.DynamicsCrest(h, 1) }
