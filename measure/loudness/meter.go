package loudness

import (
	"math"

	"github.com/cwbudde/algo-meter/dsp/core"
	"github.com/cwbudde/algo-meter/dsp/filter/biquad"
	"github.com/cwbudde/algo-meter/dsp/filter/design"
)

const (
	// K-weighting approximation: one-pole high-pass followed by a high shelf.
	preFilterFreq  = 60.0
	shelfFreq      = 1500.0
	shelfGainDB    = 4.0
	shelfSlope     = 0.707
	momentaryWin   = 0.400
	shortTermWin   = 3.0
	blocksPerSec   = 10
	initialLUFS    = -70.0
	initialPeakDBF = -90.0
)

// Meter estimates momentary, short-term and integrated loudness, loudness
// range and true peak of a 1 or 2 channel stream.
//
// Per-frame energy is the mean of the squared K-weighted channels, so a
// dual-mono stereo signal reads the same as its mono source. Every 100 ms the
// momentary window's mean energy is appended to a bounded history from which
// integrated loudness (two-pass gated) and loudness range are derived.
type Meter struct {
	cfg MeterConfig

	kw [core.MaxChannels]*biquad.Chain

	momentary *EnergyRing
	shortTerm *EnergyRing
	history   *History

	blockTarget  int
	blockSamples int

	peaks peakDetector

	lufs    []float64
	scratch []float64

	momentaryLUFS  float64
	shortTermLUFS  float64
	integratedLUFS float64
	lra            float64
	truePeakDB     float64
	maxTruePeakDB  float64
}

// NewMeter creates a new loudness meter with the given options.
func NewMeter(opts ...MeterOption) *Meter {
	m := &Meter{cfg: ApplyMeterOptions(opts...)}
	m.reconfigure()

	return m
}

func (m *Meter) reconfigure() {
	rate := m.cfg.SampleRate
	pre := design.FirstOrderHighpass(preFilterFreq, rate)
	shelf := design.HighShelfSlope(shelfFreq, shelfGainDB, shelfSlope, rate)
	for ch := range m.kw {
		m.kw[ch] = biquad.NewChain(pre, shelf)
	}

	m.momentary = NewEnergyRing(int(math.Round(rate * momentaryWin)))
	m.shortTerm = NewEnergyRing(int(math.Round(rate * shortTermWin)))
	m.history = NewHistory(m.cfg.HistoryCapacity)
	m.blockTarget = max(1, int(rate)/blocksPerSec)
	m.peaks.oversample = m.cfg.TruePeakOversample

	m.Reset()
}

// Config returns the meter configuration.
func (m *Meter) Config() MeterConfig { return m.cfg }

// Reset clears filters, windows, history and readings. Configuration is kept.
func (m *Meter) Reset() {
	for _, c := range m.kw {
		c.Reset()
	}
	m.momentary.Reset()
	m.shortTerm.Reset()
	m.history.Reset()
	m.blockSamples = 0
	m.peaks.reset()

	m.momentaryLUFS = initialLUFS
	m.shortTermLUFS = initialLUFS
	m.integratedLUFS = initialLUFS
	m.lra = 0
	m.truePeakDB = initialPeakDBF
	m.maxTruePeakDB = initialPeakDBF
}

// ProcessBlock consumes an interleaved block with the configured channel
// count. Empty or malformed blocks are ignored.
func (m *Meter) ProcessBlock(block []float64) {
	channels := m.cfg.Channels
	frames := core.Frames(block, channels)
	if frames == 0 {
		return
	}

	tp := m.peaks.block(block, frames, channels)

	appended := false
	for i := 0; i < frames; i++ {
		e := m.frameEnergy(block[i*channels : (i+1)*channels])
		m.momentary.Push(e)
		m.shortTerm.Push(e)

		m.blockSamples++
		if m.blockSamples >= m.blockTarget {
			m.history.Append(m.momentary.Mean())
			m.blockSamples = 0
			appended = true
		}
	}

	m.momentaryLUFS = EnergyToLUFS(m.momentary.Mean())
	m.shortTermLUFS = EnergyToLUFS(m.shortTerm.Mean())
	if appended {
		m.updateIntegrated()
	}

	m.truePeakDB = core.AmplitudeToDB(tp, core.PeakFloor)
	m.maxTruePeakDB = math.Max(m.maxTruePeakDB, m.truePeakDB)
}

func (m *Meter) frameEnergy(frame []float64) float64 {
	sum := 0.0
	for ch, x := range frame {
		y := m.kw[ch].ProcessSample(x)
		sum += y * y
	}
	return sum / float64(len(frame))
}

func (m *Meter) updateIntegrated() {
	m.lufs = m.history.AppendLoudness(m.lufs[:0])
	m.scratch = core.EnsureLen(m.scratch, len(m.lufs))

	m.integratedLUFS = GatedLoudness(m.lufs, m.scratch)
	if lra, ok := LoudnessRange(m.lufs, m.scratch); ok {
		m.lra = lra
	}
}

// Momentary returns the 400 ms loudness in LUFS.
func (m *Meter) Momentary() float64 { return m.momentaryLUFS }

// ShortTerm returns the 3 s loudness in LUFS.
func (m *Meter) ShortTerm() float64 { return m.shortTermLUFS }

// Integrated returns the gated loudness over the retained history in LUFS.
func (m *Meter) Integrated() float64 { return m.integratedLUFS }

// LoudnessRange returns the loudness range in LU.
func (m *Meter) LoudnessRange() float64 { return m.lra }

// TruePeak returns the peak of the most recent block in dBFS.
func (m *Meter) TruePeak() float64 { return m.truePeakDB }

// MaxTruePeak returns the highest block peak since Reset in dBFS.
func (m *Meter) MaxTruePeak() float64 { return m.maxTruePeakDB }

// Blocks returns the number of 100 ms blocks in the history.
func (m *Meter) Blocks() int { return m.history.Len() }
