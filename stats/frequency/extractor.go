package frequency

import (
	"errors"
	"fmt"
)

// Extractor defaults.
const (
	DefaultFFTSize    = 2048
	DefaultSampleRate = 48000

	// MaxBins bounds the spectrum length an Extractor will allocate for.
	MaxBins = 1 << 20
)

var (
	// ErrInvalidSize is returned for FFT sizes that leave no bins.
	ErrInvalidSize = errors.New("frequency: fft size must be at least 2")
	// ErrTooManyBins is returned when fftSize/2 exceeds MaxBins.
	ErrTooManyBins = errors.New("frequency: bin count exceeds limit")
)

// Extractor caches the most recent normalized spectrum and derives spectral
// features from it. Centroid, flux, flatness and peak are computed on
// Update; rolloff and band energies are computed on demand.
type Extractor struct {
	fftSize    int
	bins       int
	sampleRate float64

	spectrum []float64
	scratch  []float64
	ranges   []BandRange
	primed   bool

	centroidHz float64
	flux       float64
	flatness   float64
	peak       int
}

// NewExtractor returns an extractor for spectra of fftSize/2 bins.
// Non-positive arguments select DefaultFFTSize and DefaultSampleRate.
func NewExtractor(fftSize int, sampleRate float64) (*Extractor, error) {
	if fftSize <= 0 {
		fftSize = DefaultFFTSize
	}
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	bins := fftSize / 2
	if bins < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, fftSize)
	}
	if bins > MaxBins {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyBins, bins, MaxBins)
	}

	return &Extractor{
		fftSize:    fftSize,
		bins:       bins,
		sampleRate: sampleRate,
		spectrum:   make([]float64, bins),
		scratch:    make([]float64, bins),
	}, nil
}

// Bins returns the expected magnitude length.
func (e *Extractor) Bins() int { return e.bins }

// SampleRate returns the configured sample rate.
func (e *Extractor) SampleRate() float64 { return e.sampleRate }

// Update caches mag (0..255 per bin) as the current spectrum. Only the
// first Bins() entries are read; shorter input is ignored.
func (e *Extractor) Update(mag []uint8) {
	if len(mag) < e.bins {
		return
	}

	cur := e.scratch
	for k := range cur {
		cur[k] = float64(mag[k]) / 255
	}

	if e.primed {
		e.flux = Flux(cur, e.spectrum)
	} else {
		e.flux = 0
	}
	e.centroidHz = Centroid(cur, e.sampleRate)
	e.flatness = Flatness(cur)
	e.peak = PeakIndex(cur)

	e.spectrum, e.scratch = cur, e.spectrum
	e.primed = true
}

// Centroid returns the spectral centroid in Hz of the last update.
func (e *Extractor) Centroid() float64 { return e.centroidHz }

// Flux returns the onset flux between the last two updates, 0 after the first.
func (e *Extractor) Flux() float64 { return e.flux }

// Flatness returns the spectral flatness of the last update.
func (e *Extractor) Flatness() float64 { return e.flatness }

// PeakIndex returns the dominant bin of the last update.
func (e *Extractor) PeakIndex() int { return e.peak }

// PeakHz returns the frequency of the dominant bin.
func (e *Extractor) PeakHz() float64 { return BinToHz(e.peak, e.bins, e.sampleRate) }

// Rolloff returns the rolloff frequency for fraction p of the cached spectrum.
func (e *Extractor) Rolloff(p float64) float64 {
	return rolloff(e.spectrum, e.scratch, e.sampleRate, p)
}

// BandRanges returns the bin ranges BandEnergies uses for count bands.
func (e *Extractor) BandRanges(count int) []BandRange {
	return BandRanges(count, e.bins, e.sampleRate)
}

// BandEnergies fills out with len(out) log-spaced band levels of the
// cached spectrum.
func (e *Extractor) BandEnergies(out []uint8) {
	if len(out) == 0 {
		return
	}
	if len(e.ranges) != len(out) {
		e.ranges = make([]BandRange, len(out))
		fillBandRanges(e.ranges, e.bins, e.sampleRate)
	}
	BandEnergies(out, e.spectrum, e.ranges)
}

// Reset clears the cached spectrum and features.
func (e *Extractor) Reset() {
	clear(e.spectrum)
	e.primed = false
	e.centroidHz, e.flux, e.flatness, e.peak = 0, 0, 0, 0
}
