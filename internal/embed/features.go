package embed

import "github.com/cwbudde/algo-meter/stats/frequency"

// FeaturesCreate returns a feature extractor handle for spectra of
// fftSize/2 bins, or 0 when the size is out of range. Non-positive
// arguments select 2048 and 48 kHz.
func (r *Registry) FeaturesCreate(fftSize, sampleRate int32) int32 {
	e, err := frequency.NewExtractor(int(fftSize), float64(sampleRate))
	if err != nil {
		return 0
	}
	return r.add(e)
}

// FeaturesUpdate computes features from a quantized magnitude spectrum.
// Spectra shorter than the configured bin count are ignored.
func (r *Registry) FeaturesUpdate(h int32, mag []uint8) {
	if e, ok := lookup[*frequency.Extractor](r, h); ok {
		e.Update(mag)
	}
}

// FeaturesReset clears the cached spectrum.
func (r *Registry) FeaturesReset(h int32) {
	if e, ok := lookup[*frequency.Extractor](r, h); ok {
		e.Reset()
	}
}

func (r *Registry) featureValue(h int32, get func(*frequency.Extractor) float64) float32 {
	e, ok := lookup[*frequency.Extractor](r, h)
	if !ok {
		return 0
	}
	return float32(get(e))
}

// FeaturesCentroid returns the spectral centroid in Hz.
func (r *Registry) FeaturesCentroid(h int32) float32 {
	return r.featureValue(h, (*frequency.Extractor).Centroid)
}

// FeaturesFlux returns the positive spectral flux.
func (r *Registry) FeaturesFlux(h int32) float32 {
	return r.featureValue(h, (*frequency.Extractor).Flux)
}

// FeaturesFlatness returns the spectral flatness in [0,1].
func (r *Registry) FeaturesFlatness(h int32) float32 {
	return r.featureValue(h, (*frequency.Extractor).Flatness)
}

// FeaturesPeakHz returns the frequency of the strongest bin.
func (r *Registry) FeaturesPeakHz(h int32) float32 {
	return r.featureValue(h, (*frequency.Extractor).PeakHz)
}

// FeaturesPeakIndex returns the index of the strongest bin.
func (r *Registry) FeaturesPeakIndex(h int32) int32 {
	e, ok := lookup[*frequency.Extractor](r, h)
	if !ok {
		return 0
	}
	return int32(e.PeakIndex())
}

// FeaturesRolloff returns the frequency below which fraction p of the
// spectral sum lies.
func (r *Registry) FeaturesRolloff(h int32, p float32) float32 {
	e, ok := lookup[*frequency.Extractor](r, h)
	if !ok {
		return 0
	}
	return float32(e.Rolloff(float64(p)))
}

// FeaturesBandEnergies fills the first bands bytes of out with log-spaced
// band levels and returns the number written.
func (r *Registry) FeaturesBandEnergies(h int32, out []uint8, bands int32) int32 {
	e, ok := lookup[*frequency.Extractor](r, h)
	n := min(int(bands), len(out))
	if !ok || n <= 0 {
		return 0
	}
	e.BandEnergies(out[:n])
	return int32(n)
}
