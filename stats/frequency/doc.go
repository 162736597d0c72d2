// Package frequency extracts spectral shape features from quantized
// magnitude spectra.
//
// The free functions operate on a normalized one-sided spectrum v[k] in
// [0, 1], where bin k maps linearly onto [0, sampleRate/2] across the bins
// (bin 0 is DC, the last bin is Nyquist). [Extractor] wraps them for the
// streaming case: it caches the latest spectrum from byte magnitudes and
// keeps the previous one for flux.
package frequency
