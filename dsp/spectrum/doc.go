// Package spectrum implements the fixed-size spectral engine.
//
// [FFT2048] is an in-place radix-2 transform specialised to 2048 points.
// [Analyzer] windows a 2048-sample frame, transforms it, and quantizes the
// first 1024 magnitude bins and the raw waveform to bytes for display and
// feature extraction. Its streaming path mono-sums interleaved blocks into
// frames and hands them over through a single-slot mailbox.
package spectrum
