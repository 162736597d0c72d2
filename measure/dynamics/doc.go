// Package dynamics provides a per-channel level meter that tracks smoothed
// RMS and peak envelopes and reports the crest factor between them.
//
// The level detector defaults to a windowed RMS (moving mean of squares)
// followed by attack/release smoothing. DetectorRectified instead smooths the
// rectified sample directly. The peak envelope always follows the rectified
// sample with half the configured time constants.
//
// Build with -tags fastmath to use algo-approx for the square roots and dB
// conversions in the hot path.
package dynamics
