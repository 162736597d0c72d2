// Package resample provides streaming sample-rate conversion by windowed-sinc
// interpolation.
//
// Each channel keeps the most recent taps input samples in a delay line.
// Output frame o sits at input position o·inRate/outRate, tracked with
// integer arithmetic so long streams do not drift. Its value is the
// Hann-tapered sinc interpolation of the taps samples around that position,
// which delays the signal by taps/2 input samples.
//
//	r, err := resample.New(44100, 48000, 2, 32)
//	out := make([]float64, r.MaxOutputFrames(frames)*2)
//	n := r.Resample(block, out)
//
// quality selects the kernel length: values are clamped to [8, 128] and
// rounded down to an even count. No anti-aliasing cutoff scaling is applied
// when downsampling.
package resample
