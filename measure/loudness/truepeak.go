package loudness

import (
	"math"

	"github.com/cwbudde/algo-meter/dsp/core"
)

// peakDetector estimates the per-block peak, optionally searching between
// samples by linear interpolation at oversample-1 extra points. The last
// sample of each channel is carried so the segment spanning two blocks is
// searched too.
type peakDetector struct {
	oversample int
	prev       [core.MaxChannels]float64
	primed     bool
}

func (d *peakDetector) reset() {
	d.prev = [core.MaxChannels]float64{}
	d.primed = false
}

// block returns the linear peak of an interleaved block of frames frames.
func (d *peakDetector) block(block []float64, frames, channels int) float64 {
	peak := 0.0
	for ch := 0; ch < channels; ch++ {
		last := block[(frames-1)*channels+ch]
		peak = math.Max(peak, math.Abs(last))

		if d.oversample > 1 {
			a := d.prev[ch]
			start := 0
			if !d.primed {
				a = block[ch]
				start = 1
			}
			for i := start; i < frames; i++ {
				b := block[i*channels+ch]
				peak = math.Max(peak, d.segment(a, b))
				a = b
			}
		} else {
			for i := 0; i < frames; i++ {
				peak = math.Max(peak, math.Abs(block[i*channels+ch]))
			}
		}
		d.prev[ch] = last
	}
	d.primed = true
	return peak
}

// segment returns the largest |y| on a→b sampled at t = k/oversample, k < oversample.
func (d *peakDetector) segment(a, b float64) float64 {
	peak := 0.0
	step := 1 / float64(d.oversample)
	for k := 0; k < d.oversample; k++ {
		y := a + (b-a)*float64(k)*step
		peak = math.Max(peak, math.Abs(y))
	}
	return peak
}
