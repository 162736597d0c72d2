package frequency

import "math"

const (
	epsilon = 1e-12

	// Lower edge of the first log-spaced band.
	bandMinHz = 20.0
)

// BinToHz maps bin k of a bins-long one-sided spectrum onto [0, sampleRate/2].
func BinToHz(k, bins int, sampleRate float64) float64 {
	if bins <= 1 {
		return 0
	}
	return float64(k) / float64(bins-1) * sampleRate / 2
}

// CentroidBin returns Σk·v[k] / Σv[k], or false when the spectrum is
// (near) silent.
func CentroidBin(v []float64) (float64, bool) {
	sum, weighted := 0.0, 0.0
	for k, x := range v {
		sum += x
		weighted += float64(k) * x
	}
	if sum <= epsilon {
		return 0, false
	}
	return weighted / sum, true
}

// Centroid returns the spectral centroid in Hz, rounded to the nearest bin.
func Centroid(v []float64, sampleRate float64) float64 {
	c, ok := CentroidBin(v)
	if !ok {
		return 0
	}
	return BinToHz(int(c+0.5), len(v), sampleRate)
}

// Flux returns the half-wave rectified spectral difference Σ max(0, cur-prev).
// Bins beyond the shorter slice are ignored.
func Flux(cur, prev []float64) float64 {
	n := min(len(cur), len(prev))
	flux := 0.0
	for k := 0; k < n; k++ {
		if d := cur[k] - prev[k]; d > 0 {
			flux += d
		}
	}
	return flux
}

// Flatness returns the geometric over arithmetic mean of v, in [0, 1].
// Bins are floored at 1e-12 inside the logarithm; a negligible arithmetic
// mean yields 0.
func Flatness(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}
	sum, sumLog := 0.0, 0.0
	for _, x := range v {
		sum += x
		sumLog += math.Log(math.Max(x, epsilon))
	}
	n := float64(len(v))
	arith := sum / n
	if arith <= epsilon {
		return 0
	}
	return math.Exp(sumLog/n) / arith
}

// PeakIndex returns the first index holding the maximum of v.
func PeakIndex(v []float64) int {
	peak := 0
	for k, x := range v {
		if x > v[peak] {
			peak = k
		}
	}
	return peak
}

// Rolloff returns the frequency of the smallest bin at which the cumulative
// sum of v reaches p·total, with p clamped to [0, 1]. A silent spectrum
// yields 0; a target never reached yields sampleRate/2.
func Rolloff(v []float64, sampleRate, p float64) float64 {
	return rolloff(v, nil, sampleRate, p)
}

// rolloff uses csum as cumulative-sum scratch when it is long enough.
func rolloff(v, csum []float64, sampleRate, p float64) float64 {
	if math.IsNaN(p) {
		p = 0
	}
	p = math.Max(0, math.Min(1, p))

	if len(csum) < len(v) {
		csum = make([]float64, len(v))
	}
	total := 0.0
	for k, x := range v {
		total += x
		csum[k] = total
	}
	if total <= epsilon {
		return 0
	}

	target := total * p
	for k := range v {
		if csum[k] >= target {
			return BinToHz(k, len(v), sampleRate)
		}
	}
	return sampleRate / 2
}

// BandRange is a half-open bin range [Lo, Hi).
type BandRange struct {
	Lo, Hi int
}

// Empty reports whether the range covers no bins.
func (r BandRange) Empty() bool { return r.Hi <= r.Lo }

// BandRanges splits bins into count log-spaced ranges from 20 Hz up to
// sampleRate/2. Edge b sits at floor(f_b/(sampleRate/2)·(bins-1)) and the
// last range ends at bins, so ranges are non-decreasing, non-overlapping and
// contiguous. Narrow low bands may be empty.
func BandRanges(count, bins int, sampleRate float64) []BandRange {
	if count <= 0 {
		return nil
	}
	out := make([]BandRange, count)
	fillBandRanges(out, bins, sampleRate)
	return out
}

func fillBandRanges(out []BandRange, bins int, sampleRate float64) {
	count := len(out)
	nyquist := sampleRate / 2
	if bins <= 0 || !(nyquist > 0) {
		clear(out)
		return
	}
	logMin := math.Log(bandMinHz)
	step := (math.Log(nyquist) - logMin) / float64(count)

	prev := 0
	for b := range out {
		hz := math.Exp(logMin + step*float64(b))
		edge := int(math.Floor(hz / nyquist * float64(bins-1)))
		edge = max(prev, min(edge, bins))
		out[b].Lo = edge
		if b > 0 {
			out[b-1].Hi = edge
		}
		prev = edge
	}
	out[count-1].Hi = max(prev, bins)
}

// BandEnergies writes the mean of v over each range, scaled to 0..255 and
// rounded, into out. An empty range reads the bin at its lower edge.
func BandEnergies(out []uint8, v []float64, ranges []BandRange) {
	n := min(len(out), len(ranges))
	for b := 0; b < n; b++ {
		out[b] = bandByte(v, ranges[b])
	}
}

func bandByte(v []float64, r BandRange) uint8 {
	if len(v) == 0 {
		return 0
	}
	avg := 0.0
	if r.Empty() {
		avg = v[min(r.Lo, len(v)-1)]
	} else {
		sum := 0.0
		for k := r.Lo; k < r.Hi; k++ {
			sum += v[k]
		}
		avg = sum / float64(r.Hi-r.Lo)
	}
	return uint8(math.Round(math.Max(0, math.Min(255, avg*255))))
}
