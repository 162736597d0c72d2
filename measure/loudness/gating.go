package loudness

import (
	"math"
	"slices"

	"github.com/cwbudde/algo-meter/dsp/core"
	"gonum.org/v1/gonum/stat"
)

const (
	// AbsoluteGate is the absolute gating threshold in LUFS.
	AbsoluteGate = -70.0
	// RelativeGate is the offset below the absolute-gated mean in LU.
	RelativeGate = -10.0

	// MinRangeBlocks is the number of blocks needed before a loudness
	// range is reported.
	MinRangeBlocks = 20

	loudnessOffset = -0.691
)

// EnergyToLUFS converts a mean K-weighted energy to LUFS, flooring the
// energy at 1e-12.
func EnergyToLUFS(e float64) float64 {
	return loudnessOffset + core.PowerToDB(e, core.EnergyFloor)
}

// GatedLoudness applies the two-pass gate to per-block loudness values.
// Blocks at or below AbsoluteGate are dropped first; of the rest, blocks at
// or below their mean plus RelativeGate are dropped. The result is the mean
// of what survives both passes, or AbsoluteGate when nothing passes the
// absolute gate. scratch is reused when non-nil.
func GatedLoudness(lufs, scratch []float64) float64 {
	gated := scratch[:0]
	for _, l := range lufs {
		if l > AbsoluteGate {
			gated = append(gated, l)
		}
	}
	if len(gated) == 0 {
		return AbsoluteGate
	}

	mean := stat.Mean(gated, nil)
	threshold := mean + RelativeGate

	n := 0
	for _, l := range gated {
		if l > threshold {
			gated[n] = l
			n++
		}
	}
	if n == 0 {
		return mean
	}
	return stat.Mean(gated[:n], nil)
}

// LoudnessRange returns the spread between the 95th and 10th percentiles of
// the ungated per-block loudness, floored at 0. ok is false when fewer than
// MinRangeBlocks values are given. scratch is reused when non-nil.
func LoudnessRange(lufs, scratch []float64) (lra float64, ok bool) {
	if len(lufs) < MinRangeBlocks {
		return 0, false
	}
	sorted := append(scratch[:0], lufs...)
	slices.Sort(sorted)
	return math.Max(0, Percentile(sorted, 0.95)-Percentile(sorted, 0.10)), true
}

// Percentile interpolates linearly between the order statistics of sorted
// at position p·(n-1).
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	x := p * float64(n-1)
	i0 := int(math.Floor(x))
	i0 = max(0, min(i0, n-1))
	i1 := min(n-1, i0+1)
	t := x - float64(i0)
	return sorted[i0]*(1-t) + sorted[i1]*t
}
