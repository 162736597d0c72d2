package testutil

import (
	"math"
	"testing"
)

// RequireClose fails t when got and want differ in length or when any
// sample pair differs by more than eps.
func RequireClose(t testing.TB, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	if d, i := MaxAbsDiff(got, want); d > eps {
		t.Fatalf("sample %d: got %v, want %v (|diff| %g > %g)", i, got[i], want[i], d, eps)
	}
}

// MaxAbsDiff returns the largest |a[i]-b[i]| over the common prefix of a
// and b and the index where it occurs, or (0, -1) for an empty prefix.
// NaN differences count as infinite.
func MaxAbsDiff(a, b []float64) (float64, int) {
	worst, at := 0.0, -1
	for i := range min(len(a), len(b)) {
		d := math.Abs(a[i] - b[i])
		if math.IsNaN(d) {
			d = math.Inf(1)
		}
		if at < 0 || d > worst {
			worst, at = d, i
		}
	}
	return worst, at
}
