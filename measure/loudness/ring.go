package loudness

import "github.com/tphakala/simd/f64"

// EnergyRing is a fixed-capacity circular buffer of per-sample energies.
// Push is O(1); Sum re-adds the filled part on every call.
type EnergyRing struct {
	buf    []float64
	idx    int
	filled int
}

// NewEnergyRing returns a ring holding up to size energies (at least one).
func NewEnergyRing(size int) *EnergyRing {
	return &EnergyRing{buf: make([]float64, max(1, size))}
}

// Push stores e, evicting the oldest value once the ring is full.
func (r *EnergyRing) Push(e float64) {
	r.buf[r.idx] = e
	r.idx++
	if r.idx == len(r.buf) {
		r.idx = 0
	}
	if r.filled < len(r.buf) {
		r.filled++
	}
}

// Sum returns the sum of the stored energies.
func (r *EnergyRing) Sum() float64 {
	return f64.Sum(r.buf[:r.filled])
}

// Mean returns Sum divided by the fill count (or 1 when empty).
func (r *EnergyRing) Mean() float64 {
	return r.Sum() / float64(max(1, r.filled))
}

// Reset empties the ring.
func (r *EnergyRing) Reset() {
	clear(r.buf)
	r.idx = 0
	r.filled = 0
}
