package loudness

// History is a FIFO of block energies bounded by its capacity; appending to
// a full history evicts the oldest block.
type History struct {
	buf   []float64
	start int
	n     int
}

// NewHistory returns an empty history holding at most capacity blocks.
func NewHistory(capacity int) *History {
	return &History{buf: make([]float64, max(1, capacity))}
}

// Append adds a block energy.
func (h *History) Append(e float64) {
	if h.n < len(h.buf) {
		h.buf[(h.start+h.n)%len(h.buf)] = e
		h.n++
		return
	}
	h.buf[h.start] = e
	h.start = (h.start + 1) % len(h.buf)
}

// Len returns the number of stored blocks.
func (h *History) Len() int { return h.n }

// At returns the i-th oldest block energy.
func (h *History) At(i int) float64 {
	return h.buf[(h.start+i)%len(h.buf)]
}

// AppendLoudness appends the loudness of every block, oldest first, to dst.
func (h *History) AppendLoudness(dst []float64) []float64 {
	for i := 0; i < h.n; i++ {
		dst = append(dst, EnergyToLUFS(h.At(i)))
	}
	return dst
}

// Reset empties the history.
func (h *History) Reset() {
	h.start = 0
	h.n = 0
}
