package delay

import "fmt"

// Line is a fixed-length circular delay line holding the most recent Len()
// samples. It starts zero-filled, so reads that reach back past the first
// write return silence.
type Line struct {
	buffer   []float64
	writePos int
}

// New returns a delay line of fixed size.
func New(size int) (*Line, error) {
	if size <= 0 {
		return nil, fmt.Errorf("delay size must be > 0: %d", size)
	}
	return &Line{buffer: make([]float64, size)}, nil
}

// Len returns internal buffer size.
func (d *Line) Len() int {
	return len(d.buffer)
}

// Write writes one sample, overwriting the oldest.
func (d *Line) Write(sample float64) {
	d.buffer[d.writePos] = sample
	d.writePos++
	if d.writePos >= len(d.buffer) {
		d.writePos = 0
	}
}

// Read returns the sample written delay writes ago; Read(1) is the most
// recent sample and Read(Len()) the oldest. Delays outside [1, Len()] read 0.
func (d *Line) Read(delay int) float64 {
	size := len(d.buffer)
	if delay < 1 || delay > size {
		return 0
	}
	readPos := d.writePos - delay
	if readPos < 0 {
		readPos += size
	}
	return d.buffer[readPos]
}

// Reset clears line state.
func (d *Line) Reset() {
	for i := range d.buffer {
		d.buffer[i] = 0
	}
	d.writePos = 0
}
