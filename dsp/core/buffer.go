package core

// EnsureLen returns a slice with the requested length, reusing buf capacity if possible.
func EnsureLen(buf []float64, n int) []float64 {
	if n <= 0 {
		return buf[:0]
	}
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]float64, n)
}

// Zero sets all values in buf to 0.
func Zero(buf []float64) {
	for i := range buf {
		buf[i] = 0
	}
}

// Deinterleave copies channel ch of an interleaved block into dst and returns
// the number of frames written.
func Deinterleave(dst, block []float64, channels, ch int) int {
	if channels <= 0 || ch < 0 || ch >= channels {
		return 0
	}
	n := len(block) / channels
	if len(dst) < n {
		n = len(dst)
	}
	for i := 0; i < n; i++ {
		dst[i] = block[i*channels+ch]
	}
	return n
}

// Interleave writes src into channel ch of an interleaved block and returns
// the number of frames written.
func Interleave(block, src []float64, channels, ch int) int {
	if channels <= 0 || ch < 0 || ch >= channels {
		return 0
	}
	n := len(block) / channels
	if len(src) < n {
		n = len(src)
	}
	for i := 0; i < n; i++ {
		block[i*channels+ch] = src[i]
	}
	return n
}
