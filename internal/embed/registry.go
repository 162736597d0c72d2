package embed

import (
	"math"
	"sync"
)

// Registry maps int32 handles to engine instances.
type Registry struct {
	mu      sync.Mutex
	next    int32
	entries map[int32]any
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[int32]any)}
}

// Len returns the number of live handles.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Destroy releases the instance behind h and reports whether h was live.
func (r *Registry) Destroy(h int32) bool {
	r.mu.Lock()
	e, ok := r.entries[h]
	delete(r.entries, h)
	r.mu.Unlock()

	if c, isConv := e.(*convolverEntry); isConv {
		c.conv.Close()
	}
	return ok
}

func (r *Registry) add(e any) int32 {
	r.mu.Lock()
	defer r.mu.Unlock()

	for range len(r.entries) + 1 {
		if r.next == math.MaxInt32 {
			r.next = 0
		}
		r.next++
		if _, used := r.entries[r.next]; !used {
			r.entries[r.next] = e
			return r.next
		}
	}
	return 0
}

func lookup[T any](r *Registry, h int32) (T, bool) {
	r.mu.Lock()
	e, ok := r.entries[h]
	r.mu.Unlock()

	t, ok2 := e.(T)
	return t, ok && ok2
}

// blockLen returns frames·channels when block holds that many samples of a
// mono or stereo stream, and 0 otherwise.
func blockLen(block []float32, frames, channels int32) int {
	if frames <= 0 || channels < 1 || channels > 2 {
		return 0
	}
	n := int(frames) * int(channels)
	if len(block) < n {
		return 0
	}
	return n
}

// widen converts src into buf, growing buf as needed.
func widen(buf []float64, src []float32) []float64 {
	if cap(buf) < len(src) {
		buf = make([]float64, len(src))
	}
	buf = buf[:len(src)]
	for i, x := range src {
		buf[i] = float64(x)
	}
	return buf
}

func narrow(dst []float32, src []float64) {
	for i, x := range src {
		dst[i] = float32(x)
	}
}
