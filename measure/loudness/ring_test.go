package loudness

import "testing"

func TestEnergyRing(t *testing.T) {
	r := NewEnergyRing(3)
	if r.Mean() != 0 {
		t.Fatalf("empty mean = %v", r.Mean())
	}
	r.Push(1)
	if r.Mean() != 1 || r.Sum() != 1 {
		t.Fatalf("partial mean = %v sum = %v", r.Mean(), r.Sum())
	}
	for _, e := range []float64{2, 3, 4} {
		r.Push(e)
	}
	if r.Sum() != 9 || r.Mean() != 3 {
		t.Fatalf("sum=%v mean=%v, want 9/3", r.Sum(), r.Mean())
	}
	r.Reset()
	if r.Sum() != 0 || r.Mean() != 0 {
		t.Fatal("reset should empty the ring")
	}
	r.Push(6)
	if r.Mean() != 6 {
		t.Fatalf("mean after reset = %v, want 6", r.Mean())
	}

	one := NewEnergyRing(0)
	one.Push(5)
	one.Push(7)
	if one.Sum() != 7 {
		t.Fatalf("sum = %v, want 7 from a single-slot ring", one.Sum())
	}
}

func TestHistoryFIFO(t *testing.T) {
	h := NewHistory(5)
	for i := 1; i <= 7; i++ {
		h.Append(float64(i))
	}
	if h.Len() != 5 {
		t.Fatalf("len=%d, want 5", h.Len())
	}
	for i := 0; i < 5; i++ {
		if h.At(i) != float64(i+3) {
			t.Fatalf("At(%d) = %v, want %d", i, h.At(i), i+3)
		}
	}
	l := h.AppendLoudness(nil)
	if len(l) != 5 || l[0] != EnergyToLUFS(3) {
		t.Fatalf("loudness = %v", l)
	}
	h.Reset()
	if h.Len() != 0 {
		t.Fatal("reset should empty the history")
	}
}
