package core

import "testing"

func TestEnsureLenReusesCapacity(t *testing.T) {
	buf := make([]float64, 2, 8)
	out := EnsureLen(buf, 6)
	if len(out) != 6 || &out[0] != &buf[0] {
		t.Fatal("expected capacity reuse")
	}
	if got := EnsureLen(buf, 0); len(got) != 0 {
		t.Fatalf("len = %d, want 0", len(got))
	}
}

func TestDeinterleaveInterleave(t *testing.T) {
	block := []float64{1, -1, 2, -2, 3, -3}
	left := make([]float64, 3)
	right := make([]float64, 3)
	if n := Deinterleave(left, block, 2, 0); n != 3 {
		t.Fatalf("frames = %d, want 3", n)
	}
	Deinterleave(right, block, 2, 1)
	if left[2] != 3 || right[2] != -3 {
		t.Fatalf("left=%v right=%v", left, right)
	}

	out := make([]float64, 6)
	Interleave(out, left, 2, 0)
	Interleave(out, right, 2, 1)
	for i := range block {
		if out[i] != block[i] {
			t.Fatalf("out[%d] = %v, want %v", i, out[i], block[i])
		}
	}
	if n := Deinterleave(left, block, 2, 2); n != 0 {
		t.Fatalf("invalid channel wrote %d frames", n)
	}
}
