package testutil

import (
	"math"
	"testing"
)

func TestSine(t *testing.T) {
	s := Sine(1000, 48000, 0.5, 48)
	if len(s) != 48 {
		t.Fatalf("len = %d, want 48", len(s))
	}
	if s[0] != 0 {
		t.Fatalf("s[0] = %v, want 0", s[0])
	}
	if math.Abs(s[12]-0.5) > 1e-12 {
		t.Fatalf("quarter period = %v, want 0.5", s[12])
	}
	for i, v := range s {
		if math.Abs(v) > 0.5 {
			t.Fatalf("s[%d] = %v exceeds amplitude", i, v)
		}
	}
}

func TestBinSine(t *testing.T) {
	s := BinSine(4, 64, 1)
	if len(s) != 64 {
		t.Fatalf("len = %d, want 64", len(s))
	}
	// Four whole cycles: one cycle every 16 samples.
	for _, i := range []int{0, 16, 32, 48} {
		if math.Abs(s[i]) > 1e-12 {
			t.Fatalf("s[%d] = %v, want 0", i, s[i])
		}
	}
	if math.Abs(s[4]-1) > 1e-12 {
		t.Fatalf("s[4] = %v, want 1", s[4])
	}
}

func TestNoise(t *testing.T) {
	a := Noise(42, 0.3, 1000)
	b := Noise(42, 0.3, 1000)
	c := Noise(43, 0.3, 1000)

	differs := false
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed differs at %d", i)
		}
		if a[i] < -0.3 || a[i] >= 0.3 {
			t.Fatalf("a[%d] = %v out of range", i, a[i])
		}
		differs = differs || a[i] != c[i]
	}
	if !differs {
		t.Fatal("different seeds produced identical noise")
	}
}

func TestImpulse(t *testing.T) {
	tests := []struct {
		length, pos int
		wantSum     float64
	}{
		{8, 0, 1},
		{8, 7, 1},
		{8, 8, 0},
		{8, -1, 0},
		{0, 0, 0},
	}
	for _, tt := range tests {
		s := Impulse(tt.length, tt.pos)
		sum := 0.0
		for _, v := range s {
			sum += v
		}
		if len(s) != tt.length || sum != tt.wantSum {
			t.Errorf("Impulse(%d, %d): len %d sum %v", tt.length, tt.pos, len(s), sum)
		}
	}
}

func TestDC(t *testing.T) {
	s := DC(0.25, 5)
	if len(s) != 5 {
		t.Fatalf("len = %d, want 5", len(s))
	}
	for i, v := range s {
		if v != 0.25 {
			t.Fatalf("s[%d] = %v, want 0.25", i, v)
		}
	}
	if got := DC(1, 0); len(got) != 0 {
		t.Fatalf("DC(1, 0) has %d samples", len(got))
	}
}
