package window

import (
	"math"
	"testing"
)

func TestGenerateShapes(t *testing.T) {
	for _, typ := range []Type{TypeRectangular, TypeHann, TypeHamming, TypeBlackman} {
		t.Run(typ.String(), func(t *testing.T) {
			w := Generate(typ, 65)
			if len(w) != 65 {
				t.Fatalf("len=%d, want 65", len(w))
			}
			for i, v := range w {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					t.Fatalf("coefficient[%d] invalid: %v", i, v)
				}
				if math.Abs(v-w[len(w)-1-i]) > 1e-12 {
					t.Fatalf("symmetric window not symmetric at %d", i)
				}
			}
			if math.Abs(w[32]-1) > 1e-12 {
				t.Fatalf("centre = %v, want 1", w[32])
			}
		})
	}
}

func TestHannEndpoints(t *testing.T) {
	w := Generate(TypeHann, 2048)
	if math.Abs(w[0]) > 1e-15 || math.Abs(w[2047]) > 1e-15 {
		t.Fatalf("symmetric Hann endpoints = %v, %v, want 0", w[0], w[2047])
	}

	p := Generate(TypeHann, 16, WithPeriodic())
	if math.Abs(p[0]) > 1e-15 {
		t.Fatalf("periodic Hann w[0] = %v", p[0])
	}
	if math.Abs(p[8]-1) > 1e-12 {
		t.Fatalf("periodic Hann w[N/2] = %v, want 1", p[8])
	}
	if p[15] == 0 {
		t.Fatal("periodic Hann should not end at zero")
	}
}

func TestGenerateInvalidLength(t *testing.T) {
	if w := Generate(TypeHann, 0); w != nil {
		t.Fatalf("expected nil, got %v", w)
	}
	if w := Generate(TypeHann, -1); w != nil {
		t.Fatalf("expected nil for negative size, got %v", w)
	}
	if w := Generate(TypeHann, 1); len(w) != 1 || w[0] != 0 {
		t.Fatalf("single-point Hann = %v", w)
	}
}

func TestParseType(t *testing.T) {
	tests := map[string]Type{
		"hann":        TypeHann,
		" Blackman ":  TypeBlackman,
		"none":        TypeRectangular,
		"rectangular": TypeRectangular,
		"HAMMING":     TypeHamming,
	}
	for in, want := range tests {
		got, err := ParseType(in)
		if err != nil || got != want {
			t.Errorf("ParseType(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseType("kaiser"); err == nil {
		t.Fatal("expected error for unknown window")
	}
}

func TestApplyCoefficients(t *testing.T) {
	samples := []float64{1, 2, 3, 4}
	coeffs := []float64{0.5, 0.5, 2, 0}
	dst := make([]float64, 4)
	if err := ApplyCoefficients(dst, samples, coeffs); err != nil {
		t.Fatal(err)
	}
	want := []float64{0.5, 1, 6, 0}
	for i := range want {
		if dst[i] != want[i] {
			t.Fatalf("dst[%d] = %v, want %v", i, dst[i], want[i])
		}
	}
	if err := ApplyCoefficients(dst, samples, coeffs[:3]); err == nil {
		t.Fatal("expected length mismatch error")
	}
	if err := ApplyCoefficients(dst[:2], samples, coeffs); err == nil {
		t.Fatal("expected short destination error")
	}
}
