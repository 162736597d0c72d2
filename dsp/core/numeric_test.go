package core

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		min      float64
		max      float64
		expected float64
	}{
		{name: "inside", value: 0.5, min: 0, max: 1, expected: 0.5},
		{name: "below", value: -1, min: 0, max: 1, expected: 0},
		{name: "above", value: 2, min: 0, max: 1, expected: 1},
		{name: "swapped", value: 2, min: 1, max: 0, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clamp(tt.value, tt.min, tt.max)
			if got != tt.expected {
				t.Fatalf("Clamp() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestQuantizeByte(t *testing.T) {
	tests := []struct {
		in   float64
		want uint8
	}{
		{-5, 0},
		{0, 0},
		{0.49, 0},
		{0.5, 1},
		{127.5, 128},
		{254.6, 255},
		{1e9, 255},
		{math.NaN(), 0},
	}
	for _, tt := range tests {
		if got := QuantizeByte(tt.in); got != tt.want {
			t.Errorf("QuantizeByte(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestFlooredDB(t *testing.T) {
	if got := AmplitudeToDB(0, PeakFloor); math.Abs(got+180) > 1e-9 {
		t.Fatalf("AmplitudeToDB(0) = %v, want -180", got)
	}
	if got := PowerToDB(0, EnergyFloor); math.Abs(got+120) > 1e-9 {
		t.Fatalf("PowerToDB(0) = %v, want -120", got)
	}
	if got := AmplitudeToDB(0.5, PeakFloor); math.Abs(got+6.020599913279624) > 1e-10 {
		t.Fatalf("AmplitudeToDB(0.5) = %v, want -6.02", got)
	}
	if got := PowerToDB(2, EnergyFloor); math.Abs(got-3.010299956639812) > 1e-10 {
		t.Fatalf("PowerToDB(2) = %v, want 3.01", got)
	}
}
