package anim

import (
	"math"
	"testing"
)

const tolerance = 1e-9

func TestLerp(t *testing.T) {
	tests := []struct {
		a, b, t, want float64
	}{
		{0, 1, 0, 0},
		{0, 1, 1, 1},
		{0, 1, 0.5, 0.5},
		{-2, 2, 0.75, 1},
		{5, 5, 0.3, 5},
		{0, 10, 1.5, 15},
	}
	for _, tt := range tests {
		if got := Lerp(tt.a, tt.b, tt.t); math.Abs(got-tt.want) > tolerance {
			t.Errorf("Lerp(%v, %v, %v) = %v, want %v", tt.a, tt.b, tt.t, got, tt.want)
		}
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		n, lo, hi, want float64
	}{
		{0.5, 0, 1, 0.5},
		{-1, 0, 1, 0},
		{2, 0, 1, 1},
		{0, 0, 1, 0},
		{1, 0, 1, 1},
	}
	for _, tt := range tests {
		if got := Clamp(tt.n, tt.lo, tt.hi); got != tt.want {
			t.Errorf("Clamp(%v, %v, %v) = %v, want %v", tt.n, tt.lo, tt.hi, got, tt.want)
		}
	}
	if got := Clamp(7, 0, 5); got != 5 {
		t.Errorf("Clamp(7, 0, 5) = %v, want 5", got)
	}
}

func TestSmoothstep(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{1, 1},
		{0.5, 0.5},
		{0.25, 0.15625},
		{-3, 0},
		{4, 1},
	}
	for _, tt := range tests {
		if got := Smoothstep(tt.in); math.Abs(got-tt.want) > tolerance {
			t.Errorf("Smoothstep(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestEaseInOutCubic(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{1, 1},
		{0.5, 0.5},
		{0.25, 0.0625},
		{0.75, 0.9375},
		{-1, 0},
		{2, 1},
	}
	for _, tt := range tests {
		if got := EaseInOutCubic(tt.in); math.Abs(got-tt.want) > tolerance {
			t.Errorf("EaseInOutCubic(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestEaseInOutCubicMonotonic(t *testing.T) {
	prev := EaseInOutCubic(0)
	for i := 1; i <= 100; i++ {
		cur := EaseInOutCubic(float64(i) / 100)
		if cur < prev {
			t.Fatalf("EaseInOutCubic not monotonic at t=%v: %v < %v", float64(i)/100, cur, prev)
		}
		prev = cur
	}
}

func BenchmarkEaseInOutCubic(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = EaseInOutCubic(float64(i%1000) / 1000)
	}
}
