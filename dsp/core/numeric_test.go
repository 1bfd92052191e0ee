package core

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		min, max float64
		want     float64
	}{
		{name: "inside", value: 0.5, min: 0, max: 1, want: 0.5},
		{name: "below", value: -2, min: 0, max: 1, want: 0},
		{name: "above", value: 3, min: 0, max: 1, want: 1},
		{name: "swapped bounds", value: 3, min: 1, max: 0, want: 1},
		{name: "at min", value: 0, min: 0, max: 1, want: 0},
		{name: "at max", value: 1, min: 0, max: 1, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clamp(tt.value, tt.min, tt.max); got != tt.want {
				t.Fatalf("Clamp(%v, %v, %v) = %v, want %v", tt.value, tt.min, tt.max, got, tt.want)
			}
		})
	}
}

func TestNearlyEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b float64
		eps  float64
		want bool
	}{
		{name: "identical", a: 1, b: 1, eps: 1e-9, want: true},
		{name: "within abs eps", a: 1, b: 1 + 1e-10, eps: 1e-9, want: true},
		{name: "outside eps", a: 1, b: 1.01, eps: 1e-9, want: false},
		{name: "both zero", a: 0, b: 0, eps: 1e-9, want: true},
		{name: "relative large values", a: 1e12, b: 1e12 * (1 + 1e-13), eps: 1e-9, want: true},
		{name: "default eps on zero arg", a: 1, b: 1, eps: 0, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NearlyEqual(tt.a, tt.b, tt.eps); got != tt.want {
				t.Fatalf("NearlyEqual(%v, %v, %v) = %v, want %v", tt.a, tt.b, tt.eps, got, tt.want)
			}
		})
	}
}

func TestIsFinitePositive(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  bool
	}{
		{name: "positive", value: 44100, want: true},
		{name: "tiny positive", value: 1e-300, want: true},
		{name: "zero", value: 0, want: false},
		{name: "negative", value: -1, want: false},
		{name: "NaN", value: math.NaN(), want: false},
		{name: "+Inf", value: math.Inf(1), want: false},
		{name: "-Inf", value: math.Inf(-1), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsFinitePositive(tt.value); got != tt.want {
				t.Fatalf("IsFinitePositive(%v) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}
