package interp

import (
	"math"
	"testing"
)

func TestLinearEndpoints(t *testing.T) {
	if got := Linear(0, 2, 4); got != 2 {
		t.Fatalf("Linear(0) = %v, want 2", got)
	}
	if got := Linear(1, 2, 4); got != 4 {
		t.Fatalf("Linear(1) = %v, want 4", got)
	}
	if got := Linear(0.5, 2, 4); got != 3 {
		t.Fatalf("Linear(0.5) = %v, want 3", got)
	}
}

func TestHermite4Endpoints(t *testing.T) {
	xm1, x0, x1, x2 := 0.3, -0.7, 0.9, 0.1
	if got := Hermite4(0, xm1, x0, x1, x2); got != x0 {
		t.Fatalf("Hermite4(0) = %v, want %v", got, x0)
	}
	if got := Hermite4(1, xm1, x0, x1, x2); math.Abs(got-x1) > 1e-15 {
		t.Fatalf("Hermite4(1) = %v, want %v", got, x1)
	}
}

func TestHermite4ReproducesLine(t *testing.T) {
	// On collinear points the cubic collapses to the straight line.
	for _, tt := range []float64{0, 0.25, 0.5, 0.75, 1} {
		got := Hermite4(tt, 1, 2, 3, 4)
		want := 2 + tt
		if math.Abs(got-want) > 1e-12 {
			t.Fatalf("Hermite4(%v) = %v, want %v", tt, got, want)
		}
	}
}

func TestHermite4SmoothOnSine(t *testing.T) {
	const n = 64
	x := make([]float64, n)
	for i := range x {
		x[i] = math.Sin(2 * math.Pi * float64(i) / 16)
	}

	// Interpolated midpoints should stay close to the true waveform.
	for i := 1; i < n-2; i++ {
		got := Hermite4(0.5, x[i-1], x[i], x[i+1], x[i+2])
		want := math.Sin(2 * math.Pi * (float64(i) + 0.5) / 16)
		if math.Abs(got-want) > 5e-3 {
			t.Fatalf("midpoint %d: got %v, want %v", i, got, want)
		}
	}
}
