package stretch

import (
	"testing"

	"github.com/cwbudde/algo-timepitch/internal/testutil"
)

func TestBestOffsetFindsPlantedContinuation(t *testing.T) {
	tests := []struct {
		name       string
		seekLen    int
		overlapLen int
		channels   int
		offset     int
	}{
		{name: "mono start", seekLen: 100, overlapLen: 50, channels: 1, offset: 0},
		{name: "mono middle", seekLen: 100, overlapLen: 50, channels: 1, offset: 37},
		{name: "mono end", seekLen: 100, overlapLen: 50, channels: 1, offset: 100},
		{name: "stereo middle", seekLen: 80, overlapLen: 40, channels: 2, offset: 53},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sk, err := newSeeker(tt.seekLen, tt.overlapLen, tt.channels)
			if err != nil {
				t.Fatalf("newSeeker failed: %v", err)
			}

			ref := testutil.DeterministicNoise(21, 0.9, tt.overlapLen*tt.channels)
			win := testutil.DeterministicNoise(22, 0.1, (tt.seekLen+tt.overlapLen)*tt.channels)
			copy(win[tt.offset*tt.channels:], ref)

			if got := sk.bestOffset(ref, win); got != tt.offset {
				t.Fatalf("bestOffset = %d, want %d", got, tt.offset)
			}
		})
	}
}

func TestBestOffsetFFTMatchesDirect(t *testing.T) {
	// Large enough to put newSeeker on the FFT path.
	const (
		seekLen    = 1235
		overlapLen = 441
	)
	sk, err := newSeeker(seekLen, overlapLen, 1)
	if err != nil {
		t.Fatalf("newSeeker failed: %v", err)
	}
	if !sk.useFFT {
		t.Fatal("expected FFT path for this geometry")
	}

	for seed := int64(0); seed < 8; seed++ {
		ref := testutil.DeterministicNoise(seed, 0.7, overlapLen)
		win := testutil.DeterministicNoise(seed+100, 0.7, seekLen+overlapLen)

		viaFFT, err := sk.bestOffsetFFT(ref, win)
		if err != nil {
			t.Fatalf("seed %d: bestOffsetFFT failed: %v", seed, err)
		}
		direct := sk.bestOffsetDirect(ref, win)
		if viaFFT != direct {
			t.Fatalf("seed %d: FFT offset %d, direct offset %d", seed, viaFFT, direct)
		}
	}
}

func TestNextPowerOf2(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{in: 1, want: 1},
		{in: 2, want: 2},
		{in: 3, want: 4},
		{in: 1000, want: 1024},
		{in: 1024, want: 1024},
		{in: 1025, want: 2048},
	}
	for _, tt := range tests {
		if got := nextPowerOf2(tt.in); got != tt.want {
			t.Errorf("nextPowerOf2(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
