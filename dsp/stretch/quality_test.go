package stretch

import (
	"math"
	"testing"

	algofft "github.com/MeKo-Christian/algo-fft"
)

func TestStretcherSignalQuality(t *testing.T) {
	const (
		sampleRate = 48000.0
		n          = 32768
		fftLen     = 16384
	)

	cases := []struct {
		name  string
		tempo float64
	}{
		{name: "slower_3_4", tempo: 0.75},
		{name: "faster_5_4", tempo: 1.25},
		{name: "faster_3_2", tempo: 1.5},
	}

	// Input frequency on an exact FFT bin; time stretching must keep the
	// frequency, so the same bin is the target in the output spectrum.
	bin := 100
	freq := float64(bin) * sampleRate / float64(fftLen)
	input := make([]float64, n)
	for i := range input {
		input[i] = 0.8 * math.Sin(2*math.Pi*freq*float64(i)/sampleRate)
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := New(sampleRate, 1)
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}
			if err := s.SetTempo(tc.tempo); err != nil {
				t.Fatalf("SetTempo failed: %v", err)
			}

			out := s.Process(input)
			out = append(out, s.Flush()...)
			if len(out) < fftLen {
				t.Fatalf("output too short for measurement: %d", len(out))
			}

			snr := measureToneSNR(t, out, bin, fftLen)
			t.Logf("tempo=%.2f  freq=%.1f Hz  SNR=%.1f dB", tc.tempo, freq, snr)
			if snr < 40 {
				t.Errorf("signal quality too low: SNR = %.1f dB, want >= 40 dB", snr)
			}
		})
	}
}

// measureToneSNR takes the middle fftLen samples of out and compares the
// power near targetBin against the rest of the spectrum.
func measureToneSNR(t *testing.T, out []float64, targetBin, fftLen int) float64 {
	t.Helper()

	mid := max(len(out)/2-fftLen/2, 0)
	chunk := out[mid : mid+fftLen]

	plan, err := algofft.NewPlan64(fftLen)
	if err != nil {
		t.Fatalf("NewPlan64 error: %v", err)
	}

	fftIn := make([]complex128, fftLen)
	fftOut := make([]complex128, fftLen)
	for i, v := range chunk {
		fftIn[i] = complex(v, 0)
	}
	if err := plan.Forward(fftOut, fftIn); err != nil {
		t.Fatalf("Forward FFT error: %v", err)
	}

	const sigBW = 10

	sigPower := 0.0
	noisePower := 0.0
	for k := 1; k <= fftLen/2; k++ {
		mag2 := real(fftOut[k])*real(fftOut[k]) + imag(fftOut[k])*imag(fftOut[k])
		if k >= targetBin-sigBW && k <= targetBin+sigBW {
			sigPower += mag2
		} else {
			noisePower += mag2
		}
	}
	if noisePower <= 1e-30 {
		return 100.0
	}
	return 10 * math.Log10(sigPower/noisePower)
}
