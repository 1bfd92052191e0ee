package stretch

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
)

const (
	// seekFFTThreshold is the sliding-dot-product cost (in multiplies) above
	// which the FFT correlation path wins.
	seekFFTThreshold = 1 << 17

	tinyEnergy = 1e-12
)

// seeker locates the candidate offset whose overlap region correlates best
// with the previous window tail. Candidates range over [0, seekLen] frames.
//
// Two equivalent strategies are provided: a direct sliding dot product for
// small windows and an FFT cross-correlation with prefix-sum energies for
// large ones. Both maximize the same normalized score, so they agree up to
// floating-point rounding.
type seeker struct {
	seekLen    int
	overlapLen int
	channels   int

	useFFT  bool
	fftSize int
	plan    *algofft.Plan[complex128]

	refPad  []complex128
	regPad  []complex128
	refFreq []complex128
	regFreq []complex128
	corr    []complex128
	prefix  []float64 // running energy of the search region
}

func newSeeker(seekLen, overlapLen, channels int) (*seeker, error) {
	s := &seeker{
		seekLen:    seekLen,
		overlapLen: overlapLen,
		channels:   channels,
	}

	directCost := (seekLen + 1) * overlapLen * channels
	if directCost <= seekFFTThreshold {
		return s, nil
	}

	regionLen := (seekLen + overlapLen) * channels
	tailLen := overlapLen * channels
	s.fftSize = nextPowerOf2(regionLen + tailLen - 1)

	plan, err := algofft.NewPlan64(s.fftSize)
	if err != nil {
		return nil, fmt.Errorf("stretch: failed to create FFT plan: %w", err)
	}
	s.plan = plan
	s.useFFT = true
	s.refPad = make([]complex128, s.fftSize)
	s.regPad = make([]complex128, s.fftSize)
	s.refFreq = make([]complex128, s.fftSize)
	s.regFreq = make([]complex128, s.fftSize)
	s.corr = make([]complex128, s.fftSize)
	s.prefix = make([]float64, regionLen+1)
	return s, nil
}

// bestOffset returns the frame offset in [0, seekLen] whose overlap region
// best matches ref. win must hold at least (seekLen+overlapLen) frames.
func (s *seeker) bestOffset(ref, win []float64) int {
	if s.useFFT {
		if off, err := s.bestOffsetFFT(ref, win); err == nil {
			return off
		}
		// FFT failure is not fatal; fall through to the exact search.
	}
	return s.bestOffsetDirect(ref, win)
}

func (s *seeker) bestOffsetDirect(ref, win []float64) int {
	ch := s.channels
	n := s.overlapLen * ch

	refEnergy := tinyEnergy
	for _, v := range ref {
		refEnergy += v * v
	}

	best := 0
	bestScore := math.Inf(-1)
	for cand := 0; cand <= s.seekLen; cand++ {
		base := cand * ch
		dot := 0.0
		candEnergy := tinyEnergy
		for i := range n {
			cv := win[base+i]
			dot += ref[i] * cv
			candEnergy += cv * cv
		}
		score := dot / math.Sqrt(refEnergy*candEnergy)
		if score > bestScore {
			bestScore = score
			best = cand
		}
	}
	return best
}

// bestOffsetFFT computes all candidate dot products in one pass as
// corr = IFFT(FFT(region) * conj(FFT(ref))) and normalizes per candidate
// with prefix-sum energies.
func (s *seeker) bestOffsetFFT(ref, win []float64) (int, error) {
	ch := s.channels
	tailLen := s.overlapLen * ch
	regionLen := (s.seekLen + s.overlapLen) * ch
	region := win[:regionLen]

	for i := range s.refPad {
		s.refPad[i] = 0
		s.regPad[i] = 0
	}
	for i, v := range ref {
		s.refPad[i] = complex(v, 0)
	}
	for i, v := range region {
		s.regPad[i] = complex(v, 0)
	}

	if err := s.plan.Forward(s.regFreq, s.regPad); err != nil {
		return 0, fmt.Errorf("stretch: forward FFT failed: %w", err)
	}
	if err := s.plan.Forward(s.refFreq, s.refPad); err != nil {
		return 0, fmt.Errorf("stretch: forward FFT failed: %w", err)
	}
	for i := range s.regFreq {
		r := s.refFreq[i]
		s.regFreq[i] *= complex(real(r), -imag(r))
	}
	if err := s.plan.Inverse(s.corr, s.regFreq); err != nil {
		return 0, fmt.Errorf("stretch: inverse FFT failed: %w", err)
	}

	s.prefix[0] = 0
	for i, v := range region {
		s.prefix[i+1] = s.prefix[i] + v*v
	}

	refEnergy := tinyEnergy
	for _, v := range ref {
		refEnergy += v * v
	}

	best := 0
	bestScore := math.Inf(-1)
	for cand := 0; cand <= s.seekLen; cand++ {
		base := cand * ch
		dot := real(s.corr[base])
		candEnergy := s.prefix[base+tailLen] - s.prefix[base] + tinyEnergy
		score := dot / math.Sqrt(refEnergy*candEnergy)
		if score > bestScore {
			bestScore = score
			best = cand
		}
	}
	return best, nil
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p *= 2
	}
	return p
}
