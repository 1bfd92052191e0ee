package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// InterleavedSine generates a deterministic sine wave replicated across
// channels in interleaved frame order.
func InterleavedSine(freqHz, sampleRate, amplitude float64, frames, channels int) []float64 {
	mono := DeterministicSine(freqHz, sampleRate, amplitude, frames)
	return Interleave(mono, channels)
}

// Interleave replicates a mono signal across the given channel count.
func Interleave(mono []float64, channels int) []float64 {
	if channels < 1 {
		channels = 1
	}
	out := make([]float64, len(mono)*channels)
	for i, v := range mono {
		for c := 0; c < channels; c++ {
			out[i*channels+c] = v
		}
	}
	return out
}

// Deinterleave extracts a single channel from interleaved data.
func Deinterleave(x []float64, ch, channels int) []float64 {
	if channels < 1 || ch < 0 || ch >= channels {
		return nil
	}
	frames := len(x) / channels
	out := make([]float64, frames)
	for i := range out {
		out[i] = x[i*channels+ch]
	}
	return out
}
