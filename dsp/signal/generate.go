// Package signal creates deterministic interleaved test and demo signals.
package signal

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-timepitch/dsp/core"
)

// Generator creates deterministic signals from a shared stream configuration.
// Generated data is interleaved: every frame carries one sample per channel.
type Generator struct {
	cfg  core.StreamConfig
	seed int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets the deterministic random seed for noise generation.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a configured signal generator.
func NewGenerator(streamOpts []core.StreamOption, opts ...Option) *Generator {
	g := &Generator{
		cfg:  core.ApplyStreamOptions(streamOpts...),
		seed: 1,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// Config returns the generator stream configuration.
func (g *Generator) Config() core.StreamConfig {
	return g.cfg
}

// Sine generates a sine wave replicated across all configured channels.
func (g *Generator) Sine(freqHz, amplitude float64, frames int) ([]float64, error) {
	if frames <= 0 {
		return nil, fmt.Errorf("signal: sine frames must be > 0: %d", frames)
	}
	if g.cfg.SampleRate <= 0 {
		return nil, fmt.Errorf("signal: sine sample rate must be > 0: %f", g.cfg.SampleRate)
	}
	ch := g.cfg.Channels
	out := make([]float64, frames*ch)
	step := 2 * math.Pi * freqHz / g.cfg.SampleRate
	for i := range frames {
		v := amplitude * math.Sin(step*float64(i))
		for c := range ch {
			out[i*ch+c] = v
		}
	}
	return out, nil
}

// WhiteNoise generates deterministic white noise in [-amplitude, amplitude],
// independent per channel.
func (g *Generator) WhiteNoise(amplitude float64, frames int) ([]float64, error) {
	if frames <= 0 {
		return nil, fmt.Errorf("signal: noise frames must be > 0: %d", frames)
	}
	if amplitude < 0 {
		return nil, fmt.Errorf("signal: noise amplitude must be >= 0: %f", amplitude)
	}
	out := make([]float64, frames*g.cfg.Channels)
	rng := rand.New(rand.NewSource(g.seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out, nil
}

// Sweep generates a linear frequency sweep from startHz to endHz, replicated
// across all configured channels. Useful for listening tests of time-scale
// artifacts across the band.
func (g *Generator) Sweep(startHz, endHz, amplitude float64, frames int) ([]float64, error) {
	if frames <= 0 {
		return nil, fmt.Errorf("signal: sweep frames must be > 0: %d", frames)
	}
	if g.cfg.SampleRate <= 0 {
		return nil, fmt.Errorf("signal: sweep sample rate must be > 0: %f", g.cfg.SampleRate)
	}
	if startHz < 0 || endHz < 0 {
		return nil, fmt.Errorf("signal: sweep frequencies must be >= 0: start=%f end=%f", startHz, endHz)
	}
	ch := g.cfg.Channels
	out := make([]float64, frames*ch)
	phase := 0.0
	for i := range frames {
		t := float64(i) / float64(frames)
		freq := startHz + (endHz-startHz)*t
		v := amplitude * math.Sin(phase)
		phase += 2 * math.Pi * freq / g.cfg.SampleRate
		for c := range ch {
			out[i*ch+c] = v
		}
	}
	return out, nil
}

// Normalize scales data so its peak magnitude equals targetPeak. A copy is
// returned; all-zero input comes back unchanged.
func Normalize(data []float64, targetPeak float64) ([]float64, error) {
	if targetPeak <= 0 {
		return nil, fmt.Errorf("signal: normalize target peak must be > 0: %f", targetPeak)
	}
	out := make([]float64, len(data))
	peak := 0.0
	for _, v := range data {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}
	if peak == 0 {
		copy(out, data)
		return out, nil
	}
	scale := targetPeak / peak
	for i, v := range data {
		out[i] = v * scale
	}
	return out, nil
}
