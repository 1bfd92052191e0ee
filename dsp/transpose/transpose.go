package transpose

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-timepitch/dsp/core"
	"github.com/cwbudde/algo-timepitch/dsp/interp"
)

const (
	minRatio = 1.0 / 256
	maxRatio = 256.0

	identityEps = 1e-12
)

// Interpolation selects the fractional-position interpolation scheme.
type Interpolation int

const (
	// InterpolationLinear is the cheapest scheme, adequate for speech.
	InterpolationLinear Interpolation = iota
	// InterpolationCubic uses 4-point Hermite interpolation, the default.
	InterpolationCubic
)

type config struct {
	interpolation Interpolation
}

// Option configures a Transposer at construction time.
type Option func(*config)

// WithInterpolation selects the interpolation scheme.
func WithInterpolation(mode Interpolation) Option {
	return func(c *config) { c.interpolation = mode }
}

// Transposer resamples an interleaved stream by a continuously variable
// ratio. A ratio above 1 consumes input faster than it produces output
// (raising pitch in the time-pitch pipeline); below 1 the reverse.
type Transposer struct {
	channels int
	ratio    float64
	mode     Interpolation

	hist    []float64 // carried interleaved frames the cursor still needs
	pos     float64   // fractional read position into hist+input, in frames
	owed    float64   // output frames owed under the ratio contract
	emitted int

	work []float64
}

// New constructs a transposer with unit ratio.
func New(channels int, opts ...Option) (*Transposer, error) {
	if channels < 1 {
		return nil, fmt.Errorf("transpose: channel count must be >= 1: %d", channels)
	}
	cfg := config{interpolation: InterpolationCubic}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.interpolation != InterpolationLinear && cfg.interpolation != InterpolationCubic {
		return nil, fmt.Errorf("transpose: unknown interpolation mode: %d", cfg.interpolation)
	}
	return &Transposer{
		channels: channels,
		ratio:    1.0,
		mode:     cfg.interpolation,
	}, nil
}

// Channels returns the interleaved channel count.
func (t *Transposer) Channels() int { return t.channels }

// Ratio returns the current resampling ratio.
func (t *Transposer) Ratio() float64 { return t.ratio }

// Interpolation returns the configured interpolation scheme.
func (t *Transposer) Interpolation() Interpolation { return t.mode }

// SetRatio updates the resampling ratio consumed by subsequent frames.
func (t *Transposer) SetRatio(ratio float64) error {
	if !core.IsFinitePositive(ratio) || ratio < minRatio || ratio > maxRatio {
		return fmt.Errorf("transpose: ratio must be in [%g, %g]: %f", minRatio, maxRatio, ratio)
	}
	t.ratio = ratio
	return nil
}

// Reset drops all carried state while keeping configuration and ratio.
func (t *Transposer) Reset() {
	t.hist = t.hist[:0]
	t.pos = 0
	t.owed = 0
	t.emitted = 0
}

// Process resamples interleaved samples (whole frames) and returns the
// output frames that could be produced without reading past the received
// data. A short history is carried so chunk boundaries are seamless.
func (t *Transposer) Process(samples []float64) []float64 {
	ch := t.channels
	frames := len(samples) / ch
	if frames == 0 {
		return nil
	}
	t.owed += float64(frames) / t.ratio

	// Unit ratio with no pending cursor state is an exact pass-through.
	if math.Abs(t.ratio-1) <= identityEps && t.pos == 0 && len(t.hist) == 0 {
		out := make([]float64, frames*ch)
		copy(out, samples)
		t.emitted += frames
		return out
	}

	t.work = core.EnsureLen(t.work, len(t.hist)+frames*ch)
	copy(t.work, t.hist)
	copy(t.work[len(t.hist):], samples)
	total := len(t.work) / ch

	// The cubic scheme reads one frame behind and two ahead of the cursor;
	// the lower edge is clamped, the upper edge bounds production.
	back, ahead := 0, 1
	if t.mode == InterpolationCubic {
		back, ahead = 1, 2
	}

	est := int(float64(total)/t.ratio) + 2
	out := make([]float64, 0, est*ch)
	for {
		idx := int(t.pos)
		if idx+ahead > total-1 {
			break
		}
		frac := t.pos - float64(idx)
		out = t.appendFrame(out, t.work, idx, frac, total)
		t.pos += t.ratio
	}

	keep := int(t.pos) - back
	if keep < 0 {
		keep = 0
	}
	if keep > total {
		keep = total
	}
	t.hist = append(t.hist[:0], t.work[keep*ch:]...)
	t.pos -= float64(keep)

	t.emitted += len(out) / ch
	return out
}

// Flush emits the frames still owed under the ratio contract, clamping the
// cursor to the final received frame.
func (t *Transposer) Flush() []float64 {
	ch := t.channels
	target := int(math.Round(t.owed)) - t.emitted
	if target <= 0 {
		return nil
	}
	total := len(t.hist) / ch
	if total == 0 {
		return nil
	}

	out := make([]float64, 0, target*ch)
	for range target {
		idx := int(t.pos)
		frac := t.pos - float64(idx)
		out = t.appendFrameClamped(out, t.hist, idx, frac, total)
		t.pos += t.ratio
	}
	t.emitted += target
	return out
}

func (t *Transposer) appendFrame(out, work []float64, idx int, frac float64, total int) []float64 {
	ch := t.channels
	if t.mode == InterpolationLinear {
		for c := range ch {
			out = append(out, interp.Linear(frac, work[idx*ch+c], work[(idx+1)*ch+c]))
		}
		return out
	}
	for c := range ch {
		xm1 := sampleClamped(work, idx-1, total, ch, c)
		x0 := work[idx*ch+c]
		x1 := work[(idx+1)*ch+c]
		x2 := sampleClamped(work, idx+2, total, ch, c)
		out = append(out, interp.Hermite4(frac, xm1, x0, x1, x2))
	}
	return out
}

func (t *Transposer) appendFrameClamped(out, work []float64, idx int, frac float64, total int) []float64 {
	ch := t.channels
	if t.mode == InterpolationLinear {
		for c := range ch {
			x0 := sampleClamped(work, idx, total, ch, c)
			x1 := sampleClamped(work, idx+1, total, ch, c)
			out = append(out, interp.Linear(frac, x0, x1))
		}
		return out
	}
	for c := range ch {
		xm1 := sampleClamped(work, idx-1, total, ch, c)
		x0 := sampleClamped(work, idx, total, ch, c)
		x1 := sampleClamped(work, idx+1, total, ch, c)
		x2 := sampleClamped(work, idx+2, total, ch, c)
		out = append(out, interp.Hermite4(frac, xm1, x0, x1, x2))
	}
	return out
}

func sampleClamped(work []float64, idx, total, ch, c int) float64 {
	if total == 0 {
		return 0
	}
	if idx < 0 {
		idx = 0
	}
	if idx > total-1 {
		idx = total - 1
	}
	return work[idx*ch+c]
}
