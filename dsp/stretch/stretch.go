package stretch

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-timepitch/dsp/buffer"
	"github.com/cwbudde/algo-timepitch/dsp/core"
	"github.com/cwbudde/algo-vecmath"
)

const (
	// Music-tuned defaults: the sequence window spans several beat cycles so
	// the correlation seek has enough structure on polyphonic material.
	// Matches SoundTouch's music preset (82/10/28 ms).
	DefaultSequenceMs = 82.0
	DefaultOverlapMs  = 10.0
	DefaultSeekMs     = 28.0

	minSequenceMs = 20.0
	maxSequenceMs = 120.0
	minOverlapMs  = 4.0
	maxOverlapMs  = 60.0
	minSeekMs     = 2.0
	maxSeekMs     = 40.0

	minTempo = 1e-4
	maxTempo = 1e4
)

type config struct {
	sequenceMs float64
	overlapMs  float64
	seekMs     float64
}

// Option configures a Stretcher at construction time.
type Option func(*config)

// WithSequenceMs sets the analysis window length in milliseconds.
func WithSequenceMs(ms float64) Option {
	return func(c *config) { c.sequenceMs = ms }
}

// WithOverlapMs sets the crossfade overlap length in milliseconds.
func WithOverlapMs(ms float64) Option {
	return func(c *config) { c.overlapMs = ms }
}

// WithSeekMs sets the correlation seek radius in milliseconds.
func WithSeekMs(ms float64) Option {
	return func(c *config) { c.seekMs = ms }
}

// Stretcher changes the duration of an interleaved audio stream without
// altering its pitch. Feed frames with Process, which returns whatever
// output became ready; call Flush once at end of stream to drain the
// remainder under the tempo contract.
type Stretcher struct {
	sampleRate float64
	channels   int
	tempo      float64

	sequenceMs float64
	overlapMs  float64
	seekMs     float64

	seqLen     int // frames per analysis window
	overlapLen int // frames in the crossfade region
	seekLen    int // frames of seek radius

	fadeIn  []float64 // interleaved, overlapLen*channels
	fadeOut []float64

	in       *buffer.FIFO
	tail     []float64 // interleaved, overlapLen*channels
	haveTail bool

	skipFract float64
	owed      float64 // output frames owed under the tempo contract
	emitted   int     // output frames emitted so far

	mixOld []float64
	mixNew []float64
	zeros  []float64

	seek *seeker
}

// New constructs a streaming time stretcher with tuned defaults and unit tempo.
func New(sampleRate float64, channels int, opts ...Option) (*Stretcher, error) {
	if !core.IsFinitePositive(sampleRate) {
		return nil, fmt.Errorf("stretch: sample rate must be positive and finite: %f", sampleRate)
	}
	if channels < 1 {
		return nil, fmt.Errorf("stretch: channel count must be >= 1: %d", channels)
	}

	cfg := config{
		sequenceMs: DefaultSequenceMs,
		overlapMs:  DefaultOverlapMs,
		seekMs:     DefaultSeekMs,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	s := &Stretcher{
		sampleRate: sampleRate,
		channels:   channels,
		tempo:      1.0,
		sequenceMs: cfg.sequenceMs,
		overlapMs:  cfg.overlapMs,
		seekMs:     cfg.seekMs,
		in:         buffer.NewFIFO(channels),
	}
	if err := s.rebuild(); err != nil {
		return nil, err
	}
	return s, nil
}

// SampleRate returns the sample rate in Hz.
func (s *Stretcher) SampleRate() float64 { return s.sampleRate }

// Channels returns the interleaved channel count.
func (s *Stretcher) Channels() int { return s.channels }

// Tempo returns the current tempo ratio.
func (s *Stretcher) Tempo() float64 { return s.tempo }

// SequenceMs returns the analysis window length in milliseconds.
func (s *Stretcher) SequenceMs() float64 { return s.sequenceMs }

// OverlapMs returns the crossfade overlap length in milliseconds.
func (s *Stretcher) OverlapMs() float64 { return s.overlapMs }

// SeekMs returns the seek radius in milliseconds.
func (s *Stretcher) SeekMs() float64 { return s.seekMs }

// SequenceLen returns the analysis window length in frames.
func (s *Stretcher) SequenceLen() int { return s.seqLen }

// OverlapLen returns the crossfade overlap length in frames.
func (s *Stretcher) OverlapLen() int { return s.overlapLen }

// SeekLen returns the seek radius in frames.
func (s *Stretcher) SeekLen() int { return s.seekLen }

// Latency returns the number of input frames buffered before the first
// output frame can be produced.
func (s *Stretcher) Latency() int { return s.seekLen + s.seqLen }

// Buffered returns the number of not-yet-consumed input frames.
func (s *Stretcher) Buffered() int { return s.in.Frames() }

// SetTempo updates the tempo ratio consumed by subsequent windows.
// 1.0 leaves duration unchanged, 2.0 halves it, 0.5 doubles it.
func (s *Stretcher) SetTempo(ratio float64) error {
	if !core.IsFinitePositive(ratio) || ratio < minTempo || ratio > maxTempo {
		return fmt.Errorf("stretch: tempo ratio must be in [%g, %g]: %f", minTempo, maxTempo, ratio)
	}
	s.tempo = ratio
	return nil
}

// SetSequenceMs updates the analysis window length and recalculates internal
// state. Changing window geometry mid-stream restarts the overlap tracking.
func (s *Stretcher) SetSequenceMs(ms float64) error {
	old := s.sequenceMs
	s.sequenceMs = ms
	if err := s.rebuild(); err != nil {
		s.sequenceMs = old
		_ = s.rebuild()
		return err
	}
	return nil
}

// SetOverlapMs updates the crossfade overlap length.
func (s *Stretcher) SetOverlapMs(ms float64) error {
	old := s.overlapMs
	s.overlapMs = ms
	if err := s.rebuild(); err != nil {
		s.overlapMs = old
		_ = s.rebuild()
		return err
	}
	return nil
}

// SetSeekMs updates the correlation seek radius.
func (s *Stretcher) SetSeekMs(ms float64) error {
	old := s.seekMs
	s.seekMs = ms
	if err := s.rebuild(); err != nil {
		s.seekMs = old
		_ = s.rebuild()
		return err
	}
	return nil
}

// Reset drops all buffered audio and analysis state while keeping
// configuration and tempo.
func (s *Stretcher) Reset() {
	s.in.Clear()
	core.Zero(s.tail)
	s.haveTail = false
	s.skipFract = 0
	s.owed = 0
	s.emitted = 0
}

// Process buffers interleaved samples (whole frames) and returns every
// output sample that became ready. The returned slice is freshly allocated
// and owned by the caller; it is empty while input accumulates.
func (s *Stretcher) Process(samples []float64) []float64 {
	if len(samples) > 0 {
		s.in.Write(samples)
		s.owed += float64(len(samples)/s.channels) / s.tempo
	}
	out := s.run(nil)
	s.emitted += len(out) / s.channels
	return out
}

// Flush processes the buffered remainder as final windows and returns the
// frames still owed under the tempo contract. Internally the stretcher runs
// ordinary windows over zero padding and discards the surplus, so the last
// partial window is emitted with a truncated effective overlap.
func (s *Stretcher) Flush() []float64 {
	ch := s.channels
	out := s.run(nil)
	if s.zeros == nil {
		s.zeros = make([]float64, s.Latency()*ch)
	}
	for {
		target := int(math.Round(s.owed)) - s.emitted - len(out)/ch
		if target <= 0 {
			break
		}
		s.in.Write(s.zeros)
		out = append(out, s.run(nil)...)
	}

	total := len(out) / ch
	surplus := s.emitted + total - int(math.Round(s.owed))
	if surplus > 0 {
		if surplus > total {
			surplus = total
		}
		out = out[:(total-surplus)*ch]
	}
	s.emitted += len(out) / ch
	return out
}

func (s *Stretcher) rebuild() error {
	if err := validateMs("sequence", s.sequenceMs, minSequenceMs, maxSequenceMs); err != nil {
		return err
	}
	if err := validateMs("overlap", s.overlapMs, minOverlapMs, maxOverlapMs); err != nil {
		return err
	}
	if err := validateMs("seek", s.seekMs, minSeekMs, maxSeekMs); err != nil {
		return err
	}
	if 2*s.overlapMs > s.sequenceMs {
		return fmt.Errorf("stretch: overlap must be at most half the sequence: overlap=%f sequence=%f",
			s.overlapMs, s.sequenceMs)
	}

	s.seqLen = int(math.Round(s.sequenceMs * 0.001 * s.sampleRate))
	if s.seqLen < 32 {
		s.seqLen = 32
	}
	s.overlapLen = int(math.Round(s.overlapMs * 0.001 * s.sampleRate))
	if s.overlapLen < 8 {
		s.overlapLen = 8
	}
	if 2*s.overlapLen > s.seqLen {
		return fmt.Errorf("stretch: overlap too large for sequence: overlap=%d sequence=%d",
			s.overlapLen, s.seqLen)
	}
	s.seekLen = int(math.Round(s.seekMs * 0.001 * s.sampleRate))
	if s.seekLen < 1 {
		s.seekLen = 1
	}

	ch := s.channels
	n := s.overlapLen * ch
	s.fadeIn = make([]float64, n)
	s.fadeOut = make([]float64, n)
	for i := range s.overlapLen {
		in := 1.0
		if s.overlapLen > 1 {
			t := float64(i) / float64(s.overlapLen-1)
			in = 0.5 - 0.5*math.Cos(math.Pi*t)
		}
		for c := range ch {
			s.fadeIn[i*ch+c] = in
			s.fadeOut[i*ch+c] = 1 - in
		}
	}

	s.tail = make([]float64, n)
	s.mixOld = make([]float64, n)
	s.mixNew = make([]float64, n)
	s.zeros = nil

	var err error
	s.seek, err = newSeeker(s.seekLen, s.overlapLen, ch)
	if err != nil {
		return err
	}

	// Window geometry changed: previous overlap state no longer lines up.
	s.haveTail = false
	s.skipFract = 0
	return nil
}

// run executes every analysis window the buffered input allows, appending
// produced samples to out.
func (s *Stretcher) run(out []float64) []float64 {
	windowFrames := s.seekLen + s.seqLen
	for {
		nominal := s.tempo * float64(s.seqLen-s.overlapLen)
		skip := int(nominal + s.skipFract)
		need := windowFrames
		if skip > need {
			need = skip
		}
		if s.in.Frames() < need {
			return out
		}
		out = s.emitWindow(out, s.in.View(windowFrames))
		s.skipFract += nominal - float64(skip)
		s.in.Skip(skip)
	}
}

// emitWindow emits one synthesis step: the crossfaded overlap region followed
// by the unblended middle of the selected segment. The segment tail becomes
// the reference for the next window.
func (s *Stretcher) emitWindow(out []float64, win []float64) []float64 {
	ch := s.channels
	step := (s.seqLen - s.overlapLen) * ch

	if !s.haveTail {
		// Seed from the very first window verbatim so streams do not begin
		// with a fade-in from silence.
		out = append(out, win[:step]...)
		copy(s.tail, win[step:s.seqLen*ch])
		s.haveTail = true
		return out
	}

	offset := s.seek.bestOffset(s.tail, win)
	seg := win[offset*ch : (offset+s.seqLen)*ch]

	vecmath.MulBlock(s.mixOld, s.tail, s.fadeOut)
	vecmath.MulBlock(s.mixNew, seg[:s.overlapLen*ch], s.fadeIn)
	vecmath.AddBlockInPlace(s.mixOld, s.mixNew)

	out = append(out, s.mixOld...)
	out = append(out, seg[s.overlapLen*ch:step]...)
	copy(s.tail, seg[step:])
	return out
}

func validateMs(name string, ms, min, max float64) error {
	if math.IsNaN(ms) || ms < min || ms > max {
		return fmt.Errorf("stretch: %s must be in [%g, %g] ms: %f", name, min, max, ms)
	}
	return nil
}
