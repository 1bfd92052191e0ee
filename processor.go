package timepitch

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-timepitch/dsp/buffer"
	"github.com/cwbudde/algo-timepitch/dsp/core"
	"github.com/cwbudde/algo-timepitch/dsp/stretch"
	"github.com/cwbudde/algo-timepitch/dsp/transpose"
)

// Control parameter bounds.
const (
	MinTempo = 0.01
	MaxTempo = 100.0

	MinPitchRatio = 1.0 / 16
	MaxPitchRatio = 16.0

	// MaxPitchSemitones corresponds to MaxPitchRatio (four octaves).
	MaxPitchSemitones = 48.0
)

// Interpolation selects the transposer's fractional interpolation scheme.
type Interpolation = transpose.Interpolation

const (
	InterpolationLinear = transpose.InterpolationLinear
	InterpolationCubic  = transpose.InterpolationCubic
)

type state int

const (
	stateIdle state = iota
	stateStreaming
	stateDraining
)

type settings struct {
	stretchOpts   []stretch.Option
	transposeOpts []transpose.Option
}

// Option configures a Processor at construction time.
type Option func(*settings)

// WithSequenceMs sets the analysis window length of the time-scale stage.
func WithSequenceMs(ms float64) Option {
	return func(s *settings) { s.stretchOpts = append(s.stretchOpts, stretch.WithSequenceMs(ms)) }
}

// WithOverlapMs sets the crossfade overlap length of the time-scale stage.
func WithOverlapMs(ms float64) Option {
	return func(s *settings) { s.stretchOpts = append(s.stretchOpts, stretch.WithOverlapMs(ms)) }
}

// WithSeekMs sets the correlation seek radius of the time-scale stage.
func WithSeekMs(ms float64) Option {
	return func(s *settings) { s.stretchOpts = append(s.stretchOpts, stretch.WithSeekMs(ms)) }
}

// WithInterpolation selects the transposer's interpolation scheme.
func WithInterpolation(mode Interpolation) Option {
	return func(s *settings) { s.transposeOpts = append(s.transposeOpts, transpose.WithInterpolation(mode)) }
}

// Processor is a streaming time-pitch processor for interleaved audio.
// It is not safe for concurrent use; callers serialize access.
type Processor struct {
	sampleRate float64
	channels   int

	tempo     float64
	semitones float64
	ratio     float64 // pitch ratio, 2^(semitones/12)

	st  *stretch.Stretcher
	tr  *transpose.Transposer
	out *buffer.FIFO

	state state
}

// New constructs a processor with unit tempo and zero pitch shift.
func New(sampleRate float64, channels int, opts ...Option) (*Processor, error) {
	if !core.IsFinitePositive(sampleRate) {
		return nil, fmt.Errorf("%w: sample rate must be positive and finite: %f", ErrInvalidConfig, sampleRate)
	}
	if channels < 1 {
		return nil, fmt.Errorf("%w: channel count must be >= 1: %d", ErrInvalidConfig, channels)
	}

	var cfg settings
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	st, err := stretch.New(sampleRate, channels, cfg.stretchOpts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	tr, err := transpose.New(channels, cfg.transposeOpts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return &Processor{
		sampleRate: sampleRate,
		channels:   channels,
		tempo:      1.0,
		ratio:      1.0,
		st:         st,
		tr:         tr,
		out:        buffer.NewFIFO(channels),
	}, nil
}

// SampleRate returns the sample rate in Hz.
func (p *Processor) SampleRate() float64 { return p.sampleRate }

// Channels returns the interleaved channel count.
func (p *Processor) Channels() int { return p.channels }

// Tempo returns the current tempo ratio.
func (p *Processor) Tempo() float64 { return p.tempo }

// PitchSemitones returns the current pitch shift in semitones.
func (p *Processor) PitchSemitones() float64 { return p.semitones }

// PitchRatio returns the current pitch ratio, 2^(semitones/12).
func (p *Processor) PitchRatio() float64 { return p.ratio }

// Available returns the number of output frames ready to be read.
func (p *Processor) Available() int { return p.out.Frames() }

// Unprocessed returns the number of input frames buffered but not yet
// consumed by the time-scale stage.
func (p *Processor) Unprocessed() int { return p.st.Buffered() }

// Latency returns the number of input frames buffered before the first
// output frame appears, useful for trimming alignment in offline tools.
func (p *Processor) Latency() int { return p.st.Latency() }

// SetTempo sets the tempo ratio for frames processed afterwards. 1.0 keeps
// the duration, 2.0 halves it, 0.5 doubles it. Pitch is unaffected.
func (p *Processor) SetTempo(ratio float64) error {
	if !core.IsFinitePositive(ratio) || ratio < MinTempo || ratio > MaxTempo {
		return fmt.Errorf("%w: tempo ratio must be in [%g, %g]: %f", ErrInvalidParameter, MinTempo, MaxTempo, ratio)
	}
	p.tempo = ratio
	return p.applyRates()
}

// SetPitchSemitones sets the pitch shift in semitones for frames processed
// afterwards. Duration is unaffected.
func (p *Processor) SetPitchSemitones(semitones float64) error {
	if math.IsNaN(semitones) || semitones < -MaxPitchSemitones || semitones > MaxPitchSemitones {
		return fmt.Errorf("%w: pitch must be in [%g, %g] semitones: %f",
			ErrInvalidParameter, -MaxPitchSemitones, MaxPitchSemitones, semitones)
	}
	p.semitones = semitones
	p.ratio = math.Exp2(semitones / 12)
	return p.applyRates()
}

// SetPitchRatio sets the pitch shift as a frequency ratio for frames
// processed afterwards. Duration is unaffected.
func (p *Processor) SetPitchRatio(ratio float64) error {
	if !core.IsFinitePositive(ratio) || ratio < MinPitchRatio || ratio > MaxPitchRatio {
		return fmt.Errorf("%w: pitch ratio must be in [%g, %g]: %f",
			ErrInvalidParameter, MinPitchRatio, MaxPitchRatio, ratio)
	}
	p.ratio = ratio
	p.semitones = 12 * math.Log2(ratio)
	return p.applyRates()
}

// applyRates pushes the combined control state into the stages: the stretch
// stage compensates the transposer's duration change, so effective tempo is
// tempo/ratio while the transposer runs at the pitch ratio itself.
func (p *Processor) applyRates() error {
	if err := p.st.SetTempo(p.tempo / p.ratio); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidParameter, err)
	}
	if err := p.tr.SetRatio(p.ratio); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidParameter, err)
	}
	return nil
}

// Process appends interleaved input frames, runs every analysis window the
// buffered input allows, and copies up to len(out)/channels ready frames
// into out. It returns the number of frames written; 0 is normal while the
// pipeline fills. Both buffers must hold whole frames; either may be empty.
func (p *Processor) Process(in, out []float64) (int, error) {
	if p.state == stateDraining {
		return 0, fmt.Errorf("%w: Process after Flush; call Clear to start a new stream", ErrInvalidState)
	}
	if len(in)%p.channels != 0 {
		return 0, fmt.Errorf("%w: input length %d is not whole-frame for %d channels",
			ErrInvalidParameter, len(in), p.channels)
	}
	if len(out)%p.channels != 0 {
		return 0, fmt.Errorf("%w: output length %d is not whole-frame for %d channels",
			ErrInvalidParameter, len(out), p.channels)
	}

	if len(in) > 0 {
		p.state = stateStreaming
	}
	p.out.Write(p.tr.Process(p.st.Process(in)))
	return p.out.ReadFrames(out), nil
}

// Flush ends the stream: the buffered remainder is processed as final short
// windows and drained into out, up to capacity. Call repeatedly until it
// returns 0. After Flush only Clear can start a new stream.
func (p *Processor) Flush(out []float64) (int, error) {
	if len(out)%p.channels != 0 {
		return 0, fmt.Errorf("%w: output length %d is not whole-frame for %d channels",
			ErrInvalidParameter, len(out), p.channels)
	}
	if p.state != stateDraining {
		tail := p.tr.Process(p.st.Flush())
		tail = append(tail, p.tr.Flush()...)
		p.out.Write(tail)
		p.state = stateDraining
	}
	return p.out.ReadFrames(out), nil
}

// Clear resets all buffers and analysis state, returning the processor to
// the idle state. Stream parameters and control state survive.
func (p *Processor) Clear() {
	p.st.Reset()
	p.tr.Reset()
	p.out.Clear()
	p.state = stateIdle
}

// ProcessAll is a one-shot convenience: it processes in as a complete
// stream on an idle processor and returns the whole output. The processor
// is cleared afterwards and can be reused.
func (p *Processor) ProcessAll(in []float64) ([]float64, error) {
	if p.state != stateIdle {
		return nil, fmt.Errorf("%w: ProcessAll requires an idle processor", ErrInvalidState)
	}
	if _, err := p.Process(in, nil); err != nil {
		return nil, err
	}

	est := int(float64(len(in))/p.tempo) + p.channels
	out := make([]float64, 0, est)
	buf := make([]float64, 4096*p.channels)
	for {
		n, err := p.Flush(buf)
		if err != nil {
			return nil, err
		}
		if n == 0 {
			break
		}
		out = append(out, buf[:n*p.channels]...)
	}
	p.Clear()
	return out, nil
}
