package buffer

import "github.com/cwbudde/algo-timepitch/dsp/core"

// compactThreshold is the consumed-sample count above which a FIFO always
// reclaims space on the next write, bounding memory for long-lived streams.
const compactThreshold = 8192

// FIFO is a frame-aware first-in first-out queue of interleaved samples.
// Writers append interleaved data, readers consume whole frames (one sample
// per channel). Consumed space is reclaimed by compaction rather than
// wrapping, so readers get contiguous views without copying.
//
// The zero FIFO is not usable; construct with NewFIFO.
type FIFO struct {
	channels int
	buf      *Buffer
	start    int // read offset in samples
}

// NewFIFO returns an empty FIFO for the given interleaved channel count.
// Channel counts below 1 are treated as mono.
func NewFIFO(channels int) *FIFO {
	if channels < 1 {
		channels = 1
	}
	return &FIFO{channels: channels, buf: New(0)}
}

// Channels returns the interleaved channel count.
func (f *FIFO) Channels() int {
	return f.channels
}

// Frames returns the number of complete frames available for reading.
func (f *FIFO) Frames() int {
	return (f.buf.Len() - f.start) / f.channels
}

// Samples returns the number of buffered samples, including any trailing
// partial frame.
func (f *FIFO) Samples() int {
	return f.buf.Len() - f.start
}

// Write appends interleaved samples. A trailing partial frame may
// accumulate; it becomes readable once a later write completes it.
func (f *FIFO) Write(samples []float64) {
	if len(samples) == 0 {
		return
	}
	f.compact()
	n := f.buf.Len()
	need := n + len(samples)
	if need > f.buf.Cap() {
		grow := 2 * f.buf.Cap()
		if grow < need {
			grow = need
		}
		f.buf.Grow(grow)
	}
	f.buf.Resize(need)
	copy(f.buf.Samples()[n:], samples)
}

// View returns the first frames*channels buffered samples without consuming
// them. Fewer samples are returned if less data is buffered. The returned
// slice aliases internal storage and is invalidated by the next Write,
// ReadFrames, Skip, or Clear.
func (f *FIFO) View(frames int) []float64 {
	if frames < 0 {
		frames = 0
	}
	if avail := f.Frames(); frames > avail {
		frames = avail
	}
	return f.buf.Samples()[f.start : f.start+frames*f.channels]
}

// ReadFrames copies buffered data into dst, consuming up to
// len(dst)/channels whole frames, and returns the number of frames copied.
// It never writes past len(dst).
func (f *FIFO) ReadFrames(dst []float64) int {
	frames := len(dst) / f.channels
	if avail := f.Frames(); frames > avail {
		frames = avail
	}
	n := frames * f.channels
	core.CopyInto(dst[:n], f.buf.Samples()[f.start:])
	f.start += n
	return frames
}

// Skip discards up to the requested number of whole frames and returns the
// number actually discarded.
func (f *FIFO) Skip(frames int) int {
	if frames < 0 {
		frames = 0
	}
	if avail := f.Frames(); frames > avail {
		frames = avail
	}
	f.start += frames * f.channels
	return frames
}

// Clear empties the FIFO without releasing storage.
func (f *FIFO) Clear() {
	f.buf.Resize(0)
	f.start = 0
}

// compact reclaims consumed space once it dominates the backing array or
// exceeds the compaction threshold.
func (f *FIFO) compact() {
	if f.start == 0 {
		return
	}
	s := f.buf.Samples()
	if f.start*2 < len(s) && f.start < compactThreshold {
		return
	}
	copy(s, s[f.start:])
	f.buf.Resize(len(s) - f.start)
	f.start = 0
}
