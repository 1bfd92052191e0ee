package buffer

// Buffer is a length-tracked float64 slice that survives resizing without
// reallocating when capacity allows. Processing code works on raw slices;
// Samples exposes the backing storage for that.
type Buffer struct {
	samples []float64
}

// New returns a zero-filled Buffer holding length samples.
func New(length int) *Buffer {
	if length < 0 {
		length = 0
	}
	return &Buffer{samples: make([]float64, length)}
}

// FromSlice wraps s without copying, so writes through either view are
// visible through the other.
func FromSlice(s []float64) *Buffer {
	return &Buffer{samples: s}
}

// Samples returns the backing slice at the current length.
func (b *Buffer) Samples() []float64 {
	return b.samples
}

// Len returns the current sample count.
func (b *Buffer) Len() int {
	return len(b.samples)
}

// Cap returns the capacity of the backing storage.
func (b *Buffer) Cap() int {
	return cap(b.samples)
}

// Grow raises the capacity to at least n without changing the length.
func (b *Buffer) Grow(n int) {
	if n <= cap(b.samples) {
		return
	}
	grown := append(make([]float64, 0, n), b.samples...)
	b.samples = grown
}

// Resize sets the length to n. Samples exposed beyond the previous length
// are zeroed, including stale data from earlier use of the same storage.
func (b *Buffer) Resize(n int) {
	if n < 0 {
		n = 0
	}
	prev := len(b.samples)
	b.Grow(n)
	b.samples = b.samples[:n]
	for i := prev; i < n; i++ {
		b.samples[i] = 0
	}
}

// Zero clears every sample.
func (b *Buffer) Zero() {
	clear(b.samples)
}

// Copy returns an independent copy of the buffer contents.
func (b *Buffer) Copy() *Buffer {
	s := make([]float64, len(b.samples))
	copy(s, b.samples)
	return &Buffer{samples: s}
}
