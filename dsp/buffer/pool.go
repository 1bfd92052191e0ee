package buffer

import "sync"

// Pool recycles Buffers through a sync.Pool so block-processing loops avoid
// per-iteration allocation.
type Pool struct {
	pool sync.Pool
}

// NewPool returns an empty pool.
func NewPool() *Pool {
	p := &Pool{}
	p.pool.New = func() any { return &Buffer{} }
	return p
}

// Get hands out a zeroed Buffer of the requested length. Return it with Put
// once finished.
func (p *Pool) Get(length int) *Buffer {
	b := p.pool.Get().(*Buffer)
	b.Resize(length)
	b.Zero()
	return b
}

// Put recycles b. The caller must drop every reference to it and to slices
// obtained from its Samples method.
func (p *Pool) Put(b *Buffer) {
	if b == nil {
		return
	}
	p.pool.Put(b)
}
