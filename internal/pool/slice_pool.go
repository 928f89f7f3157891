package pool

import "sync"

// SlicePool pools fixed-capacity slices of T.
//
// It backs the chunked allocation of wire.Zone: chunks are handed out with
// length zero and capacity chunkSize, and returned once the zone is released.
type SlicePool[T any] struct {
	pool      sync.Pool
	chunkSize int
}

// NewSlicePool creates a pool of slices with the given capacity.
func NewSlicePool[T any](chunkSize int) *SlicePool[T] {
	p := &SlicePool[T]{chunkSize: chunkSize}
	p.pool.New = func() any {
		s := make([]T, 0, chunkSize)
		return &s
	}

	return p
}

// ChunkSize returns the capacity of the slices handed out by the pool.
func (p *SlicePool[T]) ChunkSize() int {
	return p.chunkSize
}

// Get returns an empty slice with capacity ChunkSize.
func (p *SlicePool[T]) Get() []T {
	ptr, _ := p.pool.Get().(*[]T)
	return (*ptr)[:0]
}

// Put clears s and returns it to the pool. Slices of a different capacity are dropped.
func (p *SlicePool[T]) Put(s []T) {
	if cap(s) != p.chunkSize {
		return
	}
	s = s[:cap(s)]
	clear(s)
	s = s[:0]
	p.pool.Put(&s)
}
