// Package pool wraps sync.Pool with a typed API.
package pool

import "sync"

// Pool is a typed sync.Pool. An optional reset hook runs on every Put.
type Pool[T any] struct {
	internal sync.Pool
	reset    func(T) T
}

// New creates a Pool with the given constructor.
func New[T any](newFn func() T) *Pool[T] {
	return &Pool[T]{
		internal: sync.Pool{
			New: func() any {
				return newFn()
			},
		},
	}
}

// WithReset installs fn to normalize items before they are returned to the
// pool. It returns p for chaining.
func (p *Pool[T]) WithReset(fn func(T) T) *Pool[T] {
	p.reset = fn
	return p
}

// Get retrieves an item from the pool.
func (p *Pool[T]) Get() T {
	return p.internal.Get().(T)
}

// Put returns an item to the pool.
func (p *Pool[T]) Put(item T) {
	if p.reset != nil {
		item = p.reset(item)
	}
	p.internal.Put(item)
}

// NewBuffers returns a pool of byte slices of length size. Slices are
// restored to full length on Put so callers may reslice freely.
func NewBuffers(size int) *Pool[*[]byte] {
	return New(func() *[]byte {
		b := make([]byte, size)
		return &b
	}).WithReset(func(b *[]byte) *[]byte {
		if cap(*b) < size {
			nb := make([]byte, size)
			return &nb
		}
		*b = (*b)[:size]
		return b
	})
}
