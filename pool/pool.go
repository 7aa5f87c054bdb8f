// Package pool keeps spare game objects around so that a search loop does
// not allocate on every ply. A Pool is a plain free-list stack: it is not
// safe for concurrent use, and objects must be returned in the reverse
// order they were borrowed.
package pool

import (
	"errors"

	"github.com/rs/zerolog/log"
)

var ErrExhausted = errors.New("pool capacity exhausted")

// Pool hands out *T values. New values come from the constructor passed to
// New; returned values are reused as-is, so callers overwrite them fully
// before use.
type Pool[T any] struct {
	name  string
	alloc func() *T
	free  []*T

	capacity    int
	allocated   int
	outstanding int

	onExhausted func(name string, allocated int)
}

// New creates a pool. A capacity of 0 means the pool may grow without bound.
func New[T any](name string, capacity int, alloc func() *T) *Pool[T] {
	return &Pool[T]{
		name:        name,
		alloc:       alloc,
		capacity:    capacity,
		onExhausted: fatalExhausted,
	}
}

func fatalExhausted(name string, allocated int) {
	log.Fatal().Str("pool", name).Int("allocated", allocated).
		Msg("cannot allocate; pool exhausted")
}

// SetExhaustedHandler replaces the fatal default. If the handler returns,
// Borrow panics with ErrExhausted.
func (p *Pool[T]) SetExhaustedHandler(f func(name string, allocated int)) {
	p.onExhausted = f
}

// Prealloc makes sure at least n objects exist, so that the first n
// borrows do not allocate.
func (p *Pool[T]) Prealloc(n int) {
	for p.allocated < n {
		if p.capacity > 0 && p.allocated >= p.capacity {
			break
		}
		p.free = append(p.free, p.alloc())
		p.allocated++
	}
	log.Debug().Str("pool", p.name).Int("allocated", p.allocated).Msg("prealloc")
}

// Borrow pops a spare object, allocating one if the free list is empty.
func (p *Pool[T]) Borrow() *T {
	var v *T
	if n := len(p.free); n > 0 {
		v = p.free[n-1]
		p.free[n-1] = nil
		p.free = p.free[:n-1]
	} else {
		if p.capacity > 0 && p.allocated >= p.capacity {
			p.onExhausted(p.name, p.allocated)
			panic(ErrExhausted)
		}
		v = p.alloc()
		p.allocated++
	}
	p.outstanding++
	return v
}

// Return pushes v back onto the free list. Returning nil is a no-op.
func (p *Pool[T]) Return(v *T) {
	if v == nil {
		return
	}
	if p.outstanding == 0 {
		panic("pool " + p.name + ": return without matching borrow")
	}
	p.outstanding--
	p.free = append(p.free, v)
}

// Allocated is the total number of objects this pool has created.
func (p *Pool[T]) Allocated() int { return p.allocated }

// Outstanding is the number of objects currently borrowed.
func (p *Pool[T]) Outstanding() int { return p.outstanding }

// Free is the number of spare objects ready to be borrowed.
func (p *Pool[T]) Free() int { return len(p.free) }
