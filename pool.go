package visited

import "sync"

// Pool recycles trackers of one fixed capacity.
//
// A recycled tracker only needs its generation advanced, so Get is O(1) in
// the common case.
type Pool[T Counter] struct {
	capacity int
	pool     sync.Pool
}

// NewPool creates a pool of trackers sized for [0, capacity).
func NewPool[T Counter](capacity int) (*Pool[T], error) {
	if capacity < 0 {
		return nil, ErrInvalidCapacity
	}

	p := &Pool[T]{capacity: capacity}
	p.pool.New = func() any {
		return New[T](capacity)
	}

	return p, nil
}

// Capacity returns the tracker capacity served by the pool.
func (p *Pool[T]) Capacity() int {
	return p.capacity
}

// Get returns a tracker with no visited indices.
func (p *Pool[T]) Get() *Tracker[T] {
	t := p.pool.Get().(*Tracker[T])
	t.Clear()
	return t
}

// Put returns t to the pool. Trackers of a different capacity are dropped.
func (p *Pool[T]) Put(t *Tracker[T]) {
	if t == nil || t.Len() != p.capacity {
		return
	}
	p.pool.Put(t)
}
