package visited

import (
	"slices"
	"unsafe"
)

// Counter is the set of unsigned integer types usable as generation counters.
type Counter interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint
}

// Tracker tracks visited indices using generation counters for O(1) reset.
//
// Tracker is NOT thread-safe. Use Racing for unsynchronized parallel marking.
type Tracker[T Counter] struct {
	marks []T
	flag  T
}

// New creates a tracker for the index space [0, capacity).
// All indices start unvisited. New panics if capacity is negative.
//
// Indices are uint32, so slots at or above math.MaxUint32+1 are never
// addressable; capacity should not exceed that.
func New[T Counter](capacity int) *Tracker[T] {
	return &Tracker[T]{
		marks: make([]T, capacity),
		flag:  1,
	}
}

// Len returns the capacity of the tracker.
func (t *Tracker[T]) Len() int {
	return len(t.marks)
}

// Generation returns the current flag. It is 1 after construction and
// after a full rewrite.
func (t *Tracker[T]) Generation() T {
	return t.flag
}

// Visited returns true if i has been visited in the current generation.
// i must be less than Len.
func (t *Tracker[T]) Visited(i uint32) bool {
	return t.marks[i] == t.flag
}

// Visit marks i as visited.
func (t *Tracker[T]) Visit(i uint32) {
	t.marks[i] = t.flag
}

// TestAndVisit marks i as visited and reports whether it was already visited.
func (t *Tracker[T]) TestAndVisit(i uint32) bool {
	prev := t.marks[i]
	t.marks[i] = t.flag
	return prev == t.flag
}

// Clear starts a new generation in which no index is visited.
//
// This is O(1) unless the flag has reached the counter maximum, in which case
// every slot is rewritten to zero and the flag restarts at 1. Stale slots
// could otherwise collide with a wrapped flag.
func (t *Tracker[T]) Clear() {
	if t.flag == ^T(0) {
		clear(t.marks)
		t.flag = 1
		return
	}
	t.flag++
}

// Clone returns an independent copy of the tracker, including its
// current generation.
func (t *Tracker[T]) Clone() *Tracker[T] {
	return &Tracker[T]{
		marks: slices.Clone(t.marks),
		flag:  t.flag,
	}
}

// Racing returns a handle for unsynchronized concurrent marking.
func (t *Tracker[T]) Racing() Racer[T] {
	return Racer[T]{t: t}
}

// MemoryFootprint returns the bytes held by the counter array of a
// tracker with the given capacity.
func MemoryFootprint[T Counter](capacity int) int64 {
	var zero T
	return int64(capacity) * int64(unsafe.Sizeof(zero))
}
