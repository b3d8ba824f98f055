package visited

import (
	"math"
	"sync/atomic"
)

// Atomic is a visited tracker with per-slot atomic counters.
//
// Visited, Visit and TestAndVisit are safe for concurrent use and
// TestAndVisit reports false to exactly one caller per index and generation.
// Clear requires exclusive access.
type Atomic struct {
	marks []atomic.Uint32
	flag  uint32
}

// NewAtomic creates an atomic tracker for the index space [0, capacity).
func NewAtomic(capacity int) *Atomic {
	return &Atomic{
		marks: make([]atomic.Uint32, capacity),
		flag:  1,
	}
}

// Len returns the capacity of the tracker.
func (a *Atomic) Len() int {
	return len(a.marks)
}

// Generation returns the current flag.
func (a *Atomic) Generation() uint32 {
	return a.flag
}

// Visited returns true if i has been visited in the current generation.
func (a *Atomic) Visited(i uint32) bool {
	return a.marks[i].Load() == a.flag
}

// Visit marks i as visited.
func (a *Atomic) Visit(i uint32) {
	a.marks[i].Store(a.flag)
}

// TestAndVisit marks i as visited and reports whether it was already visited.
func (a *Atomic) TestAndVisit(i uint32) bool {
	return a.marks[i].Swap(a.flag) == a.flag
}

// Clear starts a new generation. See Tracker.Clear.
func (a *Atomic) Clear() {
	if a.flag == math.MaxUint32 {
		for i := range a.marks {
			a.marks[i].Store(0)
		}
		a.flag = 1
		return
	}
	a.flag++
}
