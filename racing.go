package visited

// Racer marks a shared tracker from many goroutines without synchronization.
//
// Stores are plain and deliberately unsynchronized. The contract is weaker
// than Tracker's:
//
//   - Counters no wider than a machine word never tear. Every racer in one
//     generation stores the same flag, so after the goroutines are joined an
//     index marked by any of them reads as visited.
//   - Several goroutines racing TestAndVisit on the same index may each see
//     false. Which one (if only one) is not defined. Treat the result as a
//     best-effort dedup hint, not first-visitor detection.
//   - uint64 counters on 32-bit platforms may tear.
//   - Clear must not run while racing marks are in flight.
//
// The race detector reports these accesses. Use Atomic when exact
// first-visitor detection is required.
type Racer[T Counter] struct {
	t *Tracker[T]
}

// Len returns the capacity of the underlying tracker.
func (r Racer[T]) Len() int {
	return len(r.t.marks)
}

// Visited returns true if i has been visited in the current generation.
func (r Racer[T]) Visited(i uint32) bool {
	return r.t.marks[i] == r.t.flag
}

// Visit marks i as visited.
func (r Racer[T]) Visit(i uint32) {
	r.t.marks[i] = r.t.flag
}

// TestAndVisit marks i as visited and reports whether it was already visited.
// Concurrent callers on the same index may all observe false.
func (r Racer[T]) TestAndVisit(i uint32) bool {
	flag := r.t.flag
	prev := r.t.marks[i]
	r.t.marks[i] = flag
	return prev == flag
}
