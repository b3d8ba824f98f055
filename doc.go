// Package visited provides a generation-counter visited tracker for
// repeated traversal passes over a fixed index space.
//
// A Tracker stores one counter per index plus a current generation (the
// flag). An index is visited when its counter equals the flag. Clear
// advances the flag instead of rewriting the array, so resetting between
// passes is O(1); only when the flag saturates the counter type is the
// array rewritten.
//
// # Quick Start
//
//	t := visited.New[uint16](len(nodes))
//	for _, query := range queries {
//	    t.Clear()
//	    if t.TestAndVisit(start) { ... }
//	}
//
// # Counter Width
//
// The counter type trades memory for epochs between full rewrites:
//
//   - uint8: 1 byte per index, full rewrite every 255 passes
//   - uint16: 2 bytes per index, every 65535 passes
//   - uint32: 4 bytes per index, every ~4 billion passes
//
// # Concurrency
//
// Tracker methods require exclusive access. Racing returns a handle whose
// marks may be issued from many goroutines without synchronization; see
// Racer for the weakened contract. Atomic is the per-slot atomic alternative
// with an exact first-visitor guarantee.
package visited
