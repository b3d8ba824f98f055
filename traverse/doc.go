// Package traverse implements graph traversals on top of visited trackers.
//
// Walker runs sequential passes (BFS, reachability, hop distance, connected
// components). Each pass borrows a tracker from a pool, so starting a pass
// costs O(1) instead of clearing a visited array, and one Walker can serve
// passes from several goroutines.
//
// ParallelWalker expands each BFS level with a group of workers that mark a
// single shared tracker. By default marks go through the racing handle: a
// node may be expanded by more than one worker when two of them discover it
// at the same time, which costs duplicate work but never loses a node.
// WithExactVisits switches to per-slot atomics and removes the duplicates.
//
// # Graphs
//
//	g, err := traverse.NewAdjacency(n, edges, true) // symmetric CSR graph
//	w, err := traverse.NewWalker[uint16](g)
//	reached, err := w.Reachable(ctx, 0)
package traverse
