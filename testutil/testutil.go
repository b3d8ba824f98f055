package testutil

import (
	"math/rand"
	"sync"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Uint32n returns a pseudo-random uint32 in [0,n).
func (r *RNG) Uint32n(n int) uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return uint32(r.rand.Intn(n))
}

// RandomGraph returns directed adjacency lists for n nodes and m random edges.
// Self-loops and parallel edges may occur.
func (r *RNG) RandomGraph(n, m int) [][]uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()

	adj := make([][]uint32, n)
	if n == 0 {
		return adj
	}
	for range m {
		u := r.rand.Intn(n)
		adj[u] = append(adj[u], uint32(r.rand.Intn(n)))
	}
	return adj
}

// ClusteredGraph returns symmetric adjacency lists made of disjoint clusters.
// Each cluster has size nodes and is connected by a spanning path plus extra
// random intra-cluster edges, so it forms exactly one connected component.
func (r *RNG) ClusteredGraph(clusters, size, extra int) [][]uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()

	adj := make([][]uint32, clusters*size)
	link := func(u, v int) {
		adj[u] = append(adj[u], uint32(v))
		adj[v] = append(adj[v], uint32(u))
	}

	for c := range clusters {
		base := c * size
		for i := 1; i < size; i++ {
			link(base+i-1, base+i)
		}
		if size == 0 {
			continue
		}
		for range extra {
			link(base+r.rand.Intn(size), base+r.rand.Intn(size))
		}
	}
	return adj
}

// ReachableSet computes the nodes reachable from sources with a map-based BFS.
func ReachableSet(adj [][]uint32, sources []uint32) map[uint32]struct{} {
	seen := make(map[uint32]struct{}, len(sources))
	queue := make([]uint32, 0, len(sources))
	for _, s := range sources {
		if _, ok := seen[s]; !ok {
			seen[s] = struct{}{}
			queue = append(queue, s)
		}
	}

	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		for _, v := range adj[u] {
			if _, ok := seen[v]; !ok {
				seen[v] = struct{}{}
				queue = append(queue, v)
			}
		}
	}
	return seen
}

// HopDistances returns the BFS hop count from source to every node,
// or -1 for unreachable nodes.
func HopDistances(adj [][]uint32, source uint32) []int {
	dist := make([]int, len(adj))
	for i := range dist {
		dist[i] = -1
	}
	dist[source] = 0

	queue := []uint32{source}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		for _, v := range adj[u] {
			if dist[v] < 0 {
				dist[v] = dist[u] + 1
				queue = append(queue, v)
			}
		}
	}
	return dist
}
