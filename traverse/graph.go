package traverse

// Graph is a fixed set of nodes [0, Len) with outgoing adjacency.
//
// Neighbors must only return IDs below Len and must be safe for concurrent
// calls. The returned slice must not be modified by the caller.
type Graph interface {
	Len() int
	Neighbors(u uint32) []uint32
}

// Edge is a directed edge.
type Edge struct {
	From uint32
	To   uint32
}

// Adjacency is an immutable graph in compressed sparse row layout.
type Adjacency struct {
	offsets []int
	targets []uint32
}

// NewAdjacency builds a graph with n nodes from edges.
// If symmetric is true every edge is also added in reverse.
func NewAdjacency(n int, edges []Edge, symmetric bool) (*Adjacency, error) {
	if n < 0 {
		return nil, ErrInvalidNodeCount
	}

	offsets := make([]int, n+1)
	for _, e := range edges {
		if int64(e.From) >= int64(n) {
			return nil, &ErrNodeOutOfRange{Node: e.From, Len: n}
		}
		if int64(e.To) >= int64(n) {
			return nil, &ErrNodeOutOfRange{Node: e.To, Len: n}
		}
		offsets[e.From+1]++
		if symmetric && e.From != e.To {
			offsets[e.To+1]++
		}
	}
	for i := 1; i <= n; i++ {
		offsets[i] += offsets[i-1]
	}

	targets := make([]uint32, offsets[n])
	fill := make([]int, n)
	copy(fill, offsets[:n])
	for _, e := range edges {
		targets[fill[e.From]] = e.To
		fill[e.From]++
		if symmetric && e.From != e.To {
			targets[fill[e.To]] = e.From
			fill[e.To]++
		}
	}

	return &Adjacency{offsets: offsets, targets: targets}, nil
}

// Len returns the number of nodes.
func (a *Adjacency) Len() int {
	return len(a.offsets) - 1
}

// Neighbors returns the outgoing neighbors of u in insertion order.
func (a *Adjacency) Neighbors(u uint32) []uint32 {
	return a.targets[a.offsets[u]:a.offsets[u+1]]
}

// Edges returns the number of stored (directed) edges.
func (a *Adjacency) Edges() int {
	return len(a.targets)
}
