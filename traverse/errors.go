package traverse

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidNodeCount is returned when a graph reports a negative size.
	ErrInvalidNodeCount = errors.New("node count must not be negative")

	// ErrClosed is returned when using a closed ParallelWalker.
	ErrClosed = errors.New("walker is closed")
)

// ErrNodeOutOfRange indicates a node ID outside [0, Len).
type ErrNodeOutOfRange struct {
	Node uint32
	Len  int
}

func (e *ErrNodeOutOfRange) Error() string {
	return fmt.Sprintf("node %d out of range [0, %d)", e.Node, e.Len)
}

func checkNodes(g Graph, nodes []uint32) error {
	n := g.Len()
	for _, u := range nodes {
		if int64(u) >= int64(n) {
			return &ErrNodeOutOfRange{Node: u, Len: n}
		}
	}
	return nil
}
