package traverse

import (
	"context"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/visited"
)

// cancelCheckMask sets how often (in expanded nodes) ctx is polled.
const cancelCheckMask = 1<<10 - 1

// Walker runs sequential traversals over a graph.
// It is safe for concurrent use; every pass owns its own tracker.
type Walker[T visited.Counter] struct {
	g    Graph
	pool *visited.Pool[T]
	opts options
}

// NewWalker creates a walker for g using counters of type T.
func NewWalker[T visited.Counter](g Graph, optFns ...Option) (*Walker[T], error) {
	pool, err := visited.NewPool[T](g.Len())
	if err != nil {
		return nil, ErrInvalidNodeCount
	}

	return &Walker[T]{
		g:    g,
		pool: pool,
		opts: applyOptions(optFns),
	}, nil
}

// acquire borrows a tracker for one pass.
func (w *Walker[T]) acquire(ctx context.Context) *visited.Tracker[T] {
	t := w.pool.Get()
	reportFullClear(ctx, &w.opts, t.Generation(), t.Len())
	return t
}

// reportFullClear records a saturated generation. A generation of 1 right
// after Clear means the counter array was rewritten.
func reportFullClear[T visited.Counter](ctx context.Context, o *options, gen T, capacity int) bool {
	if gen != 1 {
		return false
	}
	o.metrics.RecordFullClear(capacity)
	o.logger.LogFullClear(ctx, capacity)
	return true
}

func (w *Walker[T]) observe(ctx context.Context, kind string, nodes int, start time.Time, err error) {
	w.opts.metrics.RecordTraversal(kind, nodes, time.Since(start), err)
	w.opts.logger.LogTraversal(ctx, kind, nodes, err)
}

// BFS visits every node reachable from sources in breadth-first order.
// fn receives each node once with its hop distance from the nearest source;
// returning false stops the traversal.
func (w *Walker[T]) BFS(ctx context.Context, sources []uint32, fn func(node uint32, depth int) bool) error {
	start := time.Now()
	n, err := w.bfs(ctx, sources, fn)
	w.observe(ctx, "bfs", n, start, err)
	return err
}

// Reachable returns the set of nodes reachable from sources, sources included.
func (w *Walker[T]) Reachable(ctx context.Context, sources ...uint32) (*roaring.Bitmap, error) {
	start := time.Now()
	reached := roaring.New()
	n, err := w.bfs(ctx, sources, func(node uint32, _ int) bool {
		reached.Add(node)
		return true
	})
	w.observe(ctx, "reachable", n, start, err)
	if err != nil {
		return nil, err
	}
	return reached, nil
}

// Hops returns the number of edges on a shortest path from one node to
// another, or -1 if to is unreachable.
func (w *Walker[T]) Hops(ctx context.Context, from, to uint32) (int, error) {
	if err := checkNodes(w.g, []uint32{to}); err != nil {
		return -1, err
	}

	start := time.Now()
	hops := -1
	n, err := w.bfs(ctx, []uint32{from}, func(node uint32, depth int) bool {
		if node == to {
			hops = depth
			return false
		}
		return true
	})
	w.observe(ctx, "hops", n, start, err)
	if err != nil {
		return -1, err
	}
	return hops, nil
}

// Components labels every node with the index of the component found by
// flooding from the lowest unlabelled node. For symmetric graphs these are
// the connected components. It returns the labels and the component count.
func (w *Walker[T]) Components(ctx context.Context) ([]uint32, int, error) {
	start := time.Now()
	labels, count, err := w.components(ctx)
	w.observe(ctx, "components", len(labels), start, err)
	if err != nil {
		return nil, 0, err
	}
	return labels, count, nil
}

func (w *Walker[T]) bfs(ctx context.Context, sources []uint32, fn func(node uint32, depth int) bool) (int, error) {
	if err := checkNodes(w.g, sources); err != nil {
		return 0, err
	}

	t := w.acquire(ctx)
	defer w.pool.Put(t)

	queue := make([]uint32, 0, len(sources))
	for _, s := range sources {
		if !t.TestAndVisit(s) {
			queue = append(queue, s)
		}
	}

	head, levelEnd, depth := 0, len(queue), 0
	for head < len(queue) {
		if head == levelEnd {
			depth++
			levelEnd = len(queue)
		}
		if head&cancelCheckMask == 0 {
			if err := ctx.Err(); err != nil {
				return head, err
			}
		}

		u := queue[head]
		head++
		if !fn(u, depth) {
			return head, nil
		}

		for _, v := range w.g.Neighbors(u) {
			if !t.TestAndVisit(v) {
				queue = append(queue, v)
			}
		}
	}

	return head, nil
}

func (w *Walker[T]) components(ctx context.Context) ([]uint32, int, error) {
	n := w.g.Len()
	labels := make([]uint32, n)

	t := w.acquire(ctx)
	defer w.pool.Put(t)

	var (
		stack    []uint32
		count    int
		expanded int
	)
	for s := 0; s < n; s++ {
		if t.TestAndVisit(uint32(s)) {
			continue
		}

		label := uint32(count)
		count++
		stack = append(stack[:0], uint32(s))
		for len(stack) > 0 {
			u := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			labels[u] = label

			if expanded&cancelCheckMask == 0 {
				if err := ctx.Err(); err != nil {
					return nil, 0, err
				}
			}
			expanded++

			for _, v := range w.g.Neighbors(u) {
				if !t.TestAndVisit(v) {
					stack = append(stack, v)
				}
			}
		}
	}

	return labels, count, nil
}
