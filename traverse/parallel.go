package traverse

import (
	"context"
	"sync"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/visited"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sys/cpu"
)

// marker is the marking surface shared by visited.Racer and visited.Atomic.
type marker interface {
	TestAndVisit(i uint32) bool
}

// ParallelResult is the outcome of a parallel reachability pass.
type ParallelResult struct {
	// Reached holds every node reachable from the sources.
	Reached *roaring.Bitmap

	// Expanded counts frontier entries processed, duplicates included.
	Expanded int

	// Duplicates counts nodes expanded more than once because two workers
	// won the same racing mark. Always 0 with WithExactVisits.
	Duplicates int
}

// workerState is padded so that workers appending to their own frontier
// do not share cache lines.
type workerState struct {
	next     []uint32
	expanded int
	_        cpu.CacheLinePad
}

// ParallelWalker runs level-synchronous BFS with several workers marking one
// shared tracker. Passes on the same walker are serialized.
type ParallelWalker struct {
	g    Graph
	opts options

	mu        sync.Mutex
	tracker   *visited.Tracker[uint32] // racing mode
	atomic    *visited.Atomic          // exact mode
	footprint int64
	closed    bool
}

// NewParallelWalker creates a parallel walker for g. The tracker memory is
// reserved from the configured controller until Close.
func NewParallelWalker(ctx context.Context, g Graph, optFns ...Option) (*ParallelWalker, error) {
	n := g.Len()
	if n < 0 {
		return nil, ErrInvalidNodeCount
	}

	o := applyOptions(optFns)
	footprint := visited.MemoryFootprint[uint32](n)
	if err := o.controller.AcquireMemory(ctx, footprint); err != nil {
		return nil, err
	}

	w := &ParallelWalker{
		g:         g,
		opts:      o,
		footprint: footprint,
	}
	if o.exact {
		w.atomic = visited.NewAtomic(n)
	} else {
		w.tracker = visited.New[uint32](n)
	}

	return w, nil
}

// Close releases the reserved tracker memory. It is safe to call twice.
func (w *ParallelWalker) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true
	w.opts.controller.ReleaseMemory(w.footprint)
	w.tracker = nil
	w.atomic = nil

	return nil
}

// Reachable returns the set of nodes reachable from sources.
func (w *ParallelWalker) Reachable(ctx context.Context, sources ...uint32) (ParallelResult, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	start := time.Now()
	res, err := w.reachable(ctx, sources)
	w.opts.metrics.RecordTraversal("parallel_reachable", res.Expanded, time.Since(start), err)
	w.opts.logger.LogTraversal(ctx, "parallel_reachable", res.Expanded, err)
	if err != nil {
		return ParallelResult{}, err
	}
	return res, nil
}

func (w *ParallelWalker) reachable(ctx context.Context, sources []uint32) (ParallelResult, error) {
	if w.closed {
		return ParallelResult{}, ErrClosed
	}
	if err := checkNodes(w.g, sources); err != nil {
		return ParallelResult{}, err
	}

	mark := w.begin(ctx)

	frontier := make([]uint32, 0, len(sources))
	for _, s := range sources {
		if !mark.TestAndVisit(s) {
			frontier = append(frontier, s)
		}
	}

	res := ParallelResult{Reached: roaring.New()}
	res.Reached.AddMany(frontier)

	for len(frontier) > 0 {
		next, expanded, err := w.expand(ctx, mark, frontier)
		res.Expanded += expanded
		if err != nil {
			return res, err
		}
		res.Reached.AddMany(next)
		frontier = next
	}

	res.Duplicates = res.Expanded - int(res.Reached.GetCardinality())

	return res, nil
}

// begin starts a new generation on the owned tracker.
func (w *ParallelWalker) begin(ctx context.Context) marker {
	var gen uint32
	var m marker
	if w.atomic != nil {
		w.atomic.Clear()
		gen, m = w.atomic.Generation(), w.atomic
	} else {
		w.tracker.Clear()
		gen, m = w.tracker.Generation(), w.tracker.Racing()
	}

	reportFullClear(ctx, &w.opts, gen, w.g.Len())

	return m
}

// expand processes one BFS level. In racing mode a node discovered by two
// workers at once may appear twice in the returned frontier.
func (w *ParallelWalker) expand(ctx context.Context, mark marker, frontier []uint32) ([]uint32, int, error) {
	workers := min(w.opts.workers, len(frontier))
	chunk := (len(frontier) + workers - 1) / workers
	states := make([]workerState, workers)

	g, gctx := errgroup.WithContext(ctx)
	for i := range states {
		lo := i * chunk
		hi := min(lo+chunk, len(frontier))
		if lo >= hi {
			break
		}

		st := &states[i]
		g.Go(func() error {
			if err := w.opts.controller.AcquireWorker(gctx); err != nil {
				return err
			}
			defer w.opts.controller.ReleaseWorker()

			for j, u := range frontier[lo:hi] {
				if j&cancelCheckMask == 0 {
					if err := gctx.Err(); err != nil {
						return err
					}
				}
				for _, v := range w.g.Neighbors(u) {
					if !mark.TestAndVisit(v) {
						st.next = append(st.next, v)
					}
				}
				st.expanded++
			}
			return nil
		})
	}

	err := g.Wait()

	expanded, total := 0, 0
	for i := range states {
		expanded += states[i].expanded
		total += len(states[i].next)
	}
	if err != nil {
		return nil, expanded, err
	}

	next := make([]uint32, 0, total)
	for i := range states {
		next = append(next, states[i].next...)
	}

	return next, expanded, nil
}
