package traverse

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"runtime/debug"
	"strings"
	"sync"
	"testing"

	"github.com/hupe1980/visited/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pathGraph(t testing.TB, n int) *Adjacency {
	t.Helper()

	edges := make([]Edge, 0, n)
	for i := 1; i < n; i++ {
		edges = append(edges, Edge{From: uint32(i - 1), To: uint32(i)})
	}
	g, err := NewAdjacency(n, edges, true)
	require.NoError(t, err)
	return g
}

func TestWalker_BFSDepths(t *testing.T) {
	g := pathGraph(t, 5)
	w, err := NewWalker[uint16](g)
	require.NoError(t, err)

	var order []uint32
	var depths []int
	err = w.BFS(context.Background(), []uint32{2}, func(node uint32, depth int) bool {
		order = append(order, node)
		depths = append(depths, depth)
		return true
	})
	require.NoError(t, err)

	assert.Equal(t, []uint32{2, 1, 3, 0, 4}, order)
	assert.Equal(t, []int{0, 1, 1, 2, 2}, depths)
}

func TestWalker_BFSMultiSourceDedup(t *testing.T) {
	g := pathGraph(t, 5)
	w, err := NewWalker[uint8](g)
	require.NoError(t, err)

	seen := map[uint32]int{}
	err = w.BFS(context.Background(), []uint32{0, 4, 0}, func(node uint32, depth int) bool {
		seen[node]++
		return true
	})
	require.NoError(t, err)

	assert.Len(t, seen, 5)
	for node, count := range seen {
		assert.Equal(t, 1, count, "node %d", node)
	}
}

func TestWalker_BFSStop(t *testing.T) {
	g := pathGraph(t, 10)
	w, err := NewWalker[uint16](g)
	require.NoError(t, err)

	visits := 0
	err = w.BFS(context.Background(), []uint32{0}, func(uint32, int) bool {
		visits++
		return visits < 3
	})
	require.NoError(t, err)
	assert.Equal(t, 3, visits)
}

func TestWalker_ReachableMatchesReference(t *testing.T) {
	rng := testutil.NewRNG(4711)
	ctx := context.Background()

	for round := 0; round < 5; round++ {
		adj := rng.RandomGraph(300, 450)
		g := adjacencyFromLists(t, adj)

		w, err := NewWalker[uint32](g)
		require.NoError(t, err)

		for i := 0; i < 20; i++ {
			src := rng.Uint32n(300)
			got, err := w.Reachable(ctx, src)
			require.NoError(t, err)

			want := testutil.ReachableSet(adj, []uint32{src})
			require.Equal(t, uint64(len(want)), got.GetCardinality())
			for v := range want {
				require.True(t, got.Contains(v), "round %d src %d node %d", round, src, v)
			}
		}
	}
}

func TestWalker_ManyPassesAcrossSaturation(t *testing.T) {
	// uint8 counters saturate every 255 passes.
	rng := testutil.NewRNG(42)
	adj := rng.RandomGraph(64, 96)
	g := adjacencyFromLists(t, adj)

	w, err := NewWalker[uint8](g)
	require.NoError(t, err)

	ctx := context.Background()
	for pass := 0; pass < 700; pass++ {
		src := uint32(pass % 64)
		got, err := w.Reachable(ctx, src)
		require.NoError(t, err)

		want := testutil.ReachableSet(adj, []uint32{src})
		require.Equal(t, uint64(len(want)), got.GetCardinality(), "pass %d", pass)
	}
}

func TestWalker_FullClearObserved(t *testing.T) {
	// Keep the pooled tracker alive so every pass reuses it.
	defer debug.SetGCPercent(debug.SetGCPercent(-1))

	var buf bytes.Buffer
	logger := NewLogger(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	metrics := &BasicMetricsCollector{}

	g := pathGraph(t, 8)
	w, err := NewWalker[uint8](g, WithLogger(logger), WithMetrics(metrics))
	require.NoError(t, err)

	// A fresh tracker starts at generation 1 and each pass advances it, so
	// the 255th pass wraps the uint8 counter.
	ctx := context.Background()
	for pass := 0; pass < 300; pass++ {
		got, err := w.Reachable(ctx, uint32(pass%8))
		require.NoError(t, err)
		require.Equal(t, uint64(8), got.GetCardinality(), "pass %d", pass)
	}

	assert.GreaterOrEqual(t, metrics.GetStats().FullClears, int64(1))
	assert.Contains(t, buf.String(), "visited generation saturated")
	assert.Contains(t, buf.String(), "capacity=8")
}

func TestReportFullClear(t *testing.T) {
	var buf bytes.Buffer
	metrics := &BasicMetricsCollector{}
	o := applyOptions([]Option{
		WithLogger(NewLogger(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))),
		WithMetrics(metrics),
	})

	ctx := context.Background()
	assert.False(t, reportFullClear(ctx, &o, uint8(2), 16))
	assert.False(t, reportFullClear(ctx, &o, uint32(255), 16))
	assert.Equal(t, int64(0), metrics.GetStats().FullClears)
	assert.Empty(t, buf.String())

	assert.True(t, reportFullClear(ctx, &o, uint8(1), 16))
	assert.True(t, reportFullClear(ctx, &o, uint32(1), 32))
	assert.Equal(t, int64(2), metrics.GetStats().FullClears)
	assert.Equal(t, 2, strings.Count(buf.String(), "visited generation saturated"))
	assert.Contains(t, buf.String(), "capacity=32")
}

func TestWalker_Hops(t *testing.T) {
	rng := testutil.NewRNG(7)
	adj := rng.RandomGraph(100, 150)
	g := adjacencyFromLists(t, adj)

	w, err := NewWalker[uint16](g)
	require.NoError(t, err)

	ctx := context.Background()
	want := testutil.HopDistances(adj, 0)
	for to := range adj {
		got, err := w.Hops(ctx, 0, uint32(to))
		require.NoError(t, err)
		assert.Equal(t, want[to], got, "to %d", to)
	}
}

func TestWalker_Components(t *testing.T) {
	rng := testutil.NewRNG(99)
	adj := rng.ClusteredGraph(6, 40, 30)
	g := adjacencyFromLists(t, adj)

	w, err := NewWalker[uint16](g)
	require.NoError(t, err)

	labels, count, err := w.Components(context.Background())
	require.NoError(t, err)
	require.Len(t, labels, 240)
	assert.Equal(t, 6, count)

	for u, l := range labels {
		assert.Equal(t, uint32(u/40), l, "node %d", u)
	}
}

func TestWalker_ComponentsIsolated(t *testing.T) {
	g, err := NewAdjacency(4, []Edge{{1, 2}}, true)
	require.NoError(t, err)

	w, err := NewWalker[uint8](g)
	require.NoError(t, err)

	labels, count, err := w.Components(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.Equal(t, []uint32{0, 1, 1, 2}, labels)
}

func TestWalker_Errors(t *testing.T) {
	g := pathGraph(t, 3)
	w, err := NewWalker[uint16](g)
	require.NoError(t, err)

	ctx := context.Background()

	_, err = w.Reachable(ctx, 3)
	var oor *ErrNodeOutOfRange
	assert.True(t, errors.As(err, &oor))

	_, err = w.Hops(ctx, 0, 7)
	assert.True(t, errors.As(err, &oor))

	canceled, cancel := context.WithCancel(ctx)
	cancel()

	_, err = w.Reachable(canceled, 0)
	assert.ErrorIs(t, err, context.Canceled)

	_, _, err = w.Components(canceled)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWalker_ConcurrentPasses(t *testing.T) {
	rng := testutil.NewRNG(1)
	adj := rng.RandomGraph(200, 400)
	g := adjacencyFromLists(t, adj)

	w, err := NewWalker[uint16](g)
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				src := uint32((i*50 + j) % 200)
				got, err := w.Reachable(context.Background(), src)
				if err != nil {
					errs[i] = err
					return
				}
				if int(got.GetCardinality()) != len(testutil.ReachableSet(adj, []uint32{src})) {
					errs[i] = errors.New("reachable set mismatch")
					return
				}
			}
		}()
	}
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
}

func TestWalker_MetricsAndLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	metrics := &BasicMetricsCollector{}

	g := pathGraph(t, 4)
	w, err := NewWalker[uint16](g, WithLogger(logger), WithMetrics(metrics))
	require.NoError(t, err)

	ctx := context.Background()
	_, err = w.Reachable(ctx, 0)
	require.NoError(t, err)
	_, err = w.Reachable(ctx, 9)
	require.Error(t, err)

	stats := metrics.GetStats()
	assert.Equal(t, int64(2), stats.TraversalCount)
	assert.Equal(t, int64(1), stats.TraversalErrors)
	assert.Equal(t, int64(4), stats.NodesExpanded)

	assert.Contains(t, buf.String(), "traversal completed")
	assert.Contains(t, buf.String(), "traversal failed")
	assert.Contains(t, buf.String(), "kind=reachable")
}

func TestWalker_NilOptions(t *testing.T) {
	g := pathGraph(t, 2)
	w, err := NewWalker[uint16](g, WithLogger(nil), WithMetrics(nil))
	require.NoError(t, err)

	got, err := w.Reachable(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), got.GetCardinality())
}

func BenchmarkWalker_Reachable(b *testing.B) {
	rng := testutil.NewRNG(4711)
	adj := rng.RandomGraph(100_000, 300_000)
	g := adjacencyFromLists(b, adj)

	w, err := NewWalker[uint16](g)
	require.NoError(b, err)

	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := w.Reachable(ctx, uint32(i%100_000)); err != nil {
			b.Fatal(err)
		}
	}
}
