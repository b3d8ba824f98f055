package traverse

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting traversal metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordTraversal is called after each pass.
	// kind names the operation, nodes is the number of nodes expanded,
	// err is nil if successful.
	RecordTraversal(kind string, nodes int, duration time.Duration, err error)

	// RecordFullClear is called when a tracker generation saturated and the
	// whole counter array of the given capacity was rewritten.
	RecordFullClear(capacity int)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordTraversal(string, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordFullClear(int)                               {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	TraversalCount      atomic.Int64
	TraversalErrors     atomic.Int64
	TraversalTotalNanos atomic.Int64
	NodesExpanded       atomic.Int64
	FullClears          atomic.Int64
}

// RecordTraversal implements MetricsCollector.
func (b *BasicMetricsCollector) RecordTraversal(_ string, nodes int, duration time.Duration, err error) {
	b.TraversalCount.Add(1)
	b.TraversalTotalNanos.Add(duration.Nanoseconds())
	b.NodesExpanded.Add(int64(nodes))
	if err != nil {
		b.TraversalErrors.Add(1)
	}
}

// RecordFullClear implements MetricsCollector.
func (b *BasicMetricsCollector) RecordFullClear(int) {
	b.FullClears.Add(1)
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector.
type BasicMetricsStats struct {
	TraversalCount    int64
	TraversalErrors   int64
	NodesExpanded     int64
	FullClears        int64
	AvgTraversalNanos int64
}

// GetStats returns a snapshot of the collected metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	count := b.TraversalCount.Load()
	var avg int64
	if count > 0 {
		avg = b.TraversalTotalNanos.Load() / count
	}
	return BasicMetricsStats{
		TraversalCount:    count,
		TraversalErrors:   b.TraversalErrors.Load(),
		NodesExpanded:     b.NodesExpanded.Load(),
		FullClears:        b.FullClears.Load(),
		AvgTraversalNanos: avg,
	}
}
