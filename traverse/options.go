package traverse

import (
	"runtime"

	"github.com/hupe1980/visited/resource"
)

type options struct {
	logger     *Logger
	metrics    MetricsCollector
	controller *resource.Controller
	workers    int
	exact      bool
}

// Option configures walker behavior.
type Option func(*options)

func applyOptions(optFns []Option) options {
	o := options{
		logger:  NoopLogger(),
		metrics: NoopMetricsCollector{},
		workers: runtime.GOMAXPROCS(0),
	}
	for _, fn := range optFns {
		fn(&o)
	}
	return o
}

// WithLogger sets the logger. If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetrics sets the metrics collector. If nil is passed, metrics are disabled.
func WithMetrics(m MetricsCollector) Option {
	return func(o *options) {
		if m == nil {
			m = NoopMetricsCollector{}
		}
		o.metrics = m
	}
}

// WithController shares memory and worker budgets with other walkers.
func WithController(c *resource.Controller) Option {
	return func(o *options) {
		o.controller = c
	}
}

// WithWorkers sets the number of workers per BFS level of a ParallelWalker.
// Values <= 0 select GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n <= 0 {
			n = runtime.GOMAXPROCS(0)
		}
		o.workers = n
	}
}

// WithExactVisits makes a ParallelWalker mark through per-slot atomics so
// that every node is expanded exactly once.
func WithExactVisits() Option {
	return func(o *options) {
		o.exact = true
	}
}
