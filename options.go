package truemapper

import "runtime"

// Option configures a mapping engine.
type Option func(*Options)

// Options holds all configuration for a mapping engine. Options are read-only
// during a traversal; they may be changed between calls but must not be
// mutated while a mapping is in flight.
type Options struct {
	// Safety limits
	DetectCycles bool
	MaxDepth     int

	// Null handling: when true an absent source maps to an absent
	// destination; when false it maps to a default-constructed one.
	PropagateNulls bool

	// Observability
	CollectMetrics bool

	// Performance
	WorkerCount    int
	ShapeCacheSize int
}

// DefaultOptions returns the default configuration.
func DefaultOptions() *Options {
	return &Options{
		DetectCycles:   true,
		MaxDepth:       64,
		PropagateNulls: false,

		CollectMetrics: true,

		WorkerCount:    runtime.NumCPU(),
		ShapeCacheSize: 1024,
	}
}

// Apply applies the given functional options and returns the receiver.
func (o *Options) Apply(opts ...Option) *Options {
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// --- Safety Options ---

// WithCycleDetection enables or disables reference-cycle detection. With
// detection disabled, MaxDepth is the only guard against self-referential
// graphs.
func WithCycleDetection(enable bool) Option {
	return func(o *Options) {
		o.DetectCycles = enable
	}
}

// WithMaxDepth sets the maximum recursion depth. Branches of the source
// graph deeper than this are truncated silently. Values below 1 are ignored.
func WithMaxDepth(depth int) Option {
	return func(o *Options) {
		if depth >= 1 {
			o.MaxDepth = depth
		}
	}
}

// WithNullPropagation controls how absent sources map: true yields an absent
// destination, false yields a default-constructed one.
func WithNullPropagation(enable bool) Option {
	return func(o *Options) {
		o.PropagateNulls = enable
	}
}

// --- Observability Options ---

// WithMetrics enables or disables metrics collection.
func WithMetrics(enable bool) Option {
	return func(o *Options) {
		o.CollectMetrics = enable
	}
}

// --- Performance Options ---

// WithWorkerCount sets the number of workers used for parallel batch
// mapping. Defaults to runtime.NumCPU().
func WithWorkerCount(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.WorkerCount = n
		}
	}
}

// WithShapeCacheSize sets the capacity of the shape-descriptor cache. The
// cache is process-wide, shared by every mapper: constructing a mapper with
// a non-default size replaces the cache for all of them, and the most
// recently constructed mapper's setting wins.
func WithShapeCacheSize(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.ShapeCacheSize = n
		}
	}
}
