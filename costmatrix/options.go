package costmatrix

import "github.com/rs/zerolog"

// DefaultWorkers is the width of the RunAll evaluation pool.
const DefaultWorkers = 4

const panicWorkersInvalid = "costmatrix: WithWorkers: n must be > 0"

// Option configures a CostMatrix.
type Option func(*options)

type options struct {
	workers int
	logger  zerolog.Logger
	metrics *Metrics
}

// WithWorkers sets the number of concurrent evaluators used by RunAll.
// Panics if n <= 0 (programmer error).
func WithWorkers(n int) Option {
	if n <= 0 {
		panic(panicWorkersInvalid)
	}

	return func(o *options) { o.workers = n }
}

// WithLogger attaches a logger. Batch start/finish are logged at Info,
// individual failures at Debug.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithMetrics reports evaluations to m. A nil m disables metrics.
func WithMetrics(m *Metrics) Option {
	return func(o *options) { o.metrics = m }
}

func gatherOptions(opts ...Option) options {
	o := options{
		workers: DefaultWorkers,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}
