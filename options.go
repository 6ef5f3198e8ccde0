package nnscan

import (
	"github.com/hupe1980/nnscan/internal/lane"
	"github.com/hupe1980/nnscan/resource"
)

type options struct {
	lanes            int
	chunkSize        int
	logger           *Logger
	metricsCollector MetricsCollector
	controller       *resource.Controller
	progress         ProgressReporter

	// kernel is the per-index task. Tests replace it to inject failures.
	kernel func(b *Batch, i int) Match
}

func defaultOptions() options {
	return options{
		lanes:            lane.DefaultLanes(),
		chunkSize:        lane.DefaultChunkSize,
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
		progress:         noopProgress{},
		kernel:           Scan,
	}
}

// Option configures a Launcher.
type Option func(*options)

// WithLanes sets the maximum number of goroutines scanning concurrently.
// n <= 0 selects runtime.GOMAXPROCS(0).
func WithLanes(n int) Option {
	return func(o *options) {
		if n <= 0 {
			n = lane.DefaultLanes()
		}
		o.lanes = n
	}
}

// WithChunkSize sets how many consecutive indices a lane scans per unit
// of work. n <= 0 selects the default of 256.
func WithChunkSize(n int) Option {
	return func(o *options) {
		if n <= 0 {
			n = lane.DefaultChunkSize
		}
		o.chunkSize = n
	}
}

// WithLogger configures structured logging of launches.
//
// If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector configures the metrics sink.
//
// If nil is passed, metrics are discarded.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithResourceController bounds launches by a shared resource controller.
func WithResourceController(c *resource.Controller) Option {
	return func(o *options) {
		o.controller = c
	}
}

// WithProgress reports launch progress to p.
func WithProgress(p ProgressReporter) Option {
	return func(o *options) {
		if p == nil {
			p = noopProgress{}
		}
		o.progress = p
	}
}
