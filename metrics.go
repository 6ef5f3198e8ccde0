package nnscan

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordLaunch is called after each launch over n vectors on the given
	// number of lanes. err is nil if every index was scanned.
	RecordLaunch(n, lanes int, duration time.Duration, err error)

	// RecordUnmatched is called after each successful launch with the
	// number of indices that received the sentinel result.
	RecordUnmatched(count int)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordLaunch(int, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordUnmatched(int)                        {}

// BasicMetricsCollector provides simple in-memory metrics collection.
type BasicMetricsCollector struct {
	LaunchCount      atomic.Int64
	LaunchErrors     atomic.Int64
	LaunchTotalNanos atomic.Int64
	VectorsScanned   atomic.Int64
	UnmatchedVectors atomic.Int64
}

// RecordLaunch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLaunch(n, lanes int, duration time.Duration, err error) {
	b.LaunchCount.Add(1)
	b.LaunchTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.LaunchErrors.Add(1)
		return
	}
	b.VectorsScanned.Add(int64(n))
}

// RecordUnmatched implements MetricsCollector.
func (b *BasicMetricsCollector) RecordUnmatched(count int) {
	b.UnmatchedVectors.Add(int64(count))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	count := b.LaunchCount.Load()
	var avg int64
	if count > 0 {
		avg = b.LaunchTotalNanos.Load() / count
	}
	return BasicMetricsStats{
		LaunchCount:      count,
		LaunchErrors:     b.LaunchErrors.Load(),
		LaunchAvgNanos:   avg,
		VectorsScanned:   b.VectorsScanned.Load(),
		UnmatchedVectors: b.UnmatchedVectors.Load(),
	}
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	LaunchCount      int64
	LaunchErrors     int64
	LaunchAvgNanos   int64
	VectorsScanned   int64
	UnmatchedVectors int64
}
