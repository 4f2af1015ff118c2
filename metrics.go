package palign

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like
// Prometheus.
type MetricsCollector interface {
	// RecordAlign is called after each alignment. cells is the number of
	// DP cells computed (query length x reference length), duration the
	// total time taken, err nil on success.
	RecordAlign(cells int, duration time.Duration, err error)

	// RecordBatch is called after each batch alignment. count is the
	// number of references attempted, failed the number that failed.
	RecordBatch(count, failed int, duration time.Duration)

	// RecordProfileBuild is called after each profile construction.
	RecordProfileBuild(queryLen int, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordAlign(int, time.Duration, error) {}
func (NoopMetricsCollector) RecordBatch(int, int, time.Duration)   {}
func (NoopMetricsCollector) RecordProfileBuild(int, error)         {}

// BasicMetricsCollector provides simple in-memory metrics collection,
// useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	AlignCount      atomic.Int64
	AlignErrors     atomic.Int64
	AlignCells      atomic.Int64
	AlignTotalNanos atomic.Int64
	BatchCount      atomic.Int64
	BatchItems      atomic.Int64
	BatchFailed     atomic.Int64
	ProfileBuilds   atomic.Int64
	ProfileErrors   atomic.Int64
}

func (c *BasicMetricsCollector) RecordAlign(cells int, duration time.Duration, err error) {
	c.AlignCount.Add(1)
	c.AlignCells.Add(int64(cells))
	c.AlignTotalNanos.Add(int64(duration))
	if err != nil {
		c.AlignErrors.Add(1)
	}
}

func (c *BasicMetricsCollector) RecordBatch(count, failed int, duration time.Duration) {
	c.BatchCount.Add(1)
	c.BatchItems.Add(int64(count))
	c.BatchFailed.Add(int64(failed))
}

func (c *BasicMetricsCollector) RecordProfileBuild(queryLen int, err error) {
	c.ProfileBuilds.Add(1)
	if err != nil {
		c.ProfileErrors.Add(1)
	}
}

// AvgAlignNanos returns the mean alignment duration in nanoseconds, or 0
// when no alignments have been recorded.
func (c *BasicMetricsCollector) AvgAlignNanos() int64 {
	n := c.AlignCount.Load()
	if n == 0 {
		return 0
	}
	return c.AlignTotalNanos.Load() / n
}
