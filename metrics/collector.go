// Package metrics exports alder scheduler statistics as Prometheus metrics.
package metrics

import (
	"sync"

	"github.com/phanxgames/alder"

	"github.com/prometheus/client_golang/prometheus"
)

// snapshot is one observation of the scheduler's state.
type snapshot struct {
	metrics alder.SchedulerMetrics
	pending int
}

// SchedulerCollector exposes an alder scheduler's counters to Prometheus.
//
// The scheduler is single-threaded, so the collector never reads it
// directly: the host's update loop pushes state with Observe, and scrapes
// (which arrive on other goroutines) read the latest snapshot.
type SchedulerCollector struct {
	mu   sync.Mutex
	last snapshot

	batches   *prometheus.Desc
	updates   *prometheus.Desc
	dropped   *prometheus.Desc
	frameTime *prometheus.Desc
	pending   *prometheus.Desc
}

// NewSchedulerCollector creates a collector. Register it with a Prometheus
// registry and feed it from the update loop:
//
//	col := metrics.NewSchedulerCollector()
//	prometheus.MustRegister(col)
//	// per tick:
//	col.Observe(editor.Scheduler())
func NewSchedulerCollector() *SchedulerCollector {
	return &SchedulerCollector{
		batches: prometheus.NewDesc(
			prometheus.BuildFQName("alder", "scheduler", "batches_total"),
			"Total number of frames flushed by the scheduler.",
			nil, nil,
		),
		updates: prometheus.NewDesc(
			prometheus.BuildFQName("alder", "scheduler", "updates_total"),
			"Total number of updates enqueued, superseded ones included.",
			nil, nil,
		),
		dropped: prometheus.NewDesc(
			prometheus.BuildFQName("alder", "scheduler", "dropped_frames_total"),
			"Total number of flushes that overran the frame budget.",
			nil, nil,
		),
		frameTime: prometheus.NewDesc(
			prometheus.BuildFQName("alder", "scheduler", "frame_time_seconds"),
			"Average flush processing time in seconds.",
			nil, nil,
		),
		pending: prometheus.NewDesc(
			prometheus.BuildFQName("alder", "scheduler", "pending_updates"),
			"Updates awaiting the next flush as of the last observation.",
			nil, nil,
		),
	}
}

// Observe snapshots the scheduler's current state for the next scrape. Call
// it from the update loop, typically once per tick.
func (c *SchedulerCollector) Observe(s *alder.Scheduler) {
	snap := snapshot{metrics: s.Metrics(), pending: s.Pending()}
	c.mu.Lock()
	c.last = snap
	c.mu.Unlock()
}

// Describe implements prometheus.Collector.
func (c *SchedulerCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.batches
	ch <- c.updates
	ch <- c.dropped
	ch <- c.frameTime
	ch <- c.pending
}

// Collect implements prometheus.Collector.
func (c *SchedulerCollector) Collect(ch chan<- prometheus.Metric) {
	c.mu.Lock()
	snap := c.last
	c.mu.Unlock()

	ch <- prometheus.MustNewConstMetric(c.batches, prometheus.CounterValue,
		float64(snap.metrics.TotalBatches))
	ch <- prometheus.MustNewConstMetric(c.updates, prometheus.CounterValue,
		float64(snap.metrics.TotalUpdates))
	ch <- prometheus.MustNewConstMetric(c.dropped, prometheus.CounterValue,
		float64(snap.metrics.DroppedFrames))
	ch <- prometheus.MustNewConstMetric(c.frameTime, prometheus.GaugeValue,
		snap.metrics.AverageFrameTime.Seconds())
	ch <- prometheus.MustNewConstMetric(c.pending, prometheus.GaugeValue,
		float64(snap.pending))
}
