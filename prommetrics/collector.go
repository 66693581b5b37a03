// Package prommetrics exports activeset I/O metrics to Prometheus.
package prommetrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hupe1980/activeset"
)

var _ activeset.MetricsCollector = (*Collector)(nil)

// Collector implements activeset.MetricsCollector.
type Collector struct {
	latency  *prometheus.HistogramVec
	ops      *prometheus.CounterVec
	elements *prometheus.CounterVec
	chunks   *prometheus.CounterVec
	bytes    *prometheus.CounterVec
}

// NewCollector creates the metrics under namespace and registers them with
// reg. An empty namespace defaults to "activeset".
func NewCollector(reg prometheus.Registerer, namespace string) *Collector {
	if namespace == "" {
		namespace = "activeset"
	}
	c := &Collector{
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_latency_seconds",
			Help:      "Latency of partial vector reads and writes",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op", "status"}),
		ops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Total partial vector reads and writes",
		}, []string{"op", "status"}),
		elements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "active_elements_total",
			Help:      "Total active elements transferred",
		}, []string{"op"}),
		chunks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chunks_total",
			Help:      "Total stored chunks touched",
		}, []string{"op"}),
		bytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stored_bytes_total",
			Help:      "Total stored bytes fetched or written",
		}, []string{"op"}),
	}

	reg.MustRegister(c.latency, c.ops, c.elements, c.chunks, c.bytes)
	return c
}

// RecordRead implements activeset.MetricsCollector.
func (c *Collector) RecordRead(stats activeset.IOStats, d time.Duration, err error) {
	c.record("read", stats, d, err)
}

// RecordWrite implements activeset.MetricsCollector.
func (c *Collector) RecordWrite(stats activeset.IOStats, d time.Duration, err error) {
	c.record("write", stats, d, err)
}

func (c *Collector) record(op string, stats activeset.IOStats, d time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	c.latency.WithLabelValues(op, status).Observe(d.Seconds())
	c.ops.WithLabelValues(op, status).Inc()
	if err != nil {
		return
	}
	c.elements.WithLabelValues(op).Add(float64(stats.Active))
	c.chunks.WithLabelValues(op).Add(float64(stats.Chunks))
	c.bytes.WithLabelValues(op).Add(float64(stats.Bytes))
}
