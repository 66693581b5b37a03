package activeset

import (
	"sync/atomic"
	"time"
)

// IOStats describes one partial transfer against a stored vector.
type IOStats struct {
	// Active is the number of elements transferred.
	Active int
	// Chunks is the number of stored chunks touched.
	Chunks int
	// Bytes is the number of stored bytes fetched or written.
	Bytes int64
}

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems; the
// prommetrics package ships a Prometheus implementation.
type MetricsCollector interface {
	// RecordRead is called after each partial read.
	// err is nil if successful, in which case stats is populated.
	RecordRead(stats IOStats, duration time.Duration, err error)

	// RecordWrite is called after each full or partial write.
	RecordWrite(stats IOStats, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordRead(IOStats, time.Duration, error)  {}
func (NoopMetricsCollector) RecordWrite(IOStats, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and tests without external dependencies.
type BasicMetricsCollector struct {
	ReadCount      atomic.Int64
	ReadErrors     atomic.Int64
	ReadElements   atomic.Int64
	ReadChunks     atomic.Int64
	ReadBytes      atomic.Int64
	ReadTotalNanos atomic.Int64
	WriteCount     atomic.Int64
	WriteErrors    atomic.Int64
	WriteElements  atomic.Int64
	WriteChunks    atomic.Int64
	WriteBytes     atomic.Int64
}

// RecordRead implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRead(stats IOStats, duration time.Duration, err error) {
	b.ReadCount.Add(1)
	b.ReadTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.ReadErrors.Add(1)
		return
	}
	b.ReadElements.Add(int64(stats.Active))
	b.ReadChunks.Add(int64(stats.Chunks))
	b.ReadBytes.Add(stats.Bytes)
}

// RecordWrite implements MetricsCollector.
func (b *BasicMetricsCollector) RecordWrite(stats IOStats, _ time.Duration, err error) {
	b.WriteCount.Add(1)
	if err != nil {
		b.WriteErrors.Add(1)
		return
	}
	b.WriteElements.Add(int64(stats.Active))
	b.WriteChunks.Add(int64(stats.Chunks))
	b.WriteBytes.Add(stats.Bytes)
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		ReadCount:     b.ReadCount.Load(),
		ReadErrors:    b.ReadErrors.Load(),
		ReadElements:  b.ReadElements.Load(),
		ReadChunks:    b.ReadChunks.Load(),
		ReadBytes:     b.ReadBytes.Load(),
		ReadAvgNanos:  b.getAvgReadNanos(),
		WriteCount:    b.WriteCount.Load(),
		WriteErrors:   b.WriteErrors.Load(),
		WriteElements: b.WriteElements.Load(),
		WriteChunks:   b.WriteChunks.Load(),
		WriteBytes:    b.WriteBytes.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgReadNanos() int64 {
	count := b.ReadCount.Load()
	if count == 0 {
		return 0
	}
	return b.ReadTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	ReadCount     int64
	ReadErrors    int64
	ReadElements  int64
	ReadChunks    int64
	ReadBytes     int64
	ReadAvgNanos  int64
	WriteCount    int64
	WriteErrors   int64
	WriteElements int64
	WriteChunks   int64
	WriteBytes    int64
}
