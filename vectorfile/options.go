package vectorfile

import (
	"github.com/hupe1980/activeset"
)

const (
	// DefaultChunkElements is the number of elements per chunk.
	DefaultChunkElements = 4096
	// DefaultConcurrency is the number of chunks fetched in parallel.
	DefaultConcurrency = 8
)

type options struct {
	chunkElements int
	compression   Compression
	concurrency   int
	readLimit     int64
	logger        *activeset.Logger
	metrics       activeset.MetricsCollector
}

func defaultOptions() options {
	return options{
		chunkElements: DefaultChunkElements,
		compression:   CompressionLZ4,
		concurrency:   DefaultConcurrency,
	}
}

func applyOptions(optFns []Option) options {
	o := defaultOptions()
	for _, fn := range optFns {
		fn(&o)
	}
	if o.logger == nil {
		o.logger = activeset.NoopLogger()
	}
	if o.metrics == nil {
		o.metrics = activeset.NoopMetricsCollector{}
	}
	return o
}

// Option configures Write, Open and WriteActive.
type Option func(*options)

// WithChunkElements sets the number of elements per chunk for new files.
// Values <= 0 keep the default.
func WithChunkElements(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.chunkElements = n
		}
	}
}

// WithCompression sets the chunk compression for new files.
// WriteActive keeps the compression of the existing file.
func WithCompression(c Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithConcurrency sets how many chunks are fetched in parallel.
// Values <= 0 keep the default.
func WithConcurrency(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.concurrency = n
		}
	}
}

// WithReadLimit caps chunk fetches at bytesPerSec. Zero disables the limit.
func WithReadLimit(bytesPerSec int64) Option {
	return func(o *options) {
		o.readLimit = bytesPerSec
	}
}

// WithLogger sets the logger. If nil, logging is disabled.
func WithLogger(l *activeset.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithMetrics sets the metrics collector. If nil, metrics are discarded.
func WithMetrics(m activeset.MetricsCollector) Option {
	return func(o *options) {
		o.metrics = m
	}
}
