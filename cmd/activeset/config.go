package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"gopkg.in/yaml.v3"

	"github.com/hupe1980/activeset"
	"github.com/hupe1980/activeset/blobstore"
	miniostore "github.com/hupe1980/activeset/blobstore/minio"
	s3store "github.com/hupe1980/activeset/blobstore/s3"
	"github.com/hupe1980/activeset/codec"
	"github.com/hupe1980/activeset/vectorfile"
)

// Config is the optional YAML configuration file.
type Config struct {
	Store   StoreConfig   `yaml:"store"`
	Write   WriteConfig   `yaml:"write"`
	Read    ReadConfig    `yaml:"read"`
	Log     LogConfig     `yaml:"log"`
	Metrics MetricsConfig `yaml:"metrics"`
	Codec   string        `yaml:"codec"`
}

// StoreConfig selects the blob store backend.
type StoreConfig struct {
	Type      string `yaml:"type"` // local, minio or s3
	Root      string `yaml:"root"`
	Bucket    string `yaml:"bucket"`
	Prefix    string `yaml:"prefix"`
	Endpoint  string `yaml:"endpoint"`
	Region    string `yaml:"region"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Secure    bool   `yaml:"secure"`
}

// WriteConfig holds defaults for new vector blobs.
type WriteConfig struct {
	ChunkElements int    `yaml:"chunk_elements"`
	Compression   string `yaml:"compression"`
}

// ReadConfig tunes chunk fetching.
type ReadConfig struct {
	Concurrency int   `yaml:"concurrency"`
	LimitBytes  int64 `yaml:"limit_bytes"`
}

// LogConfig configures the slog handler.
type LogConfig struct {
	Format string `yaml:"format"` // text or json
	Level  string `yaml:"level"`
}

// MetricsConfig enables Prometheus metrics. When File is set, the counters of
// each run are written there in the text exposition format, ready for the
// node_exporter textfile collector.
type MetricsConfig struct {
	File string `yaml:"file"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Store: StoreConfig{Type: "local", Root: "."},
		Write: WriteConfig{
			ChunkElements: vectorfile.DefaultChunkElements,
			Compression:   vectorfile.CompressionLZ4.String(),
		},
		Read:  ReadConfig{Concurrency: vectorfile.DefaultConcurrency},
		Log:   LogConfig{Format: "text", Level: "warn"},
		Codec: codec.Default.Name(),
	}
}

// loadConfig reads path over the defaults. An empty path returns the defaults.
func loadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) openStore(ctx context.Context) (blobstore.BlobStore, error) {
	switch strings.ToLower(c.Store.Type) {
	case "", "local":
		return blobstore.NewLocalStore(c.Store.Root), nil
	case "minio":
		creds := credentials.NewEnvMinio()
		if c.Store.AccessKey != "" {
			creds = credentials.NewStaticV4(c.Store.AccessKey, c.Store.SecretKey, "")
		}
		client, err := minio.New(c.Store.Endpoint, &minio.Options{
			Creds:  creds,
			Secure: c.Store.Secure,
			Region: c.Store.Region,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create minio client: %w", err)
		}
		return miniostore.NewStore(client, c.Store.Bucket, c.Store.Prefix), nil
	case "s3":
		var opts []s3store.Option
		if c.Store.Prefix != "" {
			opts = append(opts, s3store.WithPrefix(c.Store.Prefix))
		}
		if c.Store.Region != "" {
			opts = append(opts, s3store.WithRegion(c.Store.Region))
		}
		if c.Store.Endpoint != "" {
			opts = append(opts, s3store.WithEndpoint(c.Store.Endpoint))
		}
		return s3store.New(ctx, c.Store.Bucket, opts...)
	default:
		return nil, fmt.Errorf("unknown store type %q", c.Store.Type)
	}
}

func (c Config) newCodec() (codec.Codec, error) {
	cd, ok := codec.ByName(c.Codec)
	if !ok {
		return nil, fmt.Errorf("unknown codec %q", c.Codec)
	}
	return cd, nil
}

func (c Config) logger(w io.Writer) (*activeset.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "", "text":
		return activeset.NewTextLogger(w, level), nil
	case "json":
		return activeset.NewJSONLogger(w, level), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", c.Log.Format)
	}
}

func (c Config) options(logger *activeset.Logger, metrics activeset.MetricsCollector) ([]vectorfile.Option, error) {
	comp, err := vectorfile.ParseCompression(c.Write.Compression)
	if err != nil {
		return nil, err
	}
	return []vectorfile.Option{
		vectorfile.WithChunkElements(c.Write.ChunkElements),
		vectorfile.WithCompression(comp),
		vectorfile.WithConcurrency(c.Read.Concurrency),
		vectorfile.WithReadLimit(c.Read.LimitBytes),
		vectorfile.WithLogger(logger),
		vectorfile.WithMetrics(metrics),
	}, nil
}

// multiCollector fans every observation out to all collectors.
type multiCollector []activeset.MetricsCollector

func (m multiCollector) RecordRead(stats activeset.IOStats, d time.Duration, err error) {
	for _, c := range m {
		c.RecordRead(stats, d, err)
	}
}

func (m multiCollector) RecordWrite(stats activeset.IOStats, d time.Duration, err error) {
	for _, c := range m {
		c.RecordWrite(stats, d, err)
	}
}
