// Package config provides application configuration.
package config

import (
	"log/slog"
	"runtime"
	"time"
)

// Default configuration values.
const (
	DefaultLogLevel          = "INFO"
	DefaultSourceLang        = "en"
	DefaultTargetLang        = "it"
	DefaultBatchSize         = 10000
	DefaultBufferSize        = 64 * 1024
	DefaultMaxLineLength     = 0
	DefaultReportingInterval = 5 * time.Second
)

// DefaultWorkerCount returns the default number of tokenization workers.
func DefaultWorkerCount() int {
	return runtime.GOMAXPROCS(0)
}

// LogFormat represents the log output format.
type LogFormat string

// LogFormat values.
const (
	LogFormatPretty LogFormat = "pretty"
	LogFormatJSON   LogFormat = "json"
)

// ReportingConfig configures progress reporting.
type ReportingConfig struct {
	logTimeInterval time.Duration
}

// NewReportingConfig creates a new ReportingConfig with defaults.
func NewReportingConfig() ReportingConfig {
	return ReportingConfig{
		logTimeInterval: DefaultReportingInterval,
	}
}

// LogTimeInterval returns the minimum time between progress log lines.
func (r ReportingConfig) LogTimeInterval() time.Duration {
	return r.logTimeInterval
}

// WithLogTimeInterval returns a new config with the specified interval.
func (r ReportingConfig) WithLogTimeInterval(d time.Duration) ReportingConfig {
	r.logTimeInterval = d
	return r
}

// ReaderConfig configures how corpora are read.
type ReaderConfig struct {
	maxLineLength  int
	skipEmptyLines bool
	batchSize      int
	workerCount    int
	bufferSize     int
}

// NewReaderConfig creates a new ReaderConfig with defaults.
func NewReaderConfig() ReaderConfig {
	return ReaderConfig{
		maxLineLength: DefaultMaxLineLength,
		batchSize:     DefaultBatchSize,
		workerCount:   DefaultWorkerCount(),
		bufferSize:    DefaultBufferSize,
	}
}

// MaxLineLength returns the token limit per side; zero disables it.
func (r ReaderConfig) MaxLineLength() int { return r.maxLineLength }

// SkipEmptyLines returns whether pairs with an empty side are dropped.
func (r ReaderConfig) SkipEmptyLines() bool { return r.skipEmptyLines }

// BatchSize returns the number of line pairs per batched read.
func (r ReaderConfig) BatchSize() int { return r.batchSize }

// WorkerCount returns the number of tokenization workers per batch.
func (r ReaderConfig) WorkerCount() int { return r.workerCount }

// BufferSize returns the per-file read buffer size in bytes.
func (r ReaderConfig) BufferSize() int { return r.bufferSize }

// WithMaxLineLength returns a new config with the specified limit.
func (r ReaderConfig) WithMaxLineLength(n int) ReaderConfig {
	if n >= 0 {
		r.maxLineLength = n
	}
	return r
}

// WithSkipEmptyLines returns a new config with the specified skip state.
func (r ReaderConfig) WithSkipEmptyLines(skip bool) ReaderConfig {
	r.skipEmptyLines = skip
	return r
}

// WithBatchSize returns a new config with the specified batch size.
func (r ReaderConfig) WithBatchSize(n int) ReaderConfig {
	if n > 0 {
		r.batchSize = n
	}
	return r
}

// WithWorkerCount returns a new config with the specified worker count.
func (r ReaderConfig) WithWorkerCount(n int) ReaderConfig {
	if n > 0 {
		r.workerCount = n
	}
	return r
}

// WithBufferSize returns a new config with the specified buffer size.
func (r ReaderConfig) WithBufferSize(n int) ReaderConfig {
	if n > 0 {
		r.bufferSize = n
	}
	return r
}

// AppConfig holds the main application configuration.
type AppConfig struct {
	logLevel   string
	logFormat  LogFormat
	sourceLang string
	targetLang string
	reader     ReaderConfig
	reporting  ReportingConfig
}

// NewAppConfig creates a new AppConfig with defaults.
func NewAppConfig() AppConfig {
	return AppConfig{
		logLevel:   DefaultLogLevel,
		logFormat:  LogFormatPretty,
		sourceLang: DefaultSourceLang,
		targetLang: DefaultTargetLang,
		reader:     NewReaderConfig(),
		reporting:  NewReportingConfig(),
	}
}

// LogLevel returns the log level.
func (c AppConfig) LogLevel() string { return c.logLevel }

// LogFormat returns the log format.
func (c AppConfig) LogFormat() LogFormat { return c.logFormat }

// SourceLang returns the source language file suffix.
func (c AppConfig) SourceLang() string { return c.sourceLang }

// TargetLang returns the target language file suffix.
func (c AppConfig) TargetLang() string { return c.targetLang }

// Reader returns the reader config.
func (c AppConfig) Reader() ReaderConfig { return c.reader }

// Reporting returns the reporting config.
func (c AppConfig) Reporting() ReportingConfig { return c.reporting }

// AppConfigOption is a functional option for AppConfig.
type AppConfigOption func(*AppConfig)

// WithLogLevel sets the log level.
func WithLogLevel(level string) AppConfigOption {
	return func(c *AppConfig) { c.logLevel = level }
}

// WithLogFormat sets the log format.
func WithLogFormat(format LogFormat) AppConfigOption {
	return func(c *AppConfig) { c.logFormat = format }
}

// WithSourceLang sets the source language suffix.
func WithSourceLang(lang string) AppConfigOption {
	return func(c *AppConfig) { c.sourceLang = lang }
}

// WithTargetLang sets the target language suffix.
func WithTargetLang(lang string) AppConfigOption {
	return func(c *AppConfig) { c.targetLang = lang }
}

// WithReaderConfig sets the reader config.
func WithReaderConfig(r ReaderConfig) AppConfigOption {
	return func(c *AppConfig) { c.reader = r }
}

// WithReportingConfig sets the reporting config.
func WithReportingConfig(r ReportingConfig) AppConfigOption {
	return func(c *AppConfig) { c.reporting = r }
}

// NewAppConfigWithOptions creates an AppConfig with functional options.
func NewAppConfigWithOptions(opts ...AppConfigOption) AppConfig {
	c := NewAppConfig()
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Apply returns a new AppConfig with the given options applied.
func (c AppConfig) Apply(opts ...AppConfigOption) AppConfig {
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// LogAttrs returns slog attributes for logging the configuration.
func (c AppConfig) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.String("log_level", c.logLevel),
		slog.String("source_lang", c.sourceLang),
		slog.String("target_lang", c.targetLang),
		slog.Int("max_line_length", c.reader.maxLineLength),
		slog.Bool("skip_empty_lines", c.reader.skipEmptyLines),
		slog.Int("batch_size", c.reader.batchSize),
		slog.Int("workers", c.reader.workerCount),
		slog.Duration("reporting_interval", c.reporting.logTimeInterval),
	}
}
