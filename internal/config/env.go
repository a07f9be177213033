// Package config provides application configuration.
package config

import (
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvConfig holds all environment-based configuration.
// Nested structs use underscore delimiter (e.g., REPORTING_LOG_TIME_INTERVAL).
type EnvConfig struct {
	// LogLevel is the log verbosity level.
	// Env: LOG_LEVEL (default: INFO)
	LogLevel string `envconfig:"LOG_LEVEL" default:"INFO"`

	// LogFormat is the log output format (pretty or json).
	// Env: LOG_FORMAT (default: pretty)
	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	// SourceLang is the file suffix of source-language files.
	// Env: SOURCE_LANG (default: en)
	SourceLang string `envconfig:"SOURCE_LANG" default:"en"`

	// TargetLang is the file suffix of target-language files.
	// Env: TARGET_LANG (default: it)
	TargetLang string `envconfig:"TARGET_LANG" default:"it"`

	// MaxLineLength drops pairs with more tokens than this on either side.
	// Env: MAX_LINE_LENGTH (default: 0, disabled)
	MaxLineLength int `envconfig:"MAX_LINE_LENGTH" default:"0"`

	// SkipEmptyLines drops pairs where either side is empty.
	// Env: SKIP_EMPTY_LINES (default: false)
	SkipEmptyLines bool `envconfig:"SKIP_EMPTY_LINES" default:"false"`

	// BatchSize is the number of line pairs per batched read.
	// Env: BATCH_SIZE (default: 10000)
	BatchSize int `envconfig:"BATCH_SIZE" default:"10000"`

	// WorkerCount is the number of tokenization workers.
	// Env: WORKER_COUNT (default: 0, one per CPU)
	WorkerCount int `envconfig:"WORKER_COUNT" default:"0"`

	// BufferSize is the per-file read buffer in bytes.
	// Env: BUFFER_SIZE (default: 65536)
	BufferSize int `envconfig:"BUFFER_SIZE" default:"65536"`

	// Reporting configures progress reporting.
	Reporting ReportingEnv `envconfig:"REPORTING"`
}

// ReportingEnv holds environment configuration for reporting.
type ReportingEnv struct {
	// LogTimeInterval is the logging interval in seconds.
	// Env: REPORTING_LOG_TIME_INTERVAL (default: 5)
	LogTimeInterval float64 `envconfig:"LOG_TIME_INTERVAL" default:"5"`
}

// LoadFromEnv loads configuration from environment variables.
// It uses no prefix.
func LoadFromEnv() (EnvConfig, error) {
	var cfg EnvConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return EnvConfig{}, err
	}
	return cfg, nil
}

// LoadFromEnvWithPrefix loads configuration with a custom prefix.
// For example, prefix "BITEXT" would require BITEXT_SOURCE_LANG instead of SOURCE_LANG.
func LoadFromEnvWithPrefix(prefix string) (EnvConfig, error) {
	var cfg EnvConfig
	if err := envconfig.Process(prefix, &cfg); err != nil {
		return EnvConfig{}, err
	}
	return cfg, nil
}

// ToAppConfig converts EnvConfig to AppConfig.
func (e EnvConfig) ToAppConfig() AppConfig {
	cfg := NewAppConfig()

	if e.LogLevel != "" {
		cfg = applyOption(cfg, WithLogLevel(e.LogLevel))
	}
	if e.LogFormat != "" {
		cfg = applyOption(cfg, WithLogFormat(parseLogFormat(e.LogFormat)))
	}
	if e.SourceLang != "" {
		cfg = applyOption(cfg, WithSourceLang(e.SourceLang))
	}
	if e.TargetLang != "" {
		cfg = applyOption(cfg, WithTargetLang(e.TargetLang))
	}

	reader := cfg.Reader().
		WithMaxLineLength(e.MaxLineLength).
		WithSkipEmptyLines(e.SkipEmptyLines).
		WithBatchSize(e.BatchSize).
		WithWorkerCount(e.WorkerCount).
		WithBufferSize(e.BufferSize)
	cfg = applyOption(cfg, WithReaderConfig(reader))

	cfg = applyOption(cfg, WithReportingConfig(e.Reporting.ToReportingConfig()))

	return cfg
}

// applyOption applies an option to the config.
func applyOption(cfg AppConfig, opt AppConfigOption) AppConfig {
	opt(&cfg)
	return cfg
}

// ToReportingConfig converts ReportingEnv to ReportingConfig.
func (r ReportingEnv) ToReportingConfig() ReportingConfig {
	if r.LogTimeInterval <= 0 {
		return NewReportingConfig()
	}
	return NewReportingConfig().
		WithLogTimeInterval(time.Duration(r.LogTimeInterval * float64(time.Second)))
}

// parseLogFormat parses a log format string.
func parseLogFormat(s string) LogFormat {
	switch strings.ToLower(s) {
	case "json":
		return LogFormatJSON
	default:
		return LogFormatPretty
	}
}
