package bitext

import (
	"log/slog"

	"github.com/helixml/bitext/domain/corpus"
	"github.com/helixml/bitext/internal/config"
)

// clientConfig holds configuration for Client construction.
type clientConfig struct {
	app        config.AppConfig
	vocabulary corpus.Vocabulary
	logger     *slog.Logger
}

func newClientConfig() *clientConfig {
	return &clientConfig{app: config.NewAppConfig()}
}

// Option configures the Client.
type Option func(*clientConfig)

// WithConfig replaces the whole configuration, typically one loaded with
// config.LoadConfig. Options after it still apply on top.
func WithConfig(cfg config.AppConfig) Option {
	return func(c *clientConfig) { c.app = cfg }
}

// WithLanguages sets the source and target file suffixes.
func WithLanguages(source, target string) Option {
	return func(c *clientConfig) {
		c.app = c.app.Apply(config.WithSourceLang(source), config.WithTargetLang(target))
	}
}

// WithMaxLineLength drops pairs with more than n tokens on either side.
// Zero disables the limit.
func WithMaxLineLength(n int) Option {
	return func(c *clientConfig) {
		c.app = c.app.Apply(config.WithReaderConfig(c.app.Reader().WithMaxLineLength(n)))
	}
}

// WithSkipEmptyLines drops pairs where either side is empty.
func WithSkipEmptyLines(skip bool) Option {
	return func(c *clientConfig) {
		c.app = c.app.Apply(config.WithReaderConfig(c.app.Reader().WithSkipEmptyLines(skip)))
	}
}

// WithBatchSize sets the number of line pairs per batched read.
// Values <= 0 are ignored.
func WithBatchSize(n int) Option {
	return func(c *clientConfig) {
		c.app = c.app.Apply(config.WithReaderConfig(c.app.Reader().WithBatchSize(n)))
	}
}

// WithWorkerCount sets how many goroutines tokenize each batch.
// Values <= 0 are ignored.
func WithWorkerCount(n int) Option {
	return func(c *clientConfig) {
		c.app = c.app.Apply(config.WithReaderConfig(c.app.Reader().WithWorkerCount(n)))
	}
}

// WithVocabulary enables encoded reads through v.
func WithVocabulary(v corpus.Vocabulary) Option {
	return func(c *clientConfig) { c.vocabulary = v }
}

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *clientConfig) { c.logger = l }
}
