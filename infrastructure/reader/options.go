package reader

import (
	"log/slog"
	"runtime"

	"github.com/helixml/bitext/domain/corpus"
)

// DefaultBufferSize is the read buffer size for each line stream.
const DefaultBufferSize = 64 * 1024

type readerConfig struct {
	vocabulary     corpus.Vocabulary
	maxLineLength  int
	skipEmptyLines bool
	workers        int
	bufferSize     int
	logger         *slog.Logger
}

func newReaderConfig() readerConfig {
	return readerConfig{
		workers:    runtime.GOMAXPROCS(0),
		bufferSize: DefaultBufferSize,
	}
}

// Option configures a Reader.
type Option func(*readerConfig)

// WithVocabulary attaches a vocabulary, enabling the encoded read
// operations. The vocabulary is shared and must outlive the Reader.
func WithVocabulary(v corpus.Vocabulary) Option {
	return func(c *readerConfig) { c.vocabulary = v }
}

// WithMaxLineLength rejects pairs where either side has more than n
// tokens. Zero disables the check.
func WithMaxLineLength(n int) Option {
	return func(c *readerConfig) {
		if n < 0 {
			n = 0
		}
		c.maxLineLength = n
	}
}

// WithSkipEmptyLines rejects pairs where either side has no tokens.
func WithSkipEmptyLines(skip bool) Option {
	return func(c *readerConfig) { c.skipEmptyLines = skip }
}

// WithWorkers sets how many goroutines tokenize a batch.
func WithWorkers(n int) Option {
	return func(c *readerConfig) {
		if n > 0 {
			c.workers = n
		}
	}
}

// WithBufferSize sets the per-file read buffer size in bytes.
func WithBufferSize(n int) Option {
	return func(c *readerConfig) {
		if n > 0 {
			c.bufferSize = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *readerConfig) { c.logger = l }
}
