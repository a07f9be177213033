package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/helixml/bitext/domain/corpus"
	"github.com/helixml/bitext/infrastructure/reader"
	"github.com/helixml/bitext/internal/config"
	"github.com/helixml/bitext/internal/log"
)

// BatchFunc receives each non-empty batch of sentence pairs read from c.
// Returning an error stops the run.
type BatchFunc func(ctx context.Context, c corpus.Corpus, batch []corpus.SentencePair) error

// EncodedBatchFunc receives each non-empty batch of encoded pairs read from c.
type EncodedBatchFunc func(ctx context.Context, c corpus.Corpus, batch []corpus.EncodedPair) error

// CorpusSummary holds the reader counters of one corpus after a run.
type CorpusSummary struct {
	Corpus  corpus.Corpus
	Stats   reader.Stats
	Batches int
}

// Summary describes a completed ingestion run.
type Summary struct {
	Corpora  []CorpusSummary
	Duration time.Duration
}

// Returned is the total number of pairs delivered across all corpora.
func (s Summary) Returned() int64 {
	var n int64
	for _, c := range s.Corpora {
		n += c.Stats.Returned
	}
	return n
}

// Skipped is the total number of pairs rejected by the skip policy.
func (s Summary) Skipped() int64 {
	var n int64
	for _, c := range s.Corpora {
		n += c.Stats.Skipped
	}
	return n
}

// LinePairs is the total number of line pairs consumed.
func (s Summary) LinePairs() int64 {
	var n int64
	for _, c := range s.Corpora {
		n += c.Stats.LinePairs
	}
	return n
}

// IngestionOption configures an Ingestion.
type IngestionOption func(*Ingestion)

// WithBatchSize sets the number of line pairs requested per batch.
func WithBatchSize(n int) IngestionOption {
	return func(i *Ingestion) {
		if n > 0 {
			i.batchSize = n
		}
	}
}

// WithReaderOptions sets the options every corpus reader is opened with.
func WithReaderOptions(opts ...reader.Option) IngestionOption {
	return func(i *Ingestion) {
		i.readerOpts = append(i.readerOpts, opts...)
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) IngestionOption {
	return func(i *Ingestion) {
		if l != nil {
			i.logger = l
		}
	}
}

// WithReportingInterval sets the minimum time between progress log lines.
// Zero logs after every batch.
func WithReportingInterval(d time.Duration) IngestionOption {
	return func(i *Ingestion) {
		if d >= 0 {
			i.interval = d
		}
	}
}

// Ingestion feeds the sentence pairs of a set of corpora to a consumer,
// one corpus at a time, in batches.
type Ingestion struct {
	batchSize  int
	readerOpts []reader.Option
	logger     *slog.Logger
	interval   time.Duration
}

// NewIngestion creates an Ingestion.
func NewIngestion(opts ...IngestionOption) *Ingestion {
	i := &Ingestion{
		batchSize: config.DefaultBatchSize,
		logger:    slog.Default(),
		interval:  config.DefaultReportingInterval,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Run reads every corpus to exhaustion and passes each non-empty batch to fn.
func (i *Ingestion) Run(ctx context.Context, corpora []corpus.Corpus, fn BatchFunc) (Summary, error) {
	return run[string](ctx, i, corpora, i.readerOpts, (*reader.Reader).ReadBatch, fn)
}

// RunEncoded is Run with pairs encoded through vocab.
func (i *Ingestion) RunEncoded(ctx context.Context, corpora []corpus.Corpus, vocab corpus.Vocabulary, fn EncodedBatchFunc) (Summary, error) {
	if vocab == nil {
		return Summary{}, reader.ErrNoVocabulary
	}
	opts := append(append([]reader.Option{}, i.readerOpts...), reader.WithVocabulary(vocab))
	return run[corpus.WordID](ctx, i, corpora, opts, (*reader.Reader).ReadEncodedBatch, fn)
}

func run[T any](
	ctx context.Context,
	i *Ingestion,
	corpora []corpus.Corpus,
	opts []reader.Option,
	read func(*reader.Reader, int) ([]corpus.Pair[T], error),
	fn func(context.Context, corpus.Corpus, []corpus.Pair[T]) error,
) (Summary, error) {
	if len(corpora) == 0 {
		return Summary{}, ErrNoCorpora
	}

	logger := log.FromSlog(i.logger)
	started := time.Now()
	summary := Summary{Corpora: make([]CorpusSummary, 0, len(corpora))}

	for _, c := range corpora {
		cctx := log.WithCorpus(ctx, c.Name())
		result, err := ingestCorpus(cctx, i, c, opts, read, fn, logger)
		summary.Corpora = append(summary.Corpora, result)
		if err != nil {
			summary.Duration = time.Since(started)
			return summary, err
		}
		logger.InfoContext(cctx, "ingested corpus",
			slog.Int64("line_pairs", result.Stats.LinePairs),
			slog.Int64("returned", result.Stats.Returned),
			slog.Int64("skipped", result.Stats.Skipped),
			slog.Int("batches", result.Batches),
		)
	}

	summary.Duration = time.Since(started)
	logger.InfoContext(ctx, "ingestion complete",
		slog.Int("corpora", len(summary.Corpora)),
		slog.Int64("returned", summary.Returned()),
		slog.Int64("skipped", summary.Skipped()),
		slog.Duration("duration", summary.Duration),
	)
	return summary, nil
}

func ingestCorpus[T any](
	ctx context.Context,
	i *Ingestion,
	c corpus.Corpus,
	opts []reader.Option,
	read func(*reader.Reader, int) ([]corpus.Pair[T], error),
	fn func(context.Context, corpus.Corpus, []corpus.Pair[T]) error,
	logger *log.Logger,
) (CorpusSummary, error) {
	result := CorpusSummary{Corpus: c}

	opts = append(append([]reader.Option{}, opts...), reader.WithLogger(i.logger))
	r, err := reader.Open(c, opts...)
	if err != nil {
		return result, fmt.Errorf("ingest: %w", err)
	}
	defer func() { _ = r.Close() }()

	progress := newProgress(i.interval)
	for !r.Drained() {
		if err := ctx.Err(); err != nil {
			result.Stats = r.Stats()
			return result, err
		}

		batch, err := read(r, i.batchSize)
		if err != nil {
			result.Stats = r.Stats()
			return result, fmt.Errorf("ingest: %w", err)
		}
		if len(batch) == 0 {
			continue
		}

		result.Batches++
		if err := fn(ctx, c, batch); err != nil {
			result.Stats = r.Stats()
			return result, fmt.Errorf("ingest corpus %s: %w", c.Name(), err)
		}

		if progress.due() {
			stats := r.Stats()
			logger.InfoContext(ctx, "ingesting",
				slog.Int64("line_pairs", stats.LinePairs),
				slog.Int64("returned", stats.Returned),
				slog.Int64("skipped", stats.Skipped),
			)
		}
	}

	result.Stats = r.Stats()
	return result, nil
}

// progress throttles progress log lines to at most one per interval.
type progress struct {
	interval time.Duration
	last     time.Time
}

func newProgress(interval time.Duration) *progress {
	return &progress{interval: interval, last: time.Now()}
}

func (p *progress) due() bool {
	now := time.Now()
	if now.Sub(p.last) < p.interval {
		return false
	}
	p.last = now
	return true
}
