// Package bitext reads sentence-aligned parallel corpora for word alignment.
//
// A corpus is a pair of plain text files sharing a stem, one per language
// (news.en and news.it). Line i of one file translates line i of the other.
// Corpora are discovered under a directory, opened as streaming readers and
// consumed as tokenized or vocabulary-encoded sentence pairs.
//
// Basic usage:
//
//	client := bitext.New(
//	    bitext.WithLanguages("en", "it"),
//	    bitext.WithSkipEmptyLines(true),
//	    bitext.WithMaxLineLength(80),
//	)
//
//	corpora, err := client.List("/data/europarl")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	summary, err := client.Ingest(ctx, corpora,
//	    func(ctx context.Context, c corpus.Corpus, batch []corpus.SentencePair) error {
//	        for _, p := range batch {
//	            fmt.Println(p.Source, p.Target)
//	        }
//	        return nil
//	    })
package bitext

import (
	"context"
	"log/slog"

	"github.com/helixml/bitext/application/service"
	"github.com/helixml/bitext/domain/corpus"
	"github.com/helixml/bitext/infrastructure/catalog"
	"github.com/helixml/bitext/infrastructure/reader"
	"github.com/helixml/bitext/infrastructure/vocabulary"
	"github.com/helixml/bitext/internal/config"
)

// Client is the main entry point for the bitext library. It holds no open
// files; every reader it hands out is owned by the caller.
type Client struct {
	cfg        config.AppConfig
	vocabulary corpus.Vocabulary
	logger     *slog.Logger
	scanner    *catalog.Scanner
}

// New creates a Client.
func New(opts ...Option) *Client {
	cfg := newClientConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		cfg:        cfg.app,
		vocabulary: cfg.vocabulary,
		logger:     logger,
		scanner:    catalog.NewScanner(logger),
	}
}

// Config returns the effective configuration.
func (c *Client) Config() config.AppConfig {
	return c.cfg
}

// Logger returns the client's logger.
func (c *Client) Logger() *slog.Logger {
	return c.logger
}

// List returns every corpus under root for the configured language pair.
func (c *Client) List(root string) ([]corpus.Corpus, error) {
	return c.scanner.List(root, c.cfg.SourceLang(), c.cfg.TargetLang())
}

// Open opens a reader over cp with the client's reader settings. Extra
// options are applied after them. The caller must close the reader.
func (c *Client) Open(cp corpus.Corpus, opts ...reader.Option) (*reader.Reader, error) {
	return reader.Open(cp, append(c.readerOptions(), opts...)...)
}

// Ingest reads every corpus to exhaustion, passing each non-empty batch of
// sentence pairs to fn.
func (c *Client) Ingest(ctx context.Context, corpora []corpus.Corpus, fn service.BatchFunc) (service.Summary, error) {
	return c.ingestion().Run(ctx, corpora, fn)
}

// IngestEncoded is Ingest with pairs encoded through the client's
// vocabulary. It fails with reader.ErrNoVocabulary when none is set.
func (c *Client) IngestEncoded(ctx context.Context, corpora []corpus.Corpus, fn service.EncodedBatchFunc) (service.Summary, error) {
	if c.vocabulary == nil {
		return service.Summary{}, reader.ErrNoVocabulary
	}
	return c.ingestion().RunEncoded(ctx, corpora, c.vocabulary, fn)
}

// BuildVocabulary collects every token the client's reader settings let
// through from both sides of the given corpora.
func (c *Client) BuildVocabulary(ctx context.Context, corpora []corpus.Corpus) (*vocabulary.Vocabulary, error) {
	return vocabulary.FromCorpora(ctx, corpora, c.cfg.Reader().BatchSize(), c.logger, c.baseReaderOptions()...)
}

func (c *Client) ingestion() *service.Ingestion {
	return service.NewIngestion(
		service.WithBatchSize(c.cfg.Reader().BatchSize()),
		service.WithReaderOptions(c.baseReaderOptions()...),
		service.WithLogger(c.logger),
		service.WithReportingInterval(c.cfg.Reporting().LogTimeInterval()),
	)
}

func (c *Client) readerOptions() []reader.Option {
	opts := c.baseReaderOptions()
	if c.vocabulary != nil {
		opts = append(opts, reader.WithVocabulary(c.vocabulary))
	}
	return opts
}

func (c *Client) baseReaderOptions() []reader.Option {
	rc := c.cfg.Reader()
	return []reader.Option{
		reader.WithMaxLineLength(rc.MaxLineLength()),
		reader.WithSkipEmptyLines(rc.SkipEmptyLines()),
		reader.WithWorkers(rc.WorkerCount()),
		reader.WithBufferSize(rc.BufferSize()),
		reader.WithLogger(c.logger),
	}
}
