package vocabulary

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/helixml/bitext/domain/corpus"
	"github.com/helixml/bitext/infrastructure/reader"
)

// DefaultBatchSize is the number of line pairs read per batch while
// collecting tokens.
const DefaultBatchSize = 10000

// FromCorpora builds a vocabulary from both sides of every corpus.
// Reader options such as WithSkipEmptyLines or WithMaxLineLength apply,
// so pairs the aligner would never see contribute no tokens.
func FromCorpora(ctx context.Context, corpora []corpus.Corpus, batchSize int, logger *slog.Logger, opts ...reader.Option) (*Vocabulary, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	b := NewBuilder()
	for _, c := range corpora {
		if err := addCorpus(ctx, b, c, batchSize, opts); err != nil {
			return nil, err
		}
		logger.Debug("collected vocabulary",
			slog.String("corpus", c.Name()),
			slog.Int("size", b.Size()),
		)
	}

	logger.Info("built vocabulary",
		slog.Int("corpora", len(corpora)),
		slog.Int("size", b.Size()),
	)
	return b.Build(), nil
}

func addCorpus(ctx context.Context, b *Builder, c corpus.Corpus, batchSize int, opts []reader.Option) error {
	r, err := reader.Open(c, opts...)
	if err != nil {
		return fmt.Errorf("build vocabulary: %w", err)
	}
	defer func() { _ = r.Close() }()

	for !r.Drained() {
		if err := ctx.Err(); err != nil {
			return err
		}
		batch, err := r.ReadBatch(batchSize)
		if err != nil {
			return fmt.Errorf("build vocabulary: %w", err)
		}
		for _, p := range batch {
			b.AddSentence(p.Source)
			b.AddSentence(p.Target)
		}
	}
	return nil
}
