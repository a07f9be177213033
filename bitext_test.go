package bitext_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/helixml/bitext"
	"github.com/helixml/bitext/domain/corpus"
	"github.com/helixml/bitext/infrastructure/reader"
	"github.com/helixml/bitext/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func fixture(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "news.en"), "the cat\n\nthe cat sat on the mat\n")
	writeFile(t, filepath.Join(root, "news.it"), "il gatto\nvuoto\nil gatto sedeva sul tappeto\n")
	writeFile(t, filepath.Join(root, "sub", "web.en"), "hello\n")
	writeFile(t, filepath.Join(root, "sub", "web.it"), "ciao\n")
	writeFile(t, filepath.Join(root, "orphan.en"), "alone\n")
	return root
}

func TestClient_Defaults(t *testing.T) {
	client := bitext.New()

	cfg := client.Config()
	assert.Equal(t, config.DefaultSourceLang, cfg.SourceLang())
	assert.Equal(t, config.DefaultTargetLang, cfg.TargetLang())
	assert.Equal(t, config.DefaultBatchSize, cfg.Reader().BatchSize())
	assert.NotNil(t, client.Logger())
}

func TestClient_List(t *testing.T) {
	root := fixture(t)

	corpora, err := bitext.New(bitext.WithLanguages("en", "it")).List(root)
	require.NoError(t, err)

	names := make([]string, 0, len(corpora))
	for _, c := range corpora {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"news", "web"}, names)
}

func TestClient_Open(t *testing.T) {
	root := fixture(t)
	client := bitext.New(bitext.WithSkipEmptyLines(true))

	r, err := client.Open(corpus.NewCorpus(filepath.Join(root, "news.en"), filepath.Join(root, "news.it")))
	require.NoError(t, err)
	defer func() { _ = r.Close() }()

	batch, err := r.ReadBatch(10)
	require.NoError(t, err)
	require.Len(t, batch, 2)
	assert.Equal(t, []string{"the", "cat"}, batch[0].Source)
	assert.Equal(t, int64(1), r.Stats().Skipped)
	assert.False(t, r.HasVocabulary())
}

func TestClient_OpenExtraOptionsWin(t *testing.T) {
	root := fixture(t)
	client := bitext.New(bitext.WithSkipEmptyLines(true))

	r, err := client.Open(
		corpus.NewCorpus(filepath.Join(root, "news.en"), filepath.Join(root, "news.it")),
		reader.WithSkipEmptyLines(false),
	)
	require.NoError(t, err)
	defer func() { _ = r.Close() }()

	batch, err := r.ReadBatch(10)
	require.NoError(t, err)
	assert.Len(t, batch, 3)
}

func TestClient_Ingest(t *testing.T) {
	root := fixture(t)
	client := bitext.New(bitext.WithMaxLineLength(3), bitext.WithBatchSize(1))

	corpora, err := client.List(root)
	require.NoError(t, err)

	var pairs []corpus.SentencePair
	summary, err := client.Ingest(context.Background(), corpora,
		func(_ context.Context, _ corpus.Corpus, batch []corpus.SentencePair) error {
			pairs = append(pairs, batch...)
			return nil
		})
	require.NoError(t, err)

	// news: the long third pair is over the limit; web: one pair.
	assert.Len(t, pairs, 3)
	assert.Equal(t, int64(3), summary.Returned())
	assert.Equal(t, int64(1), summary.Skipped())
}

func TestClient_IngestEncoded(t *testing.T) {
	root := fixture(t)
	ctx := context.Background()

	builder := bitext.New(bitext.WithSkipEmptyLines(true))
	corpora, err := builder.List(root)
	require.NoError(t, err)

	vocab, err := builder.BuildVocabulary(ctx, corpora)
	require.NoError(t, err)
	assert.Equal(t, 12, vocab.Size())

	client := bitext.New(bitext.WithVocabulary(vocab), bitext.WithSkipEmptyLines(true))
	var pairs []corpus.EncodedPair
	summary, err := client.IngestEncoded(ctx, corpora,
		func(_ context.Context, _ corpus.Corpus, batch []corpus.EncodedPair) error {
			pairs = append(pairs, batch...)
			return nil
		})
	require.NoError(t, err)
	assert.Equal(t, int64(3), summary.Returned())
	for _, p := range pairs {
		assert.NotContains(t, p.Source, corpus.NullWord)
		assert.NotContains(t, p.Target, corpus.NullWord)
	}
}

func TestClient_IngestEncoded_NoVocabulary(t *testing.T) {
	_, err := bitext.New().IngestEncoded(context.Background(), nil,
		func(context.Context, corpus.Corpus, []corpus.EncodedPair) error { return nil })
	assert.ErrorIs(t, err, reader.ErrNoVocabulary)
}

func TestClient_WithConfig(t *testing.T) {
	cfg := config.NewAppConfigWithOptions(
		config.WithSourceLang("de"),
		config.WithTargetLang("fr"),
	)

	client := bitext.New(bitext.WithConfig(cfg), bitext.WithWorkerCount(3))

	assert.Equal(t, "de", client.Config().SourceLang())
	assert.Equal(t, "fr", client.Config().TargetLang())
	assert.Equal(t, 3, client.Config().Reader().WorkerCount())
}
