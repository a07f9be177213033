package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/helixml/bitext"
	"github.com/helixml/bitext/domain/corpus"
	"github.com/helixml/bitext/infrastructure/catalog"
	"github.com/helixml/bitext/infrastructure/vocabulary"
	"github.com/helixml/bitext/internal/log"
	"github.com/spf13/cobra"
)

// pairSeparator splits the two sides of a pair on output.
const pairSeparator = " ||| "

func readCmd() *cobra.Command {
	var (
		flags     commonFlags
		manifest  string
		vocabPath string
	)

	cmd := &cobra.Command{
		Use:   "read [ROOT]",
		Short: "Stream sentence pairs to stdout",
		Long: `Stream the sentence pairs of every corpus under ROOT, or of the corpora
listed in a manifest, to stdout. Each pair is printed on one line as

  source tokens ||| target tokens

With --vocab the tokens are replaced by their vocabulary ids, 0 marking
a token the vocabulary does not know.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if (len(args) == 0) == (manifest == "") {
				return errors.New("give either ROOT or --manifest")
			}

			cfg, logger, err := flags.setup(cmd)
			if err != nil {
				return err
			}

			var opts []bitext.Option
			if vocabPath != "" {
				vocab, err := vocabulary.Load(vocabPath)
				if err != nil {
					return err
				}
				opts = append(opts, bitext.WithVocabulary(vocab))
			}
			client := newClient(cfg, logger, opts...)

			var corpora []corpus.Corpus
			if manifest != "" {
				corpora, err = loadManifest(manifest)
			} else {
				corpora, err = client.List(args[0])
			}
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			ctx = log.NewCorrelationID(ctx)

			out := bufio.NewWriter(cmd.OutOrStdout())
			if err := streamPairs(ctx, client, corpora, vocabPath != "", out); err != nil {
				_ = out.Flush()
				return err
			}
			return out.Flush()
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&manifest, "manifest", "", "Read the corpora listed in a YAML manifest instead of scanning ROOT")
	cmd.Flags().StringVar(&vocabPath, "vocab", "", "Print vocabulary ids using this vocabulary file")

	return cmd
}

func loadManifest(path string) ([]corpus.Corpus, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open manifest: %w", err)
	}
	defer func() { _ = f.Close() }()

	m, err := catalog.ReadManifest(f)
	if err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", path, err)
	}
	return m.Corpora(), nil
}

func streamPairs(ctx context.Context, client *bitext.Client, corpora []corpus.Corpus, encoded bool, w io.Writer) error {
	if !encoded {
		summary, err := client.Ingest(ctx, corpora,
			func(_ context.Context, _ corpus.Corpus, batch []corpus.SentencePair) error {
				for _, p := range batch {
					if err := writePair(w, strings.Join(p.Source, " "), strings.Join(p.Target, " ")); err != nil {
						return err
					}
				}
				return nil
			})
		logSummary(ctx, client, summary.Returned(), summary.Skipped(), err)
		return err
	}

	summary, err := client.IngestEncoded(ctx, corpora,
		func(_ context.Context, _ corpus.Corpus, batch []corpus.EncodedPair) error {
			for _, p := range batch {
				if err := writePair(w, joinIDs(p.Source), joinIDs(p.Target)); err != nil {
					return err
				}
			}
			return nil
		})
	logSummary(ctx, client, summary.Returned(), summary.Skipped(), err)
	return err
}

func writePair(w io.Writer, source, target string) error {
	_, err := io.WriteString(w, source+pairSeparator+target+"\n")
	return err
}

func joinIDs(ids corpus.EncodedSentence) string {
	var b strings.Builder
	for i, id := range ids {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.FormatUint(uint64(id), 10))
	}
	return b.String()
}

func logSummary(ctx context.Context, client *bitext.Client, returned, skipped int64, err error) {
	logger := log.FromSlog(client.Logger())
	if err != nil {
		logger.ErrorContext(ctx, "read failed", slog.Any("error", err))
		return
	}
	logger.InfoContext(ctx, "read complete",
		slog.Int64("pairs", returned),
		slog.Int64("skipped", skipped),
	)
}
