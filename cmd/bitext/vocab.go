package main

import (
	"log/slog"

	"github.com/helixml/bitext/internal/log"
	"github.com/spf13/cobra"
)

func vocabCmd() *cobra.Command {
	var (
		flags commonFlags
		out   string
	)

	cmd := &cobra.Command{
		Use:   "vocab ROOT",
		Short: "Build a vocabulary from the corpora under a directory",
		Long: `Build a vocabulary from both sides of every corpus under ROOT and write
it one token per line. Line n holds the token with id n. The skip policy
flags apply, so dropped pairs contribute no tokens.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := flags.setup(cmd)
			if err != nil {
				return err
			}
			client := newClient(cfg, logger)

			corpora, err := client.List(args[0])
			if err != nil {
				return err
			}

			ctx := log.NewCorrelationID(cmd.Context())
			vocab, err := client.BuildVocabulary(ctx, corpora)
			if err != nil {
				return err
			}

			if out == "" {
				_, err = vocab.WriteTo(cmd.OutOrStdout())
				return err
			}
			if err := vocab.Save(out); err != nil {
				return err
			}
			logger.InfoContext(ctx, "wrote vocabulary",
				slog.String("path", out),
				slog.Int("size", vocab.Size()),
			)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&out, "out", "", "Write the vocabulary to this file (default: stdout)")

	return cmd
}
