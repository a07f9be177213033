package main

import (
	"fmt"
	"io"

	"github.com/helixml/bitext/domain/corpus"
	"github.com/helixml/bitext/infrastructure/catalog"
	"github.com/spf13/cobra"
)

func listCmd() *cobra.Command {
	var (
		flags  commonFlags
		format string
	)

	cmd := &cobra.Command{
		Use:   "list ROOT",
		Short: "List the corpora under a directory",
		Long: `List every corpus under ROOT for the configured language pair.

A corpus is a file ending in .SOURCE whose sibling with the same stem and
the .TARGET suffix also exists. The json and yaml formats produce a
manifest that "bitext read --manifest" accepts.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := flags.setup(cmd)
			if err != nil {
				return err
			}

			corpora, err := newClient(cfg, logger).List(args[0])
			if err != nil {
				return err
			}
			return writeCorpora(cmd.OutOrStdout(), corpora, format)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text, json, yaml")

	return cmd
}

func writeCorpora(w io.Writer, corpora []corpus.Corpus, format string) error {
	switch format {
	case "json":
		return catalog.NewManifest(corpora).WriteJSON(w)
	case "yaml":
		return catalog.NewManifest(corpora).WriteYAML(w)
	case "text":
		for _, c := range corpora {
			if _, err := fmt.Fprintf(w, "%s\t%s\t%s\n", c.Name(), c.SourceFile(), c.TargetFile()); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q: want text, json or yaml", format)
	}
}
