// Package main is the entry point for the bitext CLI.
package main

import (
	"fmt"
	"os"

	"github.com/helixml/bitext"
	"github.com/helixml/bitext/internal/config"
	"github.com/helixml/bitext/internal/log"
	"github.com/spf13/cobra"
)

// Version information set via ldflags during build.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bitext",
		Short: "Parallel corpus reader",
		Long: `bitext discovers sentence-aligned parallel corpora and streams them as
tokenized or vocabulary-encoded sentence pairs.

Configuration is loaded in the following order (later sources override earlier):
  1. Default values
  2. .env file (if --env-file specified or .env exists in current directory)
  3. Environment variables
  4. Command line flags

Environment variables:
  LOG_LEVEL                    Log level: DEBUG, INFO, WARN, ERROR (default: INFO)
  LOG_FORMAT                   Log format: pretty, json (default: pretty)
  SOURCE_LANG                  Source file suffix (default: en)
  TARGET_LANG                  Target file suffix (default: it)
  MAX_LINE_LENGTH              Token limit per side, 0 disables (default: 0)
  SKIP_EMPTY_LINES             Drop pairs with an empty side (default: false)
  BATCH_SIZE                   Line pairs per batch (default: 10000)
  WORKER_COUNT                 Tokenization goroutines (default: one per CPU)
  BUFFER_SIZE                  Read buffer per file in bytes (default: 65536)
  REPORTING_LOG_TIME_INTERVAL  Seconds between progress lines (default: 5)`,
		SilenceUsage: true,
	}

	cmd.AddCommand(listCmd())
	cmd.AddCommand(readCmd())
	cmd.AddCommand(vocabCmd())
	cmd.AddCommand(versionCmd())

	return cmd
}

// loadConfig loads configuration from .env file and environment variables.
func loadConfig(envFile string) (config.AppConfig, error) {
	cfg, err := config.LoadConfig(envFile)
	if err != nil {
		return config.AppConfig{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// commonFlags are the flags shared by every command that touches corpora.
type commonFlags struct {
	envFile       string
	source        string
	target        string
	maxLineLength int
	skipEmpty     bool
	batchSize     int
	workers       int
}

func (f *commonFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.envFile, "env-file", "", "Path to .env file (default: .env in current directory)")
	cmd.Flags().StringVar(&f.source, "source", "", "Source language file suffix (default: en)")
	cmd.Flags().StringVar(&f.target, "target", "", "Target language file suffix (default: it)")
	cmd.Flags().IntVar(&f.maxLineLength, "max-line-length", 0, "Drop pairs with more tokens than this on either side (0 disables)")
	cmd.Flags().BoolVar(&f.skipEmpty, "skip-empty", false, "Drop pairs where either side is empty")
	cmd.Flags().IntVar(&f.batchSize, "batch", 0, "Line pairs per batch (default: 10000)")
	cmd.Flags().IntVar(&f.workers, "workers", 0, "Tokenization goroutines per batch (default: one per CPU)")
}

// applyOverrides applies the flags the user set explicitly on top of cfg.
func (f *commonFlags) applyOverrides(cmd *cobra.Command, cfg config.AppConfig) config.AppConfig {
	flags := cmd.Flags()
	if flags.Changed("source") {
		cfg = cfg.Apply(config.WithSourceLang(f.source))
	}
	if flags.Changed("target") {
		cfg = cfg.Apply(config.WithTargetLang(f.target))
	}

	rc := cfg.Reader()
	if flags.Changed("max-line-length") {
		rc = rc.WithMaxLineLength(f.maxLineLength)
	}
	if flags.Changed("skip-empty") {
		rc = rc.WithSkipEmptyLines(f.skipEmpty)
	}
	if flags.Changed("batch") {
		rc = rc.WithBatchSize(f.batchSize)
	}
	if flags.Changed("workers") {
		rc = rc.WithWorkerCount(f.workers)
	}
	return cfg.Apply(config.WithReaderConfig(rc))
}

// setup loads configuration, applies flag overrides and builds the logger.
func (f *commonFlags) setup(cmd *cobra.Command) (config.AppConfig, *log.Logger, error) {
	cfg, err := loadConfig(f.envFile)
	if err != nil {
		return config.AppConfig{}, nil, err
	}
	cfg = f.applyOverrides(cmd, cfg)
	return cfg, log.NewLogger(cfg), nil
}

func newClient(cfg config.AppConfig, logger *log.Logger, opts ...bitext.Option) *bitext.Client {
	base := []bitext.Option{
		bitext.WithConfig(cfg),
		bitext.WithLogger(logger.Slog()),
	}
	return bitext.New(append(base, opts...)...)
}
