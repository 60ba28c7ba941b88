package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/SlowSpeedChase/KitchenOS-sub001/internal/config"
	"github.com/SlowSpeedChase/KitchenOS-sub001/internal/database"
	"github.com/SlowSpeedChase/KitchenOS-sub001/internal/llm"
	"github.com/SlowSpeedChase/KitchenOS-sub001/internal/log"
	"github.com/SlowSpeedChase/KitchenOS-sub001/internal/parser"
	"github.com/SlowSpeedChase/KitchenOS-sub001/internal/pipeline"
	"github.com/SlowSpeedChase/KitchenOS-sub001/internal/report"
	"github.com/SlowSpeedChase/KitchenOS-sub001/internal/source"
	"github.com/SlowSpeedChase/KitchenOS-sub001/internal/units"
	"github.com/SlowSpeedChase/KitchenOS-sub001/internal/youtube"
)

// NewExtractCmd creates the extract command.
func NewExtractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract <youtube-url>...",
		Short: "Extract recipes from YouTube cooking videos",
		Long: `Extract pulls structured recipes out of YouTube cooking videos.

Sources are tried in fidelity order:
1. A recipe page linked from the video description (Schema.org markup)
2. The description text itself, transcribed by the local LLM
3. LLM extraction from the video transcript

Every ingredient line is normalized into a canonical amount, unit, and
item. Extracted recipes are saved to a local SQLite store and rendered
as a report.

Examples:
  # Extract a single video
  kitchenos extract https://www.youtube.com/watch?v=dQw4w9WgXcQ

  # Extract several videos with markdown output
  kitchenos extract --markdown https://youtu.be/abc12345678 https://youtu.be/xyz98765432

  # Write one markdown file per recipe
  kitchenos extract -o recipes/ https://youtu.be/abc12345678

Configuration file (.kitchenos.yml) example:
  ollama:
    url: http://127.0.0.1:11434
    model: mistral:7b
  knownDomains:
    - myfavoriteblog.example
  excludedDomains:
    - merch.example`,
		Args: cobra.ArbitraryArgs,
		RunE: runExtractCmd,
	}

	addExtractFlags(cmd)
	return cmd
}

// addExtractFlags registers the flags shared by extract and batch.
func addExtractFlags(cmd *cobra.Command) {
	// LLM flags
	cmd.Flags().String("ollama-url", config.DefaultOllamaURL,
		"Ollama API base URL")
	cmd.Flags().StringP("model", "m", config.DefaultModel,
		"Ollama model used for extraction")
	cmd.Flags().Duration("llm-timeout", config.DefaultLLMTimeout,
		"Timeout for a single LLM generation")

	// Parser flags
	cmd.Flags().String("parser-url", config.DefaultParserURL,
		"Statistical ingredient parser URL (empty disables it)")
	cmd.Flags().Float64("threshold", config.DefaultConfidenceThreshold,
		"Minimum parser confidence to accept an ingredient without review")

	// Fetch flags
	cmd.Flags().DurationP("timeout", "t", config.DefaultFetchTimeout,
		"Timeout for YouTube and recipe-site requests")
	cmd.Flags().Duration("delay", config.DefaultBatchDelay,
		"Pause between videos when extracting more than one")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .kitchenos.yml in current or home directory)")

	// Report flags
	cmd.Flags().Bool("markdown", false,
		"Print markdown reports (mutually exclusive with --simple)")
	cmd.Flags().Bool("simple", false,
		"Print plain-text reports, the default (mutually exclusive with --markdown)")
	cmd.Flags().StringP("output", "o", "",
		"Directory to write one markdown file per extracted recipe")
}

// runExtractCmd executes the extract command.
func runExtractCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := log.NewSanitizedLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	ctx, cancel := signalContext(logger)
	defer cancel()

	return runExtraction(ctx, cfg, logger)
}

// signalContext returns a context cancelled by SIGINT or SIGTERM.
func signalContext(logger *slog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return ctx, cancel
}

// buildConfig creates a Config from cobra command flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Load the config file before the flags so flags win.
	// If the user explicitly specified a path, error when missing;
	// otherwise silently continue without one.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	if configPath != "" {
		cf, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		cf.Apply(cfg)
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	}

	if cmd.Flags().Changed("ollama-url") || cfg.OllamaURL == "" {
		cfg.OllamaURL, err = cmd.Flags().GetString("ollama-url")
		if err != nil {
			return nil, err
		}
	}

	if cmd.Flags().Changed("model") || cfg.Model == "" {
		cfg.Model, err = cmd.Flags().GetString("model")
		if err != nil {
			return nil, err
		}
	}

	cfg.ParserURL, err = cmd.Flags().GetString("parser-url")
	if err != nil {
		return nil, err
	}

	cfg.ConfidenceThreshold, err = cmd.Flags().GetFloat64("threshold")
	if err != nil {
		return nil, err
	}

	cfg.FetchTimeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, err
	}

	cfg.LLMTimeout, err = cmd.Flags().GetDuration("llm-timeout")
	if err != nil {
		return nil, err
	}

	cfg.BatchDelay, err = cmd.Flags().GetDuration("delay")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.SimpleReport, err = cmd.Flags().GetBool("simple")
	if err != nil {
		return nil, err
	}

	cfg.OutputDir, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	cfg.Verbose = getVerboseFlag(cmd)
	cfg.Targets = args

	return cfg, nil
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// runExtraction wires the extraction pipeline and processes the targets.
func runExtraction(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open recipe store: %w", err)
	}
	defer db.Close()
	logger.Debug("recipe store opened", "path", db.Path())

	table := units.NewTable()
	consoleWriter := newConsoleWriter(cfg, table)

	factory := newPipelineFactory(cfg, db, consoleWriter, table, logger)

	bp := pipeline.NewBatchProcessor(factory,
		pipeline.WithBatchDelay(cfg.BatchDelay),
		pipeline.WithBatchLogger(logger),
	)

	summary, err := bp.ProcessBatch(ctx, cfg.Targets)
	if err != nil {
		return err
	}

	if cfg.OutputDir != "" {
		if err := writeRecipeFiles(cfg.OutputDir, summary, table, logger); err != nil {
			return err
		}
	}

	printSummary(summary)

	if summary.Succeeded == 0 && summary.Skipped == 0 {
		return fmt.Errorf("no recipes extracted from %d video(s)", summary.Total)
	}
	return nil
}

// newConsoleWriter picks the stdout report format.
func newConsoleWriter(cfg *config.Config, table *units.Table) report.Writer {
	if cfg.MarkdownReport {
		return report.NewMarkdownWriter(os.Stdout, table)
	}
	return report.NewSimpleWriter(os.Stdout, table)
}

// newPipelineFactory builds the per-video extraction pipeline.
func newPipelineFactory(cfg *config.Config, db *database.RecipeDB, writer report.Writer, table *units.Table, logger *slog.Logger) func() *pipeline.Pipeline {
	// Ingredient normalization: statistical parser behind the
	// confidence gate, deterministic parser as fallback.
	var statistical parser.StatisticalParser
	if cfg.ParserURL != "" {
		statistical = parser.NewStatisticalClient(cfg.ParserURL, table,
			parser.WithStatisticalTimeout(cfg.FetchTimeout),
		)
	}
	gate := parser.NewGate(statistical, parser.New(table),
		parser.WithThreshold(cfg.ConfidenceThreshold),
		parser.WithGateLogger(logger),
	)

	llmClient := llm.NewClient(cfg.OllamaURL,
		llm.WithModel(cfg.Model),
		llm.WithTimeout(cfg.LLMTimeout),
	)
	extractor := llm.NewExtractor(llmClient, llm.WithExtractorLogger(logger))

	webpageOpts := []source.WebpageOption{source.WithWebpageLogger(logger)}
	if extra := cfg.KnownDomains(); len(extra) > 0 {
		webpageOpts = append(webpageOpts, source.WithKnownDomains(extra))
	}
	if extra := cfg.ExcludedDomains(); len(extra) > 0 {
		webpageOpts = append(webpageOpts, source.WithExcludedDomains(extra))
	}

	resolver := source.NewResolver(
		[]source.Strategy{
			source.NewWebpageStrategy(gate, webpageOpts...),
			source.NewDescriptionStrategy(extractor, gate, source.WithDescriptionLogger(logger)),
			source.NewTranscriptStrategy(extractor, gate, source.WithTranscriptLogger(logger)),
		},
		source.WithTips(extractor),
		source.WithResolverLogger(logger),
	)

	videos := youtube.NewClient(youtube.WithClientTimeout(cfg.FetchTimeout))

	return func() *pipeline.Pipeline {
		p := pipeline.New(pipeline.WithLogger(logger))
		p.AddSteps(
			pipeline.NewValidateURLStep(),
			pipeline.NewDuplicateCheckStep(db, pipeline.WithDuplicateCheckLogger(logger)),
			pipeline.NewFetchVideoStep(videos, pipeline.WithFetchLogger(logger)),
			pipeline.NewResolveRecipeStep(resolver),
			pipeline.NewSaveRecipeStep(db),
			pipeline.NewWriteReportStep(writer),
		)
		return p
	}
}

// writeRecipeFiles writes one markdown file per extracted recipe.
func writeRecipeFiles(dir string, summary *pipeline.Summary, table *units.Table, logger *slog.Logger) error {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	for _, ext := range summary.Extractions {
		if ext.Status != pipeline.StatusSucceeded || ext.Recipe == nil {
			continue
		}

		path := filepath.Join(dir, slugify(ext.Recipe.Name)+".md")
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", path, err)
		}

		if _, err := report.NewMarkdownWriter(f, table).WriteRecipe(ext.Recipe); err != nil {
			_ = f.Close()
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("failed to close %s: %w", path, err)
		}

		logger.Info("recipe written", "path", path)
	}
	return nil
}

// slugify turns a recipe name into a filesystem-friendly file stem.
func slugify(name string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	slug := strings.TrimSuffix(b.String(), "-")
	if slug == "" {
		return "recipe"
	}
	return slug
}

// printSummary reports the batch outcome on stdout.
func printSummary(summary *pipeline.Summary) {
	if summary.Total <= 1 {
		return
	}

	fmt.Printf("\nExtracted %d/%d video(s)", summary.Succeeded, summary.Total)
	if summary.Skipped > 0 {
		fmt.Printf(", %d already extracted", summary.Skipped)
	}
	if summary.Failed > 0 {
		fmt.Printf(", %d failed", summary.Failed)
	}
	if summary.Invalid > 0 {
		fmt.Printf(", %d invalid", summary.Invalid)
	}
	fmt.Println()

	for _, ext := range summary.Extractions {
		if ext.Status == pipeline.StatusFailed || ext.Status == pipeline.StatusInvalid {
			fmt.Printf("  %s: %s (%s)\n", ext.Status, ext.RawURL, ext.Reason)
		}
	}
}
