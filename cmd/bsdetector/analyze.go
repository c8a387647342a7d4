package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/nao1215/bsdetector/internal/analyzer"
	"github.com/nao1215/bsdetector/internal/blacklist"
	"github.com/nao1215/bsdetector/internal/config"
	"github.com/nao1215/bsdetector/internal/fetcher"
	"github.com/nao1215/bsdetector/internal/model"
	"github.com/nao1215/bsdetector/internal/pipeline"
	"github.com/nao1215/bsdetector/internal/report"
	"github.com/nao1215/bsdetector/internal/votes"
	"github.com/spf13/cobra"
)

// NewAnalyzeCmd creates the analyze command.
func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [article-url]",
		Short: "Rate how likely an article is to be bullshit",
		Long: `Analyze retrieves one or more articles and rates them from 0 (credible)
to 100 (bullshit).

Each article is retrieved through the configured retrieval backends and
its title, text and page structure are scored. Articles that cannot be
retrieved are scored by their URL alone, with lower confidence.
Publishers on the blacklist are always rated 100.

Examples:
  # Analyze a single article
  bsdetector analyze https://example.com/news/some-article

  # Analyze several articles, 8 at a time
  bsdetector analyze --batch 8 https://a.example/x https://b.example/y

  # German warnings and a Markdown report written to a file
  bsdetector analyze --lang de --markdown -o report.md https://example.com/x

  # Keep a JSON copy of the report while reading it in the terminal
  bsdetector analyze --json -o report.json --tee https://example.com/x

  # Use a custom blacklist
  bsdetector analyze --blacklist ./publishers.txt https://example.com/x`,
		Args: cobra.ArbitraryArgs,
		RunE: runAnalyzeCmd,
	}

	// Analysis flags
	cmd.Flags().StringP("lang", "l", config.DefaultLanguage,
		"Language of user-facing warnings (en, de)")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Timeout for each retrieval request")
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of concurrent analyses")
	cmd.Flags().String("blacklist", "",
		"Publisher blacklist file path or URL (default: built-in list)")
	cmd.Flags().String("socks-proxy", "",
		"Route retrieval through a SOCKS5 proxy (e.g., 127.0.0.1:9050)")
	cmd.Flags().Bool("plain", false,
		"Score the article text only, without the page structure")
	cmd.Flags().Bool("no-save", false,
		"Do not store the analyses in the vote store")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")
	cmd.Flags().Bool("tee", false,
		"With --output, also print the report to stdout")

	return cmd
}

// analyzeOptions are the analyze settings that do not belong in Config.
type analyzeOptions struct {
	// plain selects text-only scoring.
	plain bool

	// tee echoes reports to stdout while --output writes the file.
	tee bool
}

// runAnalyzeCmd executes the analyze command.
func runAnalyzeCmd(cmd *cobra.Command, args []string) error {
	cfg, opts, err := buildAnalyzeConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cmd, cfg.Verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			logger.Info("received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return runAnalyze(ctx, cfg, opts, logger, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// buildAnalyzeConfig creates a Config from the configuration file and the
// analyze flags. Flags override the file only when given explicitly.
func buildAnalyzeConfig(cmd *cobra.Command, args []string) (*config.Config, analyzeOptions, error) {
	var opts analyzeOptions

	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, opts, err
	}

	if cmd.Flags().Changed("lang") {
		if cfg.Language, err = cmd.Flags().GetString("lang"); err != nil {
			return nil, opts, err
		}
	}
	if cmd.Flags().Changed("timeout") {
		if cfg.Timeout, err = cmd.Flags().GetDuration("timeout"); err != nil {
			return nil, opts, err
		}
	}
	if cmd.Flags().Changed("batch") {
		if cfg.BatchSize, err = cmd.Flags().GetInt("batch"); err != nil {
			return nil, opts, err
		}
	}
	if cmd.Flags().Changed("blacklist") {
		if cfg.Blacklist, err = cmd.Flags().GetString("blacklist"); err != nil {
			return nil, opts, err
		}
	}
	if cmd.Flags().Changed("socks-proxy") {
		if cfg.SOCKSProxy, err = cmd.Flags().GetString("socks-proxy"); err != nil {
			return nil, opts, err
		}
	}

	noSave, err := cmd.Flags().GetBool("no-save")
	if err != nil {
		return nil, opts, err
	}
	if noSave {
		cfg.SaveAnalyses = false
	}

	if opts.plain, err = cmd.Flags().GetBool("plain"); err != nil {
		return nil, opts, err
	}
	if opts.tee, err = cmd.Flags().GetBool("tee"); err != nil {
		return nil, opts, err
	}

	if err := reportFlags(cmd, cfg); err != nil {
		return nil, opts, err
	}
	if cfg.ReportFile, err = cmd.Flags().GetString("output"); err != nil {
		return nil, opts, err
	}

	cfg.Targets = args

	return cfg, opts, nil
}

// newOrchestrator wires the blacklist, fetcher and analyzers into an
// Orchestrator. The content strategy runs first and the URL-only strategy
// catches every article that could not be retrieved.
func newOrchestrator(cfg *config.Config, opts analyzeOptions, logger *slog.Logger) (*pipeline.Orchestrator, error) {
	client, err := fetcher.NewHTTPClient(cfg.Timeout, cfg.SOCKSProxy)
	if err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}
	if cfg.SOCKSProxy != "" {
		logger.Info("retrieving through SOCKS5 proxy", "address", cfg.SOCKSProxy)
	}

	bl := blacklist.NewCache(
		blacklist.NewSource(cfg.Blacklist, client),
		blacklist.WithLogger(logger),
	)

	backends := fetcher.NewProxyBackends(cfg.Backends, client,
		fetcher.WithUserAgent(cfg.UserAgent),
		fetcher.WithMaxBodySize(cfg.MaxBodySize),
	)
	f := fetcher.New(backends,
		fetcher.WithDelay(cfg.FetchDelay),
		fetcher.WithLogger(logger),
	)

	urlAnalyzer := analyzer.NewURLAnalyzer(bl, analyzer.WithLogger(logger))
	contentAnalyzer := analyzer.NewContentAnalyzer(bl, analyzer.WithLogger(logger))

	var content pipeline.Strategy = pipeline.NewContentStrategy(f, contentAnalyzer, logger)
	if opts.plain {
		content = pipeline.NewPlainContentStrategy(f, contentAnalyzer, logger)
	}

	orchestrator := pipeline.New(urlAnalyzer,
		pipeline.WithLogger(logger),
		pipeline.WithStrategies(content, pipeline.NewURLOnlyStrategy(urlAnalyzer)),
	)
	logger.Debug("analysis strategies", "order", orchestrator.StrategyNames())

	return orchestrator, nil
}

// runAnalyze analyses every target and writes one report per target, in the
// order the targets were given. Progress goes to progress, reports to out
// (or the configured report file).
func runAnalyze(ctx context.Context, cfg *config.Config, opts analyzeOptions, logger *slog.Logger, out, progress io.Writer) error {
	logger.Info("starting analysis",
		"targets", len(cfg.Targets),
		"batchSize", cfg.BatchSize,
		"store", cfg.Store,
		"saveAnalyses", cfg.SaveAnalyses,
	)

	orchestrator, err := newOrchestrator(cfg, opts, logger)
	if err != nil {
		return err
	}

	svc, err := openService(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.Error("failed to close vote store", "error", err)
		}
	}()

	bp := pipeline.NewBatchProcessor(orchestrator,
		pipeline.WithConcurrency(cfg.BatchSize),
		pipeline.WithBatchLogger(logger),
	)

	startTime := time.Now()

	var mu sync.Mutex
	results, err := bp.AnalyzeAll(ctx, cfg.Targets, cfg.Language, func(result *model.AnalysisResult, index int) {
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintf(progress, "[%d/%d] Analyzed %s\n", index+1, len(cfg.Targets), result.URL)
	})
	if err != nil {
		return fmt.Errorf("analysis interrupted: %w", err)
	}

	if len(cfg.Targets) > 1 {
		fmt.Fprintf(progress, "Analyzed %d articles in %s\n\n",
			len(cfg.Targets), time.Since(startTime).Round(time.Millisecond))
	}

	output, closeOutput, err := openOutput(cfg, out)
	if err != nil {
		return err
	}
	defer closeOutput() //nolint:errcheck // Best effort close of the report file

	writer := newReportWriter(output, cfg)
	if opts.tee && cfg.ReportFile != "" {
		writer = report.NewMultiWriter(writer, newReportWriter(out, cfg))
	}
	for _, result := range results {
		if err := outputResult(ctx, cfg, svc, writer, result, logger); err != nil {
			return err
		}
	}

	return nil
}

// outputResult stores an analysis when enabled and writes its report with
// the community rating of the votes cast so far.
func outputResult(ctx context.Context, cfg *config.Config, svc *votes.Service, writer report.Writer, result *model.AnalysisResult, logger *slog.Logger) error {
	if cfg.SaveAnalyses {
		if err := svc.SaveAnalysis(ctx, result); err != nil {
			// A failed save must not hide the analysis itself.
			logger.Error("failed to save analysis", "url", result.URL, "error", err)
		}
	}

	rep, err := svc.Report(ctx, result)
	if err != nil {
		logger.Error("failed to load votes", "url", result.URL, "error", err)
		rep = model.NewReport(result)
	}

	if _, err := writer.Write(rep); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
