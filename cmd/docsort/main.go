package main

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"golang.org/x/time/rate"

	"github.com/amara-obi/docsorter/internal/analyzer"
	"github.com/amara-obi/docsorter/internal/cache"
	"github.com/amara-obi/docsorter/internal/common"
	"github.com/amara-obi/docsorter/internal/export"
	"github.com/amara-obi/docsorter/internal/extract"
	"github.com/amara-obi/docsorter/internal/llm"
	"github.com/amara-obi/docsorter/internal/llm/openai"
	"github.com/amara-obi/docsorter/internal/namegen"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if len(os.Args) < 2 {
		logger.Error("usage: docsort <file-or-directory>")
		os.Exit(2)
	}
	root := os.Args[1]

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// --- cache
	var store cache.Store
	if cfg.Cache.Path != "" {
		sqliteStore, err := cache.NewSQLiteStore(cfg.Cache.Path, cfg.Cache.Capacity, logger)
		if err != nil {
			logger.Error("open cache db", "path", cfg.Cache.Path, "error", err)
			os.Exit(1)
		}
		defer func() {
			if err := sqliteStore.Close(); err != nil {
				logger.Warn("close cache db", "error", err)
			}
		}()
		store = sqliteStore
	} else {
		store = cache.NewMemoryStore(cfg.Cache.Capacity)
	}

	// --- AI client (optional)
	var client *openai.Client
	if cfg.Analyzer.UseAI && cfg.LLM.APIKey != "" {
		client = openai.NewClient(openai.Config{
			APIKey:      cfg.LLM.APIKey,
			BaseURL:     cfg.LLM.BaseURL,
			Model:       cfg.LLM.Model,
			Temperature: cfg.LLM.Temperature,
			Timeout:     cfg.LLM.Timeout,
		}, logger)
	}

	stats := analyzer.NewStats()
	limiter := rate.NewLimiter(rate.Limit(cfg.Analyzer.RateLimitPerSecond), cfg.Analyzer.RateLimitBurst)
	var extractor llm.Extractor
	if client != nil {
		extractor = client
	}
	orch := analyzer.NewOrchestrator(extractor, store, stats, analyzer.NewLogSink(logger), logger,
		analyzer.WithRateLimiter(limiter),
	)
	svc := analyzer.NewService(orch, stats, logger)

	opts := analyzer.DefaultOptions()
	opts.UseAI = cfg.Analyzer.UseAI && client != nil
	opts.AIConfidenceThreshold = cfg.Analyzer.AIConfidenceThreshold
	opts.AIBatchSize = cfg.Analyzer.AIBatchSize

	// --- gather documents
	reader := extract.PlainText{}
	paths, err := collectPaths(root, reader)
	if err != nil {
		logger.Error("collect documents", "root", root, "error", err)
		os.Exit(1)
	}
	if len(paths) == 0 {
		logger.Error("no supported documents found", "root", root)
		os.Exit(1)
	}

	items := make([]analyzer.Item, 0, len(paths))
	mtimes := make([]time.Time, 0, len(paths))
	for _, p := range paths {
		res, err := reader.Extract(ctx, p)
		if err != nil {
			logger.Warn("text extraction failed, analyzing empty", "path", p, "error", err)
		}
		items = append(items, analyzer.Item{FilePath: p, Text: res.Text})
		mtimes = append(mtimes, res.ModTime)
	}

	results := svc.AnalyzeBatch(ctx, items, opts)

	exportRows := make([]export.Row, 0, len(results))
	for i, a := range results {
		proposed := namegen.Propose(namegen.Input{
			ClientName: a.ClientName,
			Date:       a.Date,
			DocType:    a.DocType,
			SourcePath: items[i].FilePath,
			ModTime:    mtimes[i],
		})
		fmt.Printf("%s\t->\t%s\t(%s, %.2f)\n", items[i].FilePath, proposed, a.Source, a.OverallConfidence)
		exportRows = append(exportRows, export.Row{
			SourcePath:   items[i].FilePath,
			ProposedName: proposed,
			Analysis:     a,
		})
	}

	if cfg.Export.OutputPath != "" {
		workbook, err := export.NewService(logger).BuildWorkbook(exportRows)
		if err != nil {
			logger.Error("build export workbook", "error", err)
			os.Exit(1)
		}
		if err := os.WriteFile(cfg.Export.OutputPath, workbook, 0o644); err != nil {
			logger.Error("write export workbook", "path", cfg.Export.OutputPath, "error", err)
			os.Exit(1)
		}
		logger.Info("export written", "path", cfg.Export.OutputPath, "rows", len(exportRows))
	}

	snap := svc.GetStats()
	logger.Info("run complete",
		"total", snap.TotalProcessed,
		"regex", snap.RegexProcessed,
		"ai", snap.AIProcessed,
		"cache_hits", snap.CacheHits,
		"cache_misses", snap.CacheMisses,
		"errors", snap.Errors,
		"avg_confidence", snap.AverageConfidence,
	)
}

func collectPaths(root string, reader extract.PlainText) ([]string, error) {
	st, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !st.IsDir() {
		return []string{root}, nil
	}
	var paths []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() != "." && len(d.Name()) > 1 && d.Name()[0] == '.' {
				return filepath.SkipDir
			}
			return nil
		}
		if reader.Supported(path) {
			paths = append(paths, path)
		}
		return nil
	})
	return paths, err
}
