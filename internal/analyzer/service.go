// Package analyzer is the hybrid classification engine: it runs the
// heuristic first pass, decides whether to escalate to the AI extractor,
// and reconciles the two results by per-field confidence. The AI path is
// strictly best-effort; analysis never fails because the fallback did.
package analyzer

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/amara-obi/docsorter/internal/cache"
	"github.com/amara-obi/docsorter/internal/entity"
	"github.com/amara-obi/docsorter/internal/heuristic"
)

// Service is the public face of the engine. Construct it once with its
// orchestrator and stats; per-call behavior comes from Options.
type Service struct {
	orch   *Orchestrator
	stats  *Stats
	logger *slog.Logger
}

// Item is one document in a batch: the path it came from (hint only) and
// its already-extracted plain text.
type Item struct {
	FilePath string
	Text     string
}

func NewService(orch *Orchestrator, stats *Stats, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if stats == nil {
		stats = NewStats()
	}
	return &Service{orch: orch, stats: stats, logger: logger}
}

// Analyze produces the final analysis for one document. It always returns
// a usable value: worst case is the all-null heuristic result with zero
// confidence. The returned source is regex or hybrid, never a bare AI
// result.
func (s *Service) Analyze(ctx context.Context, text, filePath string, opts Options) entity.Analysis {
	opts = opts.withDefaults()
	start := time.Now()

	result := heuristic.Extract(text)
	if strings.TrimSpace(text) != "" {
		result.ContentHash = cache.Key(text)
	}
	s.stats.recordRegex()

	escalated := false
	if opts.UseAI && result.ContentHash != "" && ShouldUseAI(result, opts) {
		escalated = true
		ai := s.orch.extractOne(ctx, BatchInput{Text: text, FilenameHint: filepath.Base(filePath)}, opts)
		if ai != nil {
			result = Merge(result, ai)
			s.stats.recordAI()
		} else {
			// degraded to regex-only
			s.stats.recordError()
		}
	}

	s.stats.recordResult(result.OverallConfidence)
	s.logger.Info("analyzer.analyze.done",
		"file", filePath,
		"doc_type", result.DocType,
		"source", string(result.Source),
		"overall_confidence", result.OverallConfidence,
		"escalated", escalated,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return result
}

// AnalyzeBatch analyzes several documents, escalating the low-confidence
// ones through the orchestrator's batch path. The returned slice matches
// the input order, one analysis per item.
func (s *Service) AnalyzeBatch(ctx context.Context, items []Item, opts Options) []entity.Analysis {
	opts = opts.withDefaults()
	start := time.Now()

	results := make([]entity.Analysis, len(items))
	var aiInputs []BatchInput
	var aiIdx []int
	for i, item := range items {
		results[i] = heuristic.Extract(item.Text)
		if strings.TrimSpace(item.Text) != "" {
			results[i].ContentHash = cache.Key(item.Text)
		}
		s.stats.recordRegex()

		if opts.UseAI && results[i].ContentHash != "" && ShouldUseAI(results[i], opts) {
			aiInputs = append(aiInputs, BatchInput{Text: item.Text, FilenameHint: filepath.Base(item.FilePath)})
			aiIdx = append(aiIdx, i)
		}
	}

	if len(aiInputs) > 0 {
		aiResults := s.orch.ExtractMetadataAIBatch(ctx, aiInputs, opts)
		for j, ai := range aiResults {
			i := aiIdx[j]
			if ai != nil {
				results[i] = Merge(results[i], ai)
				s.stats.recordAI()
			} else {
				s.stats.recordError()
			}
		}
	}

	for i := range results {
		s.stats.recordResult(results[i].OverallConfidence)
	}
	s.logger.Info("analyzer.analyze_batch.done",
		"items", len(items),
		"escalated", len(aiInputs),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return results
}

// GetStats returns the cumulative pipeline counters.
func (s *Service) GetStats() StatsSnapshot {
	return s.stats.Snapshot()
}
