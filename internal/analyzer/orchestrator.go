package analyzer

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/amara-obi/docsorter/constants"
	"github.com/amara-obi/docsorter/internal/cache"
	"github.com/amara-obi/docsorter/internal/entity"
	"github.com/amara-obi/docsorter/internal/llm"
)

// Orchestrator owns the AI escalation path: cache lookups, the retrying
// model call, validation/sanitization of what comes back, and batch
// fan-out. Every failure inside it degrades to a nil result; nothing here
// can fail the document pipeline.
type Orchestrator struct {
	client  llm.Extractor // nil means the AI path is unavailable
	cache   cache.Store   // nil means no caching
	stats   *Stats
	sink    EventSink
	logger  *slog.Logger
	limiter *rate.Limiter

	maxAttempts int
	backoffBase time.Duration
	chunkDelay  time.Duration
}

type OrchestratorOption func(*Orchestrator)

// WithRateLimiter installs a token bucket shared by all AI calls,
// decoupling "how fast can we issue calls" from batch concurrency.
func WithRateLimiter(l *rate.Limiter) OrchestratorOption {
	return func(o *Orchestrator) { o.limiter = l }
}

func WithBackoffBase(d time.Duration) OrchestratorOption {
	return func(o *Orchestrator) {
		if d > 0 {
			o.backoffBase = d
		}
	}
}

func WithChunkDelay(d time.Duration) OrchestratorOption {
	return func(o *Orchestrator) {
		if d >= 0 {
			o.chunkDelay = d
		}
	}
}

func NewOrchestrator(client llm.Extractor, store cache.Store, stats *Stats, sink EventSink, logger *slog.Logger, opts ...OrchestratorOption) *Orchestrator {
	if stats == nil {
		stats = NewStats()
	}
	if logger == nil {
		logger = slog.Default()
	}
	if sink == nil {
		sink = NewLogSink(logger)
	}
	o := &Orchestrator{
		client:      client,
		cache:       store,
		stats:       stats,
		sink:        sink,
		logger:      logger,
		maxAttempts: constants.AIMaxAttempts,
		backoffBase: constants.AIBackoffBase,
		chunkDelay:  constants.BatchChunkDelay,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// ShouldUseAI decides whether a heuristic result is good enough on its
// own. Pure and side-effect free: escalate when forced, when the overall
// confidence sits under the threshold, or when any field is missing.
func ShouldUseAI(a entity.Analysis, opts Options) bool {
	opts = opts.withDefaults()
	if opts.ForceAI {
		return true
	}
	if a.OverallConfidence < opts.AIConfidenceThreshold {
		return true
	}
	if !a.HasClient() || !a.HasDate() || !a.HasDocType() {
		return true
	}
	return false
}

// BatchInput is one document handed to the AI batch path.
type BatchInput struct {
	Text         string
	FilenameHint string
}

// ExtractMetadataAI runs the single-item AI flow for a document's text.
// It returns nil when the orchestrator is disabled, the text is empty, or
// every attempt failed; callers fall back to the heuristic-only result.
func (o *Orchestrator) ExtractMetadataAI(ctx context.Context, text string, opts Options) *entity.Analysis {
	return o.extractOne(ctx, BatchInput{Text: text}, opts)
}

func (o *Orchestrator) extractOne(ctx context.Context, in BatchInput, opts Options) *entity.Analysis {
	opts = opts.withDefaults()
	if o.client == nil {
		o.logger.Debug("analyzer.ai.unavailable")
		return nil
	}
	if strings.TrimSpace(in.Text) == "" {
		return nil
	}

	key := cache.Key(in.Text)
	if cached := o.cacheLookup(ctx, key, opts); cached != nil {
		return cached
	}

	fields := o.callAIService(ctx, llm.Request{Text: in.Text, FilenameHint: in.FilenameHint})
	if fields == nil {
		return nil
	}
	a := o.finishAIResult(ctx, *fields, key, opts)
	return &a
}

// cacheLookup consults the content cache when the options allow it. A hit
// comes back retagged ai-cached.
func (o *Orchestrator) cacheLookup(ctx context.Context, key string, opts Options) *entity.Analysis {
	if o.cache == nil || opts.DisableCache {
		return nil
	}
	if opts.ForceRefresh {
		return nil
	}
	if hit, ok := o.cache.Get(ctx, key); ok {
		hit.Source = entity.SourceAICached
		o.stats.recordCacheHit()
		o.sink.Emit(Event{Name: EventCacheHit, Key: key})
		return &hit
	}
	o.stats.recordCacheMiss()
	o.sink.Emit(Event{Name: EventCacheMiss, Key: key})
	return nil
}

// finishAIResult validates already happened; this sanitized conversion
// tags the analysis as AI-sourced and writes it back to the cache (also
// on ForceRefresh, which only skips the lookup).
func (o *Orchestrator) finishAIResult(ctx context.Context, fields llm.DocumentFields, key string, opts Options) entity.Analysis {
	a := analysisFromFields(fields, key)
	if o.cache != nil && !opts.DisableCache {
		o.cache.Set(ctx, key, a)
	}
	return a
}

// callAIService invokes the model with retry and exponential backoff.
// A retry is triggered by an empty response, a parse/validation failure,
// or a response with no usable data. Exhausted attempts return nil.
func (o *Orchestrator) callAIService(ctx context.Context, req llm.Request) *llm.DocumentFields {
	rid := uuid.New().String()
	for attempt := 1; attempt <= o.maxAttempts; attempt++ {
		if attempt > 1 {
			if !o.sleep(ctx, o.backoffBase*(1<<(attempt-2))) {
				return nil
			}
		}
		if o.limiter != nil {
			if err := o.limiter.Wait(ctx); err != nil {
				o.logger.Warn("analyzer.ai.rate_limit_interrupted", "req_id", rid, "error", err)
				return nil
			}
		}

		start := time.Now()
		raw, err := o.client.Extract(ctx, req)
		elapsed := time.Since(start)

		switch {
		case err != nil:
			o.logger.Warn("analyzer.ai.attempt_failed", "req_id", rid, "attempt", attempt, "error", err)
		case len(bytes.TrimSpace(raw)) == 0:
			o.logger.Warn("analyzer.ai.empty_response", "req_id", rid, "attempt", attempt)
		default:
			fields, verr := llm.ValidateResponse(raw)
			if verr != nil {
				o.logger.Warn("analyzer.ai.invalid_response",
					"req_id", rid, "attempt", attempt, "kind", string(verr.Kind), "error", verr.Error())
				break
			}
			clean := llm.SanitizeFields(fields)
			if !llm.HasUsableData(clean) {
				o.logger.Warn("analyzer.ai.no_usable_data", "req_id", rid, "attempt", attempt)
				break
			}
			o.sink.Emit(Event{Name: EventAICall, Model: o.client.Model(), Elapsed: elapsed, OK: true})
			return &clean
		}
		o.sink.Emit(Event{Name: EventAICall, Model: o.client.Model(), Elapsed: elapsed, OK: false})
	}
	o.logger.Warn("analyzer.ai.retries_exhausted", "req_id", rid, "attempts", o.maxAttempts)
	return nil
}

// sleep waits for d or until ctx is done; reports whether the wait
// completed.
func (o *Orchestrator) sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	select {
	case <-time.After(d):
		return true
	case <-ctx.Done():
		return false
	}
}

// analysisFromFields converts validated, sanitized wire fields into an
// AI-sourced analysis. Confidences for null fields are zeroed regardless
// of what the model claimed, and the overall score is always recomputed.
func analysisFromFields(f llm.DocumentFields, key string) entity.Analysis {
	a := entity.Analysis{
		DocType:     string(constants.Unclassified),
		Source:      entity.SourceAI,
		ContentHash: key,
		Snippets:    f.Snippets,
	}
	if f.ClientName != nil {
		a.ClientName = *f.ClientName
		a.ClientConfidence = f.ClientConfidence
	}
	if f.Date != nil {
		a.Date = *f.Date
		a.DateConfidence = f.DateConfidence
	}
	if f.DocType != nil {
		if dt, ok := constants.Canonicalize(*f.DocType); ok {
			a.DocType = string(dt)
		} else {
			a.DocType = *f.DocType
		}
		a.DocTypeConfidence = f.DocTypeConfidence
	}
	a.RecomputeOverall()
	return a
}
