package analyzer

import (
	"context"
	"strings"
	"sync"

	"github.com/amara-obi/docsorter/internal/cache"
	"github.com/amara-obi/docsorter/internal/entity"
	"github.com/amara-obi/docsorter/internal/llm"
)

// ExtractMetadataAIBatch runs the AI flow for a batch of documents. The
// returned slice is positional: results[i] answers inputs[i], nil where
// the AI path produced nothing. When the client supports model-grouped
// batching that path is tried first; a failure there falls back to the
// traditional chunked strategy instead of failing the whole batch.
func (o *Orchestrator) ExtractMetadataAIBatch(ctx context.Context, inputs []BatchInput, opts Options) []*entity.Analysis {
	opts = opts.withDefaults()
	results := make([]*entity.Analysis, len(inputs))
	if o.client == nil || len(inputs) == 0 {
		return results
	}

	if batcher, ok := o.client.(llm.BatchExtractor); ok {
		if o.intelligentBatch(ctx, batcher, inputs, opts, results) {
			return results
		}
		o.logger.Warn("analyzer.batch.intelligent_failed", "fallback", "traditional")
		// Every unresolved item already went through cacheLookup and
		// recorded its miss; skip the second lookup in the fallback.
		opts.ForceRefresh = true
	}
	o.traditionalBatch(ctx, inputs, opts, results)
	return results
}

// traditionalBatch partitions the pending items into chunks of the
// configured concurrency, processes each chunk's items concurrently
// through the single-item flow, and pauses between chunks to respect
// provider rate limits. Index-addressed writes keep input order.
func (o *Orchestrator) traditionalBatch(ctx context.Context, inputs []BatchInput, opts Options, results []*entity.Analysis) {
	concurrency := opts.AIBatchSize
	for startIdx := 0; startIdx < len(inputs); startIdx += concurrency {
		end := min(startIdx+concurrency, len(inputs))

		var wg sync.WaitGroup
		for i := startIdx; i < end; i++ {
			if results[i] != nil {
				continue
			}
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i] = o.extractOne(ctx, inputs[i], opts)
			}(i)
		}
		wg.Wait()

		if end < len(inputs) {
			if !o.sleep(ctx, o.chunkDelay) {
				return
			}
		}
	}
}

// intelligentBatch resolves cache hits first, groups the remaining
// requests by model identifier, and submits each group as one logical
// call. Responses are matched back by original index and then validated,
// sanitized, and cached exactly like the single-item path. Returns false
// when a group call fails, so the caller can fall back.
func (o *Orchestrator) intelligentBatch(ctx context.Context, batcher llm.BatchExtractor, inputs []BatchInput, opts Options, results []*entity.Analysis) bool {
	type pending struct {
		origIdx int
		key     string
		req     llm.Request
	}

	groups := make(map[string][]pending)
	for i, in := range inputs {
		if strings.TrimSpace(in.Text) == "" {
			continue
		}
		key := cache.Key(in.Text)
		if cached := o.cacheLookup(ctx, key, opts); cached != nil {
			results[i] = cached
			continue
		}
		req := llm.Request{Text: in.Text, FilenameHint: in.FilenameHint, Model: batcher.Model()}
		groups[req.Model] = append(groups[req.Model], pending{origIdx: i, key: key, req: req})
	}

	for model, items := range groups {
		reqs := make([]llm.Request, len(items))
		for i, p := range items {
			reqs[i] = p.req
		}
		raws, err := batcher.ExtractBatch(ctx, reqs)
		if err != nil {
			o.logger.Warn("analyzer.batch.group_failed", "model", model, "items", len(items), "error", err)
			return false
		}
		for i, p := range items {
			if i >= len(raws) || len(raws[i]) == 0 {
				continue
			}
			fields, verr := llm.ValidateResponse(raws[i])
			if verr != nil {
				o.logger.Warn("analyzer.batch.item_invalid", "model", model, "index", p.origIdx, "kind", string(verr.Kind))
				continue
			}
			clean := llm.SanitizeFields(fields)
			if !llm.HasUsableData(clean) {
				continue
			}
			a := o.finishAIResult(ctx, clean, p.key, opts)
			results[p.origIdx] = &a
		}
	}
	return true
}
