package analyzer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amara-obi/docsorter/internal/cache"
	"github.com/amara-obi/docsorter/internal/entity"
)

const invoiceText = "INVOICE #12345\nBill to: Acme Corporation\nInvoice Date: January 15, 2024"

func newTestService(fake *fakeExtractor, store cache.Store) (*Service, *Stats) {
	stats := NewStats()
	var o *Orchestrator
	if fake != nil {
		o = NewOrchestrator(fake, store, stats, NopSink{}, testLogger(),
			WithBackoffBase(time.Millisecond))
	} else {
		o = NewOrchestrator(nil, store, stats, NopSink{}, testLogger())
	}
	return NewService(o, stats, testLogger()), stats
}

func TestAnalyzeConfidentHeuristicSkipsAI(t *testing.T) {
	fake := &fakeExtractor{responses: []string{goodAIResponse}}
	svc, stats := newTestService(fake, nil)

	got := svc.Analyze(context.Background(), invoiceText, "invoice.txt", DefaultOptions())

	assert.Equal(t, entity.SourceRegex, got.Source)
	assert.Equal(t, "Invoice", got.DocType)
	assert.Equal(t, 0, fake.callCount(), "confident heuristics never pay for a model call")

	snap := stats.Snapshot()
	assert.Equal(t, uint64(1), snap.TotalProcessed)
	assert.Equal(t, uint64(1), snap.RegexProcessed)
	assert.Equal(t, uint64(0), snap.AIProcessed)
}

func TestAnalyzeLowConfidenceEscalatesToHybrid(t *testing.T) {
	fake := &fakeExtractor{responses: []string{goodAIResponse}}
	svc, stats := newTestService(fake, nil)

	vague := "ref 7391\nsee attached\nqq zz"
	got := svc.Analyze(context.Background(), vague, "scan.txt", DefaultOptions())

	assert.Equal(t, entity.SourceHybrid, got.Source)
	assert.Equal(t, "Acme Corporation", got.ClientName)
	assert.Equal(t, "2024-01-15", got.Date)
	assert.Equal(t, "Invoice", got.DocType)
	assert.Equal(t, 1, fake.callCount())

	snap := stats.Snapshot()
	assert.Equal(t, uint64(1), snap.AIProcessed)
	assert.Equal(t, uint64(0), snap.Errors)
}

func TestAnalyzeAbsorbsAIFailure(t *testing.T) {
	fake := &fakeExtractor{err: errors.New("model is down")}
	svc, stats := newTestService(fake, nil)

	got := svc.Analyze(context.Background(), "ref 7391\nnothing useful", "scan.txt", DefaultOptions())

	assert.Equal(t, entity.SourceRegex, got.Source, "pipeline degrades to heuristics, never errors")
	assert.Equal(t, 3, fake.callCount())

	snap := stats.Snapshot()
	assert.Equal(t, uint64(1), snap.TotalProcessed)
	assert.Equal(t, uint64(1), snap.Errors)
}

func TestAnalyzeEmptyText(t *testing.T) {
	fake := &fakeExtractor{responses: []string{goodAIResponse}}
	svc, stats := newTestService(fake, nil)

	got := svc.Analyze(context.Background(), "", "empty.txt", DefaultOptions())

	assert.Equal(t, entity.SourceRegex, got.Source)
	assert.Equal(t, "Unclassified", got.DocType)
	assert.Empty(t, got.ContentHash)
	assert.Equal(t, 0, fake.callCount())
	assert.Equal(t, uint64(0), stats.Snapshot().Errors, "blank input is not an AI failure")
}

func TestAnalyzeAIDisabled(t *testing.T) {
	fake := &fakeExtractor{responses: []string{goodAIResponse}}
	svc, _ := newTestService(fake, nil)

	opts := DefaultOptions()
	opts.UseAI = false
	got := svc.Analyze(context.Background(), "ref 7391\nnothing useful", "scan.txt", opts)

	assert.Equal(t, entity.SourceRegex, got.Source)
	assert.Equal(t, 0, fake.callCount())
}

func TestAnalyzeBatchPreservesOrder(t *testing.T) {
	fake := &fakeExtractor{responses: []string{goodAIResponse}}
	svc, stats := newTestService(fake, nil)

	items := []Item{
		{FilePath: "a.txt", Text: invoiceText},
		{FilePath: "b.txt", Text: "ref 7391\nsee attached"},
		{FilePath: "c.txt", Text: ""},
	}
	results := svc.AnalyzeBatch(context.Background(), items, DefaultOptions())
	require.Len(t, results, 3)

	assert.Equal(t, entity.SourceRegex, results[0].Source, "confident item stays heuristic")
	assert.Equal(t, entity.SourceHybrid, results[1].Source, "vague item is escalated and merged")
	assert.Equal(t, entity.SourceRegex, results[2].Source)
	assert.Equal(t, "Unclassified", results[2].DocType)

	snap := stats.Snapshot()
	assert.Equal(t, uint64(3), snap.TotalProcessed)
	assert.Equal(t, uint64(3), snap.RegexProcessed)
	assert.Equal(t, uint64(1), snap.AIProcessed)
	assert.Greater(t, snap.AverageConfidence, 0.0)
}

func TestAnalyzeCachesIdenticalContent(t *testing.T) {
	fake := &fakeExtractor{responses: []string{goodAIResponse}}
	svc, stats := newTestService(fake, cache.NewMemoryStore(10))

	same := "ref 7391\nsee attached"
	items := []Item{
		{FilePath: "a.txt", Text: same},
		{FilePath: "b.txt", Text: same},
	}
	// Sequential analyses of identical content: the second one hits.
	first := svc.Analyze(context.Background(), items[0].Text, items[0].FilePath, DefaultOptions())
	second := svc.Analyze(context.Background(), items[1].Text, items[1].FilePath, DefaultOptions())

	assert.Equal(t, entity.SourceHybrid, first.Source)
	assert.Equal(t, entity.SourceHybrid, second.Source)
	assert.Equal(t, 1, fake.callCount(), "identical content is served from the cache")

	snap := stats.Snapshot()
	assert.Equal(t, uint64(1), snap.CacheHits)
	assert.Equal(t, uint64(1), snap.CacheMisses)
}

func TestGetStatsStartsZeroed(t *testing.T) {
	svc, _ := newTestService(nil, nil)
	snap := svc.GetStats()
	assert.Equal(t, uint64(0), snap.TotalProcessed)
	assert.Equal(t, 0.0, snap.AverageConfidence)
}
