package constants

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Thresholds and limits shared across the analysis pipeline.
const (
	// DefaultAIConfidenceThreshold is the overall-confidence floor below
	// which a heuristic result is escalated to the AI extractor.
	DefaultAIConfidenceThreshold = 0.5

	// DefaultAIBatchSize bounds how many documents are in flight at once
	// during a batch AI run.
	DefaultAIBatchSize = 5

	// DefaultCacheCapacity is the bound on the content-hash cache before
	// LRU eviction kicks in.
	DefaultCacheCapacity = 1000

	// MaxSnippets and MaxSnippetLen cap the evidence excerpts carried on
	// an analysis. Snippets stay strictly under 500 characters.
	MaxSnippets   = 5
	MaxSnippetLen = 499

	// AIMaxAttempts and AIBackoffBase drive the retry loop around the
	// language-model call: 1s, 2s, 4s between attempts.
	AIMaxAttempts = 3
	AIBackoffBase = 1000 * time.Millisecond

	// BatchChunkDelay is the pause between traditional batch chunks so we
	// stay inside provider rate limits.
	BatchChunkDelay = 100 * time.Millisecond
)

// TruncateSnippet cuts a snippet down to MaxSnippetLen bytes without
// splitting a multi-byte UTF-8 rune, trimming any space the cut exposes.
func TruncateSnippet(s string) string {
	if len(s) <= MaxSnippetLen {
		return s
	}
	cut := MaxSnippetLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return strings.TrimRight(s[:cut], " ")
}
