package analyzer

import "github.com/amara-obi/docsorter/constants"

// Options is the full set of recognized per-call knobs. Callers should
// start from DefaultOptions and override what they need; withDefaults
// backfills numeric zero values so a partially built struct stays sane.
type Options struct {
	// UseAI enables the AI fallback for low-confidence heuristics.
	UseAI bool
	// AIConfidenceThreshold is the overall-confidence floor below which a
	// heuristic result is escalated. Default 0.5.
	AIConfidenceThreshold float64
	// AIBatchSize bounds concurrent in-flight AI calls per batch chunk.
	// Default 5.
	AIBatchSize int
	// ForceAI escalates regardless of heuristic confidence.
	ForceAI bool
	// DisableCache turns the content-hash cache off. Caching defaults to
	// on, so the zero value of a hand-built Options still caches.
	DisableCache bool
	// ForceRefresh bypasses the cache lookup for this call only; the
	// fresh result is still written back.
	ForceRefresh bool
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		UseAI:                 true,
		AIConfidenceThreshold: constants.DefaultAIConfidenceThreshold,
		AIBatchSize:           constants.DefaultAIBatchSize,
	}
}

func (o Options) withDefaults() Options {
	if o.AIConfidenceThreshold <= 0 {
		o.AIConfidenceThreshold = constants.DefaultAIConfidenceThreshold
	}
	if o.AIBatchSize <= 0 {
		o.AIBatchSize = constants.DefaultAIBatchSize
	}
	return o
}
