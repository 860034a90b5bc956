package analyzer

import "sync"

// Stats accumulates pipeline counters. One instance is constructed per
// service and shared with its orchestrator; there is no ambient global.
type Stats struct {
	mu             sync.Mutex
	totalProcessed uint64
	regexProcessed uint64
	aiProcessed    uint64
	cacheHits      uint64
	cacheMisses    uint64
	errors         uint64
	confidenceSum  float64
}

// StatsSnapshot is a point-in-time copy of the counters.
type StatsSnapshot struct {
	TotalProcessed    uint64  `json:"total_processed"`
	RegexProcessed    uint64  `json:"regex_processed"`
	AIProcessed       uint64  `json:"ai_processed"`
	CacheHits         uint64  `json:"cache_hits"`
	CacheMisses       uint64  `json:"cache_misses"`
	Errors            uint64  `json:"errors"`
	AverageConfidence float64 `json:"average_confidence"`
}

func NewStats() *Stats { return &Stats{} }

func (s *Stats) recordResult(overallConfidence float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.totalProcessed++
	s.confidenceSum += overallConfidence
}

func (s *Stats) recordRegex() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.regexProcessed++
}

func (s *Stats) recordAI() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.aiProcessed++
}

func (s *Stats) recordCacheHit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cacheHits++
}

func (s *Stats) recordCacheMiss() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cacheMisses++
}

func (s *Stats) recordError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errors++
}

// Snapshot returns the current counters. AverageConfidence is the mean
// overall confidence across everything processed so far.
func (s *Stats) Snapshot() StatsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := StatsSnapshot{
		TotalProcessed: s.totalProcessed,
		RegexProcessed: s.regexProcessed,
		AIProcessed:    s.aiProcessed,
		CacheHits:      s.cacheHits,
		CacheMisses:    s.cacheMisses,
		Errors:         s.errors,
	}
	if s.totalProcessed > 0 {
		snap.AverageConfidence = s.confidenceSum / float64(s.totalProcessed)
	}
	return snap
}
