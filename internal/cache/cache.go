// Package cache implements the content-hash keyed store of AI analyses.
// Entries are keyed purely by a SHA-256 of the input text, so identical
// content always hits regardless of where the file lives. Two backings
// exist: a mutex-guarded in-memory LRU and a SQLite file for reuse across
// runs. Both keep cumulative hit/miss/eviction counters.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"github.com/amara-obi/docsorter/internal/entity"
)

// Key computes the cache key for a document's text.
func Key(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// Counters is a point-in-time snapshot of cache activity.
type Counters struct {
	Hits      uint64 `json:"hits"`
	Misses    uint64 `json:"misses"`
	Evictions uint64 `json:"evictions"`
	Size      int    `json:"size"`
}

// Store is the narrow interface the orchestrator depends on. Get and Set
// must be safe for concurrent use by in-flight batch items.
type Store interface {
	Get(ctx context.Context, key string) (entity.Analysis, bool)
	Set(ctx context.Context, key string, a entity.Analysis)
	Counters() Counters
}

type memoryEntry struct {
	analysis   entity.Analysis
	insertedAt time.Time
	lastAccess time.Time
}

// MemoryStore is the in-memory LRU backing.
type MemoryStore struct {
	mu       sync.Mutex
	entries  map[string]*memoryEntry
	capacity int

	hits      uint64
	misses    uint64
	evictions uint64
}

// NewMemoryStore creates a bounded in-memory store. Capacity must be
// positive; the least-recently-used entry is evicted when an insert would
// exceed it.
func NewMemoryStore(capacity int) *MemoryStore {
	if capacity <= 0 {
		capacity = 1
	}
	return &MemoryStore{
		entries:  make(map[string]*memoryEntry),
		capacity: capacity,
	}
}

func (s *MemoryStore) Get(_ context.Context, key string) (entity.Analysis, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		s.misses++
		return entity.Analysis{}, false
	}
	e.lastAccess = time.Now()
	s.hits++
	return e.analysis, true
}

func (s *MemoryStore) Set(_ context.Context, key string, a entity.Analysis) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[key]; !exists && len(s.entries) >= s.capacity {
		s.evictLRU()
	}
	now := time.Now()
	s.entries[key] = &memoryEntry{
		analysis:   a,
		insertedAt: now,
		lastAccess: now,
	}
}

// evictLRU removes the entry with the oldest last access. Caller holds the
// lock.
func (s *MemoryStore) evictLRU() {
	var oldestKey string
	var oldest time.Time
	for k, e := range s.entries {
		if oldestKey == "" || e.lastAccess.Before(oldest) {
			oldestKey = k
			oldest = e.lastAccess
		}
	}
	if oldestKey != "" {
		delete(s.entries, oldestKey)
		s.evictions++
	}
}

func (s *MemoryStore) Counters() Counters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Counters{
		Hits:      s.hits,
		Misses:    s.misses,
		Evictions: s.evictions,
		Size:      len(s.entries),
	}
}
