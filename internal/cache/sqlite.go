package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/amara-obi/docsorter/internal/entity"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS analysis_cache (
	content_hash TEXT PRIMARY KEY,
	payload      BLOB NOT NULL,
	inserted_at  INTEGER NOT NULL,
	last_access  INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_analysis_cache_last_access ON analysis_cache(last_access);
`

// SQLiteStore keeps AI analyses in a SQLite file so identical documents
// hit across process restarts. Storage errors are non-fatal: a failed
// read counts as a miss, a failed write is logged and dropped.
type SQLiteStore struct {
	db       *sql.DB
	capacity int
	logger   *slog.Logger

	mu        sync.Mutex
	hits      uint64
	misses    uint64
	evictions uint64
}

// NewSQLiteStore opens (creating if needed) the cache database at path.
func NewSQLiteStore(path string, capacity int, logger *slog.Logger) (*SQLiteStore, error) {
	if capacity <= 0 {
		capacity = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// modernc sqlite serializes access through a single connection.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db, capacity: capacity, logger: logger}, nil
}

func (s *SQLiteStore) Get(ctx context.Context, key string) (entity.Analysis, bool) {
	var payload []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM analysis_cache WHERE content_hash = ?`, key,
	).Scan(&payload)
	if err != nil {
		if err != sql.ErrNoRows {
			s.logger.Warn("cache.sqlite.read_error", "error", err)
		}
		s.count(func() { s.misses++ })
		return entity.Analysis{}, false
	}

	var a entity.Analysis
	if err := json.Unmarshal(payload, &a); err != nil {
		s.logger.Warn("cache.sqlite.decode_error", "error", err)
		s.count(func() { s.misses++ })
		return entity.Analysis{}, false
	}

	if _, err := s.db.ExecContext(ctx,
		`UPDATE analysis_cache SET last_access = ? WHERE content_hash = ?`,
		time.Now().UnixNano(), key,
	); err != nil {
		s.logger.Warn("cache.sqlite.touch_error", "error", err)
	}
	s.count(func() { s.hits++ })
	return a, true
}

func (s *SQLiteStore) Set(ctx context.Context, key string, a entity.Analysis) {
	payload, err := json.Marshal(a)
	if err != nil {
		s.logger.Warn("cache.sqlite.encode_error", "error", err)
		return
	}
	now := time.Now().UnixNano()
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO analysis_cache (content_hash, payload, inserted_at, last_access)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(content_hash) DO UPDATE SET payload = excluded.payload, last_access = excluded.last_access`,
		key, payload, now, now,
	); err != nil {
		s.logger.Warn("cache.sqlite.write_error", "error", err)
		return
	}
	s.evictOverCapacity(ctx)
}

// evictOverCapacity trims the least-recently-used rows down to capacity.
func (s *SQLiteStore) evictOverCapacity(ctx context.Context) {
	var size int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM analysis_cache`).Scan(&size); err != nil {
		s.logger.Warn("cache.sqlite.count_error", "error", err)
		return
	}
	if size <= s.capacity {
		return
	}
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM analysis_cache WHERE content_hash IN (
			SELECT content_hash FROM analysis_cache ORDER BY last_access ASC LIMIT ?
		)`, size-s.capacity,
	)
	if err != nil {
		s.logger.Warn("cache.sqlite.evict_error", "error", err)
		return
	}
	if n, err := res.RowsAffected(); err == nil {
		s.count(func() { s.evictions += uint64(n) })
	}
}

func (s *SQLiteStore) Counters() Counters {
	s.mu.Lock()
	defer s.mu.Unlock()

	var size int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM analysis_cache`).Scan(&size); err != nil {
		s.logger.Warn("cache.sqlite.count_error", "error", err)
	}
	return Counters{
		Hits:      s.hits,
		Misses:    s.misses,
		Evictions: s.evictions,
		Size:      size,
	}
}

func (s *SQLiteStore) count(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn()
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
