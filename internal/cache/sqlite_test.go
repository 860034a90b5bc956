package cache

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amara-obi/docsorter/internal/entity"
)

func newTestSQLiteStore(t *testing.T, capacity int) *SQLiteStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cache.db")
	s, err := NewSQLiteStore(path, capacity, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLiteStore(t, 10)

	_, ok := s.Get(ctx, "absent")
	assert.False(t, ok)

	want := entity.Analysis{
		ClientName:        "Acme Corporation",
		ClientConfidence:  0.9,
		Date:              "2024-01-15",
		DateConfidence:    0.85,
		DocType:           "Invoice",
		DocTypeConfidence: 0.8,
		OverallConfidence: 0.95,
		Snippets:          []string{"Bill to: Acme Corporation"},
		Source:            entity.SourceAI,
		ContentHash:       Key("some text"),
	}
	s.Set(ctx, want.ContentHash, want)

	got, ok := s.Get(ctx, want.ContentHash)
	require.True(t, ok)
	assert.Equal(t, want, got)

	c := s.Counters()
	assert.Equal(t, uint64(1), c.Hits)
	assert.Equal(t, uint64(1), c.Misses)
	assert.Equal(t, 1, c.Size)
}

func TestSQLiteStoreSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "cache.db")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	s, err := NewSQLiteStore(path, 10, logger)
	require.NoError(t, err)
	s.Set(ctx, "k1", entity.Analysis{ClientName: "Acme", Source: entity.SourceAI})
	require.NoError(t, s.Close())

	s, err = NewSQLiteStore(path, 10, logger)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	got, ok := s.Get(ctx, "k1")
	require.True(t, ok)
	assert.Equal(t, "Acme", got.ClientName)
}

func TestSQLiteStoreEvictsOverCapacity(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLiteStore(t, 2)

	s.Set(ctx, "k1", entity.Analysis{ClientName: "one"})
	time.Sleep(2 * time.Millisecond)
	s.Set(ctx, "k2", entity.Analysis{ClientName: "two"})
	time.Sleep(2 * time.Millisecond)
	s.Set(ctx, "k3", entity.Analysis{ClientName: "three"})

	_, ok := s.Get(ctx, "k1")
	assert.False(t, ok, "oldest entry must be evicted")
	_, ok = s.Get(ctx, "k2")
	assert.True(t, ok)
	_, ok = s.Get(ctx, "k3")
	assert.True(t, ok)

	c := s.Counters()
	assert.Equal(t, uint64(1), c.Evictions)
	assert.Equal(t, 2, c.Size)
}

func TestSQLiteStoreUpsert(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLiteStore(t, 5)

	s.Set(ctx, "k1", entity.Analysis{ClientName: "first"})
	s.Set(ctx, "k1", entity.Analysis{ClientName: "second"})

	got, ok := s.Get(ctx, "k1")
	require.True(t, ok)
	assert.Equal(t, "second", got.ClientName)
	assert.Equal(t, 1, s.Counters().Size)
}
