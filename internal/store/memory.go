// Package store provides the query-history persistence collaborators: an
// in-memory store with TTL-based session expiry and a PostgreSQL store.
package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jellydator/ttlcache/v3"

	"github.com/floatchat/floatchat/internal/chat"
)

// sessionHistory holds a session's records in insertion (chronological) order.
type sessionHistory struct {
	records []chat.QueryRecord
}

// MemoryStore is a concurrency-safe in-memory chat.HistoryStore. Sessions
// expire after the configured retention; expiry also drops the per-query
// index entries for that session.
type MemoryStore struct {
	sessions *ttlcache.Cache[string, *sessionHistory]

	mu      sync.RWMutex
	queries map[string]chat.QueryRecord
}

// NewMemoryStore creates a memory store whose sessions expire retention after
// their last access. retention <= 0 disables expiry.
func NewMemoryStore(retention time.Duration) *MemoryStore {
	var opts []ttlcache.Option[string, *sessionHistory]
	if retention > 0 {
		opts = append(opts, ttlcache.WithTTL[string, *sessionHistory](retention))
	}

	s := &MemoryStore{
		sessions: ttlcache.New(opts...),
		queries:  make(map[string]chat.QueryRecord),
	}

	s.sessions.OnEviction(func(_ context.Context, _ ttlcache.EvictionReason, item *ttlcache.Item[string, *sessionHistory]) {
		s.mu.Lock()
		defer s.mu.Unlock()
		for _, rec := range item.Value().records {
			delete(s.queries, rec.ID)
		}
	})

	go s.sessions.Start()
	return s
}

// Close stops the background expiry loop.
func (s *MemoryStore) Close() {
	s.sessions.Stop()
}

// SaveQuery appends a record to its session and indexes it by query id.
func (s *MemoryStore) SaveQuery(_ context.Context, rec chat.QueryRecord) error {
	item := s.sessions.Get(rec.SessionID)
	if item == nil {
		item = s.sessions.Set(rec.SessionID, &sessionHistory{}, ttlcache.DefaultTTL)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	history := item.Value()
	history.records = append(history.records, rec)
	s.queries[rec.ID] = rec
	return nil
}

// SessionHistory returns a session's records newest first, capped at limit.
func (s *MemoryStore) SessionHistory(_ context.Context, sessionID string, limit int) ([]chat.QueryRecord, error) {
	item := s.sessions.Get(sessionID)
	if item == nil {
		return nil, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	records := item.Value().records
	out := make([]chat.QueryRecord, len(records))
	copy(out, records)
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// QueryByID returns a single record by query id.
func (s *MemoryStore) QueryByID(_ context.Context, queryID string) (chat.QueryRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.queries[queryID]
	if !ok {
		return chat.QueryRecord{}, chat.ErrNotFound
	}
	return rec, nil
}

// DeleteSession drops a session and its per-query index entries.
func (s *MemoryStore) DeleteSession(_ context.Context, sessionID string) error {
	// Eviction callback removes the query index entries; it must not run
	// while we hold the mutex.
	s.sessions.Delete(sessionID)
	return nil
}

// SessionStats summarizes a session's history.
func (s *MemoryStore) SessionStats(ctx context.Context, sessionID string) (chat.SessionStats, error) {
	history, err := s.SessionHistory(ctx, sessionID, 0)
	if err != nil {
		return chat.SessionStats{}, err
	}
	return statsFromHistory(history), nil
}

// Cleanup removes records created before the cutoff. Empty sessions are left
// to expire on their own.
func (s *MemoryStore) Cleanup(_ context.Context, olderThan time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for _, item := range s.sessions.Items() {
		history := item.Value()
		kept := history.records[:0]
		for _, rec := range history.records {
			if rec.CreatedAt.Before(olderThan) {
				delete(s.queries, rec.ID)
				removed++
				continue
			}
			kept = append(kept, rec)
		}
		history.records = kept
	}
	return removed, nil
}

// statsFromHistory derives session statistics from a newest-first history.
// Shared by both store implementations.
func statsFromHistory(history []chat.QueryRecord) chat.SessionStats {
	stats := chat.SessionStats{
		TotalQueries:    len(history),
		VariableCounts:  make(map[string]int),
		OperationCounts: make(map[string]int),
	}
	if len(history) == 0 {
		return stats
	}

	first := history[len(history)-1].CreatedAt
	last := history[0].CreatedAt
	stats.FirstQueryTime = &first
	stats.LastQueryTime = &last

	for _, rec := range history {
		if rec.Parsed == nil {
			continue
		}
		stats.VariableCounts[string(rec.Parsed.Variable)]++
		stats.OperationCounts[string(rec.Parsed.Operation)]++
	}
	return stats
}
