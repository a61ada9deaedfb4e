package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/floatchat/floatchat/internal/chat"
)

func record(id, sessionID string, createdAt time.Time, variable chat.Variable, op chat.Operation) chat.QueryRecord {
	return chat.QueryRecord{
		ID:        id,
		SessionID: sessionID,
		UserQuery: "q",
		Response:  "r",
		Parsed:    &chat.StructuredQuery{Variable: variable, Operation: op},
		CreatedAt: createdAt,
	}
}

func TestMemoryStoreSaveAndHistory(t *testing.T) {
	s := NewMemoryStore(time.Hour)
	defer s.Close()

	ctx := context.Background()
	base := time.Now().UTC()

	for i, id := range []string{"a", "b", "c"} {
		rec := record(id, "sess", base.Add(time.Duration(i)*time.Minute), chat.VariableTemperature, chat.OperationMean)
		if err := s.SaveQuery(ctx, rec); err != nil {
			t.Fatalf("save %s: %v", id, err)
		}
	}

	history, err := s.SessionHistory(ctx, "sess", 50)
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != 3 {
		t.Fatalf("expected 3 records, got %d", len(history))
	}
	// Newest first.
	if history[0].ID != "c" || history[2].ID != "a" {
		t.Errorf("unexpected order: %s, %s, %s", history[0].ID, history[1].ID, history[2].ID)
	}

	limited, err := s.SessionHistory(ctx, "sess", 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 2 {
		t.Errorf("expected 2 records with limit, got %d", len(limited))
	}
}

func TestMemoryStoreQueryByID(t *testing.T) {
	s := NewMemoryStore(time.Hour)
	defer s.Close()

	ctx := context.Background()
	rec := record("q1", "sess", time.Now().UTC(), chat.VariableSalinity, chat.OperationMax)
	if err := s.SaveQuery(ctx, rec); err != nil {
		t.Fatal(err)
	}

	got, err := s.QueryByID(ctx, "q1")
	if err != nil {
		t.Fatal(err)
	}
	if got.SessionID != "sess" {
		t.Errorf("unexpected record %+v", got)
	}

	if _, err := s.QueryByID(ctx, "missing"); !errors.Is(err, chat.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStoreDeleteSession(t *testing.T) {
	s := NewMemoryStore(time.Hour)
	defer s.Close()

	ctx := context.Background()
	now := time.Now().UTC()
	_ = s.SaveQuery(ctx, record("q1", "sess", now, chat.VariableTemperature, chat.OperationMean))
	_ = s.SaveQuery(ctx, record("q2", "other", now, chat.VariableTemperature, chat.OperationMean))

	if err := s.DeleteSession(ctx, "sess"); err != nil {
		t.Fatal(err)
	}

	history, _ := s.SessionHistory(ctx, "sess", 50)
	if len(history) != 0 {
		t.Errorf("expected empty history after delete, got %d", len(history))
	}
	if _, err := s.QueryByID(ctx, "q1"); !errors.Is(err, chat.ErrNotFound) {
		t.Error("expected the query index entry to be dropped with its session")
	}
	if _, err := s.QueryByID(ctx, "q2"); err != nil {
		t.Error("other sessions must be untouched")
	}
}

func TestMemoryStoreStats(t *testing.T) {
	s := NewMemoryStore(time.Hour)
	defer s.Close()

	ctx := context.Background()
	base := time.Now().UTC()
	_ = s.SaveQuery(ctx, record("q1", "sess", base, chat.VariableTemperature, chat.OperationMean))
	_ = s.SaveQuery(ctx, record("q2", "sess", base.Add(time.Minute), chat.VariableTemperature, chat.OperationProfile))
	_ = s.SaveQuery(ctx, record("q3", "sess", base.Add(2*time.Minute), chat.VariableSalinity, chat.OperationMean))

	stats, err := s.SessionStats(ctx, "sess")
	if err != nil {
		t.Fatal(err)
	}
	if stats.TotalQueries != 3 {
		t.Errorf("expected 3 queries, got %d", stats.TotalQueries)
	}
	if stats.VariableCounts["TEMP"] != 2 || stats.VariableCounts["PSAL"] != 1 {
		t.Errorf("unexpected variable counts %v", stats.VariableCounts)
	}
	if stats.OperationCounts["mean"] != 2 || stats.OperationCounts["profile"] != 1 {
		t.Errorf("unexpected operation counts %v", stats.OperationCounts)
	}
	if stats.FirstQueryTime == nil || !stats.FirstQueryTime.Equal(base) {
		t.Errorf("unexpected first query time %v", stats.FirstQueryTime)
	}
	if stats.LastQueryTime == nil || !stats.LastQueryTime.Equal(base.Add(2*time.Minute)) {
		t.Errorf("unexpected last query time %v", stats.LastQueryTime)
	}
}

func TestMemoryStoreCleanup(t *testing.T) {
	s := NewMemoryStore(24 * time.Hour)
	defer s.Close()

	ctx := context.Background()
	now := time.Now().UTC()
	_ = s.SaveQuery(ctx, record("old", "sess", now.Add(-48*time.Hour), chat.VariableTemperature, chat.OperationMean))
	_ = s.SaveQuery(ctx, record("new", "sess", now, chat.VariableTemperature, chat.OperationMean))

	removed, err := s.Cleanup(ctx, now.Add(-24*time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if removed != 1 {
		t.Fatalf("expected 1 removed record, got %d", removed)
	}

	history, _ := s.SessionHistory(ctx, "sess", 50)
	if len(history) != 1 || history[0].ID != "new" {
		t.Errorf("unexpected history after cleanup: %+v", history)
	}
	if _, err := s.QueryByID(ctx, "old"); !errors.Is(err, chat.ErrNotFound) {
		t.Error("expected the old query index entry to be removed")
	}
}
