package chat

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/floatchat/floatchat/internal/argo"
)

// ErrNotFound is returned when no history exists for a query or session.
var ErrNotFound = errors.New("no query history found")

// HistoryStore is the contract the persistence collaborator (in-memory or
// Postgres) must satisfy. Records are keyed by session and query id.
type HistoryStore interface {
	SaveQuery(ctx context.Context, rec QueryRecord) error
	SessionHistory(ctx context.Context, sessionID string, limit int) ([]QueryRecord, error)
	QueryByID(ctx context.Context, queryID string) (QueryRecord, error)
	DeleteSession(ctx context.Context, sessionID string) error
	SessionStats(ctx context.Context, sessionID string) (SessionStats, error)
	Cleanup(ctx context.Context, olderThan time.Time) (int, error)
}

// QueryResponse is everything the pipeline produces for one user question.
type QueryResponse struct {
	Response      string                `json:"response"`
	Data          *ExecutionResult      `json:"data,omitempty"`
	Visualization *VisualizationPayload `json:"visualization,omitempty"`
	SessionID     string                `json:"session_id"`
	QueryID       string                `json:"query_id"`
}

// Service sequences the pipeline: interpret, execute, compose, visualize,
// persist. Dataset access goes through the injected loader's cache; the store
// owns persistence.
type Service struct {
	loader       *argo.Loader
	composer     *Composer
	store        HistoryStore
	historyLimit int
}

// NewService wires the pipeline. store may be nil (history disabled).
func NewService(loader *argo.Loader, composer *Composer, store HistoryStore, historyLimit int) *Service {
	if historyLimit <= 0 {
		historyLimit = 50
	}
	return &Service{
		loader:       loader,
		composer:     composer,
		store:        store,
		historyLimit: historyLimit,
	}
}

// Process answers one natural-language question. Every stage has a defined
// fallback, so Process always returns a response; a persistence failure is
// logged but never fails the request.
func (s *Service) Process(ctx context.Context, query, sessionID, userID string) *QueryResponse {
	parsed := Interpret(query)
	if parsed.Err != "" {
		log.Printf("WARN: degraded interpretation for %q: %s", query, parsed.Err)
	}

	dataset := s.loader.Load("")
	result := Execute(parsed, dataset)

	response := s.composer.Compose(ctx, query, parsed, result)

	var viz *VisualizationPayload
	if result.Success {
		viz = BuildVisualization(result, parsed.VizType)
	}

	if userID == "" {
		userID = "anonymous"
	}
	if sessionID == "" {
		sessionID = fmt.Sprintf("session_%s_%s", userID, strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	}
	queryID := uuid.NewString()

	if s.store != nil {
		rec := QueryRecord{
			ID:        queryID,
			SessionID: sessionID,
			UserQuery: query,
			Response:  response,
			Parsed:    &parsed,
			Result:    &result,
			CreatedAt: time.Now().UTC(),
		}
		if err := s.store.SaveQuery(ctx, rec); err != nil {
			log.Printf("ERROR: failed to save query %s: %v", queryID, err)
		}
	}

	return &QueryResponse{
		Response:      response,
		Data:          &result,
		Visualization: viz,
		SessionID:     sessionID,
		QueryID:       queryID,
	}
}

// Variables lists the queryable dataset variables.
func (s *Service) Variables() []argo.VariableInfo {
	return s.loader.Load("").Variables()
}

// History returns a session's exchanges, newest first.
func (s *Service) History(ctx context.Context, sessionID string) ([]QueryRecord, error) {
	if s.store == nil {
		return nil, nil
	}
	return s.store.SessionHistory(ctx, sessionID, s.historyLimit)
}

// Stats summarizes a session's history.
func (s *Service) Stats(ctx context.Context, sessionID string) (SessionStats, error) {
	if s.store == nil {
		return SessionStats{}, nil
	}
	return s.store.SessionStats(ctx, sessionID)
}

// DeleteSession drops all history for a session.
func (s *Service) DeleteSession(ctx context.Context, sessionID string) error {
	if s.store == nil {
		return nil
	}
	return s.store.DeleteSession(ctx, sessionID)
}

// ExportURL returns a download URL for a stored query's results. The file
// itself is produced by the download collaborator, not here.
func (s *Service) ExportURL(ctx context.Context, queryID, format string) (string, error) {
	if format == "" {
		format = "csv"
	}
	if s.store != nil {
		if _, err := s.store.QueryByID(ctx, queryID); err != nil {
			return "", err
		}
	}
	stamp := time.Now().UTC().Format("20060102_150405")
	return fmt.Sprintf("/downloads/argo_export_%s_%s.%s", queryID, stamp, format), nil
}
