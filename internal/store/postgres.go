package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/floatchat/floatchat/internal/chat"
)

// historySchema statements run one at a time; the pgx driver rejects
// multi-statement commands.
var historySchema = []string{
	`CREATE TABLE IF NOT EXISTS query_history (
		id           TEXT PRIMARY KEY,
		session_id   TEXT NOT NULL,
		user_query   TEXT NOT NULL,
		ai_response  TEXT NOT NULL,
		parsed_query JSONB,
		data_result  JSONB,
		created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_query_history_session ON query_history (session_id, created_at DESC)`,
}

// PostgresStore is a chat.HistoryStore backed by PostgreSQL via the pgx
// stdlib driver.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore connects to the database, verifies the connection and
// ensures the history schema exists.
func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open postgres connection: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	for _, stmt := range historySchema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("create history schema: %w", err)
		}
	}

	return &PostgresStore{db: db}, nil
}

// Close releases the connection pool.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// SaveQuery inserts a record.
func (s *PostgresStore) SaveQuery(ctx context.Context, rec chat.QueryRecord) error {
	var parsed, result []byte
	var err error
	if rec.Parsed != nil {
		if parsed, err = json.Marshal(rec.Parsed); err != nil {
			return fmt.Errorf("marshal parsed query: %w", err)
		}
	}
	if rec.Result != nil {
		if result, err = json.Marshal(rec.Result); err != nil {
			return fmt.Errorf("marshal data result: %w", err)
		}
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO query_history (id, session_id, user_query, ai_response, parsed_query, data_result, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		rec.ID, rec.SessionID, rec.UserQuery, rec.Response, parsed, result, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert query history: %w", err)
	}
	return nil
}

// SessionHistory returns a session's records newest first, capped at limit.
func (s *PostgresStore) SessionHistory(ctx context.Context, sessionID string, limit int) ([]chat.QueryRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, session_id, user_query, ai_response, parsed_query, data_result, created_at
		FROM query_history
		WHERE session_id = $1
		ORDER BY created_at DESC
		LIMIT $2`, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("select session history: %w", err)
	}
	defer rows.Close()

	var records []chat.QueryRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// QueryByID returns a single record by query id.
func (s *PostgresStore) QueryByID(ctx context.Context, queryID string) (chat.QueryRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, session_id, user_query, ai_response, parsed_query, data_result, created_at
		FROM query_history
		WHERE id = $1`, queryID)

	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return chat.QueryRecord{}, chat.ErrNotFound
	}
	return rec, err
}

// DeleteSession drops all history for a session.
func (s *PostgresStore) DeleteSession(ctx context.Context, sessionID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM query_history WHERE session_id = $1`, sessionID)
	if err != nil {
		return fmt.Errorf("delete session history: %w", err)
	}
	return nil
}

// SessionStats summarizes a session's history.
func (s *PostgresStore) SessionStats(ctx context.Context, sessionID string) (chat.SessionStats, error) {
	history, err := s.SessionHistory(ctx, sessionID, 0)
	if err != nil {
		return chat.SessionStats{}, err
	}
	return statsFromHistory(history), nil
}

// Cleanup removes records created before the cutoff and reports how many.
func (s *PostgresStore) Cleanup(ctx context.Context, olderThan time.Time) (int, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM query_history WHERE created_at < $1`, olderThan)
	if err != nil {
		return 0, fmt.Errorf("cleanup query history: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, nil
	}
	return int(n), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (chat.QueryRecord, error) {
	var (
		rec    chat.QueryRecord
		parsed []byte
		result []byte
	)
	if err := row.Scan(&rec.ID, &rec.SessionID, &rec.UserQuery, &rec.Response, &parsed, &result, &rec.CreatedAt); err != nil {
		return chat.QueryRecord{}, err
	}

	if len(parsed) > 0 {
		var q chat.StructuredQuery
		if err := json.Unmarshal(parsed, &q); err != nil {
			return chat.QueryRecord{}, fmt.Errorf("unmarshal parsed query: %w", err)
		}
		rec.Parsed = &q
	}
	if len(result) > 0 {
		var r chat.ExecutionResult
		if err := json.Unmarshal(result, &r); err != nil {
			return chat.QueryRecord{}, fmt.Errorf("unmarshal data result: %w", err)
		}
		rec.Result = &r
	}
	return rec, nil
}
