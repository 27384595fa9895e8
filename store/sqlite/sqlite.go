// Package sqlite provides a SQLite-backed SessionStore.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/smallnest/swarmgraph/store"
)

// SqliteSessionStore implements store.SessionStore using SQLite.
type SqliteSessionStore struct {
	db        *sql.DB
	tableName string
}

var _ store.SessionStore = (*SqliteSessionStore)(nil)

// SqliteOptions configuration for SQLite connection
type SqliteOptions struct {
	Path      string
	TableName string // Default "sessions"
}

// NewSqliteSessionStore creates a new SQLite session store.
func NewSqliteSessionStore(opts SqliteOptions) (*SqliteSessionStore, error) {
	db, err := sql.Open("sqlite3", opts.Path)
	if err != nil {
		return nil, fmt.Errorf("unable to open database: %w", err)
	}

	tableName := opts.TableName
	if tableName == "" {
		tableName = "sessions"
	}

	s := &SqliteSessionStore{
		db:        db,
		tableName: tableName,
	}

	if err := s.InitSchema(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// InitSchema creates the necessary table if it doesn't exist
func (s *SqliteSessionStore) InitSchema(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			thread_id TEXT NOT NULL,
			step INTEGER NOT NULL,
			pipeline TEXT NOT NULL,
			state TEXT NOT NULL,
			updated_at DATETIME NOT NULL,
			PRIMARY KEY (thread_id, step)
		);
	`, s.tableName)

	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Close closes the database connection
func (s *SqliteSessionStore) Close() error {
	return s.db.Close()
}

// Save stores a snapshot, upserting on thread ID and step.
func (s *SqliteSessionStore) Save(ctx context.Context, session *store.Session) error {
	stateJSON, err := json.Marshal(session.State)
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (thread_id, step, pipeline, state, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(thread_id, step) DO UPDATE SET
			pipeline = excluded.pipeline,
			state = excluded.state,
			updated_at = excluded.updated_at
	`, s.tableName)

	_, err = s.db.ExecContext(ctx, query,
		session.ThreadID,
		session.Step,
		session.Pipeline,
		string(stateJSON),
		session.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Load retrieves the latest snapshot for a thread.
func (s *SqliteSessionStore) Load(ctx context.Context, threadID string) (*store.Session, error) {
	query := fmt.Sprintf(`
		SELECT thread_id, step, pipeline, state, updated_at
		FROM %s
		WHERE thread_id = ?
		ORDER BY step DESC
		LIMIT 1
	`, s.tableName)

	session, err := s.scanSession(s.db.QueryRowContext(ctx, query, threadID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, store.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	return session, nil
}

// History returns all snapshots for a thread in step order.
func (s *SqliteSessionStore) History(ctx context.Context, threadID string) ([]*store.Session, error) {
	query := fmt.Sprintf(`
		SELECT thread_id, step, pipeline, state, updated_at
		FROM %s
		WHERE thread_id = ?
		ORDER BY step ASC
	`, s.tableName)

	rows, err := s.db.QueryContext(ctx, query, threadID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*store.Session
	for rows.Next() {
		session, err := s.scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session row: %w", err)
		}
		sessions = append(sessions, session)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating session rows: %w", err)
	}
	return sessions, nil
}

// Delete removes all snapshots for a thread.
func (s *SqliteSessionStore) Delete(ctx context.Context, threadID string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE thread_id = ?", s.tableName)
	if _, err := s.db.ExecContext(ctx, query, threadID); err != nil {
		return fmt.Errorf("failed to delete sessions: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *SqliteSessionStore) scanSession(row rowScanner) (*store.Session, error) {
	var session store.Session
	var stateJSON string

	err := row.Scan(
		&session.ThreadID,
		&session.Step,
		&session.Pipeline,
		&stateJSON,
		&session.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(stateJSON), &session.State); err != nil {
		return nil, fmt.Errorf("failed to unmarshal state: %w", err)
	}
	return &session, nil
}
