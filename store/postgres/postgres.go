// Package postgres provides a PostgreSQL-backed SessionStore built on pgx.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/smallnest/swarmgraph/store"
)

// DBPool defines the interface for database connection pool
type DBPool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// PostgresSessionStore implements store.SessionStore using PostgreSQL.
type PostgresSessionStore struct {
	pool      DBPool
	tableName string
}

var _ store.SessionStore = (*PostgresSessionStore)(nil)

// PostgresOptions configuration for Postgres connection
type PostgresOptions struct {
	ConnString string
	TableName  string // Default "sessions"
}

// NewPostgresSessionStore creates a new Postgres session store.
func NewPostgresSessionStore(ctx context.Context, opts PostgresOptions) (*PostgresSessionStore, error) {
	pool, err := pgxpool.New(ctx, opts.ConnString)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	tableName := opts.TableName
	if tableName == "" {
		tableName = "sessions"
	}

	return &PostgresSessionStore{
		pool:      pool,
		tableName: tableName,
	}, nil
}

// NewPostgresSessionStoreWithPool creates a new Postgres session store with an
// existing pool. Useful for testing with mocks.
func NewPostgresSessionStoreWithPool(pool DBPool, tableName string) *PostgresSessionStore {
	if tableName == "" {
		tableName = "sessions"
	}
	return &PostgresSessionStore{
		pool:      pool,
		tableName: tableName,
	}
}

// InitSchema creates the necessary table if it doesn't exist
func (s *PostgresSessionStore) InitSchema(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			thread_id TEXT NOT NULL,
			step INTEGER NOT NULL,
			pipeline TEXT NOT NULL,
			state JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL,
			PRIMARY KEY (thread_id, step)
		);
	`, s.tableName)

	if _, err := s.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Close closes the connection pool
func (s *PostgresSessionStore) Close() {
	s.pool.Close()
}

// Save stores a snapshot, upserting on thread ID and step.
func (s *PostgresSessionStore) Save(ctx context.Context, session *store.Session) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (thread_id, step, pipeline, state, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (thread_id, step) DO UPDATE SET
			pipeline = EXCLUDED.pipeline,
			state = EXCLUDED.state,
			updated_at = EXCLUDED.updated_at
	`, s.tableName)

	_, err := s.pool.Exec(ctx, query,
		session.ThreadID,
		session.Step,
		session.Pipeline,
		[]byte(session.State),
		session.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Load retrieves the latest snapshot for a thread.
func (s *PostgresSessionStore) Load(ctx context.Context, threadID string) (*store.Session, error) {
	query := fmt.Sprintf(`
		SELECT thread_id, step, pipeline, state, updated_at
		FROM %s
		WHERE thread_id = $1
		ORDER BY step DESC
		LIMIT 1
	`, s.tableName)

	session, err := scanSession(s.pool.QueryRow(ctx, query, threadID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, store.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	return session, nil
}

// History returns all snapshots for a thread in step order.
func (s *PostgresSessionStore) History(ctx context.Context, threadID string) ([]*store.Session, error) {
	query := fmt.Sprintf(`
		SELECT thread_id, step, pipeline, state, updated_at
		FROM %s
		WHERE thread_id = $1
		ORDER BY step ASC
	`, s.tableName)

	rows, err := s.pool.Query(ctx, query, threadID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*store.Session
	for rows.Next() {
		session, err := scanSession(rows)
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
func (s *PostgresSessionStore) Delete(ctx context.Context, threadID string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE thread_id = $1", s.tableName)
	if _, err := s.pool.Exec(ctx, query, threadID); err != nil {
		return fmt.Errorf("failed to delete sessions: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (*store.Session, error) {
	var session store.Session
	var state []byte

	err := row.Scan(
		&session.ThreadID,
		&session.Step,
		&session.Pipeline,
		&state,
		&session.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	session.State = state
	return &session, nil
}
