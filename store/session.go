package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// ErrSessionNotFound is returned when no session exists for a thread.
var ErrSessionNotFound = errors.New("session not found")

// Session is a snapshot of pipeline state for one thread, taken after a step.
// The state payload is opaque to the store.
type Session struct {
	ThreadID  string          `json:"thread_id"`
	Pipeline  string          `json:"pipeline"`
	Step      int             `json:"step"`
	State     json.RawMessage `json:"state"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// SessionStore persists pipeline state keyed by an opaque thread ID.
// A thread accumulates one session per step; Load returns the latest.
type SessionStore interface {
	// Save stores a snapshot. Saving the same thread ID and step again
	// overwrites the earlier snapshot.
	Save(ctx context.Context, session *Session) error

	// Load retrieves the latest snapshot for a thread.
	// Returns ErrSessionNotFound when the thread has no snapshots.
	Load(ctx context.Context, threadID string) (*Session, error)

	// History returns all snapshots for a thread in step order.
	History(ctx context.Context, threadID string) ([]*Session, error)

	// Delete removes all snapshots for a thread.
	Delete(ctx context.Context, threadID string) error
}
