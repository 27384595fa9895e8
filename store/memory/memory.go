// Package memory provides an in-process SessionStore, suitable for tests and
// single-run demos.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/smallnest/swarmgraph/store"
)

// MemorySessionStore implements store.SessionStore with an in-process map.
// Safe for concurrent use.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]map[int]*store.Session // threadID -> step -> session
}

var _ store.SessionStore = (*MemorySessionStore)(nil)

// NewMemorySessionStore creates a new in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]map[int]*store.Session),
	}
}

// Save stores a snapshot, overwriting any earlier one for the same step.
func (s *MemorySessionStore) Save(_ context.Context, session *store.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	thread, ok := s.sessions[session.ThreadID]
	if !ok {
		thread = make(map[int]*store.Session)
		s.sessions[session.ThreadID] = thread
	}

	cp := *session
	thread[session.Step] = &cp
	return nil
}

// Load retrieves the latest snapshot for a thread.
func (s *MemorySessionStore) Load(_ context.Context, threadID string) (*store.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	thread, ok := s.sessions[threadID]
	if !ok || len(thread) == 0 {
		return nil, store.ErrSessionNotFound
	}

	var latest *store.Session
	for _, session := range thread {
		if latest == nil || session.Step > latest.Step {
			latest = session
		}
	}

	cp := *latest
	return &cp, nil
}

// History returns all snapshots for a thread in step order.
func (s *MemorySessionStore) History(_ context.Context, threadID string) ([]*store.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	thread := s.sessions[threadID]
	sessions := make([]*store.Session, 0, len(thread))
	for _, session := range thread {
		cp := *session
		sessions = append(sessions, &cp)
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].Step < sessions[j].Step
	})
	return sessions, nil
}

// Delete removes all snapshots for a thread.
func (s *MemorySessionStore) Delete(_ context.Context, threadID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, threadID)
	return nil
}
