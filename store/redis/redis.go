// Package redis provides a Redis-backed SessionStore.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/smallnest/swarmgraph/store"
)

// RedisSessionStore implements store.SessionStore using Redis. Snapshots are
// stored per thread and step, with a per-thread index set.
type RedisSessionStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

var _ store.SessionStore = (*RedisSessionStore)(nil)

// RedisOptions configuration for Redis connection
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	Prefix   string        // Key prefix, default "swarmgraph:"
	TTL      time.Duration // Expiration for sessions, default 0 (no expiration)
}

// NewRedisSessionStore creates a new Redis session store.
func NewRedisSessionStore(opts RedisOptions) *RedisSessionStore {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	prefix := opts.Prefix
	if prefix == "" {
		prefix = "swarmgraph:"
	}

	return &RedisSessionStore{
		client: client,
		prefix: prefix,
		ttl:    opts.TTL,
	}
}

func (s *RedisSessionStore) sessionKey(threadID string, step int) string {
	return fmt.Sprintf("%ssession:%s:%d", s.prefix, threadID, step)
}

func (s *RedisSessionStore) threadKey(threadID string) string {
	return fmt.Sprintf("%sthread:%s:steps", s.prefix, threadID)
}

// Save stores a snapshot and indexes it under its thread.
func (s *RedisSessionStore) Save(ctx context.Context, session *store.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	key := s.sessionKey(session.ThreadID, session.Step)
	threadKey := s.threadKey(session.ThreadID)

	pipe := s.client.Pipeline()
	pipe.Set(ctx, key, data, s.ttl)
	pipe.SAdd(ctx, threadKey, session.Step)
	if s.ttl > 0 {
		pipe.Expire(ctx, threadKey, s.ttl)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save session to redis: %w", err)
	}
	return nil
}

// Load retrieves the latest snapshot for a thread.
func (s *RedisSessionStore) Load(ctx context.Context, threadID string) (*store.Session, error) {
	sessions, err := s.History(ctx, threadID)
	if err != nil {
		return nil, err
	}
	if len(sessions) == 0 {
		return nil, store.ErrSessionNotFound
	}
	return sessions[len(sessions)-1], nil
}

// History returns all snapshots for a thread in step order.
func (s *RedisSessionStore) History(ctx context.Context, threadID string) ([]*store.Session, error) {
	threadKey := s.threadKey(threadID)
	steps, err := s.client.SMembers(ctx, threadKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions for thread %s: %w", threadID, err)
	}

	if len(steps) == 0 {
		return []*store.Session{}, nil
	}

	keys := make([]string, 0, len(steps))
	for _, step := range steps {
		keys = append(keys, fmt.Sprintf("%ssession:%s:%s", s.prefix, threadID, step))
	}

	// MGet returns nil for expired keys; those entries are skipped.
	results, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sessions: %w", err)
	}

	var sessions []*store.Session
	for _, result := range results {
		strData, ok := result.(string)
		if !ok {
			continue
		}

		var session store.Session
		if err := json.Unmarshal([]byte(strData), &session); err != nil {
			continue
		}
		sessions = append(sessions, &session)
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].Step < sessions[j].Step
	})
	return sessions, nil
}

// Delete removes all snapshots for a thread.
func (s *RedisSessionStore) Delete(ctx context.Context, threadID string) error {
	threadKey := s.threadKey(threadID)
	steps, err := s.client.SMembers(ctx, threadKey).Result()
	if err != nil {
		return fmt.Errorf("failed to get sessions for deletion: %w", err)
	}

	pipe := s.client.Pipeline()
	for _, step := range steps {
		pipe.Del(ctx, fmt.Sprintf("%ssession:%s:%s", s.prefix, threadID, step))
	}
	pipe.Del(ctx, threadKey)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete sessions: %w", err)
	}
	return nil
}
