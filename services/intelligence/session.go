// File: services/intelligence/session.go
package ai

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"tabletalk/models"

	"github.com/go-redis/redis/v8"
)

const sessionKeyPrefix = "chat:sess:"

// SessionStore persists conversation sessions keyed by their identifier.
// Get returns (nil, nil) for an unseen identifier.
type SessionStore interface {
	Get(ctx context.Context, id string) (*models.Session, error)
	Save(ctx context.Context, s *models.Session) error
}

// MemorySessionStore keeps sessions in process memory. Sessions live for
// the configured TTL since their last update; zero TTL disables expiry.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]models.Session
	ttl      time.Duration
}

func NewMemorySessionStore(ttl time.Duration) *MemorySessionStore {
	s := &MemorySessionStore{
		sessions: make(map[string]models.Session),
		ttl:      ttl,
	}
	if ttl > 0 {
		go s.sweep()
	}
	return s
}

func (s *MemorySessionStore) Get(ctx context.Context, id string) (*models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, nil
	}
	// Copy so callers never share turn slices with the store.
	out := sess
	out.Turns = append([]models.Turn(nil), sess.Turns...)
	return &out, nil
}

func (s *MemorySessionStore) Save(ctx context.Context, sess *models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *sess
	stored.Turns = append([]models.Turn(nil), sess.Turns...)
	s.sessions[sess.ID] = stored
	return nil
}

func (s *MemorySessionStore) sweep() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		cutoff := time.Now().Add(-s.ttl)
		s.mu.Lock()
		for id, sess := range s.sessions {
			if sess.UpdatedAt.Before(cutoff) {
				delete(s.sessions, id)
			}
		}
		s.mu.Unlock()
	}
}

// RedisSessionStore persists sessions in Redis with a TTL, for deployments
// where the assistant runs more than one replica.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{client: client, ttl: ttl}
}

func (s *RedisSessionStore) Get(ctx context.Context, id string) (*models.Session, error) {
	data, err := s.client.Get(ctx, sessionKeyPrefix+id).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var sess models.Session
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *RedisSessionStore) Save(ctx context.Context, sess *models.Session) error {
	b, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, sessionKeyPrefix+sess.ID, b, s.ttl).Err()
}

// sessionLocks serializes turns within one session while letting distinct
// sessions proceed in parallel.
type sessionLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (l *sessionLocks) acquire(id string) func() {
	l.mu.Lock()
	if l.locks == nil {
		l.locks = make(map[string]*sync.Mutex)
	}
	m, ok := l.locks[id]
	if !ok {
		m = &sync.Mutex{}
		l.locks[id] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
