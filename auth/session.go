// Package auth provides account registration, login, and opaque bearer-token
// sessions for the storefront API.
package auth

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"watchstore/domain"
)

// ErrSessionNotFound is returned when a token has no live session.
var ErrSessionNotFound = errors.New("session not found")

// RedisSessions stores sessions in redis so they survive process restarts
// and can be shared between instances.
type RedisSessions struct {
	client *redis.Client
}

// NewRedisSessions returns a session store over the given redis client.
func NewRedisSessions(client *redis.Client) *RedisSessions {
	return &RedisSessions{client: client}
}

// compile-time assertion that RedisSessions implements domain.SessionStore
var _ domain.SessionStore = (*RedisSessions)(nil)

func (s *RedisSessions) Put(ctx context.Context, token string, userID int64, ttl time.Duration) error {
	return s.client.Set(ctx, "session:"+token, strconv.FormatInt(userID, 10), ttl).Err()
}

func (s *RedisSessions) Get(ctx context.Context, token string) (int64, error) {
	val, err := s.client.Get(ctx, "session:"+token).Result()
	if errors.Is(err, redis.Nil) {
		return 0, ErrSessionNotFound
	}
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(val, 10, 64)
}

func (s *RedisSessions) Delete(ctx context.Context, token string) error {
	return s.client.Del(ctx, "session:"+token).Err()
}

type memorySession struct {
	userID    int64
	expiresAt time.Time
}

// MemorySessions keeps sessions in process memory. Suitable for development
// and tests; use RedisSessions when the server must share or survive state.
type MemorySessions struct {
	mu       sync.Mutex
	sessions map[string]memorySession
	now      func() time.Time
}

// NewMemorySessions returns an empty in-process session store.
func NewMemorySessions() *MemorySessions {
	return &MemorySessions{
		sessions: make(map[string]memorySession),
		now:      time.Now,
	}
}

// compile-time assertion that MemorySessions implements domain.SessionStore
var _ domain.SessionStore = (*MemorySessions)(nil)

func (s *MemorySessions) Put(ctx context.Context, token string, userID int64, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = memorySession{userID: userID, expiresAt: s.now().Add(ttl)}
	return nil
}

func (s *MemorySessions) Get(ctx context.Context, token string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[token]
	if !ok {
		return 0, ErrSessionNotFound
	}
	if s.now().After(sess.expiresAt) {
		delete(s.sessions, token)
		return 0, ErrSessionNotFound
	}
	return sess.userID, nil
}

func (s *MemorySessions) Delete(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

// NewSessionStore constructs a domain.SessionStore by kind: "redis" or
// "memory". For redis, provide the server address in addr.
func NewSessionStore(kind, addr string) (domain.SessionStore, error) {
	switch kind {
	case "redis":
		return NewRedisSessions(redis.NewClient(&redis.Options{Addr: addr})), nil
	case "memory", "mem":
		return NewMemorySessions(), nil
	default:
		return nil, errors.New("unknown session store kind: " + kind)
	}
}
