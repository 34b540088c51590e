package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/you/wifiattend/domain"
)

// RedisSessionStore implements domain.SessionStateStore using Redis. It lets
// one-shot CLI invocations share a sign-in until the TTL runs out.
type RedisSessionStore struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewRedisSessionStore creates a session state store keyed by profile name
func NewRedisSessionStore(client *redis.Client, profile string, ttl time.Duration) domain.SessionStateStore {
	if profile == "" {
		profile = "default"
	}
	return &RedisSessionStore{
		client: client,
		key:    "attend:session:" + profile,
		ttl:    ttl,
	}
}

// Load implements domain.SessionStateStore. A missing key is a signed-out state.
func (r *RedisSessionStore) Load(ctx context.Context) (*domain.SessionState, error) {
	data, err := r.client.Get(ctx, r.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return &domain.SessionState{}, nil
		}
		return nil, fmt.Errorf("failed to load session state: %w", err)
	}

	var state domain.SessionState
	if err := json.Unmarshal([]byte(data), &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session state: %w", err)
	}
	return &state, nil
}

// Save implements domain.SessionStateStore
func (r *RedisSessionStore) Save(ctx context.Context, state *domain.SessionState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal session state: %w", err)
	}
	if err := r.client.Set(ctx, r.key, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session state: %w", err)
	}
	return nil
}

// Clear implements domain.SessionStateStore
func (r *RedisSessionStore) Clear(ctx context.Context) error {
	return r.client.Del(ctx, r.key).Err()
}

// MemorySessionStore implements domain.SessionStateStore for the lifetime of
// the process
type MemorySessionStore struct {
	mu    sync.Mutex
	state domain.SessionState
}

// NewMemorySessionStore creates an empty in-memory session state store
func NewMemorySessionStore() domain.SessionStateStore {
	return &MemorySessionStore{}
}

// Load implements domain.SessionStateStore
func (m *MemorySessionStore) Load(ctx context.Context) (*domain.SessionState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return copyState(&m.state), nil
}

// Save implements domain.SessionStateStore
func (m *MemorySessionStore) Save(ctx context.Context, state *domain.SessionState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if state == nil {
		m.state = domain.SessionState{}
		return nil
	}
	m.state = *copyState(state)
	return nil
}

// Clear implements domain.SessionStateStore
func (m *MemorySessionStore) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = domain.SessionState{}
	return nil
}

func copyState(s *domain.SessionState) *domain.SessionState {
	out := &domain.SessionState{}
	if s.Identity != nil {
		id := *s.Identity
		out.Identity = &id
	}
	if s.ActiveOTP != nil {
		otp := *s.ActiveOTP
		out.ActiveOTP = &otp
	}
	return out
}
