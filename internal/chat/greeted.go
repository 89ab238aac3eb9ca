package chat

import (
	"context"
	"fmt"
	"sync"
	"time"

	errx "github.com/jharkhand-tourism-mvp/server/internal/core/error"
	"github.com/redis/go-redis/v9"
)

// GreetedStore records which user ids have already received the one-shot
// greeting.
type GreetedStore interface {
	// Greet marks the user id as seen and reports whether it was previously
	// unseen.
	Greet(ctx context.Context, userID string) (first bool, err error)
}

// MemoryGreetedStore keeps greeted user ids in process memory. It lives for
// the lifetime of the process; use the Redis store when bounded retention is
// required.
type MemoryGreetedStore struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

func NewMemoryGreetedStore() *MemoryGreetedStore {
	return &MemoryGreetedStore{seen: make(map[string]struct{})}
}

func (s *MemoryGreetedStore) Greet(_ context.Context, userID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.seen[userID]; ok {
		return false, nil
	}
	s.seen[userID] = struct{}{}
	return true, nil
}

// RedisGreetedStore keeps greeted user ids in Redis with a TTL so the set
// stays bounded across restarts and users.
type RedisGreetedStore struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewRedisGreetedStore(rdb redis.Cmdable, ttl time.Duration) *RedisGreetedStore {
	return &RedisGreetedStore{rdb: rdb, ttl: ttl}
}

func (s *RedisGreetedStore) greetedKey(userID string) string {
	return fmt.Sprintf("greeted:%s", userID)
}

func (s *RedisGreetedStore) Greet(ctx context.Context, userID string) (bool, error) {
	first, err := s.rdb.SetNX(ctx, s.greetedKey(userID), 1, s.ttl).Result()
	if err != nil {
		return false, errx.WrapRedis(err)
	}
	return first, nil
}

var _ GreetedStore = (*MemoryGreetedStore)(nil)
var _ GreetedStore = (*RedisGreetedStore)(nil)
