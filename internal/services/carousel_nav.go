package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const navStateTTL = 24 * time.Hour

// NavStore remembers the slide a user was looking at, so a carousel rebuilt
// after eviction or on another instance opens where the user left it.
type NavStore interface {
	Load(ctx context.Context, key string) (int, bool, error)
	Save(ctx context.Context, key string, index int) error
}

type memoryNavStore struct {
	mu   sync.Mutex
	data map[string]int
}

func NewMemoryNavStore() NavStore {
	return &memoryNavStore{data: make(map[string]int)}
}

func (s *memoryNavStore) Load(_ context.Context, key string) (int, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *memoryNavStore) Save(_ context.Context, key string, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = index
	return nil
}

type redisNavStore struct {
	rdb    goredis.UniversalClient
	prefix string
	ttl    time.Duration
}

func NewRedisNavStore(rdb goredis.UniversalClient, prefix string) NavStore {
	if prefix == "" {
		prefix = "carousel:nav:"
	}
	return &redisNavStore{rdb: rdb, prefix: prefix, ttl: navStateTTL}
}

func (s *redisNavStore) Load(ctx context.Context, key string) (int, bool, error) {
	raw, err := s.rdb.Get(ctx, s.prefix+key).Result()
	if errors.Is(err, goredis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("redis get nav state: %w", err)
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false, fmt.Errorf("bad nav state %q: %w", raw, err)
	}
	return v, true, nil
}

func (s *redisNavStore) Save(ctx context.Context, key string, index int) error {
	return s.rdb.Set(ctx, s.prefix+key, strconv.Itoa(index), s.ttl).Err()
}
