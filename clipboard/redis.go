package clipboard

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ncobase/recordlist/config"
	"github.com/ncobase/recordlist/store"

	"github.com/redis/go-redis/v9"
)

// RedisStore persists clipboards in redis with a TTL. Expiry clears stale
// clipboards without user action.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// DefaultTTL keeps abandoned clipboards around for two weeks.
const DefaultTTL = 14 * 24 * time.Hour

// OpenRedis connects to the configured redis node and verifies it with a
// ping.
func OpenRedis(ctx context.Context, cfg *config.Redis, ttl time.Duration) (*RedisStore, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("redis: address is empty")
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Username:     cfg.Username,
		Password:     cfg.Password,
		DB:           cfg.Db,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		DialTimeout:  cfg.DialTimeout,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis: failed to ping server: %w", err)
	}

	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{client: client, ttl: ttl}, nil
}

// NewRedisStore wraps an existing client.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{client: client, ttl: ttl}
}

// Close closes the underlying client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func key(sessionID string) string {
	return "recordlist:clipboard:" + sessionID
}

// Load implements Store.
func (s *RedisStore) Load(ctx context.Context, sessionID string) (*Clipboard, error) {
	data, err := s.client.Get(ctx, key(sessionID)).Bytes()
	if err == redis.Nil {
		return &Clipboard{}, nil
	}
	if err != nil {
		return nil, store.Unavailable("clipboard load", err)
	}

	var c Clipboard
	if err := json.Unmarshal(data, &c); err != nil {
		// A corrupt payload degrades to an empty clipboard.
		return &Clipboard{}, nil
	}
	return &c, nil
}

// Save implements Store.
func (s *RedisStore) Save(ctx context.Context, sessionID string, c *Clipboard) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("clipboard marshal: %w", err)
	}
	if err := s.client.Set(ctx, key(sessionID), data, s.ttl).Err(); err != nil {
		return store.Unavailable("clipboard save", err)
	}
	return nil
}

// Drop implements Store.
func (s *RedisStore) Drop(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, key(sessionID)).Err(); err != nil {
		return store.Unavailable("clipboard drop", err)
	}
	return nil
}
