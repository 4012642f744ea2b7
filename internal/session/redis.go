package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisStore keeps session payloads in Redis so visitor state survives
// restarts and is shared across instances. Payloads are JSON values under a
// per-visitor key with a sliding TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed session store and verifies the
// connection.
func NewRedisStore(ctx context.Context, addr, password string, db int, ttl time.Duration) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return &RedisStore{client: client, ttl: ttl}, nil
}

func sessionKey(visitorID string) string {
	return "session:" + visitorID
}

// Get returns the visitor's payload, or an empty payload for an unknown id.
func (s *RedisStore) Get(ctx context.Context, visitorID string) (*Data, error) {
	d := &Data{}
	raw, err := s.client.Get(ctx, sessionKey(visitorID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return d, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if err := json.Unmarshal(raw, d); err != nil {
		return nil, fmt.Errorf("failed to decode session payload: %w", err)
	}
	return d, nil
}

// Put writes the payload back when dirty, refreshing the TTL.
func (s *RedisStore) Put(ctx context.Context, visitorID string, d *Data) error {
	if !d.Dirty() {
		return nil
	}
	raw, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to encode session payload: %w", err)
	}
	if err := s.client.Set(ctx, sessionKey(visitorID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	d.clearDirty()
	return nil
}

// Close releases the underlying Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
