package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	idempotencyLockPrefix     = "lock:idempotency:"
	idempotencyResponsePrefix = "idempotency:"
)

// LockStore handles idempotency locks and stored responses in Redis.
type LockStore struct {
	client *redis.Client
}

// NewLockStore creates a new LockStore.
func NewLockStore(client *redis.Client) *LockStore {
	return &LockStore{client: client}
}

// AcquireIdempotencyLock marks a request with the given idempotency key as in flight.
// Returns true if the lock was acquired, false if another request holds it.
func (s *LockStore) AcquireIdempotencyLock(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := s.client.SetNX(ctx, idempotencyLockPrefix+key, "1", ttl).Result()
	if err != nil {
		return false, err
	}

	return ok, nil
}

// ReleaseIdempotencyLock releases the lock for the given idempotency key.
func (s *LockStore) ReleaseIdempotencyLock(ctx context.Context, key string) error {
	return s.client.Del(ctx, idempotencyLockPrefix+key).Err()
}

// GetIdempotentResponse returns the stored response for an idempotency key,
// or nil if none is stored.
func (s *LockStore) GetIdempotentResponse(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, idempotencyResponsePrefix+key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}

// SetIdempotentResponse stores the response for an idempotency key.
func (s *LockStore) SetIdempotentResponse(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return s.client.Set(ctx, idempotencyResponsePrefix+key, data, ttl).Err()
}
