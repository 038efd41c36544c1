package redis

import (
	"context"
	"time"
)

// CacheStoreInterface defines the interface for public order/payment caching.
type CacheStoreInterface interface {
	GetPayment(ctx context.Context, paymentID string) (*CachedPayment, error)
	SetPayment(ctx context.Context, payment *CachedPayment) error
	InvalidatePayment(ctx context.Context, paymentID string) error
	GetOrder(ctx context.Context, orderID string) (*CachedOrder, error)
	SetOrder(ctx context.Context, order *CachedOrder) error
}

// LockStoreInterface defines the interface for idempotent request handling.
type LockStoreInterface interface {
	AcquireIdempotencyLock(ctx context.Context, key string, ttl time.Duration) (bool, error)
	ReleaseIdempotencyLock(ctx context.Context, key string) error
	GetIdempotentResponse(ctx context.Context, key string) ([]byte, error)
	SetIdempotentResponse(ctx context.Context, key string, data []byte, ttl time.Duration) error
}

// Ensure concrete types implement interfaces.
var (
	_ CacheStoreInterface = (*CacheStore)(nil)
	_ LockStoreInterface  = (*LockStore)(nil)
)
