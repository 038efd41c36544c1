package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"paygate/internal/domain"
)

// CacheStore handles entity caching in Redis.
type CacheStore struct {
	client *redis.Client
}

// NewCacheStore creates a new CacheStore.
func NewCacheStore(client *redis.Client) *CacheStore {
	return &CacheStore{client: client}
}

// Cache TTL constants
const (
	PaymentCacheTTL = 10 * time.Minute // Terminal payments never change
	OrderCacheTTL   = 30 * time.Minute // Orders are immutable
)

// Key prefixes
const (
	paymentCachePrefix = "cache:payment:"
	orderCachePrefix   = "cache:order:"
)

// CachedPayment is the public projection of a payment as stored in Redis.
type CachedPayment struct {
	ID        string    `json:"id"`
	OrderID   string    `json:"order_id"`
	Amount    int64     `json:"amount"`
	Currency  string    `json:"currency"`
	Method    string    `json:"method"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CachedOrder is the public projection of an order as stored in Redis.
type CachedOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
}

// NewCachedPayment converts a public payment projection for caching.
func NewCachedPayment(p *domain.PublicPayment) *CachedPayment {
	return &CachedPayment{
		ID:        p.ID,
		OrderID:   p.OrderID,
		Amount:    p.Amount,
		Currency:  p.Currency,
		Method:    string(p.Method),
		Status:    string(p.Status),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// Public converts the cached entry back to the domain projection.
func (c *CachedPayment) Public() *domain.PublicPayment {
	return &domain.PublicPayment{
		ID:        c.ID,
		OrderID:   c.OrderID,
		Amount:    c.Amount,
		Currency:  c.Currency,
		Method:    domain.PaymentMethod(c.Method),
		Status:    domain.PaymentStatus(c.Status),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// NewCachedOrder converts a public order projection for caching.
func NewCachedOrder(o *domain.PublicOrder) *CachedOrder {
	return &CachedOrder{
		ID:       o.ID,
		Amount:   o.Amount,
		Currency: o.Currency,
		Status:   string(o.Status),
	}
}

// Public converts the cached entry back to the domain projection.
func (c *CachedOrder) Public() *domain.PublicOrder {
	return &domain.PublicOrder{
		ID:       c.ID,
		Amount:   c.Amount,
		Currency: c.Currency,
		Status:   domain.OrderStatus(c.Status),
	}
}

// GetPayment retrieves a payment from cache.
func (s *CacheStore) GetPayment(ctx context.Context, paymentID string) (*CachedPayment, error) {
	var payment CachedPayment
	found, err := s.get(ctx, paymentCachePrefix+paymentID, &payment)
	if err != nil || !found {
		return nil, err
	}
	return &payment, nil
}

// SetPayment stores a payment in cache.
func (s *CacheStore) SetPayment(ctx context.Context, payment *CachedPayment) error {
	return s.set(ctx, paymentCachePrefix+payment.ID, payment, PaymentCacheTTL)
}

// InvalidatePayment removes a payment from cache.
func (s *CacheStore) InvalidatePayment(ctx context.Context, paymentID string) error {
	return s.client.Del(ctx, paymentCachePrefix+paymentID).Err()
}

// GetOrder retrieves an order from cache.
func (s *CacheStore) GetOrder(ctx context.Context, orderID string) (*CachedOrder, error) {
	var order CachedOrder
	found, err := s.get(ctx, orderCachePrefix+orderID, &order)
	if err != nil || !found {
		return nil, err
	}
	return &order, nil
}

// SetOrder stores an order in cache.
func (s *CacheStore) SetOrder(ctx context.Context, order *CachedOrder) error {
	return s.set(ctx, orderCachePrefix+order.ID, order, OrderCacheTTL)
}

// get returns false on a cache miss.
func (s *CacheStore) get(ctx context.Context, key string, dest any) (bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (s *CacheStore) set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, data, ttl).Err()
}
