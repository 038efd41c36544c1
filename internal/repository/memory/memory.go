// Package memory provides map-backed repositories. They back the server when
// STORAGE_DRIVER=memory and stand in for PostgreSQL in tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"paygate/internal/domain"
	"paygate/internal/repository"
)

// Ensure repositories implement the storage interfaces.
var (
	_ repository.MerchantRepository = (*MerchantRepository)(nil)
	_ repository.OrderRepository    = (*OrderRepository)(nil)
	_ repository.PaymentRepository  = (*PaymentRepository)(nil)
)

// ──────────────────────────────────────────────
// MERCHANTS
// ──────────────────────────────────────────────

// MerchantRepository stores merchants in memory.
type MerchantRepository struct {
	mu        sync.RWMutex
	merchants map[string]*domain.Merchant
}

// NewMerchantRepository creates an empty merchant repository.
func NewMerchantRepository() *MerchantRepository {
	return &MerchantRepository{merchants: make(map[string]*domain.Merchant)}
}

func (r *MerchantRepository) Create(ctx context.Context, merchant *domain.Merchant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.merchants {
		if m.ID == merchant.ID || m.Email == merchant.Email || m.APIKey == merchant.APIKey {
			return repository.ErrAlreadyExists
		}
	}
	clone := *merchant
	r.merchants[merchant.ID] = &clone
	return nil
}

func (r *MerchantRepository) GetByAPIKey(ctx context.Context, apiKey string) (*domain.Merchant, error) {
	return r.find(func(m *domain.Merchant) bool { return m.APIKey == apiKey })
}

func (r *MerchantRepository) GetByEmail(ctx context.Context, email string) (*domain.Merchant, error) {
	return r.find(func(m *domain.Merchant) bool { return m.Email == email })
}

func (r *MerchantRepository) find(match func(*domain.Merchant) bool) (*domain.Merchant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, m := range r.merchants {
		if match(m) {
			clone := *m
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

// ──────────────────────────────────────────────
// ORDERS
// ──────────────────────────────────────────────

// OrderRepository stores orders in memory.
type OrderRepository struct {
	mu     sync.RWMutex
	orders map[string]*domain.Order
}

// NewOrderRepository creates an empty order repository.
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{orders: make(map[string]*domain.Order)}
}

func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[order.ID]; ok {
		return repository.ErrAlreadyExists
	}
	r.orders[order.ID] = cloneOrder(order)
	return nil
}

func (r *OrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneOrder(order), nil
}

// Count returns the number of stored orders.
func (r *OrderRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.orders)
}

func cloneOrder(o *domain.Order) *domain.Order {
	clone := *o
	clone.Notes = make(map[string]string, len(o.Notes))
	for k, v := range o.Notes {
		clone.Notes[k] = v
	}
	return &clone
}

// ──────────────────────────────────────────────
// PAYMENTS
// ──────────────────────────────────────────────

// PaymentRepository stores payments in memory.
type PaymentRepository struct {
	mu       sync.RWMutex
	payments map[string]*domain.Payment
}

// NewPaymentRepository creates an empty payment repository.
func NewPaymentRepository() *PaymentRepository {
	return &PaymentRepository{payments: make(map[string]*domain.Payment)}
}

func (r *PaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.payments[payment.ID]; ok {
		return repository.ErrAlreadyExists
	}
	clone := *payment
	r.payments[payment.ID] = &clone
	return nil
}

func (r *PaymentRepository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	payment, ok := r.payments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *payment
	return &clone, nil
}

func (r *PaymentRepository) UpdateStatus(ctx context.Context, id string, status domain.PaymentStatus, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	payment, ok := r.payments[id]
	if !ok {
		return repository.ErrNotFound
	}
	if payment.Status != domain.PaymentStatusProcessing {
		return repository.ErrStatusConflict
	}
	payment.Status = status
	payment.UpdatedAt = updatedAt
	return nil
}

func (r *PaymentRepository) ListByMerchant(ctx context.Context, merchantID string) ([]*domain.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	payments := make([]*domain.Payment, 0)
	for _, p := range r.payments {
		if p.MerchantID == merchantID {
			clone := *p
			payments = append(payments, &clone)
		}
	}
	sort.SliceStable(payments, func(i, j int) bool {
		if payments[i].CreatedAt.Equal(payments[j].CreatedAt) {
			return payments[i].ID > payments[j].ID
		}
		return payments[i].CreatedAt.After(payments[j].CreatedAt)
	})
	return payments, nil
}

// Count returns the number of stored payments.
func (r *PaymentRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.payments)
}
