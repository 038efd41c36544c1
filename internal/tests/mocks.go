package tests

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"paygate/internal/domain"
	"paygate/internal/redis"
	"paygate/internal/repository/memory"
	"paygate/internal/service"
)

// ──────────────────────────────────────────────
// MOCK CACHE STORE
// ──────────────────────────────────────────────

// MockCacheStore is an in-memory implementation of redis.CacheStoreInterface.
type MockCacheStore struct {
	mu       sync.RWMutex
	payments map[string]redis.CachedPayment
	orders   map[string]redis.CachedOrder

	// Counters for verification
	PaymentHits   int32
	PaymentMisses int32

	// Error injection
	GetError error
}

// NewMockCacheStore creates an empty mock cache.
func NewMockCacheStore() *MockCacheStore {
	return &MockCacheStore{
		payments: make(map[string]redis.CachedPayment),
		orders:   make(map[string]redis.CachedOrder),
	}
}

// Ensure MockCacheStore implements CacheStoreInterface.
var _ redis.CacheStoreInterface = (*MockCacheStore)(nil)

func (m *MockCacheStore) GetPayment(ctx context.Context, paymentID string) (*redis.CachedPayment, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.payments[paymentID]
	if !ok {
		atomic.AddInt32(&m.PaymentMisses, 1)
		return nil, nil
	}
	atomic.AddInt32(&m.PaymentHits, 1)
	return &p, nil
}

func (m *MockCacheStore) SetPayment(ctx context.Context, payment *redis.CachedPayment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payments[payment.ID] = *payment
	return nil
}

func (m *MockCacheStore) InvalidatePayment(ctx context.Context, paymentID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.payments, paymentID)
	return nil
}

func (m *MockCacheStore) GetOrder(ctx context.Context, orderID string) (*redis.CachedOrder, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	o, ok := m.orders[orderID]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

func (m *MockCacheStore) SetOrder(ctx context.Context, order *redis.CachedOrder) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders[order.ID] = *order
	return nil
}

// CachedPaymentStatus returns the cached status of a payment, or "" if absent.
func (m *MockCacheStore) CachedPaymentStatus(paymentID string) domain.PaymentStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return domain.PaymentStatus(m.payments[paymentID].Status)
}

// PutPayment seeds the cache directly.
func (m *MockCacheStore) PutPayment(p redis.CachedPayment) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payments[p.ID] = p
}

// ──────────────────────────────────────────────
// MOCK NOTIFICATION SENDER
// ──────────────────────────────────────────────

// MockSender records notifications.
type MockSender struct {
	mu            sync.Mutex
	notifications []service.Notification
}

// NewMockSender creates a new mock sender.
func NewMockSender() *MockSender {
	return &MockSender{}
}

func (m *MockSender) Send(ctx context.Context, notification service.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifications = append(m.notifications, notification)
	return nil
}

// CountByType returns how many notifications of a type were sent.
func (m *MockSender) CountByType(t service.NotificationType) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, notification := range m.notifications {
		if notification.Type == t {
			n++
		}
	}
	return n
}

// ──────────────────────────────────────────────
// GATEWAY FIXTURE
// ──────────────────────────────────────────────

// Gateway bundles services over in-memory storage and the mock cache.
type Gateway struct {
	Orders     *memory.OrderRepository
	Payments   *memory.PaymentRepository
	Cache      *MockCacheStore
	Sender     *MockSender
	Authorizer *service.Authorizer
	OrderSvc   *service.OrderService
	PaymentSvc *service.PaymentService
	QuerySvc   *service.QueryService
}

// NewGateway wires a gateway in test mode with the given fixed delay and outcome.
func NewGateway(delay time.Duration, success bool) *Gateway {
	sim := service.DefaultSimulationConfig()
	sim.TestMode = true
	sim.FixedDelay = delay
	sim.FixedSuccess = success

	g := &Gateway{
		Orders:   memory.NewOrderRepository(),
		Payments: memory.NewPaymentRepository(),
		Cache:    NewMockCacheStore(),
		Sender:   NewMockSender(),
	}
	notifications := service.NewNotificationService(g.Sender)
	g.Authorizer = service.NewAuthorizer(g.Payments, g.Cache, notifications, sim)
	g.OrderSvc = service.NewOrderService(g.Orders, g.Cache, notifications)
	g.PaymentSvc = service.NewPaymentService(g.Orders, g.Payments, g.Authorizer, g.Cache, notifications)
	g.QuerySvc = service.NewQueryService(g.Payments, g.Cache)
	return g
}

// Close finalizes any pending authorization.
func (g *Gateway) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := g.Authorizer.Shutdown(ctx); err != nil {
		return errors.Join(errors.New("authorizer shutdown"), err)
	}
	return nil
}
