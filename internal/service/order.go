package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"paygate/internal/domain"
	"paygate/internal/ids"
	internalRedis "paygate/internal/redis"
	"paygate/internal/repository"
)

// OrderService handles order operations.
type OrderService struct {
	orderRepo           repository.OrderRepository
	cache               internalRedis.CacheStoreInterface
	notificationService *NotificationService
	now                 func() time.Time
}

// NewOrderService creates a new OrderService. cache and notificationService
// may be nil.
func NewOrderService(
	orderRepo repository.OrderRepository,
	cache internalRedis.CacheStoreInterface,
	notificationService *NotificationService,
) *OrderService {
	return &OrderService{
		orderRepo:           orderRepo,
		cache:               cache,
		notificationService: notificationService,
		now:                 time.Now,
	}
}

// CreateOrderRequest contains the parameters for creating an order.
type CreateOrderRequest struct {
	MerchantID string
	Amount     int64
	Currency   string // Optional: defaults to INR
	Receipt    string
	Notes      map[string]string
}

// CreateOrder validates and stores a new order in CREATED status.
func (s *OrderService) CreateOrder(ctx context.Context, req CreateOrderRequest) (*domain.Order, error) {
	if req.Amount < domain.MinOrderAmount {
		return nil, ErrInvalidAmount
	}

	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = domain.DefaultCurrency
	}

	notes := req.Notes
	if notes == nil {
		notes = map[string]string{}
	}

	now := s.now().UTC()
	order := &domain.Order{
		ID:         ids.NewOrderID(),
		MerchantID: req.MerchantID,
		Amount:     req.Amount,
		Currency:   currency,
		Receipt:    req.Receipt,
		Notes:      notes,
		Status:     domain.OrderStatusCreated,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	log.Printf("[ORDER] order %s created for merchant %s (amount %d %s)",
		order.ID, order.MerchantID, order.Amount, order.Currency)

	if s.notificationService != nil {
		_ = s.notificationService.NotifyOrderCreated(ctx, order)
	}

	return order, nil
}

// GetOrder retrieves an order owned by merchantID.
func (s *OrderService) GetOrder(ctx context.Context, orderID, merchantID string) (*domain.Order, error) {
	order, err := s.getOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.MerchantID != merchantID {
		return nil, ErrOrderNotFound
	}

	return order, nil
}

// GetOrderPublic retrieves the checkout view of an order. Orders never change
// after creation, so the cached view is always current.
func (s *OrderService) GetOrderPublic(ctx context.Context, orderID string) (*domain.PublicOrder, error) {
	if s.cache != nil {
		cached, err := s.cache.GetOrder(ctx, orderID)
		if err != nil {
			log.Printf("[ORDER] cache read failed for order %s: %v", orderID, err)
		} else if cached != nil {
			return cached.Public(), nil
		}
	}

	order, err := s.getOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	public := order.Public()
	if s.cache != nil {
		if err := s.cache.SetOrder(ctx, internalRedis.NewCachedOrder(public)); err != nil {
			log.Printf("[ORDER] failed to cache order %s: %v", orderID, err)
		}
	}

	return public, nil
}

func (s *OrderService) getOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, ErrOrderNotFound
	}

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order %s: %w", orderID, err)
	}

	return order, nil
}
