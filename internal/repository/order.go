package repository

import (
	"context"

	"paygate/internal/domain"
)

// OrderRepository defines the persistence operations for orders.
type OrderRepository interface {
	// Create persists a new order.
	Create(ctx context.Context, order *domain.Order) error

	// GetByID retrieves an order by ID regardless of merchant.
	GetByID(ctx context.Context, id string) (*domain.Order, error)
}
