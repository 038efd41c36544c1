package repository

import (
	"context"
	"time"

	"paygate/internal/domain"
)

// PaymentRepository defines the persistence operations for payments.
type PaymentRepository interface {
	// Create persists a new payment.
	Create(ctx context.Context, payment *domain.Payment) error

	// GetByID retrieves a payment by ID.
	GetByID(ctx context.Context, id string) (*domain.Payment, error)

	// UpdateStatus moves a processing payment to a terminal status.
	// Returns ErrStatusConflict if the payment is not processing.
	UpdateStatus(ctx context.Context, id string, status domain.PaymentStatus, updatedAt time.Time) error

	// ListByMerchant retrieves all payments of a merchant, newest first.
	ListByMerchant(ctx context.Context, merchantID string) ([]*domain.Payment, error)
}
