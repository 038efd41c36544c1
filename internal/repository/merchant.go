package repository

import (
	"context"

	"paygate/internal/domain"
)

// MerchantRepository defines the persistence operations for merchants.
type MerchantRepository interface {
	// Create adds a new merchant.
	Create(ctx context.Context, merchant *domain.Merchant) error

	// GetByAPIKey retrieves a merchant by its API key.
	GetByAPIKey(ctx context.Context, apiKey string) (*domain.Merchant, error)

	// GetByEmail retrieves a merchant by email.
	GetByEmail(ctx context.Context, email string) (*domain.Merchant, error)
}
