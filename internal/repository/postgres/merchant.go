package postgres

import (
	"context"
	"database/sql"
	"errors"

	"paygate/internal/domain"
	"paygate/internal/repository"
)

// MerchantRepository is a PostgreSQL implementation of repository.MerchantRepository.
type MerchantRepository struct {
	q Querier
}

// NewMerchantRepository creates a new PostgreSQL merchant repository.
func NewMerchantRepository(db *sql.DB) *MerchantRepository {
	return &MerchantRepository{q: db}
}

// Create adds a new merchant.
func (r *MerchantRepository) Create(ctx context.Context, merchant *domain.Merchant) error {
	query := `
		INSERT INTO merchants (id, name, email, api_key, api_secret_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.q.ExecContext(ctx, query,
		merchant.ID,
		merchant.Name,
		merchant.Email,
		merchant.APIKey,
		merchant.APISecretHash,
		merchant.CreatedAt,
	)

	return translateInsertError(err)
}

// GetByAPIKey retrieves a merchant by its API key.
func (r *MerchantRepository) GetByAPIKey(ctx context.Context, apiKey string) (*domain.Merchant, error) {
	return r.getOne(ctx, `
		SELECT id, name, email, api_key, api_secret_hash, created_at
		FROM merchants WHERE api_key = $1
	`, apiKey)
}

// GetByEmail retrieves a merchant by email.
func (r *MerchantRepository) GetByEmail(ctx context.Context, email string) (*domain.Merchant, error) {
	return r.getOne(ctx, `
		SELECT id, name, email, api_key, api_secret_hash, created_at
		FROM merchants WHERE email = $1
	`, email)
}

func (r *MerchantRepository) getOne(ctx context.Context, query string, arg string) (*domain.Merchant, error) {
	var merchant domain.Merchant
	err := r.q.QueryRowContext(ctx, query, arg).Scan(
		&merchant.ID,
		&merchant.Name,
		&merchant.Email,
		&merchant.APIKey,
		&merchant.APISecretHash,
		&merchant.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return &merchant, nil
}
