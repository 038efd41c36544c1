package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"paygate/internal/domain"
	"paygate/internal/repository"
)

// OrderRepository is a PostgreSQL implementation of repository.OrderRepository.
type OrderRepository struct {
	q Querier
}

// NewOrderRepository creates a new PostgreSQL order repository.
func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{q: db}
}

// Create persists a new order.
func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	query := `
		INSERT INTO orders (id, merchant_id, amount, currency, receipt, notes, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	notes := order.Notes
	if notes == nil {
		notes = map[string]string{}
	}
	notesJSON, err := json.Marshal(notes)
	if err != nil {
		return fmt.Errorf("failed to encode order notes: %w", err)
	}

	_, err = r.q.ExecContext(ctx, query,
		order.ID,
		order.MerchantID,
		order.Amount,
		order.Currency,
		nullString(order.Receipt),
		string(notesJSON),
		order.Status,
		order.CreatedAt,
		order.UpdatedAt,
	)

	return translateInsertError(err)
}

// GetByID retrieves an order by ID.
func (r *OrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	query := `
		SELECT id, merchant_id, amount, currency, receipt, notes, status, created_at, updated_at
		FROM orders WHERE id = $1
	`

	var order domain.Order
	var receipt sql.NullString
	var notesJSON []byte

	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&order.ID,
		&order.MerchantID,
		&order.Amount,
		&order.Currency,
		&receipt,
		&notesJSON,
		&order.Status,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	if receipt.Valid {
		order.Receipt = receipt.String
	}

	order.Notes = map[string]string{}
	if len(notesJSON) > 0 {
		if err := json.Unmarshal(notesJSON, &order.Notes); err != nil {
			return nil, fmt.Errorf("failed to decode notes of order %s: %w", id, err)
		}
	}

	return &order, nil
}
