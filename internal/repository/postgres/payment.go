package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"paygate/internal/domain"
	"paygate/internal/repository"
)

// PaymentRepository is a PostgreSQL implementation of repository.PaymentRepository.
type PaymentRepository struct {
	q Querier
}

// NewPaymentRepository creates a new PostgreSQL payment repository.
func NewPaymentRepository(db *sql.DB) *PaymentRepository {
	return &PaymentRepository{q: db}
}

const paymentColumns = `id, order_id, merchant_id, amount, currency, method, status, vpa, card_network, card_last4, created_at, updated_at`

// Create persists a new payment.
func (r *PaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	query := `
		INSERT INTO payments (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.q.ExecContext(ctx, query,
		payment.ID,
		payment.OrderID,
		payment.MerchantID,
		payment.Amount,
		payment.Currency,
		payment.Method,
		payment.Status,
		nullString(payment.VPA),
		nullString(string(payment.CardNetwork)),
		nullString(payment.CardLast4),
		payment.CreatedAt,
		payment.UpdatedAt,
	)

	return translateInsertError(err)
}

// GetByID retrieves a payment by ID.
func (r *PaymentRepository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`

	payment, err := scanPayment(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return payment, nil
}

// UpdateStatus moves a processing payment to a terminal status.
func (r *PaymentRepository) UpdateStatus(ctx context.Context, id string, status domain.PaymentStatus, updatedAt time.Time) error {
	query := `UPDATE payments SET status = $1, updated_at = $2 WHERE id = $3 AND status = $4`

	result, err := r.q.ExecContext(ctx, query, status, updatedAt, id, domain.PaymentStatusProcessing)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		// Distinguish a missing row from one that already left processing.
		var exists bool
		if err := r.q.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM payments WHERE id = $1)`, id).Scan(&exists); err != nil {
			return err
		}
		if exists {
			return repository.ErrStatusConflict
		}
		return repository.ErrNotFound
	}

	return nil
}

// ListByMerchant retrieves all payments of a merchant, newest first.
func (r *PaymentRepository) ListByMerchant(ctx context.Context, merchantID string) ([]*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE merchant_id = $1 ORDER BY created_at DESC`

	rows, err := r.q.QueryContext(ctx, query, merchantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := make([]*domain.Payment, 0)
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, payment)
	}
	return payments, rows.Err()
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanPayment(row rowScanner) (*domain.Payment, error) {
	var payment domain.Payment
	var vpa, cardNetwork, cardLast4 sql.NullString

	if err := row.Scan(
		&payment.ID,
		&payment.OrderID,
		&payment.MerchantID,
		&payment.Amount,
		&payment.Currency,
		&payment.Method,
		&payment.Status,
		&vpa,
		&cardNetwork,
		&cardLast4,
		&payment.CreatedAt,
		&payment.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if vpa.Valid {
		payment.VPA = vpa.String
	}
	if cardNetwork.Valid {
		payment.CardNetwork = domain.CardNetwork(cardNetwork.String)
	}
	if cardLast4.Valid {
		payment.CardLast4 = cardLast4.String
	}

	return &payment, nil
}
