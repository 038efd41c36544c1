package service

import (
	"context"
	"time"

	"paygate/internal/domain"
	"paygate/internal/repository/memory"
)

// ──────────────────────────────────────────────
// FAULTY REPOSITORIES
// ──────────────────────────────────────────────

// faultyOrderRepo fails Create with createErr when it is set.
type faultyOrderRepo struct {
	*memory.OrderRepository
	createErr error
}

func newFaultyOrderRepo() *faultyOrderRepo {
	return &faultyOrderRepo{OrderRepository: memory.NewOrderRepository()}
}

func (r *faultyOrderRepo) Create(ctx context.Context, order *domain.Order) error {
	if r.createErr != nil {
		return r.createErr
	}
	return r.OrderRepository.Create(ctx, order)
}

// faultyPaymentRepo fails the operations whose error is set. Errors are
// configured before the repository is handed to a service.
type faultyPaymentRepo struct {
	*memory.PaymentRepository
	createErr       error
	updateStatusErr error
	listErr         error
}

func newFaultyPaymentRepo() *faultyPaymentRepo {
	return &faultyPaymentRepo{PaymentRepository: memory.NewPaymentRepository()}
}

func (r *faultyPaymentRepo) Create(ctx context.Context, payment *domain.Payment) error {
	if r.createErr != nil {
		return r.createErr
	}
	return r.PaymentRepository.Create(ctx, payment)
}

func (r *faultyPaymentRepo) UpdateStatus(ctx context.Context, id string, status domain.PaymentStatus, updatedAt time.Time) error {
	if r.updateStatusErr != nil {
		return r.updateStatusErr
	}
	return r.PaymentRepository.UpdateStatus(ctx, id, status, updatedAt)
}

func (r *faultyPaymentRepo) ListByMerchant(ctx context.Context, merchantID string) ([]*domain.Payment, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	return r.PaymentRepository.ListByMerchant(ctx, merchantID)
}
