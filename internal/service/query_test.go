package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paygate/internal/domain"
	"paygate/internal/repository/memory"
)

func addPayment(t *testing.T, repo *memory.PaymentRepository, id, merchantID string, amount int64, status domain.PaymentStatus, createdAt time.Time) {
	t.Helper()
	require.NoError(t, repo.Create(context.Background(), &domain.Payment{
		ID:         id,
		OrderID:    "order_0000000000000001",
		MerchantID: merchantID,
		Amount:     amount,
		Currency:   "INR",
		Method:     domain.PaymentMethodUPI,
		VPA:        "user@bank",
		Status:     status,
		CreatedAt:  createdAt,
		UpdatedAt:  createdAt,
	}))
}

func TestGetPayment_ScopedByMerchant(t *testing.T) {
	t.Parallel()

	repo := memory.NewPaymentRepository()
	addPayment(t, repo, "pay_0000000000000001", "merchant-1", 100, domain.PaymentStatusSuccess, fixedNow)
	svc := NewQueryService(repo, nil)

	payment, err := svc.GetPayment(context.Background(), "pay_0000000000000001", "merchant-1")
	require.NoError(t, err)
	assert.Equal(t, "user@bank", payment.VPA)

	_, err = svc.GetPayment(context.Background(), "pay_0000000000000001", "merchant-2")
	assert.ErrorIs(t, err, ErrPaymentNotFound)

	_, err = svc.GetPayment(context.Background(), "pay_ffffffffffffffff", "merchant-1")
	assert.ErrorIs(t, err, ErrPaymentNotFound)
}

func TestGetPaymentPublic_Projection(t *testing.T) {
	t.Parallel()

	repo := memory.NewPaymentRepository()
	addPayment(t, repo, "pay_0000000000000002", "merchant-1", 4200, domain.PaymentStatusProcessing, fixedNow)
	svc := NewQueryService(repo, nil)

	public, err := svc.GetPaymentPublic(context.Background(), "pay_0000000000000002")
	require.NoError(t, err)
	assert.Equal(t, &domain.PublicPayment{
		ID:        "pay_0000000000000002",
		OrderID:   "order_0000000000000001",
		Amount:    4200,
		Currency:  "INR",
		Method:    domain.PaymentMethodUPI,
		Status:    domain.PaymentStatusProcessing,
		CreatedAt: fixedNow,
		UpdatedAt: fixedNow,
	}, public)

	_, err = svc.GetPaymentPublic(context.Background(), "pay_ffffffffffffffff")
	assert.ErrorIs(t, err, ErrPaymentNotFound)
}

func TestListPayments_NewestFirst(t *testing.T) {
	t.Parallel()

	repo := memory.NewPaymentRepository()
	addPayment(t, repo, "pay_0000000000000010", "merchant-1", 100, domain.PaymentStatusSuccess, fixedNow.Add(-2*time.Minute))
	addPayment(t, repo, "pay_0000000000000011", "merchant-1", 100, domain.PaymentStatusFailed, fixedNow)
	addPayment(t, repo, "pay_0000000000000012", "merchant-1", 100, domain.PaymentStatusSuccess, fixedNow.Add(-time.Minute))
	addPayment(t, repo, "pay_0000000000000013", "merchant-2", 100, domain.PaymentStatusSuccess, fixedNow)
	svc := NewQueryService(repo, nil)

	payments, err := svc.ListPayments(context.Background(), "merchant-1")
	require.NoError(t, err)

	got := make([]string, 0, len(payments))
	for _, p := range payments {
		got = append(got, p.ID)
	}
	assert.Equal(t, []string{"pay_0000000000000011", "pay_0000000000000012", "pay_0000000000000010"}, got)

	empty, err := svc.ListPayments(context.Background(), "merchant-3")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestListPayments_HidesStorageError(t *testing.T) {
	t.Parallel()

	repo := newFaultyPaymentRepo()
	repo.listErr = errors.New("pq: relation \"payments\" does not exist")
	svc := NewQueryService(repo, nil)

	_, err := svc.ListPayments(context.Background(), "merchant-1")
	assert.ErrorIs(t, err, ErrListPayments)
	assert.NotContains(t, err.Error(), "relation")
}

func TestPaymentStats(t *testing.T) {
	t.Parallel()

	repo := memory.NewPaymentRepository()
	addPayment(t, repo, "pay_0000000000000020", "merchant-1", 100, domain.PaymentStatusSuccess, fixedNow)
	addPayment(t, repo, "pay_0000000000000021", "merchant-1", 250, domain.PaymentStatusSuccess, fixedNow)
	addPayment(t, repo, "pay_0000000000000022", "merchant-1", 9999, domain.PaymentStatusFailed, fixedNow)
	svc := NewQueryService(repo, nil)

	stats, err := svc.PaymentStats(context.Background(), "merchant-1")
	require.NoError(t, err)
	assert.Equal(t, &PaymentStats{
		TotalTransactions:      3,
		SuccessfulTransactions: 2,
		TotalAmount:            350,
		SuccessRate:            67,
	}, stats)

	empty, err := svc.PaymentStats(context.Background(), "merchant-2")
	require.NoError(t, err)
	assert.Equal(t, &PaymentStats{}, empty)
}
