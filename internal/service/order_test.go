package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paygate/internal/domain"
	"paygate/internal/repository/memory"
)

func TestCreateOrder_AmountBoundary(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		amount  int64
		wantErr bool
	}{
		{-100, true},
		{0, true},
		{99, true},
		{100, false},
		{101, false},
		{5_000_000, false},
	}

	for _, tc := range testCases {
		repo := memory.NewOrderRepository()
		svc := NewOrderService(repo, nil, nil)

		order, err := svc.CreateOrder(context.Background(), CreateOrderRequest{
			MerchantID: "merchant-1",
			Amount:     tc.amount,
		})

		if tc.wantErr {
			assert.ErrorIs(t, err, ErrInvalidAmount, "amount %d", tc.amount)
			assert.Equal(t, 0, repo.Count())
			continue
		}
		require.NoError(t, err, "amount %d", tc.amount)
		assert.Equal(t, tc.amount, order.Amount)
		assert.Equal(t, 1, repo.Count())
	}
}

func TestCreateOrder_Defaults(t *testing.T) {
	t.Parallel()

	svc := NewOrderService(memory.NewOrderRepository(), nil, nil)
	order, err := svc.CreateOrder(context.Background(), CreateOrderRequest{
		MerchantID: "merchant-1",
		Amount:     50000,
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(order.ID, "order_"))
	assert.Len(t, order.ID, len("order_")+16)
	assert.Equal(t, "INR", order.Currency)
	assert.Equal(t, domain.OrderStatusCreated, order.Status)
	assert.NotNil(t, order.Notes)
	assert.Empty(t, order.Notes)
	assert.Empty(t, order.Receipt)
	assert.Equal(t, order.CreatedAt, order.UpdatedAt)
}

func TestCreateOrder_KeepsMerchantFields(t *testing.T) {
	t.Parallel()

	svc := NewOrderService(memory.NewOrderRepository(), nil, nil)
	order, err := svc.CreateOrder(context.Background(), CreateOrderRequest{
		MerchantID: "merchant-1",
		Amount:     1500,
		Currency:   "usd",
		Receipt:    "rcpt_42",
		Notes:      map[string]string{"customer": "alice"},
	})
	require.NoError(t, err)

	got, err := svc.GetOrder(context.Background(), order.ID, "merchant-1")
	require.NoError(t, err)
	assert.Equal(t, "USD", got.Currency)
	assert.Equal(t, "rcpt_42", got.Receipt)
	assert.Equal(t, map[string]string{"customer": "alice"}, got.Notes)
}

func TestCreateOrder_StorageFailure(t *testing.T) {
	t.Parallel()

	repo := newFaultyOrderRepo()
	repo.createErr = errors.New("db unavailable")
	svc := NewOrderService(repo, nil, nil)

	_, err := svc.CreateOrder(context.Background(), CreateOrderRequest{MerchantID: "merchant-1", Amount: 100})
	assert.ErrorIs(t, err, repo.createErr)
	assert.Equal(t, 0, repo.Count())
}

func TestGetOrder_ScopedByMerchant(t *testing.T) {
	t.Parallel()

	svc := NewOrderService(memory.NewOrderRepository(), nil, nil)
	order, err := svc.CreateOrder(context.Background(), CreateOrderRequest{MerchantID: "merchant-1", Amount: 100})
	require.NoError(t, err)

	_, err = svc.GetOrder(context.Background(), order.ID, "merchant-2")
	assert.ErrorIs(t, err, ErrOrderNotFound)

	_, err = svc.GetOrder(context.Background(), "order_ffffffffffffffff", "merchant-1")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestGetOrderPublic(t *testing.T) {
	t.Parallel()

	svc := NewOrderService(memory.NewOrderRepository(), nil, nil)
	order, err := svc.CreateOrder(context.Background(), CreateOrderRequest{
		MerchantID: "merchant-1",
		Amount:     7500,
		Receipt:    "secret-receipt",
		Notes:      map[string]string{"internal": "yes"},
	})
	require.NoError(t, err)

	public, err := svc.GetOrderPublic(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, &domain.PublicOrder{
		ID:       order.ID,
		Amount:   7500,
		Currency: "INR",
		Status:   domain.OrderStatusCreated,
	}, public)

	_, err = svc.GetOrderPublic(context.Background(), "")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}
