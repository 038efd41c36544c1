package tests

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paygate/internal/domain"
	"paygate/internal/service"
)

// ──────────────────────────────────────────────
// PAYMENT LIFECYCLE
// ──────────────────────────────────────────────

func createOrder(t *testing.T, g *Gateway, merchantID string, amount int64) *domain.Order {
	t.Helper()
	order, err := g.OrderSvc.CreateOrder(context.Background(), service.CreateOrderRequest{
		MerchantID: merchantID,
		Amount:     amount,
	})
	require.NoError(t, err)
	return order
}

func TestLifecycle_FixedSuccessFinalizesEveryPayment(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		success bool
		want    domain.PaymentStatus
	}{
		{true, domain.PaymentStatusSuccess},
		{false, domain.PaymentStatusFailed},
	} {
		tc := tc
		t.Run(string(tc.want), func(t *testing.T) {
			t.Parallel()

			g := NewGateway(time.Millisecond, tc.success)
			defer g.Close()

			for i := 0; i < 100; i++ {
				order := createOrder(t, g, "merchant-1", int64(100+i))
				payment, err := g.PaymentSvc.SubmitPayment(context.Background(), service.SubmitPaymentRequest{
					OrderID:    order.ID,
					Method:     domain.PaymentMethodUPI,
					VPA:        fmt.Sprintf("user%d@bank", i),
					MerchantID: "merchant-1",
				})
				require.NoError(t, err)
				require.Equal(t, tc.want, payment.Status, "payment %d", i)
			}

			payments, err := g.QuerySvc.ListPayments(context.Background(), "merchant-1")
			require.NoError(t, err)
			require.Len(t, payments, 100)
			for _, p := range payments {
				assert.Equal(t, tc.want, p.Status)
			}
		})
	}
}

func TestLifecycle_ProcessingThenTerminalNeverReverts(t *testing.T) {
	t.Parallel()

	g := NewGateway(200*time.Millisecond, true)
	defer g.Close()
	order := createOrder(t, g, "merchant-1", 5000)

	result := make(chan *domain.Payment, 1)
	go func() {
		payment, _ := g.PaymentSvc.SubmitPayment(context.Background(), service.SubmitPaymentRequest{
			OrderID: order.ID,
			Method:  domain.PaymentMethodUPI,
			VPA:     "user@bank",
		})
		result <- payment
	}()

	var paymentID string
	require.Eventually(t, func() bool {
		payments, err := g.QuerySvc.ListPayments(context.Background(), "merchant-1")
		if err != nil || len(payments) == 0 {
			return false
		}
		paymentID = payments[0].ID
		return true
	}, time.Second, 2*time.Millisecond)

	public, err := g.QuerySvc.GetPaymentPublic(context.Background(), paymentID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusProcessing, public.Status)

	payment := <-result
	require.NotNil(t, payment)
	assert.Equal(t, domain.PaymentStatusSuccess, payment.Status)
	assert.True(t, payment.UpdatedAt.After(payment.CreatedAt) || payment.UpdatedAt.Equal(payment.CreatedAt))

	for i := 0; i < 5; i++ {
		public, err := g.QuerySvc.GetPaymentPublic(context.Background(), paymentID)
		require.NoError(t, err)
		assert.Equal(t, domain.PaymentStatusSuccess, public.Status)
	}
}

func TestLifecycle_ConcurrentPaymentsOnOneOrder(t *testing.T) {
	t.Parallel()

	g := NewGateway(20*time.Millisecond, true)
	defer g.Close()
	order := createOrder(t, g, "merchant-1", 1000)

	const n = 20
	var wg sync.WaitGroup
	ids := make(chan string, n)
	start := time.Now()
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			payment, err := g.PaymentSvc.SubmitPayment(context.Background(), service.SubmitPaymentRequest{
				OrderID: order.ID,
				Method:  domain.PaymentMethodCard,
				Card:    &service.CardDetails{Number: "4111111111111111", ExpiryMonth: "12", ExpiryYear: "2099"},
			})
			if assert.NoError(t, err) {
				ids <- payment.ID
			}
		}()
	}
	wg.Wait()
	close(ids)

	// Authorizations run side by side rather than one after another.
	assert.Less(t, time.Since(start), time.Duration(n)*20*time.Millisecond)

	seen := map[string]bool{}
	for id := range ids {
		seen[id] = true
	}
	assert.Len(t, seen, n)
	assert.Equal(t, n, g.Payments.Count())
}

func TestLifecycle_NotFoundOrderCreatesNoPayment(t *testing.T) {
	t.Parallel()

	g := NewGateway(0, true)
	defer g.Close()

	for _, method := range []domain.PaymentMethod{domain.PaymentMethodUPI, domain.PaymentMethodCard, "wallet"} {
		_, err := g.PaymentSvc.SubmitPayment(context.Background(), service.SubmitPaymentRequest{
			OrderID: "order_0123456789abcdef",
			Method:  method,
			VPA:     "user@bank",
		})
		assert.ErrorIs(t, err, service.ErrOrderNotFound)
	}
	assert.Equal(t, 0, g.Payments.Count())
}

func TestLifecycle_Notifications(t *testing.T) {
	t.Parallel()

	g := NewGateway(0, false)
	defer g.Close()
	order := createOrder(t, g, "merchant-1", 1000)

	_, err := g.PaymentSvc.SubmitPayment(context.Background(), service.SubmitPaymentRequest{
		OrderID: order.ID,
		Method:  domain.PaymentMethodUPI,
		VPA:     "user@bank",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, g.Sender.CountByType(service.NotificationOrderCreated))
	assert.Equal(t, 1, g.Sender.CountByType(service.NotificationPaymentProcessing))
	assert.Equal(t, 1, g.Sender.CountByType(service.NotificationPaymentFailed))
	assert.Equal(t, 0, g.Sender.CountByType(service.NotificationPaymentSuccess))
}

func TestLifecycle_ShutdownLeavesNothingProcessing(t *testing.T) {
	t.Parallel()

	g := NewGateway(time.Hour, true)
	order := createOrder(t, g, "merchant-1", 1000)

	ctx, cancel := context.WithCancel(context.Background())
	errs := make(chan error, 3)
	for i := 0; i < 3; i++ {
		go func() {
			_, err := g.PaymentSvc.SubmitPayment(ctx, service.SubmitPaymentRequest{
				OrderID: order.ID,
				Method:  domain.PaymentMethodUPI,
				VPA:     "user@bank",
			})
			errs <- err
		}()
	}

	require.Eventually(t, func() bool { return g.Authorizer.Pending() == 3 }, time.Second, 2*time.Millisecond)
	require.NoError(t, g.Close())
	for i := 0; i < 3; i++ {
		assert.NoError(t, <-errs)
	}
	cancel()

	payments, err := g.QuerySvc.ListPayments(context.Background(), "merchant-1")
	require.NoError(t, err)
	for _, p := range payments {
		assert.Equal(t, domain.PaymentStatusSuccess, p.Status)
	}
}
