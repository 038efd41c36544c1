package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"

	"paygate/internal/domain"
	"paygate/internal/ids"
	internalRedis "paygate/internal/redis"
	"paygate/internal/repository"
	"paygate/internal/validation"
)

// PaymentService validates payment submissions and drives them through the
// simulated authorization.
type PaymentService struct {
	orderRepo           repository.OrderRepository
	paymentRepo         repository.PaymentRepository
	authorizer          *Authorizer
	cache               internalRedis.CacheStoreInterface
	notificationService *NotificationService
	now                 func() time.Time
}

// NewPaymentService creates a new PaymentService. cache and
// notificationService may be nil.
func NewPaymentService(
	orderRepo repository.OrderRepository,
	paymentRepo repository.PaymentRepository,
	authorizer *Authorizer,
	cache internalRedis.CacheStoreInterface,
	notificationService *NotificationService,
) *PaymentService {
	return &PaymentService{
		orderRepo:           orderRepo,
		paymentRepo:         paymentRepo,
		authorizer:          authorizer,
		cache:               cache,
		notificationService: notificationService,
		now:                 time.Now,
	}
}

// CardDetails is the card payload of a payment submission. CVV and HolderName
// are accepted but never checked or stored.
type CardDetails struct {
	Number      string
	ExpiryMonth string
	ExpiryYear  string
	CVV         string
	HolderName  string
}

// SubmitPaymentRequest contains the parameters for submitting a payment.
type SubmitPaymentRequest struct {
	OrderID string
	Method  domain.PaymentMethod
	VPA     string
	Card    *CardDetails

	// MerchantID scopes the order lookup. Empty for the public checkout path.
	MerchantID string
}

// SubmitPayment validates the request, stores the payment as processing and
// waits for the simulated authorization to finalize it.
//
// If ctx ends before the authorization completes, the payment is still
// finalized in the background and ctx.Err() is returned.
func (s *PaymentService) SubmitPayment(ctx context.Context, req SubmitPaymentRequest) (*domain.Payment, error) {
	order, err := s.resolveOrder(ctx, req.OrderID, req.MerchantID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	payment := &domain.Payment{
		ID:         ids.NewPaymentID(),
		OrderID:    order.ID,
		MerchantID: order.MerchantID,
		Amount:     order.Amount,
		Currency:   order.Currency,
		Method:     req.Method,
		Status:     domain.PaymentStatusProcessing,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.applyMethod(payment, req, now); err != nil {
		return nil, err
	}

	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}

	log.Printf("[PAYMENT] payment %s created for order %s (%s, amount %d)",
		payment.ID, payment.OrderID, payment.Method, payment.Amount)

	if s.cache != nil {
		if err := s.cache.SetPayment(ctx, internalRedis.NewCachedPayment(payment.Public())); err != nil {
			log.Printf("[PAYMENT] failed to cache payment %s: %v", payment.ID, err)
		}
	}

	if s.notificationService != nil {
		_ = s.notificationService.NotifyPaymentProcessing(ctx, payment)
	}

	pending := s.authorizer.Begin(ctx, payment)

	var segment *newrelic.Segment
	if txn := newrelic.FromContext(ctx); txn != nil {
		segment = txn.StartSegment("payment/authorization")
	}
	status, completedAt, err := s.authorizer.Await(ctx, pending)
	if segment != nil {
		segment.End()
	}
	if err != nil {
		return nil, err
	}

	payment.Status = status
	payment.UpdatedAt = completedAt

	return payment, nil
}

// resolveOrder looks up the order. An order owned by another merchant is
// reported as missing.
func (s *PaymentService) resolveOrder(ctx context.Context, orderID, merchantID string) (*domain.Order, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, ErrOrderNotFound
	}

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order %s: %w", orderID, err)
	}

	if merchantID != "" && order.MerchantID != merchantID {
		return nil, ErrOrderNotFound
	}

	return order, nil
}

// applyMethod validates the method-specific fields and copies the ones that
// are stored onto payment.
func (s *PaymentService) applyMethod(payment *domain.Payment, req SubmitPaymentRequest, now time.Time) error {
	switch req.Method {
	case domain.PaymentMethodUPI:
		if !validation.IsValidVPA(req.VPA) {
			return ErrInvalidVPA
		}
		payment.VPA = req.VPA

	case domain.PaymentMethodCard:
		card := req.Card
		if card == nil {
			return ErrCardDetailsMissing
		}
		if card.Number == "" || card.ExpiryMonth == "" || card.ExpiryYear == "" {
			return ErrIncompleteCard
		}

		number := validation.NormalizeCardNumber(card.Number)
		if !validation.IsValidCardNumber(number) {
			return ErrInvalidCard
		}
		if !validation.IsValidExpiry(card.ExpiryMonth, card.ExpiryYear, now) {
			return ErrExpiredCard
		}

		payment.CardNetwork = validation.DetectCardNetwork(number)
		payment.CardLast4 = validation.Last4(number)

	default:
		return ErrInvalidMethod
	}

	return nil
}
