package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"

	"paygate/internal/domain"
	internalRedis "paygate/internal/redis"
	"paygate/internal/repository"
)

// QueryService answers payment status queries.
type QueryService struct {
	paymentRepo repository.PaymentRepository
	cache       internalRedis.CacheStoreInterface
}

// NewQueryService creates a new QueryService. cache may be nil.
func NewQueryService(paymentRepo repository.PaymentRepository, cache internalRedis.CacheStoreInterface) *QueryService {
	return &QueryService{
		paymentRepo: paymentRepo,
		cache:       cache,
	}
}

// PaymentStats summarizes a merchant's payments.
type PaymentStats struct {
	TotalTransactions      int
	SuccessfulTransactions int
	TotalAmount            int64 // Sum of successful payments
	SuccessRate            int   // Percent, rounded
}

// GetPayment retrieves a payment owned by merchantID.
func (s *QueryService) GetPayment(ctx context.Context, paymentID, merchantID string) (*domain.Payment, error) {
	payment, err := s.getPayment(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	if payment.MerchantID != merchantID {
		return nil, ErrPaymentNotFound
	}

	return payment, nil
}

// GetPaymentPublic retrieves the checkout view of a payment. Only terminal
// statuses are served from cache; a processing entry is always re-read.
func (s *QueryService) GetPaymentPublic(ctx context.Context, paymentID string) (*domain.PublicPayment, error) {
	if s.cache != nil {
		cached, err := s.cache.GetPayment(ctx, paymentID)
		if err != nil {
			log.Printf("[QUERY] cache read failed for payment %s: %v", paymentID, err)
		} else if cached != nil {
			if public := cached.Public(); public.Status.IsTerminal() {
				return public, nil
			}
		}
	}

	payment, err := s.getPayment(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	public := payment.Public()
	if s.cache != nil {
		if err := s.cache.SetPayment(ctx, internalRedis.NewCachedPayment(public)); err != nil {
			log.Printf("[QUERY] failed to cache payment %s: %v", paymentID, err)
		}
	}

	return public, nil
}

// ListPayments returns all payments of a merchant, newest first.
func (s *QueryService) ListPayments(ctx context.Context, merchantID string) ([]*domain.Payment, error) {
	payments, err := s.paymentRepo.ListByMerchant(ctx, merchantID)
	if err != nil {
		log.Printf("[QUERY] failed to list payments for merchant %s: %v", merchantID, err)
		return nil, ErrListPayments
	}

	if payments == nil {
		payments = []*domain.Payment{}
	}

	return payments, nil
}

// PaymentStats computes dashboard totals for a merchant.
func (s *QueryService) PaymentStats(ctx context.Context, merchantID string) (*PaymentStats, error) {
	payments, err := s.ListPayments(ctx, merchantID)
	if err != nil {
		return nil, err
	}

	stats := &PaymentStats{TotalTransactions: len(payments)}
	for _, p := range payments {
		if p.Status == domain.PaymentStatusSuccess {
			stats.SuccessfulTransactions++
			stats.TotalAmount += p.Amount
		}
	}

	if stats.TotalTransactions > 0 {
		rate := float64(stats.SuccessfulTransactions) / float64(stats.TotalTransactions) * 100
		stats.SuccessRate = int(math.Round(rate))
	}

	return stats, nil
}

func (s *QueryService) getPayment(ctx context.Context, paymentID string) (*domain.Payment, error) {
	if strings.TrimSpace(paymentID) == "" {
		return nil, ErrPaymentNotFound
	}

	payment, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to get payment %s: %w", paymentID, err)
	}

	return payment, nil
}
