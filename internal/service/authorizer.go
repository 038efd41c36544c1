package service

import (
	"context"
	"fmt"
	"log"
	"math/rand/v2"
	"sync"
	"time"

	"paygate/internal/domain"
	internalRedis "paygate/internal/redis"
	"paygate/internal/repository"
)

// SimulationConfig controls the simulated bank authorization.
type SimulationConfig struct {
	// TestMode replaces the random delay and outcome with FixedDelay and FixedSuccess.
	TestMode     bool
	FixedDelay   time.Duration
	FixedSuccess bool

	// Live mode draws the delay uniformly from [MinDelay, MaxDelay).
	MinDelay        time.Duration
	MaxDelay        time.Duration
	UPISuccessRate  float64
	CardSuccessRate float64

	// Source drives the live-mode draws. Nil means a randomly seeded source.
	Source rand.Source
}

// DefaultSimulationConfig returns the live-mode simulation settings.
func DefaultSimulationConfig() SimulationConfig {
	return SimulationConfig{
		FixedDelay:      time.Second,
		FixedSuccess:    true,
		MinDelay:        5 * time.Second,
		MaxDelay:        10 * time.Second,
		UPISuccessRate:  0.90,
		CardSuccessRate: 0.95,
	}
}

// Decision is the simulated bank response, fixed when the authorization begins.
type Decision struct {
	Delay   time.Duration
	Approve bool
}

// PendingAuthorization is a scheduled authorization. It completes exactly once,
// either when its timer fires or when the authorizer shuts down.
type PendingAuthorization struct {
	PaymentID string
	Decision  Decision
	Deadline  time.Time

	payment domain.Payment
	ctx     context.Context
	timer   *time.Timer
	tracked bool
	once    sync.Once
	done    chan struct{}

	status      domain.PaymentStatus
	completedAt time.Time
	err         error
}

// Done is closed once the terminal status has been written (or failed to be).
func (p *PendingAuthorization) Done() <-chan struct{} {
	return p.done
}

// Result returns the outcome. Only valid after Done is closed.
func (p *PendingAuthorization) Result() (domain.PaymentStatus, time.Time, error) {
	return p.status, p.completedAt, p.err
}

// Authorizer simulates the acquiring bank. Each authorization is a timer, so
// waiting payments hold no goroutine.
type Authorizer struct {
	paymentRepo repository.PaymentRepository
	cache       internalRedis.CacheStoreInterface
	notifier    *NotificationService
	cfg         SimulationConfig
	now         func() time.Time

	mu      sync.Mutex
	rng     *rand.Rand
	pending map[string]*PendingAuthorization
	closing bool
	wg      sync.WaitGroup
}

// NewAuthorizer creates a new Authorizer. cache and notifier may be nil.
func NewAuthorizer(
	paymentRepo repository.PaymentRepository,
	cache internalRedis.CacheStoreInterface,
	notifier *NotificationService,
	cfg SimulationConfig,
) *Authorizer {
	src := cfg.Source
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}

	return &Authorizer{
		paymentRepo: paymentRepo,
		cache:       cache,
		notifier:    notifier,
		cfg:         cfg,
		now:         time.Now,
		rng:         rand.New(src),
		pending:     make(map[string]*PendingAuthorization),
	}
}

// Decide draws the delay and outcome for a payment method.
func (a *Authorizer) Decide(method domain.PaymentMethod) Decision {
	if a.cfg.TestMode {
		return Decision{Delay: a.cfg.FixedDelay, Approve: a.cfg.FixedSuccess}
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	delay := a.cfg.MinDelay
	if spanMs := int64((a.cfg.MaxDelay - a.cfg.MinDelay) / time.Millisecond); spanMs > 0 {
		delay += time.Duration(a.rng.Int64N(spanMs)) * time.Millisecond
	}

	rate := a.cfg.CardSuccessRate
	if method == domain.PaymentMethodUPI {
		rate = a.cfg.UPISuccessRate
	}

	return Decision{Delay: delay, Approve: a.rng.Float64() < rate}
}

// Begin schedules the authorization of a payment already stored as processing.
// The authorization outlives ctx: cancellation only detaches the caller.
// After Shutdown has started, the payment is finalized before Begin returns.
func (a *Authorizer) Begin(ctx context.Context, payment *domain.Payment) *PendingAuthorization {
	decision := a.Decide(payment.Method)

	p := &PendingAuthorization{
		PaymentID: payment.ID,
		Decision:  decision,
		payment:   *payment,
		ctx:       context.WithoutCancel(ctx),
		done:      make(chan struct{}),
	}

	a.mu.Lock()
	if a.closing {
		a.mu.Unlock()
		// Shutdown may already be waiting on wg, so this one is not tracked.
		p.Deadline = a.now()
		a.Complete(p)
		return p
	}
	p.Deadline = a.now().Add(decision.Delay)
	p.tracked = true
	a.pending[payment.ID] = p
	a.wg.Add(1)
	p.timer = time.AfterFunc(decision.Delay, func() { a.Complete(p) })
	a.mu.Unlock()

	return p
}

// Complete writes the terminal status of p. It is safe to call more than once
// and from several goroutines; the write happens once.
func (a *Authorizer) Complete(p *PendingAuthorization) (domain.PaymentStatus, error) {
	p.once.Do(func() { a.finalize(p) })
	<-p.done
	return p.status, p.err
}

func (a *Authorizer) finalize(p *PendingAuthorization) {
	if p.tracked {
		defer a.wg.Done()
	}
	defer close(p.done)

	if p.tracked {
		a.mu.Lock()
		p.timer.Stop()
		delete(a.pending, p.PaymentID)
		a.mu.Unlock()
	}

	status := domain.PaymentStatusFailed
	if p.Decision.Approve {
		status = domain.PaymentStatusSuccess
	}
	completedAt := a.now().UTC()

	if err := a.paymentRepo.UpdateStatus(p.ctx, p.PaymentID, status, completedAt); err != nil {
		log.Printf("[AUTHORIZER] failed to finalize payment %s: %v", p.PaymentID, err)
		p.err = fmt.Errorf("failed to finalize payment %s: %w", p.PaymentID, err)
		if a.cache != nil {
			_ = a.cache.InvalidatePayment(p.ctx, p.PaymentID)
		}
		return
	}

	p.status = status
	p.completedAt = completedAt

	payment := p.payment
	payment.Status = status
	payment.UpdatedAt = completedAt

	if a.cache != nil {
		if err := a.cache.SetPayment(p.ctx, internalRedis.NewCachedPayment(payment.Public())); err != nil {
			log.Printf("[AUTHORIZER] failed to cache payment %s: %v", payment.ID, err)
		}
	}

	if a.notifier != nil {
		_ = a.notifier.NotifyPaymentFinalized(p.ctx, &payment)
	}

	log.Printf("[AUTHORIZER] payment %s finalized as %s after %s", payment.ID, status, p.Decision.Delay)
}

// Await blocks until p completes or ctx is done. In the latter case the
// authorization keeps running and the row is still finalized.
func (a *Authorizer) Await(ctx context.Context, p *PendingAuthorization) (domain.PaymentStatus, time.Time, error) {
	select {
	case <-p.Done():
		return p.Result()
	case <-ctx.Done():
		return "", time.Time{}, ctx.Err()
	}
}

// Pending returns the number of authorizations not yet completed.
func (a *Authorizer) Pending() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.pending)
}

// Shutdown completes every pending authorization immediately and waits for
// all of them to be written, or for ctx to expire. Authorizations begun after
// Shutdown are finalized synchronously by Begin.
func (a *Authorizer) Shutdown(ctx context.Context) error {
	a.mu.Lock()
	a.closing = true
	pending := make([]*PendingAuthorization, 0, len(a.pending))
	for _, p := range a.pending {
		pending = append(pending, p)
	}
	a.mu.Unlock()

	for _, p := range pending {
		go a.Complete(p)
	}

	done := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
