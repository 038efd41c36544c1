package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"paygate/internal/domain"
	"paygate/internal/repository"
)

// Seeded test merchant used by automated evaluation.
const (
	TestMerchantName      = "Test Merchant"
	TestMerchantEmail     = "test@example.com"
	TestMerchantAPIKey    = "key_test_abc123"
	TestMerchantAPISecret = "secret_test_xyz789"
)

// TestMerchantID is the fixed id of the seeded test merchant.
var TestMerchantID = uuid.MustParse("550e8400-e29b-41d4-a716-446655440000")

// MerchantService handles merchant credentials.
type MerchantService struct {
	merchantRepo repository.MerchantRepository
	hashCost     int
}

// NewMerchantService creates a new MerchantService. hashCost is the bcrypt
// cost used when seeding; zero means bcrypt.DefaultCost.
func NewMerchantService(merchantRepo repository.MerchantRepository, hashCost int) *MerchantService {
	if hashCost == 0 {
		hashCost = bcrypt.DefaultCost
	}
	return &MerchantService{
		merchantRepo: merchantRepo,
		hashCost:     hashCost,
	}
}

// Authenticate resolves the merchant owning an API key/secret pair.
func (s *MerchantService) Authenticate(ctx context.Context, apiKey, apiSecret string) (*domain.Merchant, error) {
	if apiKey == "" || apiSecret == "" {
		return nil, ErrAuthentication
	}

	merchant, err := s.merchantRepo.GetByAPIKey(ctx, apiKey)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAuthentication
		}
		return nil, fmt.Errorf("failed to get merchant: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(merchant.APISecretHash), []byte(apiSecret)); err != nil {
		return nil, ErrAuthentication
	}

	return merchant, nil
}

// SeedTestMerchant creates the test merchant unless it already exists.
// Returns true when a merchant was created.
func (s *MerchantService) SeedTestMerchant(ctx context.Context) (bool, error) {
	_, err := s.merchantRepo.GetByEmail(ctx, TestMerchantEmail)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return false, fmt.Errorf("failed to look up test merchant: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(TestMerchantAPISecret), s.hashCost)
	if err != nil {
		return false, fmt.Errorf("failed to hash test merchant secret: %w", err)
	}

	merchant := &domain.Merchant{
		ID:            TestMerchantID.String(),
		Name:          TestMerchantName,
		Email:         TestMerchantEmail,
		APIKey:        TestMerchantAPIKey,
		APISecretHash: string(hash),
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.merchantRepo.Create(ctx, merchant); err != nil {
		// Another instance seeded concurrently.
		if errors.Is(err, repository.ErrAlreadyExists) {
			return false, nil
		}
		return false, fmt.Errorf("failed to create test merchant: %w", err)
	}

	log.Printf("[MERCHANT] seeded test merchant %s", merchant.ID)
	return true, nil
}

// GetTestMerchant returns the seeded test merchant.
func (s *MerchantService) GetTestMerchant(ctx context.Context) (*domain.Merchant, error) {
	merchant, err := s.merchantRepo.GetByEmail(ctx, TestMerchantEmail)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTestMerchantNotFound
		}
		return nil, fmt.Errorf("failed to get test merchant: %w", err)
	}
	return merchant, nil
}
