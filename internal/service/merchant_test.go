package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"paygate/internal/repository/memory"
)

func TestSeedTestMerchant_Idempotent(t *testing.T) {
	t.Parallel()

	svc := NewMerchantService(memory.NewMerchantRepository(), bcrypt.MinCost)

	_, err := svc.GetTestMerchant(context.Background())
	assert.ErrorIs(t, err, ErrTestMerchantNotFound)

	created, err := svc.SeedTestMerchant(context.Background())
	require.NoError(t, err)
	assert.True(t, created)

	created, err = svc.SeedTestMerchant(context.Background())
	require.NoError(t, err)
	assert.False(t, created)

	merchant, err := svc.GetTestMerchant(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "550e8400-e29b-41d4-a716-446655440000", merchant.ID)
	assert.Equal(t, TestMerchantEmail, merchant.Email)
	assert.Equal(t, TestMerchantAPIKey, merchant.APIKey)
	assert.NotEqual(t, TestMerchantAPISecret, merchant.APISecretHash)
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	svc := NewMerchantService(memory.NewMerchantRepository(), bcrypt.MinCost)
	_, err := svc.SeedTestMerchant(context.Background())
	require.NoError(t, err)

	merchant, err := svc.Authenticate(context.Background(), TestMerchantAPIKey, TestMerchantAPISecret)
	require.NoError(t, err)
	assert.Equal(t, TestMerchantID.String(), merchant.ID)

	testCases := []struct {
		name   string
		key    string
		secret string
	}{
		{"wrong secret", TestMerchantAPIKey, "secret_wrong"},
		{"unknown key", "key_unknown", TestMerchantAPISecret},
		{"missing key", "", TestMerchantAPISecret},
		{"missing secret", TestMerchantAPIKey, ""},
	}
	for _, tc := range testCases {
		_, err := svc.Authenticate(context.Background(), tc.key, tc.secret)
		assert.ErrorIs(t, err, ErrAuthentication, tc.name)
	}
}
