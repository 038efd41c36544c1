package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"paygate/internal/domain"
	"paygate/internal/service"
)

// Merchant credential headers.
const (
	APIKeyHeader    = "X-Api-Key"
	APISecretHeader = "X-Api-Secret"
)

const merchantKey = "merchant"

// Authenticator resolves a merchant from its API credentials.
type Authenticator interface {
	Authenticate(ctx context.Context, apiKey, apiSecret string) (*domain.Merchant, error)
}

// Ensure MerchantService implements Authenticator.
var _ Authenticator = (*service.MerchantService)(nil)

// MerchantAuth rejects requests without valid merchant credentials and
// stores the merchant in the context.
func MerchantAuth(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		merchant, err := auth.Authenticate(c.Request.Context(), c.GetHeader(APIKeyHeader), c.GetHeader(APISecretHeader))
		if err != nil {
			var svcErr *service.Error
			if errors.As(err, &svcErr) {
				abortWithError(c, http.StatusUnauthorized, svcErr.Code, svcErr.Description)
				return
			}
			log.Printf("[AUTH] failed to authenticate request %s: %v", RequestID(c), err)
			_ = c.Error(err)
			abortWithError(c, http.StatusInternalServerError, service.CodeInternal, "Internal server error")
			return
		}

		c.Set(merchantKey, merchant)
		c.Next()
	}
}

// MerchantFromContext returns the merchant set by MerchantAuth. It returns an
// empty merchant on routes without authentication.
func MerchantFromContext(c *gin.Context) *domain.Merchant {
	if v, ok := c.Get(merchantKey); ok {
		if merchant, ok := v.(*domain.Merchant); ok {
			return merchant
		}
	}
	return &domain.Merchant{}
}

func abortWithError(c *gin.Context, status int, code, description string) {
	c.AbortWithStatusJSON(status, gin.H{"error": gin.H{
		"code":        code,
		"description": description,
	}})
}
