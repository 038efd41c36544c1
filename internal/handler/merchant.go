package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"paygate/internal/service"
)

// TestMerchantHandler exposes the seeded test merchant for automated checks.
type TestMerchantHandler struct {
	merchantService *service.MerchantService
}

// NewTestMerchantHandler creates a new TestMerchantHandler.
func NewTestMerchantHandler(merchantService *service.MerchantService) *TestMerchantHandler {
	return &TestMerchantHandler{merchantService: merchantService}
}

// TestMerchantResponse is the HTTP response for the test merchant lookup.
type TestMerchantResponse struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	APIKey string `json:"api_key"`
	Seeded bool   `json:"seeded"`
}

// GetTestMerchant handles GET /api/v1/test/merchant
func (h *TestMerchantHandler) GetTestMerchant(c *gin.Context) {
	merchant, err := h.merchantService.GetTestMerchant(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, TestMerchantResponse{
		ID:     merchant.ID,
		Email:  merchant.Email,
		APIKey: merchant.APIKey,
		Seeded: true,
	})
}
