package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"paygate/internal/domain"
	"paygate/internal/middleware"
	"paygate/internal/service"
)

// PaymentHandler handles HTTP requests for payments.
type PaymentHandler struct {
	paymentService *service.PaymentService
	queryService   *service.QueryService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentService *service.PaymentService, queryService *service.QueryService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		queryService:   queryService,
	}
}

// flexString decodes a JSON string or number into its text form. Checkout
// forms send expiry fields either way.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

// CardRequest is the card payload of a payment request.
type CardRequest struct {
	Number      string     `json:"number"`
	ExpiryMonth flexString `json:"expiry_month"`
	ExpiryYear  flexString `json:"expiry_year"`
	CVV         flexString `json:"cvv"`
	HolderName  string     `json:"holder_name" binding:"max=255"`
}

// CreatePaymentRequest is the HTTP request body for submitting a payment.
type CreatePaymentRequest struct {
	OrderID string       `json:"order_id"`
	Method  string       `json:"method"`
	VPA     string       `json:"vpa"`
	Card    *CardRequest `json:"card"`
}

// PaymentResponse is the merchant view of a payment.
type PaymentResponse struct {
	ID          string    `json:"id"`
	OrderID     string    `json:"order_id"`
	MerchantID  string    `json:"merchant_id"`
	Amount      int64     `json:"amount"`
	Currency    string    `json:"currency"`
	Method      string    `json:"method"`
	VPA         string    `json:"vpa,omitempty"`
	CardNetwork string    `json:"card_network,omitempty"`
	CardLast4   string    `json:"card_last4,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PublicPaymentResponse is the checkout view of a payment.
type PublicPaymentResponse struct {
	ID        string    `json:"id"`
	OrderID   string    `json:"order_id"`
	Amount    int64     `json:"amount"`
	Currency  string    `json:"currency"`
	Method    string    `json:"method"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PaymentStatsResponse is the merchant dashboard summary.
type PaymentStatsResponse struct {
	TotalTransactions      int   `json:"total_transactions"`
	SuccessfulTransactions int   `json:"successful_transactions"`
	TotalAmount            int64 `json:"total_amount"`
	SuccessRate            int   `json:"success_rate"`
}

// CreatePayment handles POST /api/v1/payments
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	h.submit(c, middleware.MerchantFromContext(c).ID)
}

// CreatePaymentPublic handles POST /api/v1/payments/public
func (h *PaymentHandler) CreatePaymentPublic(c *gin.Context) {
	h.submit(c, "")
}

func (h *PaymentHandler) submit(c *gin.Context, merchantID string) {
	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	submit := service.SubmitPaymentRequest{
		OrderID:    req.OrderID,
		Method:     domain.PaymentMethod(req.Method),
		VPA:        req.VPA,
		MerchantID: merchantID,
	}
	if req.Card != nil {
		submit.Card = &service.CardDetails{
			Number:      req.Card.Number,
			ExpiryMonth: string(req.Card.ExpiryMonth),
			ExpiryYear:  string(req.Card.ExpiryYear),
			CVV:         string(req.Card.CVV),
			HolderName:  req.Card.HolderName,
		}
	}

	payment, err := h.paymentService.SubmitPayment(c.Request.Context(), submit)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toPaymentResponse(payment))
}

// ListPayments handles GET /api/v1/payments
func (h *PaymentHandler) ListPayments(c *gin.Context) {
	payments, err := h.queryService.ListPayments(c.Request.Context(), middleware.MerchantFromContext(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]PaymentResponse, 0, len(payments))
	for _, p := range payments {
		resp = append(resp, toPaymentResponse(p))
	}

	respondJSON(c, http.StatusOK, resp)
}

// GetStats handles GET /api/v1/payments/stats
func (h *PaymentHandler) GetStats(c *gin.Context) {
	stats, err := h.queryService.PaymentStats(c.Request.Context(), middleware.MerchantFromContext(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, PaymentStatsResponse{
		TotalTransactions:      stats.TotalTransactions,
		SuccessfulTransactions: stats.SuccessfulTransactions,
		TotalAmount:            stats.TotalAmount,
		SuccessRate:            stats.SuccessRate,
	})
}

// GetPayment handles GET /api/v1/payments/:payment_id
func (h *PaymentHandler) GetPayment(c *gin.Context) {
	payment, err := h.queryService.GetPayment(c.Request.Context(), c.Param("payment_id"), middleware.MerchantFromContext(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toPaymentResponse(payment))
}

// GetPaymentPublic handles GET /api/v1/payments/:payment_id/public
func (h *PaymentHandler) GetPaymentPublic(c *gin.Context) {
	payment, err := h.queryService.GetPaymentPublic(c.Request.Context(), c.Param("payment_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, PublicPaymentResponse{
		ID:        payment.ID,
		OrderID:   payment.OrderID,
		Amount:    payment.Amount,
		Currency:  payment.Currency,
		Method:    string(payment.Method),
		Status:    string(payment.Status),
		CreatedAt: payment.CreatedAt,
		UpdatedAt: payment.UpdatedAt,
	})
}

func toPaymentResponse(payment *domain.Payment) PaymentResponse {
	return PaymentResponse{
		ID:          payment.ID,
		OrderID:     payment.OrderID,
		MerchantID:  payment.MerchantID,
		Amount:      payment.Amount,
		Currency:    payment.Currency,
		Method:      string(payment.Method),
		VPA:         payment.VPA,
		CardNetwork: string(payment.CardNetwork),
		CardLast4:   payment.CardLast4,
		Status:      string(payment.Status),
		CreatedAt:   payment.CreatedAt,
		UpdatedAt:   payment.UpdatedAt,
	}
}
