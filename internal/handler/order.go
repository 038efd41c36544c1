package handler

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"paygate/internal/domain"
	"paygate/internal/middleware"
	"paygate/internal/service"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	orderService *service.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// CreateOrderRequest is the HTTP request body for creating an order.
// Amount is kept raw so that missing, string and fractional values are all
// rejected the same way.
type CreateOrderRequest struct {
	Amount   json.RawMessage   `json:"amount"`
	Currency string            `json:"currency" binding:"omitempty,len=3,alpha"`
	Receipt  string            `json:"receipt" binding:"max=255"`
	Notes    map[string]string `json:"notes"`
}

// OrderResponse is the merchant view of an order.
type OrderResponse struct {
	ID         string            `json:"id"`
	MerchantID string            `json:"merchant_id"`
	Amount     int64             `json:"amount"`
	Currency   string            `json:"currency"`
	Receipt    *string           `json:"receipt"`
	Notes      map[string]string `json:"notes"`
	Status     string            `json:"status"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// PublicOrderResponse is the checkout view of an order.
type PublicOrderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
}

// CreateOrder handles POST /api/v1/orders
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	amount, ok := parseAmount(req.Amount)
	if !ok {
		respondError(c, service.ErrInvalidAmount)
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), service.CreateOrderRequest{
		MerchantID: middleware.MerchantFromContext(c).ID,
		Amount:     amount,
		Currency:   req.Currency,
		Receipt:    req.Receipt,
		Notes:      req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toOrderResponse(order))
}

// GetOrder handles GET /api/v1/orders/:order_id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	order, err := h.orderService.GetOrder(c.Request.Context(), c.Param("order_id"), middleware.MerchantFromContext(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toOrderResponse(order))
}

// GetOrderPublic handles GET /api/v1/orders/:order_id/public
func (h *OrderHandler) GetOrderPublic(c *gin.Context) {
	order, err := h.orderService.GetOrderPublic(c.Request.Context(), c.Param("order_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, PublicOrderResponse{
		ID:       order.ID,
		Amount:   order.Amount,
		Currency: order.Currency,
		Status:   string(order.Status),
	})
}

func toOrderResponse(order *domain.Order) OrderResponse {
	resp := OrderResponse{
		ID:         order.ID,
		MerchantID: order.MerchantID,
		Amount:     order.Amount,
		Currency:   order.Currency,
		Notes:      order.Notes,
		Status:     string(order.Status),
		CreatedAt:  order.CreatedAt,
		UpdatedAt:  order.UpdatedAt,
	}
	if order.Receipt != "" {
		receipt := order.Receipt
		resp.Receipt = &receipt
	}
	if resp.Notes == nil {
		resp.Notes = map[string]string{}
	}
	return resp
}

// parseAmount accepts a JSON number with no fractional part. 500.0 is
// accepted as 500; "500", 500.5 and null are not.
func parseAmount(raw json.RawMessage) (int64, bool) {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" || strings.HasPrefix(s, `"`) {
		return 0, false
	}

	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, true
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || math.Abs(f) > 1<<53 {
		return 0, false
	}
	return int64(f), true
}

// respondBindError reports a body that could not be decoded or failed its
// binding tags.
func respondBindError(c *gin.Context, err error) {
	if desc, ok := describeValidationError(err); ok {
		respondBadRequest(c, service.CodeBadRequest, desc)
		return
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		respondBadRequest(c, service.CodeBadRequest, typeErr.Field+" has an invalid type")
		return
	}

	respondError(c, service.ErrInvalidRequest)
}
