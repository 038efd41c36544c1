package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"

	"paygate/internal/handler"
	"paygate/internal/middleware"
	internalRedis "paygate/internal/redis"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	OrderHandler        *handler.OrderHandler
	PaymentHandler      *handler.PaymentHandler
	TestMerchantHandler *handler.TestMerchantHandler
	HealthHandler       *handler.HealthHandler
	Authenticator       middleware.Authenticator
	IdempotencyStore    internalRedis.LockStoreInterface // nil disables idempotency keys
	NewRelicApp         *newrelic.Application
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.CORSMiddleware())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	// Health check.
	router.GET("/health", deps.HealthHandler.Health)

	auth := middleware.MerchantAuth(deps.Authenticator)
	idempotent := middleware.IdempotencyMiddleware(deps.IdempotencyStore)

	// API v1 routes.
	v1 := router.Group("/api/v1")
	{
		// Order routes.
		orders := v1.Group("/orders")
		{
			orders.POST("", auth, idempotent, deps.OrderHandler.CreateOrder)
			orders.GET("/:order_id", auth, deps.OrderHandler.GetOrder)
			orders.GET("/:order_id/public", deps.OrderHandler.GetOrderPublic)
		}

		// Payment routes.
		payments := v1.Group("/payments")
		{
			payments.POST("", auth, idempotent, deps.PaymentHandler.CreatePayment)
			payments.POST("/public", deps.PaymentHandler.CreatePaymentPublic)
			payments.GET("", auth, deps.PaymentHandler.ListPayments)
			payments.GET("/stats", auth, deps.PaymentHandler.GetStats)
			payments.GET("/:payment_id", auth, deps.PaymentHandler.GetPayment)
			payments.GET("/:payment_id/public", deps.PaymentHandler.GetPaymentPublic)
		}

		// Evaluation routes.
		v1.GET("/test/merchant", deps.TestMerchantHandler.GetTestMerchant)
	}

	return router
}
