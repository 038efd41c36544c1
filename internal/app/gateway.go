package app

import (
	"database/sql"

	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"paygate/internal/handler"
	internalRedis "paygate/internal/redis"
	"paygate/internal/service"
)

// GatewayDeps contains the infrastructure the gateway is built on.
type GatewayDeps struct {
	DB          *sql.DB       // nil selects in-memory storage
	RedisClient *redis.Client // nil disables caching and idempotency keys
	NewRelicApp *newrelic.Application
	Simulation  service.SimulationConfig
	BcryptCost  int
	Sender      service.Sender // nil logs notifications
}

// Gateway is a fully wired payment gateway.
type Gateway struct {
	Router     *gin.Engine
	Authorizer *service.Authorizer
	Merchants  *service.MerchantService
}

// NewGateway wires repositories, services and handlers.
func NewGateway(deps GatewayDeps) *Gateway {
	// Interfaces stay nil unless Redis is configured.
	var (
		cacheStore  internalRedis.CacheStoreInterface
		lockStore   internalRedis.LockStoreInterface
		redisPinger handler.RedisPinger
		dbPinger    handler.DBPinger
	)
	if deps.RedisClient != nil {
		cacheStore = internalRedis.NewCacheStore(deps.RedisClient)
		lockStore = internalRedis.NewLockStore(deps.RedisClient)
		redisPinger = deps.RedisClient
	}
	if deps.DB != nil {
		dbPinger = deps.DB
	}

	repos := NewRepositories(deps.DB)

	// Initialize services.
	notificationService := service.NewNotificationService(deps.Sender)
	merchantService := service.NewMerchantService(repos.Merchants, deps.BcryptCost)
	orderService := service.NewOrderService(repos.Orders, cacheStore, notificationService)
	authorizer := service.NewAuthorizer(repos.Payments, cacheStore, notificationService, deps.Simulation)
	paymentService := service.NewPaymentService(repos.Orders, repos.Payments, authorizer, cacheStore, notificationService)
	queryService := service.NewQueryService(repos.Payments, cacheStore)

	router := NewRouter(RouterDeps{
		OrderHandler:        handler.NewOrderHandler(orderService),
		PaymentHandler:      handler.NewPaymentHandler(paymentService, queryService),
		TestMerchantHandler: handler.NewTestMerchantHandler(merchantService),
		HealthHandler:       handler.NewHealthHandler(dbPinger, redisPinger),
		Authenticator:       merchantService,
		IdempotencyStore:    lockStore,
		NewRelicApp:         deps.NewRelicApp,
	})

	return &Gateway{
		Router:     router,
		Authorizer: authorizer,
		Merchants:  merchantService,
	}
}
