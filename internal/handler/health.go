package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const healthCheckTimeout = 2 * time.Second

// DBPinger is satisfied by *sql.DB.
type DBPinger interface {
	PingContext(ctx context.Context) error
}

// RedisPinger is satisfied by *redis.Client.
type RedisPinger interface {
	Ping(ctx context.Context) *redis.StatusCmd
}

// HealthHandler reports service and dependency health.
type HealthHandler struct {
	db    DBPinger
	redis RedisPinger
}

// NewHealthHandler creates a new HealthHandler. A nil db means in-memory
// storage; a nil redis means caching is disabled.
func NewHealthHandler(db DBPinger, redis RedisPinger) *HealthHandler {
	return &HealthHandler{db: db, redis: redis}
}

// HealthResponse is the HTTP response for the health check.
type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Redis     string `json:"redis"`
	Timestamp string `json:"timestamp"`
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	resp := HealthResponse{
		Status:    "healthy",
		Database:  "memory",
		Redis:     "disabled",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	if h.db != nil {
		resp.Database = connectionState(h.db.PingContext(ctx))
	}
	if h.redis != nil {
		resp.Redis = connectionState(h.redis.Ping(ctx).Err())
	}

	respondJSON(c, http.StatusOK, resp)
}

func connectionState(err error) string {
	if err != nil {
		return "disconnected"
	}
	return "connected"
}
