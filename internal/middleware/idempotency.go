package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	internalRedis "paygate/internal/redis"
)

const (
	idempotencyHeader = "Idempotency-Key"
	replayedHeader    = "Idempotent-Replayed"
	idempotencyTTL    = 24 * time.Hour

	// Covers the slowest simulated authorization with room to spare.
	idempotencyLockTTL = time.Minute

	// CodeIdempotencyConflict is returned while a request with the same key is in flight.
	CodeIdempotencyConflict = "IDEMPOTENCY_CONFLICT"
)

// cachedResponse stores the response for idempotent requests.
type cachedResponse struct {
	StatusCode int             `json:"status_code"`
	Body       json.RawMessage `json:"body"`
	Headers    http.Header     `json:"headers"`
}

// responseWriter wraps gin.ResponseWriter to capture the response.
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *responseWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// IdempotencyMiddleware replays the stored response of a POST carrying an
// Idempotency-Key already seen for the same merchant and route, and rejects a
// duplicate that arrives while the first is still running. It must run after
// MerchantAuth; requests without an authenticated merchant pass through.
// A nil store disables the middleware.
func IdempotencyMiddleware(store internalRedis.LockStoreInterface) gin.HandlerFunc {
	return func(c *gin.Context) {
		if store == nil || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		key := c.GetHeader(idempotencyHeader)
		merchantID := MerchantFromContext(c).ID
		if key == "" || merchantID == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		scopedKey := merchantID + ":" + c.FullPath() + ":" + key

		cached, err := getCachedResponse(ctx, store, scopedKey)
		if err != nil {
			// Redis error - proceed without idempotency.
			log.Printf("[IDEMPOTENCY] lookup failed for key %q: %v", key, err)
			c.Next()
			return
		}

		if cached != nil {
			for k, v := range cached.Headers {
				for _, val := range v {
					c.Header(k, val)
				}
			}
			c.Header(replayedHeader, "true")
			c.Data(cached.StatusCode, "application/json", cached.Body)
			c.Abort()
			return
		}

		acquired, err := store.AcquireIdempotencyLock(ctx, scopedKey, idempotencyLockTTL)
		if err != nil {
			log.Printf("[IDEMPOTENCY] lock failed for key %q: %v", key, err)
			c.Next()
			return
		}
		if !acquired {
			abortWithError(c, http.StatusConflict, CodeIdempotencyConflict,
				"A request with this Idempotency-Key is already being processed")
			return
		}
		defer func() {
			if err := store.ReleaseIdempotencyLock(context.WithoutCancel(ctx), scopedKey); err != nil {
				log.Printf("[IDEMPOTENCY] failed to release lock for key %q: %v", key, err)
			}
		}()

		w := &responseWriter{
			ResponseWriter: c.Writer,
			body:           &bytes.Buffer{},
		}
		c.Writer = w

		c.Next()

		if status := c.Writer.Status(); shouldStoreResponse(status) {
			response := cachedResponse{
				StatusCode: status,
				Body:       w.body.Bytes(),
				Headers:    extractResponseHeaders(c),
			}
			if err := setCachedResponse(context.WithoutCancel(ctx), store, scopedKey, &response); err != nil {
				log.Printf("[IDEMPOTENCY] failed to store response for key %q: %v", key, err)
			}
		}
	}
}

// shouldStoreResponse excludes server errors and auth failures so the client
// can retry with the same key.
func shouldStoreResponse(status int) bool {
	switch {
	case status < 200 || status >= 500:
		return false
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return false
	default:
		return true
	}
}

// getCachedResponse returns nil when no response is stored.
func getCachedResponse(ctx context.Context, store internalRedis.LockStoreInterface, key string) (*cachedResponse, error) {
	data, err := store.GetIdempotentResponse(ctx, key)
	if err != nil || data == nil {
		return nil, err
	}

	var cached cachedResponse
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, err
	}

	return &cached, nil
}

func setCachedResponse(ctx context.Context, store internalRedis.LockStoreInterface, key string, response *cachedResponse) error {
	data, err := json.Marshal(response)
	if err != nil {
		return err
	}

	return store.SetIdempotentResponse(ctx, key, data, idempotencyTTL)
}

// extractResponseHeaders extracts headers to cache.
func extractResponseHeaders(c *gin.Context) http.Header {
	headers := make(http.Header)
	// Only cache Content-Type header.
	if ct := c.Writer.Header().Get("Content-Type"); ct != "" {
		headers.Set("Content-Type", ct)
	}
	return headers
}
