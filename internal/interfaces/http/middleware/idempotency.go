package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/wms/backend/internal/domain/shared"
	"github.com/wms/backend/internal/interfaces/http/dto"
)

// IdempotencyHeader is the request header carrying the client's idempotency key
const IdempotencyHeader = "Idempotency-Key"

// IdempotencyConfig configures the idempotency middleware
type IdempotencyConfig struct {
	Store shared.IdempotencyStore
	// TTL bounds how long a processed key blocks replays
	TTL    time.Duration
	Logger *zap.Logger
}

// Idempotency returns a middleware that rejects replayed mutating requests.
// Clients opt in by sending an Idempotency-Key header on POST/PUT/PATCH/DELETE;
// a second request with the same key gets 409 DUPLICATE_REQUEST. When the
// store is unreachable the request proceeds, trading duplicate protection
// for availability.
func Idempotency(cfg IdempotencyConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		key := c.GetHeader(IdempotencyHeader)
		if key == "" {
			c.Next()
			return
		}

		first, err := cfg.Store.MarkProcessed(c.Request.Context(), key, cfg.TTL)
		if err != nil {
			if cfg.Logger != nil {
				cfg.Logger.Warn("idempotency store unavailable, allowing request",
					zap.String("key", key),
					zap.Error(err),
				)
			}
			c.Next()
			return
		}
		if !first {
			requestID := c.GetString("request_id")
			c.AbortWithStatusJSON(http.StatusConflict,
				dto.NewErrorResponseWithRequestID(dto.ErrCodeDuplicateRequest,
					"A request with this idempotency key was already processed", requestID))
			return
		}

		c.Next()
	}
}
