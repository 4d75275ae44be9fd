package cache

import (
	"go.uber.org/zap"

	"github.com/wms/backend/internal/domain/shared"
	"github.com/wms/backend/internal/infrastructure/config"
)

// NewIdempotencyStore picks the store implementation based on configuration.
// Redis is used when enabled and reachable; otherwise the in-memory store
// serves single-instance deployments.
func NewIdempotencyStore(cfg *config.Config, logger *zap.Logger) shared.IdempotencyStore {
	if cfg.Redis.Enabled {
		store, err := NewRedisIdempotencyStore(cfg.Redis)
		if err == nil {
			logger.Info("Using Redis idempotency store",
				zap.String("host", cfg.Redis.Host),
				zap.Int("port", cfg.Redis.Port))
			return store
		}
		logger.Warn("Redis unavailable, falling back to in-memory idempotency store",
			zap.Error(err))
	}

	logger.Info("Using in-memory idempotency store")
	return NewInMemoryIdempotencyStore()
}
