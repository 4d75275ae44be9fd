package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/wms/backend/internal/infrastructure/auth"
	"github.com/wms/backend/internal/infrastructure/logger"
	"github.com/wms/backend/internal/interfaces/http/dto"
)

// Context keys for JWT claims
const (
	ContextKeyUserID   = "jwt_user_id"
	ContextKeyUsername = "jwt_username"
	ContextKeyClaims   = "jwt_claims"
)

// JWTMiddlewareConfig configures the JWT authentication middleware
type JWTMiddlewareConfig struct {
	JWTService *auth.JWTService
	// SkipPaths lists exact paths that bypass authentication
	SkipPaths []string
	// SkipPathPrefixes lists path prefixes that bypass authentication
	SkipPathPrefixes []string
	Logger           *zap.Logger
}

// JWTAuthMiddleware returns a middleware that validates Bearer tokens
func JWTAuthMiddleware(jwtService *auth.JWTService, logger *zap.Logger) gin.HandlerFunc {
	return JWTAuthMiddlewareWithConfig(JWTMiddlewareConfig{
		JWTService: jwtService,
		Logger:     logger,
	})
}

// JWTAuthMiddlewareWithConfig returns a JWT middleware with custom configuration
func JWTAuthMiddlewareWithConfig(cfg JWTMiddlewareConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path

		for _, skip := range cfg.SkipPaths {
			if path == skip {
				c.Next()
				return
			}
		}
		for _, prefix := range cfg.SkipPathPrefixes {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, dto.ErrCodeUnauthorized, "Authorization header required")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortUnauthorized(c, dto.ErrCodeUnauthorized, "Authorization header must be a Bearer token")
			return
		}

		claims, err := cfg.JWTService.ValidateToken(parts[1])
		if err != nil {
			if cfg.Logger != nil {
				cfg.Logger.Debug("token validation failed",
					zap.String("path", path),
					zap.Error(err),
				)
			}
			handleAuthError(c, err)
			return
		}

		c.Set(ContextKeyUserID, claims.UserID)
		c.Set(ContextKeyUsername, claims.Username)
		c.Set(ContextKeyClaims, claims)

		// Propagate the authenticated user into the request context so
		// services and the SQL logger can attribute their log lines.
		ctx := c.Request.Context()
		ctx, _ = logger.WithUserID(ctx, logger.FromContext(ctx), claims.UserID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// handleAuthError maps token validation errors to API error codes
func handleAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		abortUnauthorized(c, dto.ErrCodeTokenExpired, "Token has expired")
	case errors.Is(err, auth.ErrTokenNotYetValid):
		abortUnauthorized(c, dto.ErrCodeTokenInvalid, "Token not yet valid")
	case errors.Is(err, auth.ErrInvalidClaims), errors.Is(err, auth.ErrMissingUserID):
		abortUnauthorized(c, dto.ErrCodeTokenInvalid, "Token claims are invalid")
	case errors.Is(err, auth.ErrInvalidToken):
		abortUnauthorized(c, dto.ErrCodeTokenInvalid, "Invalid token")
	default:
		abortUnauthorized(c, dto.ErrCodeUnauthorized, "Authentication failed")
	}
}

func abortUnauthorized(c *gin.Context, code, message string) {
	requestID := c.GetString("request_id")
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewErrorResponseWithRequestID(code, message, requestID))
}

// GetJWTUserID returns the authenticated user's ID from the context,
// or an empty string when the request was not authenticated
func GetJWTUserID(c *gin.Context) string {
	return c.GetString(ContextKeyUserID)
}

// GetJWTUsername returns the authenticated user's name from the context
func GetJWTUsername(c *gin.Context) string {
	return c.GetString(ContextKeyUsername)
}

// GetJWTClaims returns the full token claims from the context
func GetJWTClaims(c *gin.Context) (*auth.Claims, bool) {
	v, ok := c.Get(ContextKeyClaims)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}
