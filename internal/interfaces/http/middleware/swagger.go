package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SwaggerConfig holds configuration for Swagger endpoint protection
type SwaggerConfig struct {
	Enabled bool
	// RequireAuth gates the documentation behind JWT authentication
	RequireAuth bool
}

// SwaggerProtection returns a middleware guarding the Swagger endpoints.
// When disabled the routes answer 404 so the documentation's existence is
// not advertised in production.
func SwaggerProtection(cfg SwaggerConfig, jwtMiddleware gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !cfg.Enabled {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"error":   "not_found",
				"message": "API documentation is not available",
			})
			return
		}

		if cfg.RequireAuth && jwtMiddleware != nil {
			jwtMiddleware(c)
			if c.IsAborted() {
				return
			}
		}

		c.Next()
	}
}
