package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/raw2ready/backend/internal/modules/processing/provider"
)

// Pinger is satisfied by the Redis client.
type Pinger interface {
	Ping(ctx context.Context) error
}

const pingTimeout = 2 * time.Second

// RegisterRoutes mounts GET /health. A nil cache skips the Redis check.
func RegisterRoutes(rg *gin.RouterGroup, creds provider.Credentials, cache Pinger) {
	rg.GET("/health", func(c *gin.Context) {
		body := gin.H{
			"status":    "ok",
			"providers": creds.Configured(),
		}
		code := http.StatusOK

		if cache != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), pingTimeout)
			defer cancel()
			cacheOK := cache.Ping(ctx) == nil
			body["redis"] = cacheOK
			if !cacheOK {
				body["status"] = "degraded"
				code = http.StatusServiceUnavailable
			}
		}

		c.JSON(code, body)
	})
}
