package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/raw2ready/backend/internal/pkg/response"
)

const rateLimitWindow = time.Second

var rateLimitNow = time.Now

// RateLimit caps each client IP at limit requests per one-second window.
// Redis failures let the request through.
func RateLimit(rdb *redis.Client, limit int) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if ip == "" || limit <= 0 {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		windowKey := rateLimitNow().Unix()
		key := fmt.Sprintf("raw2ready:rate_limit:%s:%d", ip, windowKey)

		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			c.Next()
			return
		}

		if count == 1 {
			rdb.PExpire(ctx, key, rateLimitWindow+time.Second)
		}

		if count > int64(limit) {
			c.Header("Retry-After", "1")
			response.TooManyRequests(c)
			return
		}

		c.Next()
	}
}
