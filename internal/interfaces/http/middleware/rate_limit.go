package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/config"
)

// RateLimit implements a fixed one-minute window per client IP using Redis.
// Requests pass when Redis is unreachable.
func RateLimit(cfg *config.Config, redisClient *redis.Client, logger *logrus.Logger) gin.HandlerFunc {
	limit := cfg.Security.RateLimitPerMinute

	return func(c *gin.Context) {
		if limit <= 0 {
			c.Next()
			return
		}

		key := fmt.Sprintf("rate_limit:%s", c.ClientIP())

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		pipe := redisClient.TxPipeline()
		incr := pipe.Incr(ctx, key)
		ttlCmd := pipe.TTL(ctx, key)
		if _, err := pipe.Exec(ctx); err != nil {
			logger.WithError(err).Warn("Rate limiter unavailable")
			c.Next()
			return
		}

		// First hit of the window
		ttl := ttlCmd.Val()
		if ttl < 0 {
			ttl = time.Minute
			if err := redisClient.Expire(ctx, key, ttl).Err(); err != nil {
				logger.WithError(err).Warn("Failed to set rate limit window")
			}
		}

		current := int(incr.Val())
		reset := time.Now().Add(ttl)

		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(max(limit-current, 0)))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(reset.Unix(), 10))

		// Check if limit exceeded
		if current > limit {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "Rate limit exceeded",
				"retry_after": int(ttl.Seconds()),
			})
			return
		}

		c.Next()
	}
}
