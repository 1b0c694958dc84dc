package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	redisclient "github.com/stembot/stembot-backend/internal/clients/redis"
	"github.com/stembot/stembot-backend/internal/pkg/logger"
	"github.com/stembot/stembot-backend/internal/requestdata"
)

type RateLimitMiddleware struct {
	log     *logger.Logger
	limiter redisclient.RateLimiter
}

func NewRateLimitMiddleware(baseLog *logger.Logger, limiter redisclient.RateLimiter) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		log:     baseLog.With("middleware", "RateLimitMiddleware"),
		limiter: limiter,
	}
}

// Limit throttles by user when authenticated, by client IP otherwise. A
// limiter failure allows the request; rate limiting is protection, not a
// dependency.
func (rl *RateLimitMiddleware) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		if rd := requestdata.GetRequestData(c.Request.Context()); rd != nil && rd.UserID != uuid.Nil {
			key = "user:" + rd.UserID.String()
		}

		allowed, err := rl.limiter.TryAcquire(c.Request.Context(), key)
		if err != nil {
			rl.log.Warn("Rate limiter unavailable, allowing request", "key", key, "error", err.Error())
			c.Next()
			return
		}
		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": gin.H{"message": "too many requests, slow down", "code": "rate_limited"},
			})
			return
		}
		c.Next()
	}
}
