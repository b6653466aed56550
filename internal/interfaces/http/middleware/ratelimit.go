package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"subplane/internal/infrastructure/ratelimit"
	"subplane/internal/shared/logger"
	"subplane/internal/shared/utils"
)

// RateLimit throttles a route per caller. Authenticated requests are keyed
// by user id, anonymous ones by client IP. The limiter is advisory: a
// limiter error lets the request through rather than blocking traffic on a
// redis hiccup.
func RateLimit(limiter ratelimit.Limiter, log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		if userID := c.GetString("user_id"); userID != "" {
			key = userID
		}

		allowed, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			log.Warnw("rate limiter unavailable", "error", err)
			c.Next()
			return
		}

		if !allowed {
			utils.ErrorResponse(c, http.StatusTooManyRequests, "rate limit exceeded, please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}
