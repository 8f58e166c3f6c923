package middleware

import (
	"context"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dreamlog-app/dreamlog/internal/shared/constants"
	"github.com/dreamlog-app/dreamlog/internal/shared/errors"
	"github.com/dreamlog-app/dreamlog/internal/shared/logger"
	"github.com/dreamlog-app/dreamlog/internal/shared/utils"
)

type requestLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// RateLimiter bounds one route group per client. Authenticated requests are keyed by
// user id, anonymous ones by client IP.
type RateLimiter struct {
	limiter requestLimiter
	scope   string
	limit   int
	window  time.Duration
	logger  logger.Interface
}

func NewRateLimiter(limiter requestLimiter, scope string, limit int, window time.Duration, logger logger.Interface) *RateLimiter {
	return &RateLimiter{
		limiter: limiter,
		scope:   scope,
		limit:   limit,
		window:  window,
		logger:  logger,
	}
}

func (rl *RateLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.limiter == nil || rl.limit <= 0 {
			c.Next()
			return
		}

		subject := "ip:" + c.ClientIP()
		if userID := c.GetString(constants.ContextKeyUserID); userID != "" {
			subject = "user:" + userID
		}

		allowed, err := rl.limiter.Allow(c.Request.Context(), rl.scope+":"+subject, rl.limit, rl.window)
		if err != nil {
			// fail open when Redis is unavailable
			rl.logger.Warnw("rate limiter unavailable", "scope", rl.scope, "error", err)
			c.Next()
			return
		}

		if !allowed {
			c.Header("Retry-After", strconv.Itoa(int(rl.window.Seconds())))
			utils.ErrorResponseWithError(c, errors.NewTooManyRequestsError("Too many requests. Please try again later."))
			c.Abort()
			return
		}

		c.Next()
	}
}
