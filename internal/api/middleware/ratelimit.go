package middleware

import (
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/gea-verde/gea-api/internal/api/handler/v1/response"
)

var errRateLimited = errors.New("too many requests")

// RateLimit caps requests per caller per path over a sliding window
// backed by redis. When redis is down the request is let through; the
// limiter protects capacity, it is not an auth boundary.
func RateLimit(client *redis.Client, limit int, window time.Duration) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		caller := ctx.ClientIP()
		if userID, exists := ctx.Get(ContextKeyUserID); exists {
			caller = fmt.Sprintf("user:%v", userID)
		}

		key := fmt.Sprintf("rate_limit:%s:%s", ctx.FullPath(), caller)

		reqCtx := ctx.Request.Context()
		count, err := client.Incr(reqCtx, key).Result()
		if err != nil {
			zap.L().Warn("rate limit check failed, letting request through", zap.Error(err))
			ctx.Next()

			return
		}

		if count == 1 {
			client.Expire(reqCtx, key, window)
		}

		if count > int64(limit) {
			response.RenderErr(ctx, response.ErrTooManyRequests(errRateLimited))

			return
		}

		ctx.Next()
	}
}
