package httpserver

import (
	"context"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"marketledger/internal/domain"
	"marketledger/internal/metrics"
)

const principalHeader = "X-Principal"

type ctxKey string

const principalCtxKey ctxKey = "principal"

// principalMiddleware resolves the caller from X-Principal; requests without
// it act as the anonymous principal.
func principalMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		p := domain.ParsePrincipal(c.GetHeader(principalHeader))
		ctx := context.WithValue(c.Request.Context(), principalCtxKey, p)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func principalFrom(ctx context.Context) domain.Principal {
	if p, ok := ctx.Value(principalCtxKey).(domain.Principal); ok {
		return p
	}
	return domain.AnonymousPrincipal
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("http.request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("principal", c.GetHeader(principalHeader)),
		)
	}
}

func requestMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.ObserveDuration(metrics.HTTPRequestDuration, start,
			c.Request.Method, route, strconv.Itoa(c.Writer.Status()))
	}
}
