package middleware

import (
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vietanh2810/mesas-api/internal/observability/metrics"
)

// AccessLog logs every request with zap and records it in m, which may be nil.
func AccessLog(m *metrics.Metrics) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()

		elapsed := time.Since(start)
		status := ctx.Writer.Status()
		route := ctx.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.ObserveHTTP(ctx.Request.Method, route, status, elapsed)

		fields := []zap.Field{
			zap.String("method", ctx.Request.Method),
			zap.String("path", ctx.Request.URL.Path),
			zap.Int("status", status),
			zap.Duration("latency", elapsed),
			zap.String("request_id", requestid.Get(ctx)),
		}
		if identity, ok := IdentityFrom(ctx); ok {
			fields = append(fields, zap.String("delegate_id", identity.DelegateID))
		}

		switch {
		case status >= 500:
			zap.L().Error("http request", fields...)
		case status >= 400:
			zap.L().Warn("http request", fields...)
		default:
			zap.L().Info("http request", fields...)
		}
	}
}
