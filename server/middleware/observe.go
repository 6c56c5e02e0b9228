package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/RichTeaMan/timer/logger"
	"github.com/RichTeaMan/timer/observability"
)

// Observe opens an http.request span per request and records the request
// metrics against the matched route. Unmatched requests use "unmatched".
func Observe(metrics *observability.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		ctx, span := observability.StartSpan(c.Request.Context(), observability.SpanHTTPRequest)
		defer span.End()
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		span.SetAttributes(
			attribute.String("http.method", c.Request.Method),
			attribute.String("http.route", route),
			attribute.Int("http.status_code", status),
		)
		if id := logger.RequestIDFromContext(ctx); id != "" {
			span.SetAttributes(attribute.String(observability.AttrRequestID, id))
		}
		if status >= 500 {
			span.SetStatus(codes.Error, "server error")
		}
		metrics.RecordRequest(ctx, c.Request.Method, route, status, time.Since(start))
	}
}
