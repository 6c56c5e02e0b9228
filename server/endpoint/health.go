package endpoint

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RichTeaMan/timer/observability"
)

// HealthChecker aggregates component health.
type HealthChecker func(ctx context.Context) *observability.ServiceHealth

// Health reports aggregated health. Down services answer 503.
func Health(service string, checker HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := observability.NewServiceHealth(service, "")
		if checker != nil {
			health = checker(c.Request.Context())
		}

		status := http.StatusOK
		if !health.Healthy() {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, health)
	}
}
