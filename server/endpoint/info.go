package endpoint

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/RichTeaMan/timer/version"
)

// ServiceInfo is the /info body.
type ServiceInfo struct {
	Service string `json:"service"`
	*version.Info
	Uptime        string `json:"uptime"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}

// Info reports the build and how long the server has been up. The build
// info is read once; uptime is measured from since.
func Info(service string, since time.Time) gin.HandlerFunc {
	build := version.GetVersionInfo()
	return func(c *gin.Context) {
		up := time.Since(since)
		c.JSON(http.StatusOK, ServiceInfo{
			Service:       service,
			Info:          build,
			Uptime:        up.Round(time.Second).String(),
			UptimeSeconds: int64(up / time.Second),
		})
	}
}
