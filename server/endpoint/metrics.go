package endpoint

import (
	"net/http"
	"runtime"

	"github.com/gin-gonic/gin"
)

// RuntimeStats is a point-in-time view of the process. Request and run
// metrics are exported over OTLP instead.
type RuntimeStats struct {
	Goroutines int    `json:"goroutines"`
	HeapBytes  uint64 `json:"heap_bytes"`
	SysBytes   uint64 `json:"sys_bytes"`
	GCCycles   uint32 `json:"gc_cycles"`
	CPUs       int    `json:"cpus"`
}

func readRuntimeStats() RuntimeStats {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return RuntimeStats{
		Goroutines: runtime.NumGoroutine(),
		HeapBytes:  m.HeapAlloc,
		SysBytes:   m.Sys,
		GCCycles:   m.NumGC,
		CPUs:       runtime.NumCPU(),
	}
}

// Metrics serves RuntimeStats.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, readRuntimeStats())
	}
}
