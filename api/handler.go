package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/RichTeaMan/timer/catalog"
	"github.com/RichTeaMan/timer/runner"
	"github.com/RichTeaMan/timer/sse"
)

// Handler holds what the routes need.
type Handler struct {
	catalog   *catalog.Registry
	runs      *runner.Manager
	hub       *sse.Hub
	keepAlive time.Duration
}

// Option configures a Handler.
type Option func(*Handler)

// WithKeepAlive sets the SSE keep-alive interval.
func WithKeepAlive(d time.Duration) Option {
	return func(h *Handler) { h.keepAlive = d }
}

// NewHandler creates a handler.
func NewHandler(reg *catalog.Registry, runs *runner.Manager, hub *sse.Hub, opts ...Option) *Handler {
	h := &Handler{
		catalog:   reg,
		runs:      runs,
		hub:       hub,
		keepAlive: sse.DefaultKeepAlive,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register mounts the routes on r.
func (h *Handler) Register(r gin.IRouter) {
	timers := r.Group("/timers")
	timers.GET("", h.ListTimers)
	timers.GET("/:key", h.GetTimer)
	timers.GET("/:key/forecast", h.ForecastTimer)

	runs := r.Group("/runs")
	runs.POST("", h.StartRun)
	runs.GET("", h.ListRuns)
	runs.GET("/:id", h.GetRun)
	runs.DELETE("/:id", h.StopRun)
	runs.GET("/:id/stream", h.StreamRun)
	runs.POST("/:id/restart", h.RestartRun)

	events := runs.Group("/:id/events/:event")
	events.POST("/extend", h.ExtendEvent)
	events.POST("/reduce", h.ReduceEvent)
	events.POST("/complete", h.CompleteEvent)
	events.POST("/pause", h.PauseEvent)
}
