package api

import (
	"github.com/gin-gonic/gin"

	"github.com/RichTeaMan/timer/server"
)

// ListTimers returns every registered key with its title.
func (h *Handler) ListTimers(c *gin.Context) {
	server.RespondOK(c, h.catalog.Entries())
}

// GetTimer returns the definition registered under :key.
func (h *Handler) GetTimer(c *gin.Context) {
	def, err := h.catalog.Fetch(c.Param("key"))
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, def)
}

// ForecastTimer builds :key fresh and returns its forecast snapshot.
func (h *Handler) ForecastTimer(c *gin.Context) {
	t, err := h.catalog.Build(c.Param("key"))
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	t.Forecast()
	server.RespondOK(c, t.Snapshot())
}
