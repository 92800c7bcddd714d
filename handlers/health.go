package handlers

import (
	"net/http"

	"lexdesk/utils"

	"github.com/gin-gonic/gin"
)

// HealthReporter is implemented by *utils.HealthMonitor.
type HealthReporter interface {
	Status() utils.HealthStatus
}

type HealthHandler struct {
	Monitor HealthReporter
}

// Health handles GET /health. It answers 503 while Mongo or Redis is down.
func (h *HealthHandler) Health(c *gin.Context) {
	status := h.Monitor.Status()
	code := http.StatusOK
	state := "ok"
	if !status.Healthy() {
		code = http.StatusServiceUnavailable
		state = "degraded"
	}
	c.JSON(code, gin.H{"status": state, "dependencies": status})
}
