package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthController answers the liveness probe.
type HealthController struct {
	serviceName     string
	dbHealthChecker func() bool
	startedAt       time.Time
}

// HealthResponse is the probe body.
type HealthResponse struct {
	Status        string `json:"status"`
	Service       string `json:"service"`
	Database      string `json:"database"`
	UptimeSeconds int64  `json:"uptime_seconds"`
	Timestamp     string `json:"timestamp"`
}

// NewHealthController wires the probe. A nil checker reports the
// database as disconnected, which is exactly the situation when the
// server came up without one.
func NewHealthController(serviceName string, dbHealthChecker func() bool) *HealthController {
	return &HealthController{
		serviceName:     serviceName,
		dbHealthChecker: dbHealthChecker,
		startedAt:       time.Now().UTC(),
	}
}

// Check handles GET /health requests. The endpoint stays up even when
// the database is unreachable and reports it as disconnected instead of
// failing, so probes can tell a degraded process from a dead one.
func (h *HealthController) Check(c *gin.Context) {
	dbStatus := "disconnected"
	if h.dbHealthChecker != nil && h.dbHealthChecker() {
		dbStatus = "connected"
	}

	now := time.Now().UTC()
	c.JSON(http.StatusOK, HealthResponse{
		Status:        "ok",
		Service:       h.serviceName,
		Database:      dbStatus,
		UptimeSeconds: int64(now.Sub(h.startedAt).Seconds()),
		Timestamp:     now.Format(time.RFC3339),
	})
}
