package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wms/backend/internal/infrastructure/config"
)

// Version is set at build time via -ldflags
var Version = "dev"

// SystemHandler handles system information endpoints
type SystemHandler struct {
	BaseHandler
	cfg *config.Config
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(cfg *config.Config) *SystemHandler {
	return &SystemHandler{cfg: cfg}
}

// SystemInfoResponse carries basic service identity
type SystemInfoResponse struct {
	Name        string `json:"name" example:"wms-backend"`
	Version     string `json:"version" example:"dev"`
	Environment string `json:"environment" example:"development"`
	ServerTime  string `json:"server_time" example:"2026-01-15T10:30:00Z"`
}

// Info godoc
// @ID           getSystemInfo
// @Summary      Service information
// @Tags         system
// @Produce      json
// @Success      200 {object} APIResponse[SystemInfoResponse]
// @Router       /system/info [get]
func (h *SystemHandler) Info(c *gin.Context) {
	h.Success(c, SystemInfoResponse{
		Name:        h.cfg.App.Name,
		Version:     Version,
		Environment: h.cfg.App.Env,
		ServerTime:  time.Now().UTC().Format(time.RFC3339),
	})
}

// Ping godoc
// @ID           ping
// @Summary      Liveness probe
// @Tags         system
// @Produce      json
// @Success      200 {object} APIResponse[string]
// @Router       /system/ping [get]
func (h *SystemHandler) Ping(c *gin.Context) {
	h.Success(c, "pong")
}
