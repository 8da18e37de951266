package handler

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"staffhub/config"
	"staffhub/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// isoMillis 與 JavaScript toISOString 相同格式
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

type HealthChecker interface {
	IsLive() bool
	IsReady(ctx context.Context) bool
	Uptime() time.Duration
}

type HealthHandler struct {
	healthStatus HealthChecker
	conf         *config.Configuration
}

func NewHealthHandler(status HealthChecker, conf *config.Configuration) *HealthHandler {
	return &HealthHandler{healthStatus: status, conf: conf}
}

// Health 服務狀態
// @Summary 服務狀態
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]any
// @Router /api/health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	response.Success(c, gin.H{
		"message":     "Employee Management API is running",
		"timestamp":   time.Now().UTC().Format(isoMillis),
		"environment": h.environment(),
	})
}

// Root 服務描述與端點列表
// @Summary 服務描述
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]any
// @Router / [get]
func (h *HealthHandler) Root(c *gin.Context) {
	response.Success(c, gin.H{
		"message": "SmartFit Employee Backend API",
		"version": h.conf.App.Version,
		"endpoints": gin.H{
			"health":            "/api/health",
			"generateEmployees": "/api/generate-employees",
			"getEmployees":      "/api/shop/:shopId/employees",
			"batchLogs":         "/api/shop/:shopId/batch-logs",
			"updateStatus":      "/api/employees/:employeeId/status",
			"resetPassword":     "/api/employees/:employeeId/reset-password",
			"deleteEmployee":    "/api/employees/:employeeId",
		},
	})
}

func (h *HealthHandler) Liveness(c *gin.Context) {
	if h.healthStatus.IsLive() {
		c.JSON(http.StatusOK, gin.H{"success": true, "status": "alive"})
		return
	}
	c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "status": "down"})
}

func (h *HealthHandler) Readiness(c *gin.Context) {
	if h.healthStatus.IsReady(c.Request.Context()) {
		c.JSON(http.StatusOK, gin.H{"success": true, "status": "ready"})
		return
	}
	c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "status": "not ready"})
}

// Version 版本與執行環境
func (h *HealthHandler) Version(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"name":        h.conf.App.Name,
		"version":     h.conf.App.Version,
		"environment": h.environment(),
		"goVersion":   runtime.Version(),
		"uptime":      h.healthStatus.Uptime().Round(time.Second).String(),
	})
}

func (h *HealthHandler) environment() string {
	if h.conf.App.Env == "" {
		return "development"
	}
	return h.conf.App.Env
}
