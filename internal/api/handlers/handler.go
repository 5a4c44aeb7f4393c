package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"fleettrack/internal/repository"
	"fleettrack/internal/service"
	"fleettrack/pkg/ws"
)

// 报表默认回看窗口
const defaultReportWindow = 30 * 24 * time.Hour

// Handler HTTP 处理器
type Handler struct {
	logger   *zap.Logger
	tracker  *service.TrackerService
	wsHub    *ws.Hub
	apiKey   string // 上报接口鉴权，为空时不校验
	upgrader websocket.Upgrader
}

// NewHandler 创建处理器
func NewHandler(logger *zap.Logger, tracker *service.TrackerService, wsHub *ws.Hub, apiKey string) *Handler {
	return &Handler{
		logger:  logger,
		tracker: tracker,
		wsHub:   wsHub,
		apiKey:  apiKey,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // 开发环境允许所有来源
			},
		},
	}
}

// RegisterRoutes 注册路由
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	// API 路由
	api := r.Group("/api")
	{
		// 车辆
		api.GET("/vehicles", h.ListVehicles)
		api.GET("/vehicles/:id", h.GetVehicle)
		api.POST("/vehicles", h.CreateVehicle)
		api.PUT("/vehicles/:id", h.UpdateVehicle)
		api.DELETE("/vehicles/:id", h.DeleteVehicle)

		// 行程
		api.GET("/vehicles/:id/trip", h.GetTrip)

		// 位置上报
		api.POST("/tracking", h.requireAPIKey(), h.PostTracking)

		// 报表
		api.GET("/reports/violations", h.ListViolations)
		api.GET("/reports/speed-stats", h.GetViolationStats)
		api.GET("/reports/fleet-stats", h.GetFleetStats)

		// 围栏
		api.GET("/geofences", h.ListGeofences)
		api.GET("/geofences/:id", h.GetGeofence)
		api.POST("/geofences", h.CreateGeofence)
		api.PUT("/geofences/:id", h.UpdateGeofence)
		api.DELETE("/geofences/:id", h.DeleteGeofence)

		// 告警
		api.GET("/alerts", h.ListAlerts)
		api.GET("/alerts/:id", h.GetAlert)
		api.POST("/alerts", h.CreateAlert)
		api.POST("/alerts/:id/read", h.MarkAlertRead)
		api.POST("/alerts/read-all", h.MarkAllAlertsRead)
		api.DELETE("/alerts/read", h.ClearReadAlerts)
	}

	// WebSocket
	r.GET("/ws", h.HandleWebSocket)

	// 健康检查
	r.GET("/health", h.HealthCheck)
}

// requireAPIKey 上报接口的 API Key 校验中间件
func (h *Handler) requireAPIKey() gin.HandlerFunc {
	return func(c *gin.Context) {
		if h.apiKey == "" {
			c.Next()
			return
		}
		if c.GetHeader("X-API-Key") != h.apiKey {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid API key"})
			return
		}
		c.Next()
	}
}

// respondError 统一错误到 HTTP 状态码的映射
func (h *Handler) respondError(c *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": message + " not found"})
	case errors.Is(err, repository.ErrDuplicatePlate):
		c.JSON(http.StatusConflict, gin.H{"error": "License plate already registered"})
	default:
		h.logger.Error("Request failed", zap.String("context", message), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// reportWindow 解析报表时间窗口，缺省为最近 30 天
func reportWindow(c *gin.Context) (time.Time, time.Time, error) {
	end := time.Now()
	start := end.Add(-defaultReportWindow)

	if raw := c.Query("start"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return start, end, err
		}
		start = t
	}
	if raw := c.Query("end"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return start, end, err
		}
		end = t
	}
	return start, end, nil
}

// HealthCheck 健康检查
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
