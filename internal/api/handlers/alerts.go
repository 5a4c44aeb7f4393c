package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fleettrack/internal/models"
)

// ListAlerts 获取所有告警
func (h *Handler) ListAlerts(c *gin.Context) {
	alerts, err := h.tracker.ListAlerts(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "alerts")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": alerts})
}

// GetAlert 获取告警详情
func (h *Handler) GetAlert(c *gin.Context) {
	alert, err := h.tracker.GetAlert(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "alert")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": alert})
}

// CreateAlert 手工创建告警
func (h *Handler) CreateAlert(c *gin.Context) {
	var alert models.Alert
	if err := c.ShouldBindJSON(&alert); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	created, err := h.tracker.CreateAlert(c.Request.Context(), &alert)
	if err != nil {
		h.respondError(c, err, "vehicle")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": created})
}

// MarkAlertRead 标记单条告警已读
func (h *Handler) MarkAlertRead(c *gin.Context) {
	alert, err := h.tracker.MarkAlertRead(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "alert")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": alert})
}

// MarkAllAlertsRead 全部标记已读
func (h *Handler) MarkAllAlertsRead(c *gin.Context) {
	if err := h.tracker.MarkAllAlertsRead(c.Request.Context()); err != nil {
		h.respondError(c, err, "alerts")
		return
	}
	c.Status(http.StatusNoContent)
}

// ClearReadAlerts 清除已读告警
func (h *Handler) ClearReadAlerts(c *gin.Context) {
	if err := h.tracker.ClearReadAlerts(c.Request.Context()); err != nil {
		h.respondError(c, err, "alerts")
		return
	}
	c.Status(http.StatusNoContent)
}
