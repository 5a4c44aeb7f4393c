package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListViolations 获取时间窗口内的违章记录
func (h *Handler) ListViolations(c *gin.Context) {
	start, end, err := reportWindow(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid time window, expected RFC3339"})
		return
	}

	violations, err := h.tracker.GetSpeedViolations(c.Request.Context(), start, end)
	if err != nil {
		h.respondError(c, err, "violations")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": violations})
}

// GetViolationStats 违章统计报表
func (h *Handler) GetViolationStats(c *gin.Context) {
	start, end, err := reportWindow(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid time window, expected RFC3339"})
		return
	}

	stats, err := h.tracker.GetViolationStats(c.Request.Context(), start, end)
	if err != nil {
		h.respondError(c, err, "violation stats")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": stats})
}

// GetFleetStats 车队统计报表
func (h *Handler) GetFleetStats(c *gin.Context) {
	start, end, err := reportWindow(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid time window, expected RFC3339"})
		return
	}

	stats, err := h.tracker.GetFleetStats(c.Request.Context(), start, end)
	if err != nil {
		h.respondError(c, err, "fleet stats")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": stats})
}
