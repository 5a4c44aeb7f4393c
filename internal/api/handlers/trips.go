package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetTrip 从位置历史重建时间窗口内的行程
func (h *Handler) GetTrip(c *gin.Context) {
	start, end, err := reportWindow(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid time window, expected RFC3339"})
		return
	}

	trip, err := h.tracker.GetTrip(c.Request.Context(), c.Param("id"), start, end)
	if err != nil {
		h.respondError(c, err, "vehicle")
		return
	}
	if trip == nil {
		c.JSON(http.StatusOK, gin.H{"data": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": trip})
}
