package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fleettrack/internal/models"
)

// PostTracking 接收外部追踪器的位置上报
func (h *Handler) PostTracking(c *gin.Context) {
	var data models.TrackingData
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	vehicle, err := h.tracker.Ingest(c.Request.Context(), &data)
	if err != nil {
		h.respondError(c, err, "vehicle")
		return
	}

	h.logger.Debug("Tracking report accepted",
		zap.String("vehicle_id", vehicle.ID),
		zap.Int("speed", vehicle.CurrentSpeed))
	c.JSON(http.StatusOK, gin.H{"data": vehicle})
}
