package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fleettrack/internal/models"
)

// ListVehicles 获取车辆列表
func (h *Handler) ListVehicles(c *gin.Context) {
	vehicles, err := h.tracker.ListVehicles(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "vehicles")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": vehicles})
}

// GetVehicle 获取车辆详情
func (h *Handler) GetVehicle(c *gin.Context) {
	vehicle, err := h.tracker.GetVehicle(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "vehicle")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": vehicle})
}

// CreateVehicle 注册新车辆
func (h *Handler) CreateVehicle(c *gin.Context) {
	var in models.InsertVehicle
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	vehicle, err := h.tracker.CreateVehicle(c.Request.Context(), &in)
	if err != nil {
		h.respondError(c, err, "vehicle")
		return
	}

	h.logger.Info("Vehicle registered",
		zap.String("vehicle_id", vehicle.ID),
		zap.String("license_plate", vehicle.LicensePlate))
	c.JSON(http.StatusCreated, gin.H{"data": vehicle})
}

// UpdateVehicle 更新车辆资料
func (h *Handler) UpdateVehicle(c *gin.Context) {
	var in models.InsertVehicle
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	vehicle, err := h.tracker.UpdateVehicle(c.Request.Context(), c.Param("id"), &in)
	if err != nil {
		h.respondError(c, err, "vehicle")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": vehicle})
}

// DeleteVehicle 删除车辆及其位置历史
func (h *Handler) DeleteVehicle(c *gin.Context) {
	if err := h.tracker.DeleteVehicle(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err, "vehicle")
		return
	}
	c.Status(http.StatusNoContent)
}
