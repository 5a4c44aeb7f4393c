package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fleettrack/internal/models"
)

// ListGeofences 获取所有围栏
func (h *Handler) ListGeofences(c *gin.Context) {
	geofences, err := h.tracker.ListGeofences(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "geofences")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": geofences})
}

// GetGeofence 获取围栏详情
func (h *Handler) GetGeofence(c *gin.Context) {
	fence, err := h.tracker.GetGeofence(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "geofence")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": fence})
}

// validGeofence 围栏几何的基本校验
func validGeofence(g *models.Geofence) bool {
	switch g.Type {
	case models.GeofenceCircle:
		return g.Center != nil && g.Radius != nil && *g.Radius > 0
	case models.GeofencePolygon:
		return len(g.Points) >= 3
	}
	return false
}

// CreateGeofence 创建围栏
func (h *Handler) CreateGeofence(c *gin.Context) {
	var fence models.Geofence
	if err := c.ShouldBindJSON(&fence); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if fence.Name == "" || !validGeofence(&fence) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid geofence geometry"})
		return
	}

	created, err := h.tracker.CreateGeofence(c.Request.Context(), &fence)
	if err != nil {
		h.respondError(c, err, "geofence")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": created})
}

// UpdateGeofence 更新围栏
func (h *Handler) UpdateGeofence(c *gin.Context) {
	var fence models.Geofence
	if err := c.ShouldBindJSON(&fence); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	fence.ID = c.Param("id")
	if fence.Name == "" || !validGeofence(&fence) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid geofence geometry"})
		return
	}

	updated, err := h.tracker.UpdateGeofence(c.Request.Context(), &fence)
	if err != nil {
		h.respondError(c, err, "geofence")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": updated})
}

// DeleteGeofence 删除围栏
func (h *Handler) DeleteGeofence(c *gin.Context) {
	if err := h.tracker.DeleteGeofence(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err, "geofence")
		return
	}
	c.Status(http.StatusNoContent)
}
