package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"fleettrack/internal/models"
)

// ListGeofences 获取所有围栏
func (s *TrackerService) ListGeofences(ctx context.Context) ([]*models.Geofence, error) {
	return s.store.ListGeofences(ctx)
}

// GetGeofence 按 ID 获取围栏
func (s *TrackerService) GetGeofence(ctx context.Context, id string) (*models.Geofence, error) {
	return s.store.GetGeofence(ctx, id)
}

// CreateGeofence 创建围栏
func (s *TrackerService) CreateGeofence(ctx context.Context, g *models.Geofence) (*models.Geofence, error) {
	now := time.Now()
	g.ID = uuid.NewString()
	g.CreatedAt = now
	g.UpdatedAt = now
	if err := s.store.CreateGeofence(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

// UpdateGeofence 更新围栏
func (s *TrackerService) UpdateGeofence(ctx context.Context, g *models.Geofence) (*models.Geofence, error) {
	existing, err := s.store.GetGeofence(ctx, g.ID)
	if err != nil {
		return nil, err
	}
	g.CreatedAt = existing.CreatedAt
	g.UpdatedAt = time.Now()
	if err := s.store.UpdateGeofence(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

// DeleteGeofence 删除围栏并清理所有车辆的围栏跟踪状态
func (s *TrackerService) DeleteGeofence(ctx context.Context, id string) error {
	if err := s.store.DeleteGeofence(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	for _, fences := range s.insideFence {
		delete(fences, id)
	}
	for _, entered := range s.enteredAt {
		delete(entered, id)
	}
	for _, fired := range s.dwellFired {
		delete(fired, id)
	}
	s.mu.Unlock()
	return nil
}

// ListAlerts 获取所有告警
func (s *TrackerService) ListAlerts(ctx context.Context) ([]*models.Alert, error) {
	return s.store.ListAlerts(ctx)
}

// GetAlert 按 ID 获取告警
func (s *TrackerService) GetAlert(ctx context.Context, id string) (*models.Alert, error) {
	return s.store.GetAlert(ctx, id)
}

// CreateAlert 手工创建告警，车辆名称从车辆记录回填
func (s *TrackerService) CreateAlert(ctx context.Context, a *models.Alert) (*models.Alert, error) {
	if a.VehicleID == "" || a.Message == "" {
		return nil, fmt.Errorf("%w: vehicle_id and message are required", ErrInvalidInput)
	}
	switch a.Type {
	case models.AlertSpeed, models.AlertGeofenceEntry, models.AlertGeofenceExit, models.AlertGeofenceDwell, models.AlertSystem:
	default:
		return nil, fmt.Errorf("%w: unknown alert type %q", ErrInvalidInput, a.Type)
	}

	vehicle, err := s.store.GetVehicle(ctx, a.VehicleID)
	if err != nil {
		return nil, err
	}
	a.VehicleName = vehicle.Name

	a.ID = uuid.NewString()
	if a.Priority == "" {
		a.Priority = models.PriorityInfo
	}
	if a.Timestamp.IsZero() {
		a.Timestamp = time.Now()
	}
	a.Read = false

	if err := s.store.CreateAlert(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// MarkAlertRead 标记单条告警已读
func (s *TrackerService) MarkAlertRead(ctx context.Context, id string) (*models.Alert, error) {
	a, err := s.store.GetAlert(ctx, id)
	if err != nil {
		return nil, err
	}
	a.Read = true
	if err := s.store.UpdateAlert(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// MarkAllAlertsRead 全部标记已读
func (s *TrackerService) MarkAllAlertsRead(ctx context.Context) error {
	return s.store.MarkAllAlertsRead(ctx)
}

// ClearReadAlerts 清除已读告警
func (s *TrackerService) ClearReadAlerts(ctx context.Context) error {
	return s.store.ClearReadAlerts(ctx)
}
