package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"fleettrack/internal/geo"
	"fleettrack/internal/models"
)

// evaluateGeofences 评估车辆当前位置与所有启用围栏的关系，
// 按规则产生进入/离开/驻留告警。失败仅记日志，不影响摄入。
func (s *TrackerService) evaluateGeofences(ctx context.Context, vehicle *models.Vehicle, now time.Time) {
	geofences, err := s.store.ListGeofences(ctx)
	if err != nil {
		s.logger.Error("Failed to list geofences", zap.Error(err))
		return
	}

	for _, fence := range geofences {
		if !fence.Active {
			continue
		}
		// 未绑定车辆的围栏作用于全部车辆
		if len(fence.VehicleIDs) > 0 && !fence.AppliesTo(vehicle.ID) {
			continue
		}

		inside := s.containsVehicle(fence, vehicle)
		s.mu.Lock()
		wasInside := s.insideFence[vehicle.ID][fence.ID]
		if s.insideFence[vehicle.ID] == nil {
			s.insideFence[vehicle.ID] = make(map[string]bool)
		}
		s.insideFence[vehicle.ID][fence.ID] = inside
		s.mu.Unlock()

		switch {
		case inside && !wasInside:
			s.onFenceEntry(ctx, vehicle, fence, now)
		case !inside && wasInside:
			s.onFenceExit(ctx, vehicle, fence, now)
		case inside:
			s.checkDwell(ctx, vehicle, fence, now)
		}
	}
}

// containsVehicle 判断车辆是否在围栏内
func (s *TrackerService) containsVehicle(fence *models.Geofence, vehicle *models.Vehicle) bool {
	switch fence.Type {
	case models.GeofenceCircle:
		if fence.Center == nil || fence.Radius == nil {
			return false
		}
		return geo.InCircle(vehicle.Latitude, vehicle.Longitude, fence.Center.Latitude, fence.Center.Longitude, *fence.Radius)
	case models.GeofencePolygon:
		points := make([]geo.Point, len(fence.Points))
		for i, p := range fence.Points {
			points[i] = geo.Point{Latitude: p.Latitude, Longitude: p.Longitude}
		}
		return geo.InPolygon(vehicle.Latitude, vehicle.Longitude, points)
	}
	return false
}

func (s *TrackerService) onFenceEntry(ctx context.Context, vehicle *models.Vehicle, fence *models.Geofence, now time.Time) {
	s.mu.Lock()
	if s.enteredAt[vehicle.ID] == nil {
		s.enteredAt[vehicle.ID] = make(map[string]time.Time)
	}
	s.enteredAt[vehicle.ID][fence.ID] = now
	if s.dwellFired[vehicle.ID] != nil {
		delete(s.dwellFired[vehicle.ID], fence.ID)
	}
	s.mu.Unlock()

	if rule := fence.Rule(models.RuleEntry); rule != nil && rule.Enabled {
		s.fireGeofenceAlert(ctx, vehicle, fence, models.AlertGeofenceEntry,
			fmt.Sprintf("%s entered geofence %s", vehicle.Name, fence.Name), now)
	}
}

func (s *TrackerService) onFenceExit(ctx context.Context, vehicle *models.Vehicle, fence *models.Geofence, now time.Time) {
	s.mu.Lock()
	if s.enteredAt[vehicle.ID] != nil {
		delete(s.enteredAt[vehicle.ID], fence.ID)
	}
	if s.dwellFired[vehicle.ID] != nil {
		delete(s.dwellFired[vehicle.ID], fence.ID)
	}
	s.mu.Unlock()

	if rule := fence.Rule(models.RuleExit); rule != nil && rule.Enabled {
		s.fireGeofenceAlert(ctx, vehicle, fence, models.AlertGeofenceExit,
			fmt.Sprintf("%s left geofence %s", vehicle.Name, fence.Name), now)
	}
}

// checkDwell 车辆持续处于围栏内，检查驻留规则是否触发，
// 每次进入仅告警一次
func (s *TrackerService) checkDwell(ctx context.Context, vehicle *models.Vehicle, fence *models.Geofence, now time.Time) {
	rule := fence.Rule(models.RuleDwell)
	if rule == nil || !rule.Enabled || rule.DwellTimeMinutes == nil {
		return
	}

	s.mu.Lock()
	entered, ok := s.enteredAt[vehicle.ID][fence.ID]
	fired := s.dwellFired[vehicle.ID][fence.ID]
	s.mu.Unlock()
	if !ok || fired {
		return
	}

	dwell := time.Duration(*rule.DwellTimeMinutes) * time.Minute
	if now.Sub(entered) < dwell {
		return
	}

	s.mu.Lock()
	if s.dwellFired[vehicle.ID] == nil {
		s.dwellFired[vehicle.ID] = make(map[string]bool)
	}
	s.dwellFired[vehicle.ID][fence.ID] = true
	s.mu.Unlock()

	s.fireGeofenceAlert(ctx, vehicle, fence, models.AlertGeofenceDwell,
		fmt.Sprintf("%s has been inside geofence %s for over %d minutes", vehicle.Name, fence.Name, *rule.DwellTimeMinutes), now)
}

// fireGeofenceAlert 创建围栏告警并更新围栏触发时间
func (s *TrackerService) fireGeofenceAlert(ctx context.Context, vehicle *models.Vehicle, fence *models.Geofence, alertType models.AlertType, message string, now time.Time) {
	lat, lon := vehicle.Latitude, vehicle.Longitude
	alert := &models.Alert{
		ID:           uuid.NewString(),
		Type:         alertType,
		Priority:     models.PriorityInfo,
		VehicleID:    vehicle.ID,
		VehicleName:  vehicle.Name,
		Message:      message,
		Timestamp:    now,
		Latitude:     &lat,
		Longitude:    &lon,
		GeofenceName: fence.Name,
	}
	if err := s.store.CreateAlert(ctx, alert); err != nil {
		s.logger.Error("Failed to create geofence alert",
			zap.String("vehicle_id", vehicle.ID),
			zap.String("geofence_id", fence.ID),
			zap.Error(err))
		return
	}

	fence.LastTriggered = &now
	fence.UpdatedAt = now
	if err := s.store.UpdateGeofence(ctx, fence); err != nil {
		s.logger.Error("Failed to update geofence trigger time",
			zap.String("geofence_id", fence.ID),
			zap.Error(err))
	}
}
