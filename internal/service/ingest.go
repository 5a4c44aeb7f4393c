package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"fleettrack/internal/models"
)

// Ingest 处理一条外部追踪器上报，按车牌解析车辆、推进状态机
// 并落库快照与位置历史。校验失败返回 ErrInvalidInput，
// 车牌未注册返回 repository.ErrNotFound。
func (s *TrackerService) Ingest(ctx context.Context, data *models.TrackingData) (*models.Vehicle, error) {
	if err := data.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	vehicle, err := s.store.GetVehicleByPlate(ctx, data.LicensePlate)
	if err != nil {
		return nil, err
	}

	machine := s.states.GetOrCreate(vehicle.ID, vehicle.Status)
	status := machine.Apply(data.Speed)

	return s.applyUpdate(ctx, vehicle, positionUpdate{
		latitude:  data.Latitude,
		longitude: data.Longitude,
		speed:     data.Speed,
		heading:   vehicle.Heading,
		status:    status,
		at:        time.Now(),
	})
}

// positionUpdate 一次位置更新，摄入和模拟共用同一条落库路径
type positionUpdate struct {
	latitude  float64
	longitude float64
	speed     int
	heading   int
	status    models.VehicleStatus
	at        time.Time
}

// applyUpdate 写入车辆快照和位置历史。快照或历史写入失败向上返回；
// 违章记录、告警和围栏评估为尽力而为，失败仅记日志。
func (s *TrackerService) applyUpdate(ctx context.Context, vehicle *models.Vehicle, up positionUpdate) (*models.Vehicle, error) {
	vehicle.Latitude = up.latitude
	vehicle.Longitude = up.longitude
	vehicle.CurrentSpeed = up.speed
	vehicle.Heading = up.heading
	vehicle.Status = up.status
	// 速度大于零强制点火，零速度保持原状
	if up.speed > 0 {
		vehicle.Ignition = models.IgnitionOn
	}
	vehicle.LastUpdate = up.at
	vehicle.UpdatedAt = up.at

	if err := s.store.UpdateVehicle(ctx, vehicle); err != nil {
		return nil, fmt.Errorf("update vehicle snapshot: %w", err)
	}

	accuracy := vehicle.Accuracy
	sample := &models.LocationSample{
		ID:         uuid.NewString(),
		VehicleID:  vehicle.ID,
		Latitude:   up.latitude,
		Longitude:  up.longitude,
		Speed:      up.speed,
		Heading:    up.heading,
		Status:     up.status,
		Ignition:   vehicle.Ignition,
		Accuracy:   &accuracy,
		RecordedAt: up.at,
	}
	if err := s.store.CreateSample(ctx, sample); err != nil {
		return nil, fmt.Errorf("append location sample: %w", err)
	}

	s.mu.Lock()
	s.lastSeen[vehicle.ID] = up.at
	s.mu.Unlock()

	if violation := DetectViolation(vehicle, sample); violation != nil {
		s.recordViolation(ctx, vehicle, violation)
	}

	s.evaluateGeofences(ctx, vehicle, up.at)
	s.notifySubscribers(ctx)

	return vehicle, nil
}

// recordViolation 落库违章与对应告警，失败不影响摄入
func (s *TrackerService) recordViolation(ctx context.Context, vehicle *models.Vehicle, v *models.SpeedViolation) {
	if err := s.store.CreateViolation(ctx, v); err != nil {
		s.logger.Error("Failed to record speed violation",
			zap.String("vehicle_id", vehicle.ID),
			zap.Int("speed", v.Speed),
			zap.Error(err))
		return
	}

	priority := models.PriorityWarning
	if v.ExcessSpeed >= 20 {
		priority = models.PriorityCritical
	}
	speed, limit := v.Speed, v.SpeedLimit
	lat, lon := v.Latitude, v.Longitude
	alert := &models.Alert{
		ID:          uuid.NewString(),
		Type:        models.AlertSpeed,
		Priority:    priority,
		VehicleID:   vehicle.ID,
		VehicleName: vehicle.Name,
		Message:     fmt.Sprintf("%s exceeded the speed limit: %d km/h in a %d km/h zone", vehicle.Name, speed, limit),
		Timestamp:   v.Timestamp,
		Latitude:    &lat,
		Longitude:   &lon,
		Speed:       &speed,
		SpeedLimit:  &limit,
	}
	if err := s.store.CreateAlert(ctx, alert); err != nil {
		s.logger.Error("Failed to create speed alert",
			zap.String("vehicle_id", vehicle.ID),
			zap.Error(err))
	}
}

// createSystemAlert 创建系统告警，失败仅记日志
func (s *TrackerService) createSystemAlert(ctx context.Context, vehicle *models.Vehicle, message string) {
	alert := &models.Alert{
		ID:          uuid.NewString(),
		Type:        models.AlertSystem,
		Priority:    models.PriorityInfo,
		VehicleID:   vehicle.ID,
		VehicleName: vehicle.Name,
		Message:     message,
		Timestamp:   time.Now(),
	}
	if err := s.store.CreateAlert(ctx, alert); err != nil {
		s.logger.Error("Failed to create system alert",
			zap.String("vehicle_id", vehicle.ID),
			zap.Error(err))
	}
}
