package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"fleettrack/internal/models"
)

// CreateVehicle 注册新车辆，初始状态由输入决定，默认 offline
func (s *TrackerService) CreateVehicle(ctx context.Context, in *models.InsertVehicle) (*models.Vehicle, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	status := in.Status
	if status == "" {
		status = models.StatusOffline
	}
	ignition := in.Ignition
	if ignition == "" {
		ignition = models.IgnitionOff
	}
	accuracy := in.Accuracy
	if accuracy == 0 {
		accuracy = 5
	}

	now := time.Now()
	v := &models.Vehicle{
		ID:           uuid.NewString(),
		Name:         in.Name,
		LicensePlate: in.LicensePlate,
		Model:        in.Model,
		Status:       status,
		Ignition:     ignition,
		CurrentSpeed: in.CurrentSpeed,
		SpeedLimit:   in.SpeedLimit,
		Heading:      in.Heading,
		Latitude:     in.Latitude,
		Longitude:    in.Longitude,
		Accuracy:     accuracy,
		LastUpdate:   now,
		BatteryLevel: in.BatteryLevel,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.CreateVehicle(ctx, v); err != nil {
		return nil, err
	}

	s.states.GetOrCreate(v.ID, v.Status)
	s.mu.Lock()
	s.lastSeen[v.ID] = now
	s.mu.Unlock()

	s.notifySubscribers(ctx)
	return v, nil
}

// UpdateVehicle 更新车辆资料，位置与状态字段以摄入为准，
// 这里只改名称、车牌、型号和限速
func (s *TrackerService) UpdateVehicle(ctx context.Context, id string, in *models.InsertVehicle) (*models.Vehicle, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	v, err := s.store.GetVehicle(ctx, id)
	if err != nil {
		return nil, err
	}

	v.Name = in.Name
	v.LicensePlate = in.LicensePlate
	v.Model = in.Model
	v.SpeedLimit = in.SpeedLimit
	if in.BatteryLevel != nil {
		v.BatteryLevel = in.BatteryLevel
	}
	v.UpdatedAt = time.Now()

	if err := s.store.UpdateVehicle(ctx, v); err != nil {
		return nil, err
	}
	s.notifySubscribers(ctx)
	return v, nil
}

// DeleteVehicle 删除车辆及其全部位置历史和状态机
func (s *TrackerService) DeleteVehicle(ctx context.Context, id string) error {
	if err := s.store.DeleteVehicle(ctx, id); err != nil {
		return err
	}

	s.states.Remove(id)
	s.mu.Lock()
	delete(s.lastSeen, id)
	delete(s.insideFence, id)
	delete(s.enteredAt, id)
	delete(s.dwellFired, id)
	s.mu.Unlock()

	s.notifySubscribers(ctx)
	return nil
}
