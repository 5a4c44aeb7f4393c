package service

import (
	"context"
	"time"

	"fleettrack/internal/models"
	"fleettrack/internal/trip"
)

// GetTrip 从时间窗口内的位置历史重建行程，窗口内无记录返回 nil
func (s *TrackerService) GetTrip(ctx context.Context, vehicleID string, start, end time.Time) (*models.Trip, error) {
	// 先确认车辆存在，未知车辆返回 ErrNotFound 而不是空行程
	if _, err := s.store.GetVehicle(ctx, vehicleID); err != nil {
		return nil, err
	}

	samples, err := s.store.ListSamples(ctx, vehicleID, start, end)
	if err != nil {
		return nil, err
	}
	return trip.Build(vehicleID, samples), nil
}
