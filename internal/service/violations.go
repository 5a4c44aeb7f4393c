package service

import (
	"fmt"

	"fleettrack/internal/models"
)

// DetectViolation 判定一次位置记录是否超速，未超速返回 nil
// 严格大于限速才算违章，excess 恒为正
func DetectViolation(vehicle *models.Vehicle, sample *models.LocationSample) *models.SpeedViolation {
	if vehicle.SpeedLimit <= 0 || sample.Speed <= vehicle.SpeedLimit {
		return nil
	}

	return &models.SpeedViolation{
		ID:          fmt.Sprintf("violation-%s-%d", vehicle.ID, sample.RecordedAt.UnixMilli()),
		VehicleID:   vehicle.ID,
		VehicleName: vehicle.Name,
		Speed:       sample.Speed,
		SpeedLimit:  vehicle.SpeedLimit,
		ExcessSpeed: sample.Speed - vehicle.SpeedLimit,
		Timestamp:   sample.RecordedAt,
		Latitude:    sample.Latitude,
		Longitude:   sample.Longitude,
		// 瞬时判定，持续时长需要跨记录关联，暂固定为 0
		Duration: 0,
	}
}
