package models

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// TrackingData 外部追踪器上报的位置数据
type TrackingData struct {
	LicensePlate string  `json:"license_plate" validate:"required"`
	Latitude     float64 `json:"latitude" validate:"min=-90,max=90"`
	Longitude    float64 `json:"longitude" validate:"min=-180,max=180"`
	Speed        int     `json:"speed" validate:"min=0"`
}

// Validate 校验上报数据的取值范围
func (t *TrackingData) Validate() error {
	return validate.Struct(t)
}

// InsertVehicle 创建/更新车辆的输入
type InsertVehicle struct {
	Name         string         `json:"name" validate:"required"`
	LicensePlate string         `json:"license_plate" validate:"required"`
	Model        string         `json:"model"`
	Status       VehicleStatus  `json:"status" validate:"omitempty,oneof=moving stopped idle offline"`
	Ignition     IgnitionStatus `json:"ignition" validate:"omitempty,oneof=on off"`
	CurrentSpeed int            `json:"current_speed" validate:"min=0"`
	SpeedLimit   int            `json:"speed_limit" validate:"min=1"`
	Heading      int            `json:"heading" validate:"min=0,max=359"`
	Latitude     float64        `json:"latitude" validate:"min=-90,max=90"`
	Longitude    float64        `json:"longitude" validate:"min=-180,max=180"`
	Accuracy     float64        `json:"accuracy" validate:"min=0"`
	BatteryLevel *int           `json:"battery_level,omitempty" validate:"omitempty,min=0,max=100"`
}

// Validate 校验车辆输入
func (v *InsertVehicle) Validate() error {
	return validate.Struct(v)
}
