package models

import "time"

// AlertType 告警类型
type AlertType string

// 告警类型常量
const (
	AlertSpeed         AlertType = "speed"
	AlertGeofenceEntry AlertType = "geofence_entry"
	AlertGeofenceExit  AlertType = "geofence_exit"
	AlertGeofenceDwell AlertType = "geofence_dwell"
	AlertSystem        AlertType = "system"
)

// AlertPriority 告警优先级
type AlertPriority string

// 告警优先级常量
const (
	PriorityCritical AlertPriority = "critical"
	PriorityWarning  AlertPriority = "warning"
	PriorityInfo     AlertPriority = "info"
)

// Alert 告警记录
type Alert struct {
	ID           string        `json:"id" db:"id"`
	Type         AlertType     `json:"type" db:"type"`
	Priority     AlertPriority `json:"priority" db:"priority"`
	VehicleID    string        `json:"vehicle_id" db:"vehicle_id"`
	VehicleName  string        `json:"vehicle_name" db:"vehicle_name"`
	Message      string        `json:"message" db:"message"`
	Timestamp    time.Time     `json:"timestamp" db:"timestamp"`
	Read         bool          `json:"read" db:"read"`
	Latitude     *float64      `json:"latitude,omitempty" db:"latitude"`
	Longitude    *float64      `json:"longitude,omitempty" db:"longitude"`
	Speed        *int          `json:"speed,omitempty" db:"speed"`
	SpeedLimit   *int          `json:"speed_limit,omitempty" db:"speed_limit"`
	GeofenceName string        `json:"geofence_name,omitempty" db:"geofence_name"`
}
