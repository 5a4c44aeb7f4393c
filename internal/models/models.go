package models

import "time"

// VehicleStatus 车辆状态
type VehicleStatus string

// 车辆状态常量
const (
	StatusMoving  VehicleStatus = "moving"
	StatusStopped VehicleStatus = "stopped"
	StatusIdle    VehicleStatus = "idle"
	StatusOffline VehicleStatus = "offline"
)

// IgnitionStatus 点火状态
type IgnitionStatus string

// 点火状态常量
const (
	IgnitionOn  IgnitionStatus = "on"
	IgnitionOff IgnitionStatus = "off"
)

// Vehicle 车辆当前快照
type Vehicle struct {
	ID           string         `json:"id" db:"id"`
	Name         string         `json:"name" db:"name"`
	LicensePlate string         `json:"license_plate" db:"license_plate"`
	Model        string         `json:"model,omitempty" db:"model"`
	Status       VehicleStatus  `json:"status" db:"status"`
	Ignition     IgnitionStatus `json:"ignition" db:"ignition"`
	CurrentSpeed int            `json:"current_speed" db:"current_speed"` // km/h
	SpeedLimit   int            `json:"speed_limit" db:"speed_limit"`     // km/h
	Heading      int            `json:"heading" db:"heading"`             // 0-359 度
	Latitude     float64        `json:"latitude" db:"latitude"`
	Longitude    float64        `json:"longitude" db:"longitude"`
	Accuracy     float64        `json:"accuracy" db:"accuracy"` // 米
	LastUpdate   time.Time      `json:"last_update" db:"last_update"`
	BatteryLevel *int           `json:"battery_level,omitempty" db:"battery_level"`
	CreatedAt    time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at" db:"updated_at"`
}

// LocationSample 位置历史记录，按车辆追加，写入后不可变
type LocationSample struct {
	ID         string         `json:"id" db:"id"`
	VehicleID  string         `json:"vehicle_id" db:"vehicle_id"`
	Latitude   float64        `json:"latitude" db:"latitude"`
	Longitude  float64        `json:"longitude" db:"longitude"`
	Speed      int            `json:"speed" db:"speed"` // km/h，瞬时速度
	Heading    int            `json:"heading" db:"heading"`
	Status     VehicleStatus  `json:"status" db:"status"`
	Ignition   IgnitionStatus `json:"ignition" db:"ignition"`
	Accuracy   *float64       `json:"accuracy,omitempty" db:"accuracy"`
	RecordedAt time.Time      `json:"recorded_at" db:"recorded_at"`
}

// LocationPoint 行程中的一个轨迹点
type LocationPoint struct {
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Speed     int       `json:"speed"`
	Heading   int       `json:"heading"`
	Timestamp time.Time `json:"timestamp"`
	Accuracy  *float64  `json:"accuracy,omitempty"`
}

// RouteEventType 行程事件类型
type RouteEventType string

// 行程事件类型常量
const (
	EventDeparture      RouteEventType = "departure"
	EventArrival        RouteEventType = "arrival"
	EventStop           RouteEventType = "stop"
	EventSpeedViolation RouteEventType = "speed_violation"
	EventGeofenceEntry  RouteEventType = "geofence_entry"
	EventGeofenceExit   RouteEventType = "geofence_exit"
)

// RouteEvent 行程事件，按时间升序排列
type RouteEvent struct {
	ID           string         `json:"id"`
	Type         RouteEventType `json:"type"`
	Latitude     float64        `json:"latitude"`
	Longitude    float64        `json:"longitude"`
	Timestamp    time.Time      `json:"timestamp"`
	Duration     *int           `json:"duration,omitempty"` // 分钟，仅 stop 事件
	Speed        *int           `json:"speed,omitempty"`
	SpeedLimit   *int           `json:"speed_limit,omitempty"`
	GeofenceName string         `json:"geofence_name,omitempty"`
}

// Trip 由位置历史重建的行程，按查询实时生成，不落库
type Trip struct {
	ID            string          `json:"id"`
	VehicleID     string          `json:"vehicle_id"`
	StartTime     time.Time       `json:"start_time"`
	EndTime       time.Time       `json:"end_time"`
	TotalDistance float64         `json:"total_distance"` // 米，四舍五入
	TravelTime    int             `json:"travel_time"`    // 分钟
	StoppedTime   int             `json:"stopped_time"`   // 分钟
	AverageSpeed  int             `json:"average_speed"`  // km/h
	MaxSpeed      int             `json:"max_speed"`      // km/h
	StopsCount    int             `json:"stops_count"`
	Points        []LocationPoint `json:"points"`
	Events        []RouteEvent    `json:"events"`
}

// SpeedViolation 超速违章记录，创建后不再更新
type SpeedViolation struct {
	ID          string    `json:"id" db:"id"`
	VehicleID   string    `json:"vehicle_id" db:"vehicle_id"`
	VehicleName string    `json:"vehicle_name" db:"vehicle_name"` // 创建时的名称快照
	Speed       int       `json:"speed" db:"speed"`
	SpeedLimit  int       `json:"speed_limit" db:"speed_limit"`
	ExcessSpeed int       `json:"excess_speed" db:"excess_speed"` // 恒 > 0
	Timestamp   time.Time `json:"timestamp" db:"timestamp"`
	Latitude    float64   `json:"latitude" db:"latitude"`
	Longitude   float64   `json:"longitude" db:"longitude"`
	Duration    int       `json:"duration" db:"duration"` // 秒，创建时固定为 0
}

// DayCount 按天统计的违章数量
type DayCount struct {
	Date  string `json:"date"` // UTC 日期，YYYY-MM-DD
	Count int    `json:"count"`
}

// TopViolator 违章排行榜条目
type TopViolator struct {
	VehicleID          string    `json:"vehicle_id"`
	VehicleName        string    `json:"vehicle_name"`
	TotalViolations    int       `json:"total_violations"`
	AverageExcessSpeed float64   `json:"average_excess_speed"`
	LastViolation      time.Time `json:"last_violation"`
}

// VehicleStats 违章统计报表
type VehicleStats struct {
	TotalViolations        int           `json:"total_violations"`
	VehiclesWithViolations int           `json:"vehicles_with_violations"`
	AverageExcessSpeed     float64       `json:"average_excess_speed"`
	ViolationsByDay        []DayCount    `json:"violations_by_day"`
	TopViolators           []TopViolator `json:"top_violators"`
}

// MostActiveVehicle 时间窗口内行驶距离最大的车辆
type MostActiveVehicle struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Distance float64 `json:"distance"`  // 米，四舍五入
	AvgSpeed int     `json:"avg_speed"` // km/h
}

// FleetStats 车队统计报表
type FleetStats struct {
	TotalVehicles     int                `json:"total_vehicles"`
	AverageSpeed      int                `json:"average_speed"`  // km/h
	TotalDistance     float64            `json:"total_distance"` // 米，四舍五入
	MostActiveVehicle *MostActiveVehicle `json:"most_active_vehicle"`
}
