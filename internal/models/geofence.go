package models

import "time"

// GeofenceType 围栏类型
type GeofenceType string

// 围栏类型常量
const (
	GeofenceCircle  GeofenceType = "circle"
	GeofencePolygon GeofenceType = "polygon"
)

// GeofenceRuleType 围栏规则类型
type GeofenceRuleType string

// 围栏规则类型常量
const (
	RuleEntry GeofenceRuleType = "entry"
	RuleExit  GeofenceRuleType = "exit"
	RuleDwell GeofenceRuleType = "dwell"
)

// LatLng 经纬度坐标
type LatLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// GeofenceRule 围栏触发规则
type GeofenceRule struct {
	Type             GeofenceRuleType `json:"type"`
	Enabled          bool             `json:"enabled"`
	DwellTimeMinutes *int             `json:"dwell_time_minutes,omitempty"`
	ToleranceSeconds *int             `json:"tolerance_seconds,omitempty"`
}

// Geofence 地理围栏，circle 用 Center+Radius，polygon 用 Points
type Geofence struct {
	ID            string         `json:"id" db:"id"`
	Name          string         `json:"name" db:"name"`
	Description   string         `json:"description,omitempty" db:"description"`
	Type          GeofenceType   `json:"type" db:"type"`
	Active        bool           `json:"active" db:"active"`
	Center        *LatLng        `json:"center,omitempty"`
	Radius        *float64       `json:"radius,omitempty" db:"radius"` // 米
	Points        []LatLng       `json:"points,omitempty"`
	Rules         []GeofenceRule `json:"rules"`
	VehicleIDs    []string       `json:"vehicle_ids"`
	LastTriggered *time.Time     `json:"last_triggered,omitempty" db:"last_triggered"`
	Color         string         `json:"color,omitempty" db:"color"`
	CreatedAt     time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at" db:"updated_at"`
}

// AppliesTo 判断围栏是否作用于指定车辆
func (g *Geofence) AppliesTo(vehicleID string) bool {
	for _, id := range g.VehicleIDs {
		if id == vehicleID {
			return true
		}
	}
	return false
}

// Rule 查找指定类型的规则，不存在返回 nil
func (g *Geofence) Rule(t GeofenceRuleType) *GeofenceRule {
	for i := range g.Rules {
		if g.Rules[i].Type == t {
			return &g.Rules[i]
		}
	}
	return nil
}
