// Package repository 数据持久层：Postgres 与内存两种实现，启动时二选一
package repository

import (
	"context"
	"errors"
	"time"

	"fleettrack/internal/models"
)

// 存储层哨兵错误
var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicatePlate = errors.New("license plate already registered")
)

// Storage 统一存储能力接口
type Storage interface {
	// 车辆
	ListVehicles(ctx context.Context) ([]*models.Vehicle, error)
	GetVehicle(ctx context.Context, id string) (*models.Vehicle, error)
	GetVehicleByPlate(ctx context.Context, plate string) (*models.Vehicle, error) // 不区分大小写
	CreateVehicle(ctx context.Context, v *models.Vehicle) error
	UpdateVehicle(ctx context.Context, v *models.Vehicle) error
	DeleteVehicle(ctx context.Context, id string) error // 级联删除位置历史

	// 位置历史：按车辆追加，读取按 recorded_at 升序
	CreateSample(ctx context.Context, s *models.LocationSample) error
	ListSamples(ctx context.Context, vehicleID string, start, end time.Time) ([]*models.LocationSample, error)
	ListAllSamples(ctx context.Context, start, end time.Time) ([]*models.LocationSample, error)

	// 超速违章：只增不改
	CreateViolation(ctx context.Context, v *models.SpeedViolation) error
	ListViolations(ctx context.Context, start, end time.Time) ([]*models.SpeedViolation, error)

	// 地理围栏
	ListGeofences(ctx context.Context) ([]*models.Geofence, error)
	GetGeofence(ctx context.Context, id string) (*models.Geofence, error)
	CreateGeofence(ctx context.Context, g *models.Geofence) error
	UpdateGeofence(ctx context.Context, g *models.Geofence) error
	DeleteGeofence(ctx context.Context, id string) error

	// 告警
	ListAlerts(ctx context.Context) ([]*models.Alert, error)
	GetAlert(ctx context.Context, id string) (*models.Alert, error)
	CreateAlert(ctx context.Context, a *models.Alert) error
	UpdateAlert(ctx context.Context, a *models.Alert) error
	MarkAllAlertsRead(ctx context.Context) error
	ClearReadAlerts(ctx context.Context) error

	// Close 释放底层资源
	Close()
}
