package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"fleettrack/internal/models"
)

// MemoryStorage 内存存储实现，用于开发与测试，进程退出后数据丢失
type MemoryStorage struct {
	mu         sync.RWMutex
	vehicles   map[string]*models.Vehicle
	samples    map[string][]*models.LocationSample // 按车辆 ID 分组，按写入顺序追加
	violations []*models.SpeedViolation
	geofences  map[string]*models.Geofence
	alerts     map[string]*models.Alert
	order      []string // 车辆插入顺序
	fenceOrder []string
}

// NewMemory 创建空的内存存储
func NewMemory() *MemoryStorage {
	return &MemoryStorage{
		vehicles:  make(map[string]*models.Vehicle),
		samples:   make(map[string][]*models.LocationSample),
		geofences: make(map[string]*models.Geofence),
		alerts:    make(map[string]*models.Alert),
	}
}

// Close 实现 Storage 接口，内存存储无需释放资源
func (s *MemoryStorage) Close() {}

func cloneVehicle(v *models.Vehicle) *models.Vehicle {
	c := *v
	if v.BatteryLevel != nil {
		b := *v.BatteryLevel
		c.BatteryLevel = &b
	}
	return &c
}

// ListVehicles 按插入顺序获取所有车辆
func (s *MemoryStorage) ListVehicles(ctx context.Context) ([]*models.Vehicle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	vehicles := make([]*models.Vehicle, 0, len(s.order))
	for _, id := range s.order {
		vehicles = append(vehicles, cloneVehicle(s.vehicles[id]))
	}
	return vehicles, nil
}

// GetVehicle 按 ID 获取车辆
func (s *MemoryStorage) GetVehicle(ctx context.Context, id string) (*models.Vehicle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.vehicles[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneVehicle(v), nil
}

// GetVehicleByPlate 按车牌获取车辆，不区分大小写
func (s *MemoryStorage) GetVehicleByPlate(ctx context.Context, plate string) (*models.Vehicle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range s.order {
		v := s.vehicles[id]
		if strings.EqualFold(v.LicensePlate, plate) {
			return cloneVehicle(v), nil
		}
	}
	return nil, ErrNotFound
}

// CreateVehicle 创建车辆，车牌冲突返回 ErrDuplicatePlate
func (s *MemoryStorage) CreateVehicle(ctx context.Context, v *models.Vehicle) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.vehicles {
		if strings.EqualFold(existing.LicensePlate, v.LicensePlate) {
			return ErrDuplicatePlate
		}
	}
	s.vehicles[v.ID] = cloneVehicle(v)
	s.order = append(s.order, v.ID)
	return nil
}

// UpdateVehicle 更新车辆快照
func (s *MemoryStorage) UpdateVehicle(ctx context.Context, v *models.Vehicle) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.vehicles[v.ID]; !ok {
		return ErrNotFound
	}
	s.vehicles[v.ID] = cloneVehicle(v)
	return nil
}

// DeleteVehicle 删除车辆及其位置历史
func (s *MemoryStorage) DeleteVehicle(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.vehicles[id]; !ok {
		return ErrNotFound
	}
	delete(s.vehicles, id)
	delete(s.samples, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// CreateSample 追加位置历史记录
func (s *MemoryStorage) CreateSample(ctx context.Context, sample *models.LocationSample) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := *sample
	if sample.Accuracy != nil {
		a := *sample.Accuracy
		c.Accuracy = &a
	}
	s.samples[sample.VehicleID] = append(s.samples[sample.VehicleID], &c)
	return nil
}

func inWindow(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}

// ListSamples 获取单辆车时间窗口内的位置历史，按 recorded_at 升序
func (s *MemoryStorage) ListSamples(ctx context.Context, vehicleID string, start, end time.Time) ([]*models.LocationSample, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.LocationSample
	for _, sm := range s.samples[vehicleID] {
		if inWindow(sm.RecordedAt, start, end) {
			c := *sm
			out = append(out, &c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].RecordedAt.Before(out[j].RecordedAt) })
	return out, nil
}

// ListAllSamples 获取所有车辆时间窗口内的位置历史
func (s *MemoryStorage) ListAllSamples(ctx context.Context, start, end time.Time) ([]*models.LocationSample, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.LocationSample
	for _, id := range s.order {
		for _, sm := range s.samples[id] {
			if inWindow(sm.RecordedAt, start, end) {
				c := *sm
				out = append(out, &c)
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].RecordedAt.Before(out[j].RecordedAt) })
	return out, nil
}

// CreateViolation 记录超速违章
func (s *MemoryStorage) CreateViolation(ctx context.Context, v *models.SpeedViolation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := *v
	s.violations = append(s.violations, &c)
	return nil
}

// ListViolations 获取时间窗口内的违章记录，按时间倒序
func (s *MemoryStorage) ListViolations(ctx context.Context, start, end time.Time) ([]*models.SpeedViolation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.SpeedViolation
	for _, v := range s.violations {
		if inWindow(v.Timestamp, start, end) {
			c := *v
			out = append(out, &c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out, nil
}

func cloneGeofence(g *models.Geofence) *models.Geofence {
	c := *g
	if g.Center != nil {
		center := *g.Center
		c.Center = &center
	}
	if g.Radius != nil {
		r := *g.Radius
		c.Radius = &r
	}
	c.Points = append([]models.LatLng(nil), g.Points...)
	c.Rules = append([]models.GeofenceRule(nil), g.Rules...)
	c.VehicleIDs = append([]string(nil), g.VehicleIDs...)
	if g.LastTriggered != nil {
		t := *g.LastTriggered
		c.LastTriggered = &t
	}
	return &c
}

// ListGeofences 按插入顺序获取所有围栏
func (s *MemoryStorage) ListGeofences(ctx context.Context) ([]*models.Geofence, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Geofence, 0, len(s.fenceOrder))
	for _, id := range s.fenceOrder {
		out = append(out, cloneGeofence(s.geofences[id]))
	}
	return out, nil
}

// GetGeofence 按 ID 获取围栏
func (s *MemoryStorage) GetGeofence(ctx context.Context, id string) (*models.Geofence, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.geofences[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneGeofence(g), nil
}

// CreateGeofence 创建围栏
func (s *MemoryStorage) CreateGeofence(ctx context.Context, g *models.Geofence) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.geofences[g.ID] = cloneGeofence(g)
	s.fenceOrder = append(s.fenceOrder, g.ID)
	return nil
}

// UpdateGeofence 更新围栏
func (s *MemoryStorage) UpdateGeofence(ctx context.Context, g *models.Geofence) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.geofences[g.ID]; !ok {
		return ErrNotFound
	}
	s.geofences[g.ID] = cloneGeofence(g)
	return nil
}

// DeleteGeofence 删除围栏
func (s *MemoryStorage) DeleteGeofence(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.geofences[id]; !ok {
		return ErrNotFound
	}
	delete(s.geofences, id)
	for i, f := range s.fenceOrder {
		if f == id {
			s.fenceOrder = append(s.fenceOrder[:i], s.fenceOrder[i+1:]...)
			break
		}
	}
	return nil
}

func cloneAlert(a *models.Alert) *models.Alert {
	c := *a
	if a.Latitude != nil {
		v := *a.Latitude
		c.Latitude = &v
	}
	if a.Longitude != nil {
		v := *a.Longitude
		c.Longitude = &v
	}
	if a.Speed != nil {
		v := *a.Speed
		c.Speed = &v
	}
	if a.SpeedLimit != nil {
		v := *a.SpeedLimit
		c.SpeedLimit = &v
	}
	return &c
}

// ListAlerts 获取所有告警，按时间倒序
func (s *MemoryStorage) ListAlerts(ctx context.Context) ([]*models.Alert, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Alert, 0, len(s.alerts))
	for _, a := range s.alerts {
		out = append(out, cloneAlert(a))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out, nil
}

// GetAlert 按 ID 获取告警
func (s *MemoryStorage) GetAlert(ctx context.Context, id string) (*models.Alert, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.alerts[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneAlert(a), nil
}

// CreateAlert 创建告警
func (s *MemoryStorage) CreateAlert(ctx context.Context, a *models.Alert) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.alerts[a.ID] = cloneAlert(a)
	return nil
}

// UpdateAlert 更新告警
func (s *MemoryStorage) UpdateAlert(ctx context.Context, a *models.Alert) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.alerts[a.ID]; !ok {
		return ErrNotFound
	}
	s.alerts[a.ID] = cloneAlert(a)
	return nil
}

// MarkAllAlertsRead 全部标记已读
func (s *MemoryStorage) MarkAllAlertsRead(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.alerts {
		a.Read = true
	}
	return nil
}

// ClearReadAlerts 清除已读告警
func (s *MemoryStorage) ClearReadAlerts(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, a := range s.alerts {
		if a.Read {
			delete(s.alerts, id)
		}
	}
	return nil
}

// seedVehicle 演示车队条目
type seedVehicle struct {
	name       string
	plate      string
	model      string
	status     models.VehicleStatus
	speed      int
	speedLimit int
	lat        float64
	lon        float64
	heading    int
	battery    int
}

// Seed 写入演示车队，仅在存储为空时生效
func (s *MemoryStorage) Seed(ctx context.Context) error {
	vehicles, err := s.ListVehicles(ctx)
	if err != nil {
		return err
	}
	if len(vehicles) > 0 {
		return nil
	}

	seeds := []seedVehicle{
		{"Truck 01", "B-1042-TK", "Volvo FH16", models.StatusMoving, 62, 80, 52.5200, 13.4050, 45, 84},
		{"Truck 02", "B-2718-TK", "Scania R500", models.StatusMoving, 95, 80, 52.4862, 13.3520, 210, 67},
		{"Van 01", "B-0317-VN", "Ford Transit", models.StatusStopped, 0, 60, 52.5310, 13.3847, 0, 91},
		{"Van 02", "B-0925-VN", "Mercedes Sprinter", models.StatusIdle, 0, 60, 52.5004, 13.4196, 120, 45},
		{"Car 01", "B-5501-CR", "VW Passat", models.StatusOffline, 0, 100, 52.5163, 13.3777, 300, 22},
	}

	now := time.Now()
	for _, sv := range seeds {
		ignition := models.IgnitionOff
		if sv.status == models.StatusMoving || sv.status == models.StatusIdle {
			ignition = models.IgnitionOn
		}
		battery := sv.battery
		v := &models.Vehicle{
			ID:           uuid.NewString(),
			Name:         sv.name,
			LicensePlate: sv.plate,
			Model:        sv.model,
			Status:       sv.status,
			Ignition:     ignition,
			CurrentSpeed: sv.speed,
			SpeedLimit:   sv.speedLimit,
			Heading:      sv.heading,
			Latitude:     sv.lat,
			Longitude:    sv.lon,
			Accuracy:     5,
			LastUpdate:   now,
			BatteryLevel: &battery,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := s.CreateVehicle(ctx, v); err != nil {
			return err
		}
	}
	return nil
}
