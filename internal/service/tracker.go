package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"fleettrack/internal/config"
	"fleettrack/internal/models"
	"fleettrack/internal/repository"
	"fleettrack/internal/state"
)

// ErrInvalidInput 输入校验失败
var ErrInvalidInput = errors.New("invalid input")

// 位置来源常量
const (
	SourceSimulate = "simulate"
	SourceIngest   = "ingest"
)

// TrackerService 车队追踪服务，负责位置摄入、状态机推进、
// 模拟器与订阅者广播
type TrackerService struct {
	cfg    *config.Config
	logger *zap.Logger
	store  repository.Storage
	cache  *repository.ReportCache
	states *state.Manager

	mu      sync.RWMutex
	stopCh  chan struct{}
	wg      sync.WaitGroup
	running bool

	subscribers map[int]chan []*models.Vehicle
	nextSubID   int

	// 围栏跟踪：车辆 ID -> 围栏 ID -> 是否在内
	insideFence map[string]map[string]bool
	// 驻留跟踪：车辆 ID -> 围栏 ID -> 进入时间
	enteredAt map[string]map[string]time.Time
	// 驻留告警去重：车辆 ID -> 围栏 ID
	dwellFired map[string]map[string]bool

	// 最后上报时间，守护循环据此判定 offline
	lastSeen map[string]time.Time
}

// NewTracker 创建追踪服务
func NewTracker(
	cfg *config.Config,
	logger *zap.Logger,
	store repository.Storage,
	cache *repository.ReportCache,
) *TrackerService {
	svc := &TrackerService{
		cfg:         cfg,
		logger:      logger,
		store:       store,
		cache:       cache,
		stopCh:      make(chan struct{}),
		subscribers: make(map[int]chan []*models.Vehicle),
		insideFence: make(map[string]map[string]bool),
		enteredAt:   make(map[string]map[string]time.Time),
		dwellFired:  make(map[string]map[string]bool),
		lastSeen:    make(map[string]time.Time),
	}

	svc.states = state.NewManager(svc.onStateChange)
	return svc
}

// Start 启动服务，加载已有车辆的状态机并启动后台循环
func (s *TrackerService) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		s.logger.Info("Tracker service already running, skipping start")
		return nil
	}
	s.stopCh = make(chan struct{})
	s.running = true
	s.mu.Unlock()

	s.logger.Info("Starting tracker service")

	vehicles, err := s.store.ListVehicles(ctx)
	if err != nil {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
		return err
	}
	now := time.Now()
	for _, v := range vehicles {
		s.states.GetOrCreate(v.ID, v.Status)
		s.mu.Lock()
		s.lastSeen[v.ID] = now
		s.mu.Unlock()
	}

	if s.cfg.PositionSource == SourceSimulate {
		s.wg.Add(1)
		go s.simulateLoop(ctx)
	}

	s.wg.Add(1)
	go s.watchdogLoop(ctx)

	s.logger.Info("Tracker service started",
		zap.String("position_source", s.cfg.PositionSource),
		zap.Int("vehicles", len(vehicles)))
	return nil
}

// Stop 停止服务并等待后台循环退出
func (s *TrackerService) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	close(s.stopCh)
	s.mu.Unlock()

	s.wg.Wait()
	s.logger.Info("Tracker service stopped")
}

// Subscribe 订阅车辆快照广播，返回通道和取消函数
// 取消后通道关闭，重复取消为空操作
func (s *TrackerService) Subscribe() (<-chan []*models.Vehicle, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSubID
	s.nextSubID++
	ch := make(chan []*models.Vehicle, 8)
	s.subscribers[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if sub, ok := s.subscribers[id]; ok {
				delete(s.subscribers, id)
				close(sub)
			}
		})
	}
	return ch, cancel
}

// notifySubscribers 广播当前车辆快照，慢消费者丢弃本次更新
func (s *TrackerService) notifySubscribers(ctx context.Context) {
	vehicles, err := s.store.ListVehicles(ctx)
	if err != nil {
		s.logger.Error("Failed to list vehicles for broadcast", zap.Error(err))
		return
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for id, ch := range s.subscribers {
		select {
		case ch <- vehicles:
		default:
			s.logger.Warn("Subscriber channel full, dropping update", zap.Int("subscriber", id))
		}
	}
}

// onStateChange 状态机转换回调
func (s *TrackerService) onStateChange(vehicleID, from, to string) {
	s.logger.Info("Vehicle state changed",
		zap.String("vehicle_id", vehicleID),
		zap.String("from", from),
		zap.String("to", to))
}

// ListVehicles 获取车辆列表
func (s *TrackerService) ListVehicles(ctx context.Context) ([]*models.Vehicle, error) {
	return s.store.ListVehicles(ctx)
}

// GetVehicle 按 ID 获取车辆
func (s *TrackerService) GetVehicle(ctx context.Context, id string) (*models.Vehicle, error) {
	return s.store.GetVehicle(ctx, id)
}

// watchdogLoop 状态守护循环：stopped 停留超时转 idle，
// 静默超时转 offline 并产生系统告警
func (s *TrackerService) watchdogLoop(ctx context.Context) {
	defer s.wg.Done()

	interval := s.cfg.IdleAfter / 4
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.checkTimeouts(ctx)
		}
	}
}

// checkTimeouts 扫描所有车辆的停留与静默时长
func (s *TrackerService) checkTimeouts(ctx context.Context) {
	vehicles, err := s.store.ListVehicles(ctx)
	if err != nil {
		s.logger.Error("Watchdog failed to list vehicles", zap.Error(err))
		return
	}

	now := time.Now()
	for _, v := range vehicles {
		machine := s.states.GetOrCreate(v.ID, v.Status)

		s.mu.RLock()
		seen, ok := s.lastSeen[v.ID]
		s.mu.RUnlock()
		if !ok {
			continue
		}

		switch machine.Current() {
		case models.StatusStopped:
			// 熄火的 stopped 车辆不转 idle
			if v.Ignition == models.IgnitionOn && now.Sub(machine.Since()) > s.cfg.IdleAfter {
				if err := machine.Trigger(state.EventGoIdle); err == nil {
					s.persistStatus(ctx, v, models.StatusIdle)
				}
			}
		case models.StatusMoving, models.StatusIdle:
		}

		if machine.Current() != models.StatusOffline && now.Sub(seen) > s.cfg.OfflineAfter {
			if err := machine.Trigger(state.EventGoOffline); err == nil {
				s.persistStatus(ctx, v, models.StatusOffline)
				s.createSystemAlert(ctx, v, "Vehicle went offline: no position reports received")
			}
		}
	}
}

// persistStatus 仅更新车辆状态字段
func (s *TrackerService) persistStatus(ctx context.Context, v *models.Vehicle, status models.VehicleStatus) {
	v.Status = status
	if status == models.StatusOffline {
		v.CurrentSpeed = 0
	}
	v.UpdatedAt = time.Now()
	if err := s.store.UpdateVehicle(ctx, v); err != nil {
		s.logger.Error("Failed to persist vehicle status",
			zap.String("vehicle_id", v.ID),
			zap.String("status", string(status)),
			zap.Error(err))
		return
	}
	s.notifySubscribers(ctx)
}
