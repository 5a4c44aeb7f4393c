package state

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/looplab/fsm"

	"fleettrack/internal/models"
)

// 事件常量
const (
	EventStartMoving = "start_moving"
	EventStop        = "stop"
	EventGoIdle      = "go_idle"
	EventGoOffline   = "go_offline"
)

// Machine 单辆车的状态机，moving/stopped 由上报速度驱动，
// idle/offline 由守护循环按停留时长和静默时长驱动
type Machine struct {
	mu            sync.RWMutex
	vehicleID     string
	fsm           *fsm.FSM
	since         time.Time
	onStateChange func(vehicleID, from, to string)
}

// NewMachine 创建状态机
func NewMachine(vehicleID string, initial models.VehicleStatus, onStateChange func(vehicleID, from, to string)) *Machine {
	if initial == "" {
		initial = models.StatusOffline
	}

	m := &Machine{
		vehicleID:     vehicleID,
		since:         time.Now(),
		onStateChange: onStateChange,
	}

	m.fsm = fsm.NewFSM(
		string(initial),
		fsm.Events{
			// 任意状态收到非零速度即进入 moving
			{Name: EventStartMoving, Src: []string{string(models.StatusStopped), string(models.StatusIdle), string(models.StatusOffline)}, Dst: string(models.StatusMoving)},

			// 零速度回到 stopped，idle/offline 车辆重新上报也先回 stopped
			{Name: EventStop, Src: []string{string(models.StatusMoving), string(models.StatusIdle), string(models.StatusOffline)}, Dst: string(models.StatusStopped)},

			// 停留超时进入 idle
			{Name: EventGoIdle, Src: []string{string(models.StatusStopped)}, Dst: string(models.StatusIdle)},

			// 静默超时进入 offline
			{Name: EventGoOffline, Src: []string{string(models.StatusMoving), string(models.StatusStopped), string(models.StatusIdle)}, Dst: string(models.StatusOffline)},
		},
		fsm.Callbacks{
			"after_event": func(ctx context.Context, e *fsm.Event) {
				if m.onStateChange != nil && e.Src != e.Dst {
					m.onStateChange(m.vehicleID, e.Src, e.Dst)
				}
			},
		},
	)

	return m
}

// Current 获取当前状态
func (m *Machine) Current() models.VehicleStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return models.VehicleStatus(m.fsm.Current())
}

// Since 当前状态的起始时间
func (m *Machine) Since() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.since
}

// Trigger 触发事件，非法转换返回错误
func (m *Machine) Trigger(event string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.fsm.Event(context.Background(), event); err != nil {
		return fmt.Errorf("trigger event %s: %w", event, err)
	}
	m.since = time.Now()
	return nil
}

// Can 检查事件是否可触发
func (m *Machine) Can(event string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.fsm.Can(event)
}

// Apply 根据上报速度推进状态，返回推进后的状态
// 同状态重复上报不视为错误
func (m *Machine) Apply(speed int) models.VehicleStatus {
	event := EventStop
	if speed > 0 {
		event = EventStartMoving
	}
	if m.Can(event) {
		// 失败仅发生在并发竞争下的非法转换，忽略并返回现状
		_ = m.Trigger(event)
	}
	return m.Current()
}

// Manager 状态机管理器，按车辆 ID 索引
type Manager struct {
	mu       sync.RWMutex
	machines map[string]*Machine
	onChange func(vehicleID, from, to string)
}

// NewManager 创建管理器
func NewManager(onChange func(vehicleID, from, to string)) *Manager {
	return &Manager{
		machines: make(map[string]*Machine),
		onChange: onChange,
	}
}

// GetOrCreate 获取或创建状态机
func (m *Manager) GetOrCreate(vehicleID string, initial models.VehicleStatus) *Machine {
	m.mu.Lock()
	defer m.mu.Unlock()

	if machine, ok := m.machines[vehicleID]; ok {
		return machine
	}

	machine := NewMachine(vehicleID, initial, m.onChange)
	m.machines[vehicleID] = machine
	return machine
}

// Get 获取状态机
func (m *Manager) Get(vehicleID string) (*Machine, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	machine, ok := m.machines[vehicleID]
	return machine, ok
}

// Remove 移除状态机，车辆删除时调用
func (m *Manager) Remove(vehicleID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.machines, vehicleID)
}
