package service

import (
	"context"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"fleettrack/internal/models"
)

// 模拟器扰动参数
const (
	simMaxSpeed      = 120
	simSpeedJitter   = 5     // km/h
	simCoordJitter   = 0.001 // 度
	simHeadingJitter = 15    // 度
)

// simulateLoop 演示模式的位置模拟循环，按固定间隔给 moving
// 车辆生成扰动后的上报，走与外部摄入相同的落库路径
func (s *TrackerService) simulateLoop(ctx context.Context) {
	defer s.wg.Done()

	interval := s.cfg.SimulationInterval
	if interval <= 0 {
		interval = 3 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.logger.Info("Simulation loop started", zap.Duration("interval", interval))

	for {
		select {
		case <-s.stopCh:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.simulateTick(ctx)
		}
	}
}

// simulateTick 对每辆 moving 车辆生成一次模拟上报
func (s *TrackerService) simulateTick(ctx context.Context) {
	vehicles, err := s.store.ListVehicles(ctx)
	if err != nil {
		s.logger.Error("Simulator failed to list vehicles", zap.Error(err))
		return
	}

	now := time.Now()
	for _, v := range vehicles {
		if v.Status != models.StatusMoving {
			continue
		}

		speed := v.CurrentSpeed + rand.Intn(2*simSpeedJitter+1) - simSpeedJitter
		if speed < 0 {
			speed = 0
		}
		if speed > simMaxSpeed {
			speed = simMaxSpeed
		}

		heading := v.Heading + rand.Intn(2*simHeadingJitter+1) - simHeadingJitter
		heading = ((heading % 360) + 360) % 360

		lat := v.Latitude + (rand.Float64()*2-1)*simCoordJitter
		lon := v.Longitude + (rand.Float64()*2-1)*simCoordJitter

		// 模拟器不推进状态机，车辆保持 moving
		if _, err := s.applyUpdate(ctx, v, positionUpdate{
			latitude:  lat,
			longitude: lon,
			speed:     speed,
			heading:   heading,
			status:    v.Status,
			at:        now,
		}); err != nil {
			s.logger.Error("Simulator failed to apply update",
				zap.String("vehicle_id", v.ID),
				zap.Error(err))
		}
	}
}
