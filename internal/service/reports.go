package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"fleettrack/internal/models"
	"fleettrack/internal/report"
)

// GetSpeedViolations 获取时间窗口内的违章记录
func (s *TrackerService) GetSpeedViolations(ctx context.Context, start, end time.Time) ([]*models.SpeedViolation, error) {
	return s.store.ListViolations(ctx, start, end)
}

// GetViolationStats 生成违章统计报表，命中缓存时直接返回
func (s *TrackerService) GetViolationStats(ctx context.Context, start, end time.Time) (*models.VehicleStats, error) {
	key := s.cache.Key("violations", start, end)

	var cached models.VehicleStats
	if hit, err := s.cache.Get(ctx, key, &cached); err != nil {
		s.logger.Warn("Report cache read failed", zap.Error(err))
	} else if hit {
		return &cached, nil
	}

	violations, err := s.store.ListViolations(ctx, start, end)
	if err != nil {
		return nil, err
	}
	stats := report.ViolationStats(violations)

	if err := s.cache.Set(ctx, key, stats); err != nil {
		s.logger.Warn("Report cache write failed", zap.Error(err))
	}
	return stats, nil
}

// GetFleetStats 生成车队统计报表，命中缓存时直接返回
func (s *TrackerService) GetFleetStats(ctx context.Context, start, end time.Time) (*models.FleetStats, error) {
	key := s.cache.Key("fleet", start, end)

	var cached models.FleetStats
	if hit, err := s.cache.Get(ctx, key, &cached); err != nil {
		s.logger.Warn("Report cache read failed", zap.Error(err))
	} else if hit {
		return &cached, nil
	}

	vehicles, err := s.store.ListVehicles(ctx)
	if err != nil {
		return nil, err
	}
	samples, err := s.store.ListAllSamples(ctx, start, end)
	if err != nil {
		return nil, err
	}
	stats := report.FleetStats(vehicles, samples)

	if err := s.cache.Set(ctx, key, stats); err != nil {
		s.logger.Warn("Report cache write failed", zap.Error(err))
	}
	return stats, nil
}
