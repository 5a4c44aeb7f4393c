// Package trip 根据位置历史重建行程
package trip

import (
	"fmt"
	"math"
	"time"

	"fleettrack/internal/geo"
	"fleettrack/internal/models"
)

// stopThreshold 停靠判定阈值：零速区间首末样本间隔必须严格大于该值
const stopThreshold = 60 * time.Second

// stopRun 一段连续零速样本区间，start/end 为样本下标
type stopRun struct {
	start int
	end   int
}

// Build 将单辆车按 recorded_at 升序排列的位置历史重建为一条行程。
// 样本为空时返回 nil，表示该窗口无行程。
func Build(vehicleID string, samples []*models.LocationSample) *models.Trip {
	if len(samples) == 0 {
		return nil
	}

	points := make([]models.LocationPoint, len(samples))
	for i, s := range samples {
		points[i] = models.LocationPoint{
			Latitude:  s.Latitude,
			Longitude: s.Longitude,
			Speed:     s.Speed,
			Heading:   s.Heading,
			Timestamp: s.RecordedAt,
			Accuracy:  s.Accuracy,
		}
	}

	// 速度统计：最大值与未加权平均值
	maxSpeed := 0
	totalSpeed := 0
	for _, s := range samples {
		if s.Speed > maxSpeed {
			maxSpeed = s.Speed
		}
		totalSpeed += s.Speed
	}
	avgSpeed := int(math.Round(float64(totalSpeed) / float64(len(samples))))

	// 相邻样本间 Haversine 距离累加
	var totalDistance float64
	for i := 1; i < len(samples); i++ {
		totalDistance += geo.Distance(
			samples[i-1].Latitude, samples[i-1].Longitude,
			samples[i].Latitude, samples[i].Longitude,
		)
	}

	startTime := samples[0].RecordedAt
	endTime := samples[len(samples)-1].RecordedAt
	totalMinutes := int(math.Round(endTime.Sub(startTime).Minutes()))

	stops := detectStops(samples)

	var stoppedDur time.Duration
	for _, r := range stops {
		stoppedDur += samples[r.end].RecordedAt.Sub(samples[r.start].RecordedAt)
	}
	stoppedMinutes := int(math.Round(stoppedDur.Minutes()))
	travelMinutes := totalMinutes - stoppedMinutes

	events := buildEvents(vehicleID, samples, stops)

	return &models.Trip{
		ID:            fmt.Sprintf("trip-%s-%d", vehicleID, startTime.UnixMilli()),
		VehicleID:     vehicleID,
		StartTime:     startTime,
		EndTime:       endTime,
		TotalDistance: math.Round(totalDistance),
		TravelTime:    travelMinutes,
		StoppedTime:   stoppedMinutes,
		AverageSpeed:  avgSpeed,
		MaxSpeed:      maxSpeed,
		StopsCount:    len(stops),
		Points:        points,
		Events:        events,
	}
}

// detectStops 找出所有记入的停靠：最长连续零速区间中
// 首末样本间隔严格超过阈值的区间
func detectStops(samples []*models.LocationSample) []stopRun {
	var stops []stopRun
	runStart := -1

	record := func(start, end int) {
		elapsed := samples[end].RecordedAt.Sub(samples[start].RecordedAt)
		if elapsed > stopThreshold {
			stops = append(stops, stopRun{start: start, end: end})
		}
	}

	for i, s := range samples {
		if s.Speed == 0 {
			if runStart < 0 {
				runStart = i
			}
			continue
		}
		if runStart >= 0 {
			record(runStart, i-1)
			runStart = -1
		}
	}
	if runStart >= 0 {
		record(runStart, len(samples)-1)
	}

	return stops
}

// buildEvents 生成行程事件：出发、各停靠、到达。
// 停靠严格位于首末样本之间，构造顺序即时间升序。
func buildEvents(vehicleID string, samples []*models.LocationSample, stops []stopRun) []models.RouteEvent {
	first := samples[0]
	last := samples[len(samples)-1]

	events := make([]models.RouteEvent, 0, len(stops)+2)

	depSpeed := first.Speed
	events = append(events, models.RouteEvent{
		ID:        fmt.Sprintf("dep-%s-%d", vehicleID, first.RecordedAt.UnixMilli()),
		Type:      models.EventDeparture,
		Latitude:  first.Latitude,
		Longitude: first.Longitude,
		Timestamp: first.RecordedAt,
		Speed:     &depSpeed,
	})

	for i, r := range stops {
		start := samples[r.start]
		duration := int(math.Round(samples[r.end].RecordedAt.Sub(start.RecordedAt).Minutes()))
		zero := 0
		events = append(events, models.RouteEvent{
			ID:        fmt.Sprintf("stop-%s-%d", vehicleID, i),
			Type:      models.EventStop,
			Latitude:  start.Latitude,
			Longitude: start.Longitude,
			Timestamp: start.RecordedAt,
			Duration:  &duration,
			Speed:     &zero,
		})
	}

	arrSpeed := last.Speed
	events = append(events, models.RouteEvent{
		ID:        fmt.Sprintf("arr-%s-%d", vehicleID, last.RecordedAt.UnixMilli()),
		Type:      models.EventArrival,
		Latitude:  last.Latitude,
		Longitude: last.Longitude,
		Timestamp: last.RecordedAt,
		Speed:     &arrSpeed,
	})

	return events
}
