// Package report 计算违章与车队统计报表
package report

import (
	"math"
	"sort"

	"fleettrack/internal/geo"
	"fleettrack/internal/models"
)

// topViolatorsLimit 排行榜条目上限
const topViolatorsLimit = 10

// ViolationStats 汇总时间窗口内的违章记录。
// 空输入返回零值报表，而非错误。
func ViolationStats(violations []*models.SpeedViolation) *models.VehicleStats {
	type vehicleAgg struct {
		name        string
		count       int
		totalExcess int
		last        *models.SpeedViolation
	}

	byVehicle := make(map[string]*vehicleAgg)
	order := make([]string, 0)
	totalExcess := 0

	for _, v := range violations {
		totalExcess += v.ExcessSpeed
		agg, ok := byVehicle[v.VehicleID]
		if !ok {
			agg = &vehicleAgg{name: v.VehicleName, last: v}
			byVehicle[v.VehicleID] = agg
			order = append(order, v.VehicleID)
		}
		agg.count++
		agg.totalExcess += v.ExcessSpeed
		// 严格大于：时间相同保留先出现的记录
		if v.Timestamp.After(agg.last.Timestamp) {
			agg.last = v
		}
	}

	byDay := make(map[string]int)
	for _, v := range violations {
		byDay[v.Timestamp.UTC().Format("2006-01-02")]++
	}
	days := make([]models.DayCount, 0, len(byDay))
	for date, count := range byDay {
		days = append(days, models.DayCount{Date: date, Count: count})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })

	top := make([]models.TopViolator, 0, len(order))
	for _, id := range order {
		agg := byVehicle[id]
		top = append(top, models.TopViolator{
			VehicleID:          id,
			VehicleName:        agg.name,
			TotalViolations:    agg.count,
			AverageExcessSpeed: float64(agg.totalExcess) / float64(agg.count),
			LastViolation:      agg.last.Timestamp,
		})
	}
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].TotalViolations > top[j].TotalViolations
	})
	if len(top) > topViolatorsLimit {
		top = top[:topViolatorsLimit]
	}

	avgExcess := 0.0
	if len(violations) > 0 {
		avgExcess = float64(totalExcess) / float64(len(violations))
	}

	return &models.VehicleStats{
		TotalViolations:        len(violations),
		VehiclesWithViolations: len(byVehicle),
		AverageExcessSpeed:     avgExcess,
		ViolationsByDay:        days,
		TopViolators:           top,
	}
}

// FleetStats 汇总时间窗口内的车队统计。
// totalVehicles 取当前车辆总数，与窗口无关。
func FleetStats(vehicles []*models.Vehicle, samples []*models.LocationSample) *models.FleetStats {
	stats := &models.FleetStats{TotalVehicles: len(vehicles)}
	if len(samples) == 0 {
		return stats
	}

	totalSpeed := 0
	for _, s := range samples {
		totalSpeed += s.Speed
	}
	stats.AverageSpeed = int(math.Round(float64(totalSpeed) / float64(len(samples))))

	byVehicle := make(map[string][]*models.LocationSample)
	for _, s := range samples {
		byVehicle[s.VehicleID] = append(byVehicle[s.VehicleID], s)
	}

	var totalDistance float64
	var mostActive *models.MostActiveVehicle
	var maxDistance float64

	for _, v := range vehicles {
		history := byVehicle[v.ID]
		if len(history) == 0 {
			continue
		}
		sort.Slice(history, func(i, j int) bool {
			return history[i].RecordedAt.Before(history[j].RecordedAt)
		})

		var distance float64
		legSpeedTotal := 0
		legCount := 0
		for i := 1; i < len(history); i++ {
			distance += geo.Distance(
				history[i-1].Latitude, history[i-1].Longitude,
				history[i].Latitude, history[i].Longitude,
			)
			legSpeedTotal += history[i].Speed
			legCount++
		}
		totalDistance += distance

		// 严格大于：距离相同保留先比较到的车辆
		if distance > maxDistance {
			maxDistance = distance
			avgSpeed := 0
			if legCount > 0 {
				avgSpeed = int(math.Round(float64(legSpeedTotal) / float64(legCount)))
			}
			mostActive = &models.MostActiveVehicle{
				ID:       v.ID,
				Name:     v.Name,
				Distance: math.Round(distance),
				AvgSpeed: avgSpeed,
			}
		}
	}

	stats.TotalDistance = math.Round(totalDistance)
	stats.MostActiveVehicle = mostActive
	return stats
}
