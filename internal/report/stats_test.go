package report

import (
	"fmt"
	"testing"
	"time"

	"fleettrack/internal/models"
)

var base = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func violation(vehicleID, name string, excess int, at time.Time) *models.SpeedViolation {
	return &models.SpeedViolation{
		VehicleID:   vehicleID,
		VehicleName: name,
		Speed:       60 + excess,
		SpeedLimit:  60,
		ExcessSpeed: excess,
		Timestamp:   at,
	}
}

func TestViolationStatsEmpty(t *testing.T) {
	stats := ViolationStats(nil)
	if stats.TotalViolations != 0 || stats.VehiclesWithViolations != 0 || stats.AverageExcessSpeed != 0 {
		t.Errorf("empty window should yield zero totals, got %+v", stats)
	}
	if len(stats.ViolationsByDay) != 0 || len(stats.TopViolators) != 0 {
		t.Errorf("empty window should yield empty slices, got %+v", stats)
	}
}

func TestViolationStatsAggregation(t *testing.T) {
	violations := []*models.SpeedViolation{
		violation("v1", "Truck 01", 10, base),
		violation("v1", "Truck 01", 20, base.Add(time.Hour)),
		violation("v2", "Van 02", 6, base.Add(2*time.Hour)),
	}
	stats := ViolationStats(violations)

	if stats.TotalViolations != 3 {
		t.Errorf("TotalViolations = %d, want 3", stats.TotalViolations)
	}
	if stats.VehiclesWithViolations != 2 {
		t.Errorf("VehiclesWithViolations = %d, want 2", stats.VehiclesWithViolations)
	}
	if want := float64(10+20+6) / 3; stats.AverageExcessSpeed != want {
		t.Errorf("AverageExcessSpeed = %f, want %f", stats.AverageExcessSpeed, want)
	}

	if len(stats.TopViolators) != 2 {
		t.Fatalf("TopViolators len = %d, want 2", len(stats.TopViolators))
	}
	first := stats.TopViolators[0]
	if first.VehicleID != "v1" || first.TotalViolations != 2 {
		t.Errorf("top violator = %+v, want v1 with 2", first)
	}
	if first.AverageExcessSpeed != 15 {
		t.Errorf("v1 average excess = %f, want 15", first.AverageExcessSpeed)
	}
	if !first.LastViolation.Equal(base.Add(time.Hour)) {
		t.Errorf("v1 last violation = %v, want %v", first.LastViolation, base.Add(time.Hour))
	}
}

func TestViolationStatsByDay(t *testing.T) {
	violations := []*models.SpeedViolation{
		violation("v1", "Truck 01", 5, time.Date(2025, 6, 2, 1, 0, 0, 0, time.UTC)),
		violation("v1", "Truck 01", 5, time.Date(2025, 6, 1, 23, 59, 0, 0, time.UTC)),
		violation("v2", "Van 02", 5, time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)),
	}
	stats := ViolationStats(violations)

	want := []models.DayCount{
		{Date: "2025-06-01", Count: 1},
		{Date: "2025-06-02", Count: 2},
	}
	if len(stats.ViolationsByDay) != len(want) {
		t.Fatalf("ViolationsByDay len = %d, want %d", len(stats.ViolationsByDay), len(want))
	}
	for i, d := range want {
		if stats.ViolationsByDay[i] != d {
			t.Errorf("ViolationsByDay[%d] = %+v, want %+v", i, stats.ViolationsByDay[i], d)
		}
	}
}

func TestTopViolatorsLimitAndOrder(t *testing.T) {
	var violations []*models.SpeedViolation
	// 15 辆车，车辆 i 产生 i+1 条违章
	for i := 0; i < 15; i++ {
		id := fmt.Sprintf("v%02d", i)
		for j := 0; j <= i; j++ {
			violations = append(violations, violation(id, id, 5, base.Add(time.Duration(j)*time.Minute)))
		}
	}
	stats := ViolationStats(violations)

	if len(stats.TopViolators) != 10 {
		t.Fatalf("TopViolators len = %d, want 10", len(stats.TopViolators))
	}
	for i := 1; i < len(stats.TopViolators); i++ {
		if stats.TopViolators[i].TotalViolations > stats.TopViolators[i-1].TotalViolations {
			t.Errorf("TopViolators not sorted non-increasing at %d", i)
		}
	}
	if stats.TopViolators[0].TotalViolations != 15 {
		t.Errorf("top count = %d, want 15", stats.TopViolators[0].TotalViolations)
	}
}

func sampleAt(vehicleID string, at time.Time, lat, lon float64, speed int) *models.LocationSample {
	return &models.LocationSample{
		VehicleID:  vehicleID,
		Latitude:   lat,
		Longitude:  lon,
		Speed:      speed,
		RecordedAt: at,
	}
}

func TestFleetStatsEmptyWindow(t *testing.T) {
	vehicles := []*models.Vehicle{{ID: "v1", Name: "Truck 01"}, {ID: "v2", Name: "Van 02"}}
	stats := FleetStats(vehicles, nil)

	if stats.TotalVehicles != 2 {
		t.Errorf("TotalVehicles = %d, want 2 (roster independent of window)", stats.TotalVehicles)
	}
	if stats.AverageSpeed != 0 || stats.TotalDistance != 0 {
		t.Errorf("empty window should yield zero aggregates, got %+v", stats)
	}
	if stats.MostActiveVehicle != nil {
		t.Errorf("MostActiveVehicle = %+v, want nil", stats.MostActiveVehicle)
	}
}

func TestFleetStatsDistanceAndMostActive(t *testing.T) {
	vehicles := []*models.Vehicle{{ID: "v1", Name: "Truck 01"}, {ID: "v2", Name: "Van 02"}}
	samples := []*models.LocationSample{
		// v1 沿赤道走 0.02 度 ≈ 2224 m
		sampleAt("v1", base, 0, 0, 40),
		sampleAt("v1", base.Add(time.Minute), 0, 0.01, 50),
		sampleAt("v1", base.Add(2*time.Minute), 0, 0.02, 60),
		// v2 走 0.005 度 ≈ 556 m
		sampleAt("v2", base, 10, 10, 20),
		sampleAt("v2", base.Add(time.Minute), 10, 10.005, 30),
	}
	stats := FleetStats(vehicles, samples)

	if stats.TotalVehicles != 2 {
		t.Errorf("TotalVehicles = %d, want 2", stats.TotalVehicles)
	}
	if want := 40; stats.AverageSpeed != want { // (40+50+60+20+30)/5
		t.Errorf("AverageSpeed = %d, want %d", stats.AverageSpeed, want)
	}
	if stats.MostActiveVehicle == nil || stats.MostActiveVehicle.ID != "v1" {
		t.Fatalf("MostActiveVehicle = %+v, want v1", stats.MostActiveVehicle)
	}
	if stats.MostActiveVehicle.AvgSpeed != 55 { // (50+60)/2，首个样本不计入分段速度
		t.Errorf("most active AvgSpeed = %d, want 55", stats.MostActiveVehicle.AvgSpeed)
	}
	if stats.TotalDistance < 2700 || stats.TotalDistance > 2850 {
		t.Errorf("TotalDistance = %f, want ~2780", stats.TotalDistance)
	}
}

func TestFleetStatsUnsortedInput(t *testing.T) {
	vehicles := []*models.Vehicle{{ID: "v1", Name: "Truck 01"}}
	// 乱序输入，距离必须按时间排序后计算
	samples := []*models.LocationSample{
		sampleAt("v1", base.Add(2*time.Minute), 0, 0.02, 60),
		sampleAt("v1", base, 0, 0, 40),
		sampleAt("v1", base.Add(time.Minute), 0, 0.01, 50),
	}
	stats := FleetStats(vehicles, samples)
	if stats.TotalDistance < 2200 || stats.TotalDistance > 2250 {
		t.Errorf("TotalDistance = %f, want ~2224 (sorted by time)", stats.TotalDistance)
	}
}

func TestFleetStatsIdempotent(t *testing.T) {
	vehicles := []*models.Vehicle{{ID: "v1", Name: "Truck 01"}, {ID: "v2", Name: "Van 02"}}
	samples := []*models.LocationSample{
		sampleAt("v1", base, 0, 0, 40),
		sampleAt("v1", base.Add(time.Minute), 0, 0.01, 50),
		sampleAt("v2", base, 10, 10, 20),
	}
	a := FleetStats(vehicles, samples)
	b := FleetStats(vehicles, samples)

	if a.TotalVehicles != b.TotalVehicles || a.AverageSpeed != b.AverageSpeed || a.TotalDistance != b.TotalDistance {
		t.Errorf("fleet stats not idempotent: %+v vs %+v", a, b)
	}
	if (a.MostActiveVehicle == nil) != (b.MostActiveVehicle == nil) {
		t.Fatal("most active vehicle presence differs between runs")
	}
	if a.MostActiveVehicle != nil && *a.MostActiveVehicle != *b.MostActiveVehicle {
		t.Errorf("most active vehicle differs: %+v vs %+v", a.MostActiveVehicle, b.MostActiveVehicle)
	}
}
