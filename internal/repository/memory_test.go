package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"fleettrack/internal/models"
)

func newTestVehicle(id, plate string) *models.Vehicle {
	now := time.Now()
	return &models.Vehicle{
		ID:           id,
		Name:         "Test " + id,
		LicensePlate: plate,
		Status:       models.StatusOffline,
		Ignition:     models.IgnitionOff,
		SpeedLimit:   80,
		Latitude:     52.52,
		Longitude:    13.405,
		Accuracy:     5,
		LastUpdate:   now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestMemoryVehicleCRUD(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	if _, err := s.GetVehicle(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	v := newTestVehicle("v1", "B-1234-XY")
	if err := s.CreateVehicle(ctx, v); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := s.GetVehicle(ctx, "v1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.LicensePlate != "B-1234-XY" {
		t.Errorf("plate = %q", got.LicensePlate)
	}

	got.CurrentSpeed = 50
	got.Status = models.StatusMoving
	if err := s.UpdateVehicle(ctx, got); err != nil {
		t.Fatalf("update: %v", err)
	}
	got2, _ := s.GetVehicle(ctx, "v1")
	if got2.CurrentSpeed != 50 || got2.Status != models.StatusMoving {
		t.Errorf("update not applied: %+v", got2)
	}

	if err := s.DeleteVehicle(ctx, "v1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.GetVehicle(ctx, "v1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestMemoryPlateCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	if err := s.CreateVehicle(ctx, newTestVehicle("v1", "B-1042-TK")); err != nil {
		t.Fatalf("create: %v", err)
	}

	for _, plate := range []string{"B-1042-TK", "b-1042-tk", "B-1042-tk"} {
		got, err := s.GetVehicleByPlate(ctx, plate)
		if err != nil {
			t.Fatalf("lookup %q: %v", plate, err)
		}
		if got.ID != "v1" {
			t.Errorf("lookup %q returned %q", plate, got.ID)
		}
	}

	if err := s.CreateVehicle(ctx, newTestVehicle("v2", "b-1042-tk")); !errors.Is(err, ErrDuplicatePlate) {
		t.Fatalf("expected ErrDuplicatePlate, got %v", err)
	}
}

func TestMemoryDeleteCascadesSamples(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	if err := s.CreateVehicle(ctx, newTestVehicle("v1", "B-1")); err != nil {
		t.Fatalf("create: %v", err)
	}
	now := time.Now()
	err := s.CreateSample(ctx, &models.LocationSample{
		ID: "s1", VehicleID: "v1", Latitude: 52.5, Longitude: 13.4,
		Status: models.StatusMoving, Ignition: models.IgnitionOn, RecordedAt: now,
	})
	if err != nil {
		t.Fatalf("create sample: %v", err)
	}

	if err := s.DeleteVehicle(ctx, "v1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	samples, err := s.ListSamples(ctx, "v1", now.Add(-time.Hour), now.Add(time.Hour))
	if err != nil {
		t.Fatalf("list samples: %v", err)
	}
	if len(samples) != 0 {
		t.Errorf("expected no samples after delete, got %d", len(samples))
	}
}

func TestMemorySampleWindow(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i, offset := range []time.Duration{-2 * time.Hour, 0, 30 * time.Minute, 3 * time.Hour} {
		err := s.CreateSample(ctx, &models.LocationSample{
			ID: string(rune('a' + i)), VehicleID: "v1",
			Status: models.StatusMoving, Ignition: models.IgnitionOn,
			RecordedAt: base.Add(offset),
		})
		if err != nil {
			t.Fatalf("create sample: %v", err)
		}
	}

	samples, err := s.ListSamples(ctx, "v1", base, base.Add(time.Hour))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(samples) != 2 {
		t.Fatalf("expected 2 samples in window, got %d", len(samples))
	}
	if !samples[0].RecordedAt.Before(samples[1].RecordedAt) {
		t.Error("samples not ordered by recorded_at")
	}
}

func TestMemoryViolationsDescending(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		err := s.CreateViolation(ctx, &models.SpeedViolation{
			ID: string(rune('a' + i)), VehicleID: "v1", VehicleName: "Test",
			Speed: 90, SpeedLimit: 80, ExcessSpeed: 10,
			Timestamp: base.Add(time.Duration(i) * time.Hour),
		})
		if err != nil {
			t.Fatalf("create violation: %v", err)
		}
	}

	violations, err := s.ListViolations(ctx, base, base.Add(24*time.Hour))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(violations) != 3 {
		t.Fatalf("expected 3 violations, got %d", len(violations))
	}
	for i := 1; i < len(violations); i++ {
		if violations[i].Timestamp.After(violations[i-1].Timestamp) {
			t.Error("violations not in descending order")
		}
	}
}

func TestMemoryAlertLifecycle(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()
	now := time.Now()

	for _, id := range []string{"a1", "a2"} {
		err := s.CreateAlert(ctx, &models.Alert{
			ID: id, Type: models.AlertSpeed, Priority: models.PriorityWarning,
			VehicleID: "v1", VehicleName: "Test", Message: "speeding", Timestamp: now,
		})
		if err != nil {
			t.Fatalf("create alert: %v", err)
		}
	}

	if err := s.MarkAllAlertsRead(ctx); err != nil {
		t.Fatalf("mark read: %v", err)
	}
	alerts, _ := s.ListAlerts(ctx)
	for _, a := range alerts {
		if !a.Read {
			t.Errorf("alert %s not marked read", a.ID)
		}
	}

	if err := s.ClearReadAlerts(ctx); err != nil {
		t.Fatalf("clear read: %v", err)
	}
	alerts, _ = s.ListAlerts(ctx)
	if len(alerts) != 0 {
		t.Errorf("expected no alerts after clear, got %d", len(alerts))
	}
}

func TestMemorySeedIdempotent(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	if err := s.Seed(ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}
	vehicles, _ := s.ListVehicles(ctx)
	if len(vehicles) == 0 {
		t.Fatal("seed produced no vehicles")
	}
	first := len(vehicles)

	if err := s.Seed(ctx); err != nil {
		t.Fatalf("second seed: %v", err)
	}
	vehicles, _ = s.ListVehicles(ctx)
	if len(vehicles) != first {
		t.Errorf("seed not idempotent: %d vs %d", len(vehicles), first)
	}
}

func TestMemoryClonesOnRead(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	if err := s.CreateVehicle(ctx, newTestVehicle("v1", "B-1")); err != nil {
		t.Fatalf("create: %v", err)
	}
	got, _ := s.GetVehicle(ctx, "v1")
	got.Name = "mutated"

	again, _ := s.GetVehicle(ctx, "v1")
	if again.Name == "mutated" {
		t.Error("stored vehicle mutated through returned copy")
	}
}
