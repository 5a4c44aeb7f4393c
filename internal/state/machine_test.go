package state

import (
	"testing"

	"fleettrack/internal/models"
)

func TestApplySpeedTransitions(t *testing.T) {
	tests := []struct {
		name    string
		initial models.VehicleStatus
		speed   int
		want    models.VehicleStatus
	}{
		{"stopped to moving", models.StatusStopped, 40, models.StatusMoving},
		{"idle to moving", models.StatusIdle, 10, models.StatusMoving},
		{"offline to moving", models.StatusOffline, 5, models.StatusMoving},
		{"moving to stopped", models.StatusMoving, 0, models.StatusStopped},
		{"idle to stopped", models.StatusIdle, 0, models.StatusStopped},
		{"offline to stopped", models.StatusOffline, 0, models.StatusStopped},
		{"moving stays moving", models.StatusMoving, 60, models.StatusMoving},
		{"stopped stays stopped", models.StatusStopped, 0, models.StatusStopped},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMachine("v1", tt.initial, nil)
			if got := m.Apply(tt.speed); got != tt.want {
				t.Errorf("Apply(%d) from %s = %s, want %s", tt.speed, tt.initial, got, tt.want)
			}
		})
	}
}

func TestIdleAndOfflineEvents(t *testing.T) {
	m := NewMachine("v1", models.StatusStopped, nil)

	if err := m.Trigger(EventGoIdle); err != nil {
		t.Fatalf("go_idle from stopped: %v", err)
	}
	if m.Current() != models.StatusIdle {
		t.Errorf("state = %s, want idle", m.Current())
	}

	if err := m.Trigger(EventGoOffline); err != nil {
		t.Fatalf("go_offline from idle: %v", err)
	}
	if m.Current() != models.StatusOffline {
		t.Errorf("state = %s, want offline", m.Current())
	}

	// moving 车辆不能直接进 idle
	m2 := NewMachine("v2", models.StatusMoving, nil)
	if err := m2.Trigger(EventGoIdle); err == nil {
		t.Error("go_idle from moving should fail")
	}
}

func TestStateChangeCallback(t *testing.T) {
	var gotFrom, gotTo string
	m := NewMachine("v1", models.StatusStopped, func(id, from, to string) {
		gotFrom, gotTo = from, to
	})

	m.Apply(50)
	if gotFrom != "stopped" || gotTo != "moving" {
		t.Errorf("callback got %s -> %s", gotFrom, gotTo)
	}
}

func TestManagerGetOrCreate(t *testing.T) {
	mgr := NewManager(nil)

	a := mgr.GetOrCreate("v1", models.StatusOffline)
	b := mgr.GetOrCreate("v1", models.StatusMoving)
	if a != b {
		t.Error("GetOrCreate should return the same machine for the same vehicle")
	}
	if b.Current() != models.StatusOffline {
		t.Errorf("second GetOrCreate must not reset state, got %s", b.Current())
	}

	if _, ok := mgr.Get("v2"); ok {
		t.Error("Get for unknown vehicle should report false")
	}

	mgr.Remove("v1")
	if _, ok := mgr.Get("v1"); ok {
		t.Error("machine should be gone after Remove")
	}
}
