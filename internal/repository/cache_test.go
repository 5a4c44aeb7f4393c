package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"fleettrack/internal/models"
)

func newTestCache(t *testing.T, ttl time.Duration) (*ReportCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	cache, err := NewReportCache(context.Background(), "redis://"+mr.Addr(), ttl)
	if err != nil {
		t.Fatalf("new cache: %v", err)
	}
	t.Cleanup(func() { cache.Close() })
	return cache, mr
}

func TestReportCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	cache, _ := newTestCache(t, time.Minute)

	stats := &models.FleetStats{TotalVehicles: 5, AverageSpeed: 42, TotalDistance: 12345}
	key := cache.Key("fleet", time.Unix(0, 0), time.Unix(3600, 0))

	var miss models.FleetStats
	hit, err := cache.Get(ctx, key, &miss)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if hit {
		t.Fatal("expected cache miss")
	}

	if err := cache.Set(ctx, key, stats); err != nil {
		t.Fatalf("set: %v", err)
	}

	var got models.FleetStats
	hit, err = cache.Get(ctx, key, &got)
	if err != nil {
		t.Fatalf("get after set: %v", err)
	}
	if !hit {
		t.Fatal("expected cache hit")
	}
	if got.TotalVehicles != 5 || got.AverageSpeed != 42 {
		t.Errorf("got %+v", got)
	}
}

func TestReportCacheExpiry(t *testing.T) {
	ctx := context.Background()
	cache, mr := newTestCache(t, time.Second)

	key := cache.Key("violations", time.Unix(0, 0), time.Unix(60, 0))
	if err := cache.Set(ctx, key, &models.VehicleStats{TotalViolations: 3}); err != nil {
		t.Fatalf("set: %v", err)
	}

	mr.FastForward(2 * time.Second)

	var got models.VehicleStats
	hit, err := cache.Get(ctx, key, &got)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if hit {
		t.Error("expected expired entry to miss")
	}
}

func TestReportCacheDisabled(t *testing.T) {
	ctx := context.Background()
	cache, err := NewReportCache(ctx, "", time.Minute)
	if err != nil {
		t.Fatalf("new disabled cache: %v", err)
	}
	if cache.Enabled() {
		t.Fatal("cache without redis url should be disabled")
	}

	key := cache.Key("fleet", time.Unix(0, 0), time.Unix(60, 0))
	if err := cache.Set(ctx, key, &models.FleetStats{}); err != nil {
		t.Fatalf("set on disabled cache: %v", err)
	}
	var got models.FleetStats
	hit, err := cache.Get(ctx, key, &got)
	if err != nil {
		t.Fatalf("get on disabled cache: %v", err)
	}
	if hit {
		t.Error("disabled cache must never hit")
	}
}

func TestReportCacheKeyDistinct(t *testing.T) {
	cache := &ReportCache{}
	a := cache.Key("fleet", time.Unix(0, 0), time.Unix(60, 0))
	b := cache.Key("fleet", time.Unix(0, 0), time.Unix(120, 0))
	c := cache.Key("violations", time.Unix(0, 0), time.Unix(60, 0))
	if a == b || a == c || b == c {
		t.Errorf("keys must differ: %q %q %q", a, b, c)
	}
}
