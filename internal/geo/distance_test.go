package geo

import (
	"math"
	"testing"
)

func TestDistanceSymmetry(t *testing.T) {
	cases := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
	}{
		{"sao paulo downtown", -23.5505, -46.6333, -23.5605, -46.6533},
		{"across equator", -1.0, 10.0, 1.0, 12.0},
		{"near date line", 10.0, 179.9, 10.0, -179.9},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ab := Distance(c.lat1, c.lon1, c.lat2, c.lon2)
			ba := Distance(c.lat2, c.lon2, c.lat1, c.lon1)
			if math.Abs(ab-ba) > 1e-9 {
				t.Errorf("distance not symmetric: %f vs %f", ab, ba)
			}
		})
	}
}

func TestDistanceZero(t *testing.T) {
	if d := Distance(-23.5505, -46.6333, -23.5505, -46.6333); d != 0 {
		t.Errorf("Distance(A,A) = %f, want 0", d)
	}
}

func TestDistanceKnownValue(t *testing.T) {
	// 沿赤道 1 度经度 ≈ 111.19 km
	d := Distance(0, 0, 0, 1)
	if math.Abs(d-111195) > 100 {
		t.Errorf("Distance along equator = %f, want ~111195", d)
	}
}

func TestInCircle(t *testing.T) {
	centerLat, centerLon := -23.5505, -46.6333

	if !InCircle(centerLat, centerLon, centerLat, centerLon, 10) {
		t.Error("center should be inside its own circle")
	}
	// 约 1.1 km 之外
	if InCircle(centerLat+0.01, centerLon, centerLat, centerLon, 500) {
		t.Error("point ~1.1km away should be outside a 500m circle")
	}
	if !InCircle(centerLat+0.01, centerLon, centerLat, centerLon, 2000) {
		t.Error("point ~1.1km away should be inside a 2km circle")
	}
}

func TestInPolygon(t *testing.T) {
	square := []Point{
		{Latitude: -23.5200, Longitude: -46.6400},
		{Latitude: -23.5200, Longitude: -46.6200},
		{Latitude: -23.5350, Longitude: -46.6200},
		{Latitude: -23.5350, Longitude: -46.6400},
	}

	cases := []struct {
		name     string
		lat, lon float64
		want     bool
	}{
		{"inside", -23.5275, -46.6300, true},
		{"outside west", -23.5275, -46.6500, false},
		{"outside north", -23.5100, -46.6300, false},
		{"far away", 10.0, 10.0, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := InPolygon(c.lat, c.lon, square); got != c.want {
				t.Errorf("InPolygon(%f, %f) = %v, want %v", c.lat, c.lon, got, c.want)
			}
		})
	}
}

func TestInPolygonDegenerate(t *testing.T) {
	if InPolygon(0, 0, []Point{{0, 0}, {1, 1}}) {
		t.Error("polygon with fewer than 3 points can contain nothing")
	}
}
