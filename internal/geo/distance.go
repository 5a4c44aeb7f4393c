// Package geo 提供测地距离与围栏包含判断
package geo

import "math"

// earthRadius 地球半径（米）
const earthRadius = 6371000.0

// Point 经纬度坐标（度）
type Point struct {
	Latitude  float64
	Longitude float64
}

// Distance 计算两点间的大圆距离（Haversine 公式），返回米
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadius * c
}

// InCircle 判断点是否在圆形围栏内（含边界）
func InCircle(lat, lon, centerLat, centerLon, radius float64) bool {
	return Distance(lat, lon, centerLat, centerLon) <= radius
}

// InPolygon 判断点是否在多边形围栏内（射线法）
func InPolygon(lat, lon float64, polygon []Point) bool {
	if len(polygon) < 3 {
		return false
	}

	inside := false
	j := len(polygon) - 1
	for i := 0; i < len(polygon); i++ {
		pi, pj := polygon[i], polygon[j]
		if (pi.Latitude > lat) != (pj.Latitude > lat) &&
			lon < (pj.Longitude-pi.Longitude)*(lat-pi.Latitude)/(pj.Latitude-pi.Latitude)+pi.Longitude {
			inside = !inside
		}
		j = i
	}
	return inside
}
