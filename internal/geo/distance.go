// Package geo содержит расчет расстояний и распределение координат по регионам.
package geo

import (
	"github.com/golang/geo/s2"
)

// EarthRadiusMeters - радиус сферы, на которой считаются расстояния
const EarthRadiusMeters = 6371000.0

// DistanceMeters возвращает расстояние по большому кругу (haversine) между двумя точками в метрах.
// NaN на входе дает NaN на выходе.
func DistanceMeters(lat1, lng1, lat2, lng2 float64) float64 {
	a := s2.LatLngFromDegrees(lat1, lng1)
	b := s2.LatLngFromDegrees(lat2, lng2)
	return a.Distance(b).Radians() * EarthRadiusMeters
}
