package services

import (
	"math"

	"trip-distance-service/internal/domain"
)

const (
	earthRadiusKm = 6371

	// Fixed multiplier approximating road-network distance from the
	// straight-line great-circle distance.
	roadCircuityFactor = 1.2
)

// ApproximateDistanceKm estimates driving distance between two points using
// the haversine great-circle formula scaled by the road-circuity factor,
// rounded to 2 decimal places. Pure and deterministic; it never fails for
// valid coordinates.
func ApproximateDistanceKm(a, b domain.Coordinate) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return round2(earthRadiusKm * c * roadCircuityFactor)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
