package domain

import "fmt"

// Immutable geographic point in decimal degrees.
type Coordinate struct {
	Lat float64
	Lon float64
}

// NewCoordinate validates latitude and longitude ranges before constructing
// the value. Upstream responses are never trusted to be in range.
func NewCoordinate(lat, lon float64) (Coordinate, error) {
	if lat < -90 || lat > 90 {
		return Coordinate{}, fmt.Errorf("new coordinate: latitude %v out of range [-90, 90]", lat)
	}
	if lon < -180 || lon > 180 {
		return Coordinate{}, fmt.Errorf("new coordinate: longitude %v out of range [-180, 180]", lon)
	}
	return Coordinate{Lat: lat, Lon: lon}, nil
}

// Return the coordinate as [lon, lat] for external API compatibility.
func (c Coordinate) LonLat() []float64 { return []float64{c.Lon, c.Lat} }
