package domain

import "fmt"

// TravelTime is a derived driving-time estimate decomposed into whole hours
// and remaining minutes. It is computed from distance, never measured.
type TravelTime struct {
	Hours   int
	Minutes int
}

func (t TravelTime) String() string {
	return fmt.Sprintf("%dh %dm", t.Hours, t.Minutes)
}

// DistanceReport is the outcome of a distance query. It is built once by
// the resolution pipeline and never mutated afterwards. Err carries a
// human-readable reason when Success is false.
type DistanceReport struct {
	Success     bool
	Origin      string
	Destination string
	DistanceKm  float64
	TravelTime  TravelTime
	Err         string
}
