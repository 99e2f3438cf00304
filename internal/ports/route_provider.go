package ports

import (
	"context"
	"errors"

	"trip-distance-service/internal/domain"
)

// ErrNoRoutablePoint reports that the routing provider could not snap a
// coordinate to a road within the requested radius. It is kept distinct
// from generic provider failure because it is recoverable by retrying with
// a larger snap radius.
var ErrNoRoutablePoint = errors.New("no routable point found")

// Contract for retrieving driving route distance between two coordinates.
type RouteProvider interface {
	// Return total route distance in meters, snapping each endpoint to the
	// nearest routable road within snapRadiusMeters.
	DrivingDistance(ctx context.Context, origin, dest domain.Coordinate, snapRadiusMeters float64) (float64, error)
}
