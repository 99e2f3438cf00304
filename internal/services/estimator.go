package services

import (
	"context"
	"errors"
	"log"

	"trip-distance-service/internal/domain"
	"trip-distance-service/internal/ports"
)

const (
	// Default snap radius lets the provider attach a coordinate to the
	// nearest road within ~1 km.
	defaultSnapRadiusMeters = 1000

	// Escalated radius for the single retry when the default radius finds
	// no routable point (coordinate in a park, water, pedestrian area).
	escalatedSnapRadiusMeters = 5000
)

// attemptState tracks progress through the routing retry/fallback contract.
type attemptState int

const (
	statePrimary attemptState = iota
	stateRadiusRetry
	stateFallback
	stateDone
)

// EstimateDrivingDistance resolves a driving distance in kilometers between
// two coordinates, rounded to 2 decimal places.
//
// Provider failure is expected and masked rather than surfaced: a
// no-routable-point answer earns exactly one retry with a larger snap
// radius, and any remaining failure falls back to the great-circle
// approximation. Given two valid coordinates the caller always receives a
// usable number.
func EstimateDrivingDistance(
	ctx context.Context,
	provider ports.RouteProvider,
	origin, dest domain.Coordinate,
) float64 {
	var km float64

	state := statePrimary
	for state != stateDone {
		switch state {
		case statePrimary:
			meters, err := provider.DrivingDistance(ctx, origin, dest, defaultSnapRadiusMeters)
			switch {
			case err == nil:
				km = round2(meters / 1000)
				state = stateDone
			case errors.Is(err, ports.ErrNoRoutablePoint):
				state = stateRadiusRetry
			default:
				state = stateFallback
			}

		case stateRadiusRetry:
			meters, err := provider.DrivingDistance(ctx, origin, dest, escalatedSnapRadiusMeters)
			if err == nil {
				km = round2(meters / 1000)
				state = stateDone
			} else {
				state = stateFallback
			}

		case stateFallback:
			if ctx.Err() == nil {
				log.Printf("routing unavailable, using great-circle estimate origin=%v dest=%v", origin, dest)
			}
			km = ApproximateDistanceKm(origin, dest)
			state = stateDone
		}
	}

	return km
}
