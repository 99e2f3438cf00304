package ports

import (
	"context"
	"errors"

	"trip-distance-service/internal/domain"
)

// ErrUnresolvedLocation reports that a free-text location could not be
// resolved to a coordinate. No match, provider error and malformed response
// all collapse into this class: the caller's recovery action is the same in
// every case.
var ErrUnresolvedLocation = errors.New("could not resolve location")

// Contract for resolving a free-text place description to a coordinate.
type Geocoder interface {
	// Return the best-match coordinate for the given text, or an error
	// wrapping ErrUnresolvedLocation. Never returns a partial or guessed
	// coordinate.
	Resolve(ctx context.Context, text string) (domain.Coordinate, error)
}
