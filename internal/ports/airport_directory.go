package ports

import "trip-distance-service/internal/domain"

// Port: the static airport directory loaded once per process.
type AirportDirectory interface {
	// Look up an airport by its code (case-insensitive). A missing code is
	// a normal outcome, not an error.
	Lookup(code string) (domain.Airport, bool)
	// Return every airport in the directory. The returned slice is shared
	// and read-only.
	All() []domain.Airport
}
