package domain

// Airport is one entry of the static airport directory, keyed by its short
// alphabetic code (IATA style). Entries are validated at load time: an
// airport without a published coordinate never reaches this type.
type Airport struct {
	Code    string
	Name    string
	City    string
	Country string
	Coord   Coordinate
}

// RankedAirport pairs an airport with its computed distance to a reference
// point. Sequences of RankedAirport are ordered ascending by distance.
type RankedAirport struct {
	Airport    Airport
	DistanceKm float64
}
