package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"trip-distance-service/internal/domain"
	"trip-distance-service/internal/platform/obs"
	"trip-distance-service/internal/ports"
)

const (
	// Assumed average urban driving speed for travel time estimates.
	averageSpeedKmh = 50

	defaultScanConcurrency = 8
	defaultNearestCutoffKm = 200
	defaultNearestLimit    = 3
)

// DistanceService composes the airport directory, geocoder and routing
// provider to answer trip distance queries. All operations report failure
// through the result value; no error crosses this boundary for the normal
// unresolvable-location paths.
type DistanceService struct {
	directory ports.AirportDirectory
	geocoder  ports.Geocoder
	routes    ports.RouteProvider

	// ScanConcurrency caps simultaneous routing lookups during the
	// nearest-airport scan. Zero selects the default.
	ScanConcurrency int
	// NearestCutoffKm excludes airports farther than this from ranked
	// results. Zero selects the default.
	NearestCutoffKm float64
}

func NewDistanceService(
	directory ports.AirportDirectory,
	geocoder ports.Geocoder,
	routes ports.RouteProvider,
) *DistanceService {
	return &DistanceService{
		directory:       directory,
		geocoder:        geocoder,
		routes:          routes,
		ScanConcurrency: defaultScanConcurrency,
		NearestCutoffKm: defaultNearestCutoffKm,
	}
}

// AirportToAttraction resolves the airport through the directory and the
// attraction through the geocoder, then estimates the driving distance
// between them. Either resolution failing is the only failure the caller
// sees; routing trouble is masked by the estimator's fallback.
func (s *DistanceService) AirportToAttraction(ctx context.Context, airportCode, attraction string) domain.DistanceReport {
	airport, ok := s.directory.Lookup(airportCode)
	if !ok {
		return failureReport(airportCode, attraction,
			fmt.Sprintf("could not find airport with code %s", strings.ToUpper(strings.TrimSpace(airportCode))))
	}

	origin := fmt.Sprintf("%s (%s)", airport.Name, airport.Code)

	destCoord, err := s.geocoder.Resolve(ctx, attraction)
	if err != nil {
		return failureReport(origin, attraction,
			fmt.Sprintf("could not find coordinates for %s", attraction))
	}

	km := EstimateDrivingDistance(ctx, s.routes, airport.Coord, destCoord)
	return successReport(origin, attraction, km)
}

// BetweenPlaces runs the same pipeline with both endpoints resolved through
// the geocoder.
func (s *DistanceService) BetweenPlaces(ctx context.Context, place1, place2 string) domain.DistanceReport {
	coord1, err := s.geocoder.Resolve(ctx, place1)
	if err != nil {
		return failureReport(place1, place2,
			fmt.Sprintf("could not find coordinates for %s", place1))
	}

	coord2, err := s.geocoder.Resolve(ctx, place2)
	if err != nil {
		return failureReport(place1, place2,
			fmt.Sprintf("could not find coordinates for %s", place2))
	}

	km := EstimateDrivingDistance(ctx, s.routes, coord1, coord2)
	return successReport(place1, place2, km)
}

// NearestAirports resolves the city and ranks every directory entry by
// estimated driving distance, keeping those within the cutoff. The scan
// fans out through a bounded number of concurrent routing lookups; an
// airport whose lookup is abandoned by cancellation is silently excluded
// rather than failing the query.
func (s *DistanceService) NearestAirports(ctx context.Context, city string, limit int) (_ []domain.RankedAirport, err error) {
	defer obs.Time(ctx, "distance.NearestAirports")(&err)

	if limit <= 0 {
		limit = defaultNearestLimit
	}

	cityCoord, err := s.geocoder.Resolve(ctx, city)
	if err != nil {
		return nil, fmt.Errorf("nearest airports: resolve city %q: %w", city, err)
	}

	cutoff := s.NearestCutoffKm
	if cutoff <= 0 {
		cutoff = defaultNearestCutoffKm
	}
	concurrency := s.ScanConcurrency
	if concurrency <= 0 {
		concurrency = defaultScanConcurrency
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	candidates := s.directory.All()

	sem := make(chan struct{}, concurrency)
	results := make(chan domain.RankedAirport, len(candidates))
	var wg sync.WaitGroup

	for _, airport := range candidates {
		wg.Add(1)
		go func(a domain.Airport) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				return
			}
			defer func() { <-sem }()

			if ctx.Err() != nil {
				return
			}

			km := EstimateDrivingDistance(ctx, s.routes, cityCoord, a.Coord)
			if ctx.Err() != nil {
				// Abandoned mid-lookup; drop the candidate instead of
				// reporting a distance from a cancelled call.
				return
			}
			if km <= cutoff {
				results <- domain.RankedAirport{Airport: a, DistanceKm: km}
			}
		}(airport)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	ranked := make([]domain.RankedAirport, 0, limit)
	for r := range results {
		ranked = append(ranked, r)
	}

	// Ascending by distance; code tie-break keeps the order deterministic.
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].DistanceKm != ranked[j].DistanceKm {
			return ranked[i].DistanceKm < ranked[j].DistanceKm
		}
		return ranked[i].Airport.Code < ranked[j].Airport.Code
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	return ranked, nil
}

// travelTimeAt decomposes distance / speed into whole hours and remaining
// minutes.
func travelTimeAt(km, speedKmh float64) domain.TravelTime {
	hoursF := km / speedKmh
	hours := int(hoursF)
	minutes := int((hoursF - float64(hours)) * 60)
	return domain.TravelTime{Hours: hours, Minutes: minutes}
}

func successReport(origin, destination string, km float64) domain.DistanceReport {
	return domain.DistanceReport{
		Success:     true,
		Origin:      origin,
		Destination: destination,
		DistanceKm:  km,
		TravelTime:  travelTimeAt(km, averageSpeedKmh),
	}
}

func failureReport(origin, destination, reason string) domain.DistanceReport {
	return domain.DistanceReport{
		Origin:      origin,
		Destination: destination,
		Err:         reason,
	}
}
