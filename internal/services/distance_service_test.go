package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trip-distance-service/internal/adapters/ors"
	"trip-distance-service/internal/domain"
	"trip-distance-service/internal/ports"
)

// fakeDirectory is a fixture-backed ports.AirportDirectory.
type fakeDirectory struct {
	airports []domain.Airport
}

func (d *fakeDirectory) Lookup(code string) (domain.Airport, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	for _, a := range d.airports {
		if a.Code == code {
			return a, true
		}
	}
	return domain.Airport{}, false
}

func (d *fakeDirectory) All() []domain.Airport { return d.airports }

func testDirectory() *fakeDirectory {
	return &fakeDirectory{airports: []domain.Airport{
		{Code: "JFK", Name: "John F Kennedy International Airport", City: "New York", Country: "US",
			Coord: domain.Coordinate{Lat: 40.6399, Lon: -73.7787}},
		{Code: "LGA", Name: "LaGuardia Airport", City: "New York", Country: "US",
			Coord: domain.Coordinate{Lat: 40.7772, Lon: -73.8726}},
	}}
}

func TestAirportToAttractionSuccess(t *testing.T) {
	geocoder := ors.NewMockGeocoder(map[string]domain.Coordinate{
		"Statue of Liberty": {Lat: 40.6892, Lon: -74.0445},
	})
	routes := &ors.MockRouteProvider{
		Responses: []ors.MockRouteResponse{{Meters: 100000}},
	}

	svc := NewDistanceService(testDirectory(), geocoder, routes)
	report := svc.AirportToAttraction(context.Background(), "jfk", "Statue of Liberty")

	require.True(t, report.Success)
	assert.Equal(t, "John F Kennedy International Airport (JFK)", report.Origin)
	assert.Equal(t, "Statue of Liberty", report.Destination)
	assert.Equal(t, 100.0, report.DistanceKm)
	assert.Equal(t, "2h 0m", report.TravelTime.String())
	assert.Empty(t, report.Err)
}

func TestAirportToAttractionUnknownAirport(t *testing.T) {
	geocoder := ors.NewMockGeocoder(nil)
	routes := &ors.MockRouteProvider{}

	svc := NewDistanceService(testDirectory(), geocoder, routes)
	report := svc.AirportToAttraction(context.Background(), "xxx", "Statue of Liberty")

	require.False(t, report.Success)
	assert.Contains(t, report.Err, "XXX")
	// Failing the directory lookup must short-circuit before any network work.
	assert.Equal(t, 0, geocoder.Calls())
	assert.Equal(t, 0, routes.Calls())
}

func TestAirportToAttractionUnresolvableAttraction(t *testing.T) {
	geocoder := ors.NewMockGeocoder(nil)
	routes := &ors.MockRouteProvider{}

	svc := NewDistanceService(testDirectory(), geocoder, routes)
	report := svc.AirportToAttraction(context.Background(), "JFK", "Atlantis")

	require.False(t, report.Success)
	assert.NotEmpty(t, report.Err)
	assert.Contains(t, report.Err, "Atlantis")
	// No routing call without both coordinates.
	assert.Equal(t, 0, routes.Calls())
}

func TestBetweenPlacesMasksRoutingFailure(t *testing.T) {
	geocoder := ors.NewMockGeocoder(map[string]domain.Coordinate{
		"Boston":   {Lat: 42.3601, Lon: -71.0589},
		"New York": {Lat: 40.7128, Lon: -74.006},
	})
	routes := &ors.MockRouteProvider{
		Fn: func(_, _ domain.Coordinate, _ float64) (float64, error) {
			return 0, errors.New("timeout")
		},
	}

	svc := NewDistanceService(testDirectory(), geocoder, routes)
	report := svc.BetweenPlaces(context.Background(), "Boston", "New York")

	require.True(t, report.Success)
	assert.Greater(t, report.DistanceKm, 0.0)
}

func TestBetweenPlacesUnresolvableEndpoint(t *testing.T) {
	geocoder := ors.NewMockGeocoder(map[string]domain.Coordinate{
		"Boston": {Lat: 42.3601, Lon: -71.0589},
	})
	routes := &ors.MockRouteProvider{}

	svc := NewDistanceService(testDirectory(), geocoder, routes)
	report := svc.BetweenPlaces(context.Background(), "Boston", "El Dorado")

	require.False(t, report.Success)
	assert.Contains(t, report.Err, "El Dorado")
	assert.Equal(t, 0, routes.Calls())
}

func TestTravelTimeDecomposition(t *testing.T) {
	assert.Equal(t, "2h 0m", travelTimeAt(100, averageSpeedKmh).String())
	assert.Equal(t, "1h 30m", travelTimeAt(75, averageSpeedKmh).String())
	assert.Equal(t, "0h 24m", travelTimeAt(20, averageSpeedKmh).String())
}

func TestFormatReport(t *testing.T) {
	report := successReport("John F Kennedy International Airport (JFK)", "Times Square", 25.5)
	got := FormatReport(report)
	assert.Equal(t,
		"Distance from John F Kennedy International Airport (JFK) to Times Square: 25.50 km (approximately 0h 30m by car)",
		got)

	failed := failureReport("JFK", "Atlantis", "could not find coordinates for Atlantis")
	assert.Equal(t, "Error: could not find coordinates for Atlantis", FormatReport(failed))
}

func TestNearestAirportsRankedAndTruncated(t *testing.T) {
	city := domain.Coordinate{Lat: 40.0, Lon: -73.0}
	dir := &fakeDirectory{airports: []domain.Airport{
		{Code: "CCC", Name: "Far", Coord: domain.Coordinate{Lat: 41.0, Lon: -73.0}},
		{Code: "AAA", Name: "Near", Coord: domain.Coordinate{Lat: 40.1, Lon: -73.0}},
		{Code: "DDD", Name: "Beyond Cutoff", Coord: domain.Coordinate{Lat: 42.0, Lon: -73.0}},
		{Code: "BBB", Name: "Mid", Coord: domain.Coordinate{Lat: 40.5, Lon: -73.0}},
	}}
	geocoder := ors.NewMockGeocoder(map[string]domain.Coordinate{"Testville": city})

	// Routing always fails so every distance comes from the deterministic
	// great-circle fallback.
	routes := &ors.MockRouteProvider{
		Fn: func(_, _ domain.Coordinate, _ float64) (float64, error) {
			return 0, errors.New("provider down")
		},
	}

	svc := NewDistanceService(dir, geocoder, routes)
	svc.ScanConcurrency = 2

	ranked, err := svc.NearestAirports(context.Background(), "Testville", 2)
	require.NoError(t, err)

	require.Len(t, ranked, 2)
	assert.Equal(t, "AAA", ranked[0].Airport.Code)
	assert.Equal(t, "BBB", ranked[1].Airport.Code)
	assert.InDelta(t, 13.34, ranked[0].DistanceKm, 0.01)
	assert.InDelta(t, 66.72, ranked[1].DistanceKm, 0.01)

	assert.True(t, sort.SliceIsSorted(ranked, func(i, j int) bool {
		return ranked[i].DistanceKm < ranked[j].DistanceKm
	}))
	for _, ra := range ranked {
		assert.LessOrEqual(t, ra.DistanceKm, svc.NearestCutoffKm)
	}
}

func TestNearestAirportsCutoffExcludesDistant(t *testing.T) {
	city := domain.Coordinate{Lat: 40.0, Lon: -73.0}
	dir := &fakeDirectory{airports: []domain.Airport{
		{Code: "DDD", Name: "Beyond Cutoff", Coord: domain.Coordinate{Lat: 42.0, Lon: -73.0}},
	}}
	geocoder := ors.NewMockGeocoder(map[string]domain.Coordinate{"Testville": city})
	routes := &ors.MockRouteProvider{
		Fn: func(_, _ domain.Coordinate, _ float64) (float64, error) {
			return 0, errors.New("provider down")
		},
	}

	svc := NewDistanceService(dir, geocoder, routes)

	ranked, err := svc.NearestAirports(context.Background(), "Testville", 3)
	require.NoError(t, err)
	assert.Empty(t, ranked)
}

// blockingRouteProvider parks every lookup until the caller's context is
// cancelled, so a test can freeze the scan mid-flight.
type blockingRouteProvider struct {
	started  atomic.Int32
	inFlight chan struct{}
}

func (p *blockingRouteProvider) DrivingDistance(ctx context.Context, _, _ domain.Coordinate, _ float64) (float64, error) {
	p.started.Add(1)
	select {
	case p.inFlight <- struct{}{}:
	default:
	}
	<-ctx.Done()
	return 0, ctx.Err()
}

func TestNearestAirportsCancellationStopsQueuedWork(t *testing.T) {
	city := domain.Coordinate{Lat: 40.0, Lon: -73.0}
	dir := &fakeDirectory{airports: []domain.Airport{
		{Code: "AAA", Name: "A", Coord: domain.Coordinate{Lat: 40.1, Lon: -73.0}},
		{Code: "BBB", Name: "B", Coord: domain.Coordinate{Lat: 40.2, Lon: -73.0}},
		{Code: "CCC", Name: "C", Coord: domain.Coordinate{Lat: 40.3, Lon: -73.0}},
		{Code: "DDD", Name: "D", Coord: domain.Coordinate{Lat: 40.4, Lon: -73.0}},
		{Code: "EEE", Name: "E", Coord: domain.Coordinate{Lat: 40.5, Lon: -73.0}},
		{Code: "FFF", Name: "F", Coord: domain.Coordinate{Lat: 40.6, Lon: -73.0}},
	}}
	geocoder := ors.NewMockGeocoder(map[string]domain.Coordinate{"Testville": city})
	routes := &blockingRouteProvider{inFlight: make(chan struct{}, 2)}

	svc := NewDistanceService(dir, geocoder, routes)
	svc.ScanConcurrency = 2

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	type scanResult struct {
		ranked []domain.RankedAirport
		err    error
	}
	done := make(chan scanResult, 1)
	go func() {
		ranked, err := svc.NearestAirports(ctx, "Testville", 10)
		done <- scanResult{ranked, err}
	}()

	// Both worker slots are occupied; the remaining four candidates are
	// queued behind the semaphore.
	<-routes.inFlight
	<-routes.inFlight
	cancel()

	var res scanResult
	select {
	case res = <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("scan did not return promptly after cancellation")
	}

	require.NoError(t, res.err)
	// Queued candidates never reach the provider, and the in-flight pair is
	// dropped rather than reported from a cancelled lookup.
	assert.Equal(t, int32(2), routes.started.Load())
	assert.Empty(t, res.ranked)
}

func TestNearestAirportsUnresolvableCity(t *testing.T) {
	geocoder := ors.NewMockGeocoder(nil)
	routes := &ors.MockRouteProvider{}

	svc := NewDistanceService(testDirectory(), geocoder, routes)

	_, err := svc.NearestAirports(context.Background(), "Nowhereville", 3)
	require.Error(t, err)
	assert.ErrorIs(t, err, ports.ErrUnresolvedLocation)
	assert.Equal(t, 0, routes.Calls())
}
