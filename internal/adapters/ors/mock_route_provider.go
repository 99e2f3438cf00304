package ors

import (
	"context"
	"errors"
	"sync"

	"trip-distance-service/internal/domain"
)

// MockRouteResponse scripts one DrivingDistance outcome.
type MockRouteResponse struct {
	Meters float64
	Err    error
}

// MockRouteProvider replays scripted responses in call order and records
// the snap radii it was asked for. When Fn is set it takes precedence over
// the scripted responses. Safe for concurrent use.
type MockRouteProvider struct {
	mu        sync.Mutex
	Responses []MockRouteResponse
	Fn        func(origin, dest domain.Coordinate, snapRadiusMeters float64) (float64, error)
	radii     []float64
	calls     int
}

func (m *MockRouteProvider) DrivingDistance(
	ctx context.Context,
	origin, dest domain.Coordinate,
	snapRadiusMeters float64,
) (float64, error) {
	m.mu.Lock()
	m.radii = append(m.radii, snapRadiusMeters)
	m.calls++
	fn := m.Fn
	var scripted *MockRouteResponse
	if fn == nil {
		if m.calls > len(m.Responses) {
			m.mu.Unlock()
			return 0, errors.New("mock route provider: no scripted response")
		}
		r := m.Responses[m.calls-1]
		scripted = &r
	}
	m.mu.Unlock()

	if fn != nil {
		return fn(origin, dest, snapRadiusMeters)
	}
	return scripted.Meters, scripted.Err
}

func (m *MockRouteProvider) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func (m *MockRouteProvider) Radii() []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]float64, len(m.radii))
	copy(out, m.radii)
	return out
}
