package ors

import (
	"context"
	"fmt"
	"sync"

	"trip-distance-service/internal/domain"
	"trip-distance-service/internal/ports"
)

// MockGeocoder resolves from a fixed text -> coordinate table. Unknown text
// fails the same way the real provider does on a miss.
type MockGeocoder struct {
	mu     sync.Mutex
	Coords map[string]domain.Coordinate
	calls  int
}

func NewMockGeocoder(coords map[string]domain.Coordinate) *MockGeocoder {
	return &MockGeocoder{Coords: coords}
}

func (m *MockGeocoder) Resolve(ctx context.Context, text string) (domain.Coordinate, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	c, ok := m.Coords[text]
	if !ok {
		return domain.Coordinate{}, fmt.Errorf("mock resolve %q: %w", text, ports.ErrUnresolvedLocation)
	}
	return c, nil
}

func (m *MockGeocoder) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
