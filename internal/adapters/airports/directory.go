package airports

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"trip-distance-service/internal/domain"
)

// Dataset entry as published by the upstream airport database export.
// Lat and Lon are pointers so that entries without a published coordinate
// can be told apart from entries at (0, 0).
type record struct {
	Name    string   `json:"name"`
	City    string   `json:"city"`
	Country string   `json:"country"`
	Lat     *float64 `json:"lat"`
	Lon     *float64 `json:"lon"`
}

// Directory is the in-memory airport directory. It is loaded once at
// startup, never mutated afterwards, and therefore safe for concurrent use
// without locking.
type Directory struct {
	byCode map[string]domain.Airport
	all    []domain.Airport
}

// NewDirectory loads the static dataset from path. Entries without a usable
// coordinate are dropped at load time so that lookups never surface a
// half-formed airport.
func NewDirectory(path string) (*Directory, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load airport directory: open %q: %w", path, err)
	}
	defer f.Close()

	var raw map[string]record
	if err := json.NewDecoder(f).Decode(&raw); err != nil {
		return nil, fmt.Errorf("load airport directory: decode %q: %w", path, err)
	}

	d := &Directory{
		byCode: make(map[string]domain.Airport, len(raw)),
		all:    make([]domain.Airport, 0, len(raw)),
	}

	skipped := 0
	for code, rec := range raw {
		code = strings.ToUpper(strings.TrimSpace(code))
		if code == "" || rec.Lat == nil || rec.Lon == nil {
			skipped++
			continue
		}

		coord, err := domain.NewCoordinate(*rec.Lat, *rec.Lon)
		if err != nil {
			skipped++
			continue
		}

		airport := domain.Airport{
			Code:    code,
			Name:    rec.Name,
			City:    rec.City,
			Country: rec.Country,
			Coord:   coord,
		}
		d.byCode[code] = airport
		d.all = append(d.all, airport)
	}

	// Deterministic iteration order for scans and tests.
	sort.Slice(d.all, func(i, j int) bool { return d.all[i].Code < d.all[j].Code })

	log.Printf("airport directory loaded entries=%d skipped=%d path=%s", len(d.all), skipped, path)
	return d, nil
}

// Lookup returns the airport for a code, normalizing to uppercase first.
func (d *Directory) Lookup(code string) (domain.Airport, bool) {
	a, ok := d.byCode[strings.ToUpper(strings.TrimSpace(code))]
	return a, ok
}

// All returns every airport, ordered by code. Callers must not modify the
// returned slice.
func (d *Directory) All() []domain.Airport { return d.all }
