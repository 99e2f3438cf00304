package ors

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"trip-distance-service/internal/adapters/cache"
	"trip-distance-service/internal/domain"
	"trip-distance-service/internal/platform/obs"
	"trip-distance-service/internal/ports"
)

type geocodeResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// Geocoder resolves free-text locations via the ORS /geocode/search
// endpoint, requesting exactly one best match. Successful resolutions are
// cached in memory for the process lifetime.
type Geocoder struct {
	client       *Client
	geocodeCache *cache.TTLCache
}

// NewGeocoder wraps an ORS client. geocodeCache may be nil to disable
// caching (useful in tests).
func NewGeocoder(client *Client, geocodeCache *cache.TTLCache) *Geocoder {
	return &Geocoder{client: client, geocodeCache: geocodeCache}
}

func (g *Geocoder) Resolve(ctx context.Context, text string) (_ domain.Coordinate, err error) {
	defer obs.Time(ctx, "ors.geocode")(&err)

	norm := normalize(text)
	if norm == "" {
		return domain.Coordinate{}, fmt.Errorf("resolve location: %w: empty text", ports.ErrUnresolvedLocation)
	}

	enhanced := enhanceAddress(norm)

	if g.geocodeCache != nil {
		if coord, ok := g.geocodeCache.Get(enhanced); ok {
			return coord, nil
		}
	}

	endpoint := g.client.baseURL + "/geocode/search"
	country := countryFilter(enhanced)

	resp, err := g.client.send(ctx, func() (*http.Request, error) {
		req, err := g.client.newRequest(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("text", enhanced)
		q.Set("size", "1")
		if country != "" {
			q.Set("boundary.country", country)
		}
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("resolve location %q: %w: %v", text, ports.ErrUnresolvedLocation, err)
	}
	defer resp.Body.Close()

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Coordinate{}, fmt.Errorf("resolve location %q: %w: decode response: %v", text, ports.ErrUnresolvedLocation, err)
	}

	if len(decoded.Features) == 0 {
		return domain.Coordinate{}, fmt.Errorf("resolve location %q: %w: no matches", text, ports.ErrUnresolvedLocation)
	}

	coords := decoded.Features[0].Geometry.Coordinates
	if len(coords) != 2 {
		return domain.Coordinate{}, fmt.Errorf("resolve location %q: %w: invalid coordinate format", text, ports.ErrUnresolvedLocation)
	}

	// ORS geometry is [lon, lat].
	point, err := domain.NewCoordinate(coords[1], coords[0])
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("resolve location %q: %w: %v", text, ports.ErrUnresolvedLocation, err)
	}

	if g.geocodeCache != nil {
		g.geocodeCache.Set(enhanced, point)
	}

	return point, nil
}
