package ors

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"trip-distance-service/internal/domain"
	"trip-distance-service/internal/platform/obs"
	"trip-distance-service/internal/ports"
)

type directionsRequest struct {
	Coordinates [][]float64 `json:"coordinates"`
	Radiuses    []float64   `json:"radiuses,omitempty"`
}

type directionsResponse struct {
	Features []struct {
		Properties struct {
			Segments []struct {
				Distance float64 `json:"distance"`
			} `json:"segments"`
		} `json:"properties"`
	} `json:"features"`
}

// DirectionsProvider requests driving routes from the ORS directions
// endpoint (/v2/directions/driving-car) and extracts the total route
// distance in meters.
type DirectionsProvider struct {
	client *Client
}

func NewDirectionsProvider(client *Client) *DirectionsProvider {
	return &DirectionsProvider{client: client}
}

func (p *DirectionsProvider) DrivingDistance(
	ctx context.Context,
	origin, dest domain.Coordinate,
	snapRadiusMeters float64,
) (_ float64, err error) {
	defer obs.Time(ctx, "ors.directions")(&err)

	endpoint := fmt.Sprintf("%s/v2/directions/%s", p.client.baseURL, p.client.profile)

	bodyObj := directionsRequest{
		Coordinates: [][]float64{origin.LonLat(), dest.LonLat()},
		Radiuses:    []float64{snapRadiusMeters, snapRadiusMeters},
	}

	payload, err := json.Marshal(bodyObj)
	if err != nil {
		return 0, fmt.Errorf("marshal directions request: %w", err)
	}

	resp, err := p.client.send(ctx, func() (*http.Request, error) {
		body := bytes.NewReader(payload)
		return p.client.newRequest(ctx, http.MethodPost, endpoint, body)
	})
	if err != nil {
		// ORS answers 404 when no routable point exists within the snap
		// radius of one of the waypoints.
		var he *httpStatusError
		if errors.As(err, &he) && he.Code == http.StatusNotFound {
			return 0, fmt.Errorf("driving distance: %w", ports.ErrNoRoutablePoint)
		}
		return 0, fmt.Errorf("directions request failed: %w", err)
	}
	defer resp.Body.Close()

	var decoded directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return 0, fmt.Errorf("decode directions response: %w", err)
	}

	if len(decoded.Features) == 0 {
		return 0, errors.New("directions response has no routes")
	}

	segments := decoded.Features[0].Properties.Segments
	if len(segments) == 0 {
		return 0, errors.New("directions response has no segments")
	}

	var meters float64
	for _, s := range segments {
		meters += s.Distance
	}

	return meters, nil
}
