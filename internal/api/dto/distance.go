package dto

type AirportDistanceRequest struct {
	AirportCode string `json:"airport_code"`
	Attraction  string `json:"attraction"`
}

type PlacesDistanceRequest struct {
	Place1 string `json:"place1"`
	Place2 string `json:"place2"`
}

type DistanceResponse struct {
	Success     bool    `json:"success"`
	Origin      string  `json:"origin"`
	Destination string  `json:"destination"`
	DistanceKm  float64 `json:"distance_km,omitempty"`
	TravelTime  string  `json:"travel_time,omitempty"`
	Summary     string  `json:"summary"`
	Error       string  `json:"error,omitempty"`
}
