package dto

type RankedAirportResponse struct {
	Code       string  `json:"code"`
	Name       string  `json:"name"`
	City       string  `json:"city"`
	Country    string  `json:"country"`
	DistanceKm float64 `json:"distance_km"`
}

type NearestAirportsResponse struct {
	City     string                  `json:"city"`
	Airports []RankedAirportResponse `json:"airports"`
}
