package services

import (
	"fmt"

	"trip-distance-service/internal/domain"
)

// FormatReport renders a distance report as a single human-readable
// sentence for inclusion in trip summaries. The error reason is rendered
// verbatim when the query failed.
func FormatReport(r domain.DistanceReport) string {
	if !r.Success {
		return fmt.Sprintf("Error: %s", r.Err)
	}

	return fmt.Sprintf("Distance from %s to %s: %.2f km (approximately %s by car)",
		r.Origin, r.Destination, r.DistanceKm, r.TravelTime)
}
