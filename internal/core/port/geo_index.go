package port

import "context"

// GeoIndex maintains a searchable index of venue coordinates.
type GeoIndex interface {
	AddVenue(ctx context.Context, venueID string, latitude, longitude float64) error
	// SearchVenueIDs returns venue identifiers within radiusMiles of the point.
	SearchVenueIDs(ctx context.Context, latitude, longitude, radiusMiles float64) ([]string, error)
}
