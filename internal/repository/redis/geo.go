package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/ClairKirsch/raichi/internal/core/port"
)

const defaultGeoKeyPrefix = "raichi"

// GeoIndex stores venue coordinates in a Redis geospatial set so that
// radius searches stay off the relational database.
type GeoIndex struct {
	client *redis.Client
	key    string
}

// NewGeoIndex constructs a geo index backed by the given Redis client. The
// keyPrefix namespaces the GEO key; it falls back to the app default when empty.
func NewGeoIndex(client *redis.Client, keyPrefix string) *GeoIndex {
	if keyPrefix == "" {
		keyPrefix = defaultGeoKeyPrefix
	}
	return &GeoIndex{client: client, key: keyPrefix + ":venues:geo"}
}

// AddVenue indexes a venue's coordinates under its identifier. Re-adding
// an existing venue updates its position.
func (g *GeoIndex) AddVenue(ctx context.Context, venueID string, latitude, longitude float64) error {
	err := g.client.GeoAdd(ctx, g.key, &redis.GeoLocation{
		Name:      venueID,
		Latitude:  latitude,
		Longitude: longitude,
	}).Err()
	if err != nil {
		return fmt.Errorf("geoadd venue %s: %w", venueID, err)
	}

	return nil
}

// SearchVenueIDs returns identifiers of venues within radiusMiles of the
// given point, closest first.
func (g *GeoIndex) SearchVenueIDs(ctx context.Context, latitude, longitude, radiusMiles float64) ([]string, error) {
	locations, err := g.client.GeoRadius(ctx, g.key, longitude, latitude, &redis.GeoRadiusQuery{
		Radius: radiusMiles,
		Unit:   "mi",
		Sort:   "ASC",
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("georadius venues: %w", err)
	}

	ids := make([]string, 0, len(locations))
	for _, loc := range locations {
		ids = append(ids, loc.Name)
	}

	return ids, nil
}

var _ port.GeoIndex = (*GeoIndex)(nil)
