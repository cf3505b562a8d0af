package redis

import (
	"context"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	red "github.com/redis/go-redis/v9"
)

func newTestRedis(t *testing.T) *red.Client {
	t.Helper()

	server, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}

	client := red.NewClient(&red.Options{Addr: server.Addr()})

	t.Cleanup(func() {
		_ = client.Close()
		server.Close()
	})

	return client
}

func TestGeoIndex_AddAndSearch(t *testing.T) {
	client := newTestRedis(t)
	index := NewGeoIndex(client, "test")

	ctx := context.Background()

	// Two venues in Manhattan, one across the country.
	if err := index.AddVenue(ctx, "venue-nyc-1", 40.7128, -74.0060); err != nil {
		t.Fatalf("AddVenue: %v", err)
	}
	if err := index.AddVenue(ctx, "venue-nyc-2", 40.7306, -73.9352); err != nil {
		t.Fatalf("AddVenue: %v", err)
	}
	if err := index.AddVenue(ctx, "venue-la", 34.0522, -118.2437); err != nil {
		t.Fatalf("AddVenue: %v", err)
	}

	ids, err := index.SearchVenueIDs(ctx, 40.7128, -74.0060, 25)
	if err != nil {
		t.Fatalf("SearchVenueIDs: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("expected 2 venues within 25 miles, got %v", ids)
	}
	if ids[0] != "venue-nyc-1" {
		t.Fatalf("expected the search origin venue first, got %v", ids)
	}
	for _, id := range ids {
		if id == "venue-la" {
			t.Fatalf("venue-la is far outside the radius: %v", ids)
		}
	}
}

func TestGeoIndex_SearchMiss(t *testing.T) {
	client := newTestRedis(t)
	index := NewGeoIndex(client, "test")

	ctx := context.Background()
	if err := index.AddVenue(ctx, "venue-la", 34.0522, -118.2437); err != nil {
		t.Fatalf("AddVenue: %v", err)
	}

	// Middle of the North Atlantic.
	ids, err := index.SearchVenueIDs(ctx, 45.0, -40.0, 10)
	if err != nil {
		t.Fatalf("SearchVenueIDs: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("expected no venues, got %v", ids)
	}
}

func TestGeoIndex_ReAddUpdatesPosition(t *testing.T) {
	client := newTestRedis(t)
	index := NewGeoIndex(client, "test")

	ctx := context.Background()
	if err := index.AddVenue(ctx, "venue-1", 34.0522, -118.2437); err != nil {
		t.Fatalf("AddVenue: %v", err)
	}
	if err := index.AddVenue(ctx, "venue-1", 40.7128, -74.0060); err != nil {
		t.Fatalf("re-add AddVenue: %v", err)
	}

	ids, err := index.SearchVenueIDs(ctx, 40.7128, -74.0060, 5)
	if err != nil {
		t.Fatalf("SearchVenueIDs: %v", err)
	}
	if len(ids) != 1 || ids[0] != "venue-1" {
		t.Fatalf("expected the moved venue at its new position, got %v", ids)
	}
}
