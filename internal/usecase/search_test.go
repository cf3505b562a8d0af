package usecase

import (
	"context"
	"testing"

	"github.com/ClairKirsch/raichi/internal/core/domain"
)

func TestEventsByLocationResolvesVenues(t *testing.T) {
	events := newMockEventRepository(
		domain.Event{ID: "evt-1", VenueID: "venue-near"},
		domain.Event{ID: "evt-2", VenueID: "venue-far"},
	)
	geo := newMockGeoIndex()
	geo.searchOut = []string{"venue-near"}

	svc := NewSearchService(newMockTagRepository(), events, newMockVenueRepository(), geo)

	found, err := svc.EventsByLocation(context.Background(), 40.7, -74.0, 10)
	if err != nil {
		t.Fatalf("EventsByLocation returned error: %v", err)
	}
	if len(found) != 1 || found[0].ID != "evt-1" {
		t.Fatalf("unexpected events: %+v", found)
	}
}

func TestEventsByLocationEmptyRadiusHit(t *testing.T) {
	svc := NewSearchService(newMockTagRepository(), newMockEventRepository(), newMockVenueRepository(), newMockGeoIndex())

	found, err := svc.EventsByLocation(context.Background(), 40.7, -74.0, 10)
	if err != nil {
		t.Fatalf("EventsByLocation returned error: %v", err)
	}
	if len(found) != 0 {
		t.Fatalf("expected no events, got %+v", found)
	}
}

func TestEventsByLocationRejectsNonPositiveRadius(t *testing.T) {
	svc := NewSearchService(newMockTagRepository(), newMockEventRepository(), newMockVenueRepository(), newMockGeoIndex())

	if _, err := svc.EventsByLocation(context.Background(), 40.7, -74.0, 0); err == nil {
		t.Fatal("expected zero radius to be rejected")
	}
	if _, err := svc.EventsByLocation(context.Background(), 40.7, -74.0, -5); err == nil {
		t.Fatal("expected negative radius to be rejected")
	}
}

func TestEventsByTagPassesFragment(t *testing.T) {
	tags := newMockTagRepository()
	tags.searchOut = []domain.Event{{ID: "evt-1"}}

	svc := NewSearchService(tags, newMockEventRepository(), newMockVenueRepository(), newMockGeoIndex())

	found, err := svc.EventsByTag(context.Background(), "  jazz  ")
	if err != nil {
		t.Fatalf("EventsByTag returned error: %v", err)
	}
	if len(found) != 1 || found[0].ID != "evt-1" {
		t.Fatalf("unexpected events: %+v", found)
	}
	if tags.searchWith != "jazz" {
		t.Fatalf("fragment forwarded as %q, want trimmed \"jazz\"", tags.searchWith)
	}
}

func TestEventsByTagRequiresFragment(t *testing.T) {
	svc := NewSearchService(newMockTagRepository(), newMockEventRepository(), newMockVenueRepository(), newMockGeoIndex())

	if _, err := svc.EventsByTag(context.Background(), "   "); err == nil {
		t.Fatal("expected blank fragment to be rejected")
	}
}

func TestVenuesByLocation(t *testing.T) {
	venues := newMockVenueRepository(
		domain.Venue{ID: "venue-near", Name: "The Spot"},
		domain.Venue{ID: "venue-far", Name: "Elsewhere"},
	)
	geo := newMockGeoIndex()
	geo.searchOut = []string{"venue-near"}

	svc := NewSearchService(newMockTagRepository(), newMockEventRepository(), venues, geo)

	found, err := svc.VenuesByLocation(context.Background(), 40.7, -74.0, 5)
	if err != nil {
		t.Fatalf("VenuesByLocation returned error: %v", err)
	}
	if len(found) != 1 || found[0].ID != "venue-near" {
		t.Fatalf("unexpected venues: %+v", found)
	}
}
