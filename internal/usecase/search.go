package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/ClairKirsch/raichi/internal/core/domain"
	"github.com/ClairKirsch/raichi/internal/core/port"
)

// SearchService answers discovery queries over events and venues.
type SearchService struct {
	tags   port.TagRepository
	events port.EventRepository
	venues port.VenueRepository
	geo    port.GeoIndex
}

// NewSearchService constructs SearchService.
func NewSearchService(tags port.TagRepository, events port.EventRepository, venues port.VenueRepository, geo port.GeoIndex) *SearchService {
	return &SearchService{
		tags:   tags,
		events: events,
		venues: venues,
		geo:    geo,
	}
}

// EventsByTag returns events carrying any tag whose name contains the
// fragment, case-insensitively.
func (s *SearchService) EventsByTag(ctx context.Context, nameFragment string) ([]domain.Event, error) {
	nameFragment = strings.TrimSpace(nameFragment)
	if nameFragment == "" {
		return nil, fmt.Errorf("tag name is required")
	}
	return s.tags.SearchEvents(ctx, nameFragment)
}

// EventsByLocation returns events hosted at venues within radiusMiles of the
// given point. Venues with no events contribute nothing to the result.
func (s *SearchService) EventsByLocation(ctx context.Context, latitude, longitude, radiusMiles float64) ([]domain.Event, error) {
	if radiusMiles <= 0 {
		return nil, fmt.Errorf("radius must be positive")
	}

	venueIDs, err := s.geo.SearchVenueIDs(ctx, latitude, longitude, radiusMiles)
	if err != nil {
		return nil, fmt.Errorf("search venues by radius: %w", err)
	}
	if len(venueIDs) == 0 {
		return nil, nil
	}

	return s.events.ListByVenueIDs(ctx, venueIDs)
}

// VenuesByLocation returns venues within radiusMiles of the given point.
func (s *SearchService) VenuesByLocation(ctx context.Context, latitude, longitude, radiusMiles float64) ([]domain.Venue, error) {
	if radiusMiles <= 0 {
		return nil, fmt.Errorf("radius must be positive")
	}

	venueIDs, err := s.geo.SearchVenueIDs(ctx, latitude, longitude, radiusMiles)
	if err != nil {
		return nil, fmt.Errorf("search venues by radius: %w", err)
	}
	if len(venueIDs) == 0 {
		return nil, nil
	}

	return s.venues.GetByIDs(ctx, venueIDs)
}
