package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	uuid "github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ClairKirsch/raichi/internal/core/domain"
	"github.com/ClairKirsch/raichi/internal/core/port"
)

// CreateVenueInput captures the payload for venue creation.
type CreateVenueInput struct {
	Name      string
	Address   string
	Latitude  float64
	Longitude float64
}

// VenueService manages venues and keeps the geo index in step with them.
type VenueService struct {
	venues port.VenueRepository
	geo    port.GeoIndex
	logger *zap.Logger
	now    func() time.Time
}

// NewVenueService constructs VenueService.
func NewVenueService(venues port.VenueRepository, geo port.GeoIndex, logger *zap.Logger) *VenueService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &VenueService{
		venues: venues,
		geo:    geo,
		logger: logger,
		now:    time.Now,
	}
}

// WithClock overrides the time source for deterministic tests.
func (s *VenueService) WithClock(now func() time.Time) *VenueService {
	if now != nil {
		s.now = now
	}
	return s
}

// CreateVenue persists the venue and mirrors its coordinates into the geo index.
func (s *VenueService) CreateVenue(ctx context.Context, input CreateVenueInput) (domain.Venue, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return domain.Venue{}, fmt.Errorf("venue name is required")
	}
	if input.Latitude < -90 || input.Latitude > 90 {
		return domain.Venue{}, fmt.Errorf("latitude out of range")
	}
	if input.Longitude < -180 || input.Longitude > 180 {
		return domain.Venue{}, fmt.Errorf("longitude out of range")
	}

	venue := domain.Venue{
		ID:        uuid.NewString(),
		Name:      name,
		Address:   strings.TrimSpace(input.Address),
		Latitude:  input.Latitude,
		Longitude: input.Longitude,
		CreatedAt: s.now().UTC(),
	}

	if err := s.venues.Create(ctx, venue); err != nil {
		return domain.Venue{}, fmt.Errorf("create venue: %w", err)
	}

	if err := s.geo.AddVenue(ctx, venue.ID, venue.Latitude, venue.Longitude); err != nil {
		return domain.Venue{}, fmt.Errorf("index venue location: %w", err)
	}

	return venue, nil
}

// GetVenue retrieves a venue by identifier.
func (s *VenueService) GetVenue(ctx context.Context, id string) (*domain.Venue, error) {
	return s.venues.GetByID(ctx, id)
}
