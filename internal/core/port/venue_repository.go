package port

import (
	"context"

	"github.com/ClairKirsch/raichi/internal/core/domain"
)

// VenueRepository exposes persistence behavior for venues.
type VenueRepository interface {
	Create(ctx context.Context, venue domain.Venue) error
	GetByID(ctx context.Context, id string) (*domain.Venue, error)
	GetByIDs(ctx context.Context, ids []string) ([]domain.Venue, error)
}
