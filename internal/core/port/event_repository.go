package port

import (
	"context"

	"github.com/ClairKirsch/raichi/internal/core/domain"
)

// EventRepository exposes persistence behavior for events and attendance.
type EventRepository interface {
	Create(ctx context.Context, event domain.Event) error
	GetByID(ctx context.Context, id string) (*domain.Event, error)
	List(ctx context.Context) ([]domain.Event, error)
	ListByVenueIDs(ctx context.Context, venueIDs []string) ([]domain.Event, error)

	Attend(ctx context.Context, eventID, userID string) error
	Unattend(ctx context.Context, eventID, userID string) error
	ListAttending(ctx context.Context, userID string) ([]domain.Event, error)
	// SharedEventExists reports whether both users attend at least one
	// common event. Direct messaging is gated on this.
	SharedEventExists(ctx context.Context, userA, userB string) (bool, error)
}
