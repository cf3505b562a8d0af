package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	uuid "github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ClairKirsch/raichi/internal/core/domain"
	"github.com/ClairKirsch/raichi/internal/core/port"
	"github.com/ClairKirsch/raichi/internal/repository"
)

// ErrVenueNotFound indicates the referenced venue does not exist.
var ErrVenueNotFound = errors.New("venue not found")

// CreateEventInput captures the payload for event creation.
type CreateEventInput struct {
	Title       string
	Description string
	Date        time.Time
	VenueID     string
	CreatedBy   string
}

// EventService manages events and attendance.
type EventService struct {
	events    port.EventRepository
	venues    port.VenueRepository
	publisher port.EventPublisher
	logger    *zap.Logger
	now       func() time.Time
}

// NewEventService constructs EventService.
func NewEventService(events port.EventRepository, venues port.VenueRepository, publisher port.EventPublisher, logger *zap.Logger) *EventService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventService{
		events:    events,
		venues:    venues,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// WithClock overrides the time source for deterministic tests.
func (s *EventService) WithClock(now func() time.Time) *EventService {
	if now != nil {
		s.now = now
	}
	return s
}

// CreateEvent persists an event at an existing venue.
func (s *EventService) CreateEvent(ctx context.Context, input CreateEventInput) (domain.Event, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return domain.Event{}, fmt.Errorf("event title is required")
	}

	if _, err := s.venues.GetByID(ctx, input.VenueID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Event{}, ErrVenueNotFound
		}
		return domain.Event{}, fmt.Errorf("lookup venue: %w", err)
	}

	event := domain.Event{
		ID:          uuid.NewString(),
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		Date:        input.Date,
		VenueID:     input.VenueID,
		CreatedAt:   s.now().UTC(),
	}

	if err := s.events.Create(ctx, event); err != nil {
		return domain.Event{}, fmt.Errorf("create event: %w", err)
	}

	s.publishCreated(ctx, event, input.CreatedBy)

	return event, nil
}

// GetEvent retrieves an event and embeds its venue.
func (s *EventService) GetEvent(ctx context.Context, id string) (*domain.Event, error) {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	venue, err := s.venues.GetByID(ctx, event.VenueID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("lookup event venue: %w", err)
	}
	event.Venue = venue

	return event, nil
}

// ListEvents returns every event on the platform.
func (s *EventService) ListEvents(ctx context.Context) ([]domain.Event, error) {
	return s.events.List(ctx)
}

// Attend records the user's attendance at the event.
func (s *EventService) Attend(ctx context.Context, eventID, userID string) error {
	if _, err := s.events.GetByID(ctx, eventID); err != nil {
		return err
	}
	return s.events.Attend(ctx, eventID, userID)
}

// Unattend removes the user's attendance record.
func (s *EventService) Unattend(ctx context.Context, eventID, userID string) error {
	if _, err := s.events.GetByID(ctx, eventID); err != nil {
		return err
	}
	return s.events.Unattend(ctx, eventID, userID)
}

// ListAttending returns the events the user attends.
func (s *EventService) ListAttending(ctx context.Context, userID string) ([]domain.Event, error) {
	return s.events.ListAttending(ctx, userID)
}

func (s *EventService) publishCreated(ctx context.Context, event domain.Event, createdBy string) {
	if s.publisher == nil {
		return
	}

	payload := domain.EventCreatedEvent{
		EventID:     uuid.NewString(),
		PlatformID:  event.ID,
		Title:       event.Title,
		VenueID:     event.VenueID,
		CreatedBy:   createdBy,
		ScheduledAt: event.Date,
		CreatedAt:   event.CreatedAt,
	}
	if err := s.publisher.PublishEventCreated(ctx, payload); err != nil {
		s.logger.Warn("failed to publish event created event",
			zap.String("event_id", event.ID),
			zap.Error(err))
	}
}
