package kafka

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/ClairKirsch/raichi/internal/core/domain"
	"github.com/ClairKirsch/raichi/internal/core/port"
)

// StubPublisher logs events instead of sending them to Kafka. Useful for
// development environments without a broker.
type StubPublisher struct {
	logger *zap.Logger
}

// NewStubPublisher constructs a development-friendly event publisher.
func NewStubPublisher(logger *zap.Logger) *StubPublisher {
	return &StubPublisher{logger: logger}
}

func (p *StubPublisher) logEvent(eventType, userID string, at time.Time, payload any) {
	if at.IsZero() {
		at = time.Now().UTC()
	}

	p.logger.Info("Stub event published",
		zap.String("event_type", eventType),
		zap.String("user_id", userID),
		zap.Time("timestamp", at.UTC()),
		zap.Any("payload", payload),
	)
}

// PublishUserRegistered logs user.registered events.
func (p *StubPublisher) PublishUserRegistered(_ context.Context, event domain.UserRegisteredEvent) error {
	p.logEvent("user.registered", event.UserID, event.RegisteredAt, map[string]any{
		"user_id":       event.UserID,
		"username":      event.Username,
		"registered_at": event.RegisteredAt,
	})
	return nil
}

// PublishOTPEnabled logs otp.enabled events.
func (p *StubPublisher) PublishOTPEnabled(_ context.Context, event domain.OTPEnabledEvent) error {
	p.logEvent("otp.enabled", event.UserID, event.EnabledAt, map[string]any{
		"user_id":    event.UserID,
		"secret_id":  event.SecretID,
		"enabled_at": event.EnabledAt,
	})
	return nil
}

// PublishEventCreated logs event.created events.
func (p *StubPublisher) PublishEventCreated(_ context.Context, event domain.EventCreatedEvent) error {
	p.logEvent("event.created", event.CreatedBy, event.CreatedAt, map[string]any{
		"platform_id":  event.PlatformID,
		"title":        event.Title,
		"venue_id":     event.VenueID,
		"created_by":   event.CreatedBy,
		"scheduled_at": event.ScheduledAt,
	})
	return nil
}

var _ port.EventPublisher = (*StubPublisher)(nil)
