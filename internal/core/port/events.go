package port

import (
	"context"

	"github.com/ClairKirsch/raichi/internal/core/domain"
)

// EventPublisher emits integration events to interested consumers.
type EventPublisher interface {
	PublishUserRegistered(ctx context.Context, event domain.UserRegisteredEvent) error
	PublishOTPEnabled(ctx context.Context, event domain.OTPEnabledEvent) error
	PublishEventCreated(ctx context.Context, event domain.EventCreatedEvent) error
}
