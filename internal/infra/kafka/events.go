package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ClairKirsch/raichi/internal/core/domain"
	"github.com/ClairKirsch/raichi/internal/core/port"
	"github.com/ClairKirsch/raichi/internal/infra/config"
)

const schemaVersion = "1.0"

// EventPublisher implements port.EventPublisher using Kafka.
type EventPublisher struct {
	producer *Producer
	logger   *zap.Logger
	appCfg   config.AppSettings
}

// NewEventPublisher constructs a Kafka-backed event publisher.
func NewEventPublisher(producer *Producer, appCfg config.AppSettings, logger *zap.Logger) *EventPublisher {
	return &EventPublisher{producer: producer, appCfg: appCfg, logger: logger}
}

type eventEnvelope struct {
	EventID   string            `json:"event_id"`
	EventType string            `json:"event_type"`
	UserID    string            `json:"user_id,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	Payload   any               `json:"payload"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

func (p *EventPublisher) publish(ctx context.Context, eventID, eventType, userID string, ts time.Time, payload any) error {
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	id := eventID
	if id == "" {
		id = uuid.NewString()
	}

	envelope := eventEnvelope{
		EventID:   id,
		EventType: eventType,
		UserID:    userID,
		Timestamp: ts.UTC(),
		Version:   schemaVersion,
		Payload:   payload,
		Metadata: map[string]string{
			"service":     p.appCfg.Name,
			"environment": p.appCfg.Env,
		},
	}

	bytes, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("marshal event envelope: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic: p.producer.TopicName(eventType),
		Value: sarama.ByteEncoder(bytes),
	}

	select {
	case p.producer.Producer().Input() <- message:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// PublishUserRegistered publishes raichi.user.registered events.
func (p *EventPublisher) PublishUserRegistered(ctx context.Context, event domain.UserRegisteredEvent) error {
	payload := struct {
		UserID       string    `json:"user_id"`
		Username     string    `json:"username"`
		RegisteredAt time.Time `json:"registered_at"`
	}{
		UserID:       event.UserID,
		Username:     event.Username,
		RegisteredAt: event.RegisteredAt.UTC(),
	}

	return p.publish(ctx, event.EventID, "user.registered", event.UserID, event.RegisteredAt, payload)
}

// PublishOTPEnabled publishes raichi.otp.enabled events.
func (p *EventPublisher) PublishOTPEnabled(ctx context.Context, event domain.OTPEnabledEvent) error {
	payload := struct {
		UserID    string    `json:"user_id"`
		SecretID  string    `json:"secret_id"`
		EnabledAt time.Time `json:"enabled_at"`
	}{
		UserID:    event.UserID,
		SecretID:  event.SecretID,
		EnabledAt: event.EnabledAt.UTC(),
	}

	return p.publish(ctx, event.EventID, "otp.enabled", event.UserID, event.EnabledAt, payload)
}

// PublishEventCreated publishes raichi.event.created events.
func (p *EventPublisher) PublishEventCreated(ctx context.Context, event domain.EventCreatedEvent) error {
	payload := struct {
		PlatformID  string    `json:"platform_id"`
		Title       string    `json:"title"`
		VenueID     string    `json:"venue_id"`
		CreatedBy   string    `json:"created_by"`
		ScheduledAt time.Time `json:"scheduled_at"`
		CreatedAt   time.Time `json:"created_at"`
	}{
		PlatformID:  event.PlatformID,
		Title:       event.Title,
		VenueID:     event.VenueID,
		CreatedBy:   event.CreatedBy,
		ScheduledAt: event.ScheduledAt.UTC(),
		CreatedAt:   event.CreatedAt.UTC(),
	}

	return p.publish(ctx, event.EventID, "event.created", event.CreatedBy, event.CreatedAt, payload)
}

var _ port.EventPublisher = (*EventPublisher)(nil)
