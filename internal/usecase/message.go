package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	uuid "github.com/google/uuid"

	"github.com/ClairKirsch/raichi/internal/core/domain"
	"github.com/ClairKirsch/raichi/internal/core/port"
	"github.com/ClairKirsch/raichi/internal/repository"
)

var (
	// ErrRecipientNotFound indicates the message recipient does not exist.
	ErrRecipientNotFound = errors.New("recipient not found")
	// ErrNoSharedEvent indicates sender and recipient attend no common event.
	ErrNoSharedEvent = errors.New("no shared event with recipient")
)

// MessageService handles direct messages between attendees. Sending is gated
// on the pair sharing at least one attended event.
type MessageService struct {
	messages port.MessageRepository
	users    port.UserRepository
	events   port.EventRepository
	now      func() time.Time
}

// NewMessageService constructs MessageService.
func NewMessageService(messages port.MessageRepository, users port.UserRepository, events port.EventRepository) *MessageService {
	return &MessageService{
		messages: messages,
		users:    users,
		events:   events,
		now:      time.Now,
	}
}

// WithClock overrides the time source for deterministic tests.
func (s *MessageService) WithClock(now func() time.Time) *MessageService {
	if now != nil {
		s.now = now
	}
	return s
}

// Send delivers a message from sender to recipient if they share an event.
func (s *MessageService) Send(ctx context.Context, senderID, recipientID, subject, content string) (domain.Message, error) {
	if _, err := s.users.GetByID(ctx, recipientID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Message{}, ErrRecipientNotFound
		}
		return domain.Message{}, fmt.Errorf("lookup recipient: %w", err)
	}

	shared, err := s.events.SharedEventExists(ctx, senderID, recipientID)
	if err != nil {
		return domain.Message{}, fmt.Errorf("check shared events: %w", err)
	}
	if !shared {
		return domain.Message{}, ErrNoSharedEvent
	}

	message := domain.Message{
		ID:          uuid.NewString(),
		SenderID:    senderID,
		RecipientID: recipientID,
		Subject:     subject,
		Content:     content,
		SentAt:      s.now().UTC(),
	}

	if err := s.messages.Create(ctx, message); err != nil {
		return domain.Message{}, fmt.Errorf("create message: %w", err)
	}

	return message, nil
}

// Inbox returns the messages addressed to the user, newest first.
func (s *MessageService) Inbox(ctx context.Context, userID string) ([]domain.Message, error) {
	return s.messages.ListInbox(ctx, userID)
}
