package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ClairKirsch/raichi/internal/core/domain"
)

func TestSendRequiresSharedEvent(t *testing.T) {
	users := newMockUserRepository(
		domain.User{ID: "alice", Username: "alice"},
		domain.User{ID: "bob", Username: "bob"},
	)
	events := newMockEventRepository(domain.Event{ID: "evt-1", VenueID: "venue-1"})
	messages := &mockMessageRepository{}

	svc := NewMessageService(messages, users, events)

	if _, err := svc.Send(context.Background(), "alice", "bob", "hi", "hello"); !errors.Is(err, ErrNoSharedEvent) {
		t.Fatalf("error = %v, want ErrNoSharedEvent", err)
	}
	if len(messages.messages) != 0 {
		t.Fatal("gated message must not be persisted")
	}
}

func TestSendDeliversWhenEventShared(t *testing.T) {
	now := time.Date(2026, 6, 4, 20, 0, 0, 0, time.UTC)
	users := newMockUserRepository(
		domain.User{ID: "alice", Username: "alice"},
		domain.User{ID: "bob", Username: "bob"},
	)
	events := newMockEventRepository(domain.Event{ID: "evt-1", VenueID: "venue-1"})
	if err := events.Attend(context.Background(), "evt-1", "alice"); err != nil {
		t.Fatalf("Attend: %v", err)
	}
	if err := events.Attend(context.Background(), "evt-1", "bob"); err != nil {
		t.Fatalf("Attend: %v", err)
	}
	messages := &mockMessageRepository{}

	svc := NewMessageService(messages, users, events).
		WithClock(func() time.Time { return now })

	sent, err := svc.Send(context.Background(), "alice", "bob", "hi", "see you there")
	if err != nil {
		t.Fatalf("Send returned error: %v", err)
	}

	if sent.SenderID != "alice" || sent.RecipientID != "bob" {
		t.Fatalf("unexpected envelope: %+v", sent)
	}
	if !sent.SentAt.Equal(now) {
		t.Fatalf("sent_at = %v, want %v", sent.SentAt, now)
	}

	inbox, err := svc.Inbox(context.Background(), "bob")
	if err != nil {
		t.Fatalf("Inbox returned error: %v", err)
	}
	if len(inbox) != 1 || inbox[0].Content != "see you there" {
		t.Fatalf("unexpected inbox: %+v", inbox)
	}
}

func TestSendUnknownRecipient(t *testing.T) {
	users := newMockUserRepository(domain.User{ID: "alice", Username: "alice"})
	svc := NewMessageService(&mockMessageRepository{}, users, newMockEventRepository())

	if _, err := svc.Send(context.Background(), "alice", "nobody", "hi", "hello"); !errors.Is(err, ErrRecipientNotFound) {
		t.Fatalf("error = %v, want ErrRecipientNotFound", err)
	}
}

func TestUnattendRevokesMessagingGate(t *testing.T) {
	users := newMockUserRepository(
		domain.User{ID: "alice", Username: "alice"},
		domain.User{ID: "bob", Username: "bob"},
	)
	events := newMockEventRepository(domain.Event{ID: "evt-1", VenueID: "venue-1"})
	for _, userID := range []string{"alice", "bob"} {
		if err := events.Attend(context.Background(), "evt-1", userID); err != nil {
			t.Fatalf("Attend: %v", err)
		}
	}
	svc := NewMessageService(&mockMessageRepository{}, users, events)

	if _, err := svc.Send(context.Background(), "alice", "bob", "hi", "first"); err != nil {
		t.Fatalf("Send before unattend: %v", err)
	}

	if err := events.Unattend(context.Background(), "evt-1", "bob"); err != nil {
		t.Fatalf("Unattend: %v", err)
	}

	if _, err := svc.Send(context.Background(), "alice", "bob", "hi", "second"); !errors.Is(err, ErrNoSharedEvent) {
		t.Fatalf("error = %v, want ErrNoSharedEvent", err)
	}
}
