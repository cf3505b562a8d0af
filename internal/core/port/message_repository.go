package port

import (
	"context"

	"github.com/ClairKirsch/raichi/internal/core/domain"
)

// MessageRepository exposes persistence behavior for direct messages.
type MessageRepository interface {
	Create(ctx context.Context, message domain.Message) error
	ListInbox(ctx context.Context, recipientID string) ([]domain.Message, error)
}
