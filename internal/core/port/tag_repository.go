package port

import (
	"context"

	"github.com/ClairKirsch/raichi/internal/core/domain"
)

// TagRepository exposes persistence behavior for tags and their event links.
type TagRepository interface {
	Create(ctx context.Context, tag domain.Tag) error
	GetByID(ctx context.Context, id string) (*domain.Tag, error)
	Associate(ctx context.Context, tagID, eventID string) error
	// SearchEvents returns events carrying a tag whose name contains the
	// provided fragment (case-insensitive substring match).
	SearchEvents(ctx context.Context, nameFragment string) ([]domain.Event, error)
}
