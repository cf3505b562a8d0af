package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	uuid "github.com/google/uuid"

	"github.com/ClairKirsch/raichi/internal/core/domain"
	"github.com/ClairKirsch/raichi/internal/core/port"
	"github.com/ClairKirsch/raichi/internal/repository"
)

var (
	// ErrTagExists indicates a tag with the same name already exists.
	ErrTagExists = errors.New("tag already exists")
	// ErrTagNotFound indicates the referenced tag does not exist.
	ErrTagNotFound = errors.New("tag not found")
	// ErrEventNotFound indicates the referenced event does not exist.
	ErrEventNotFound = errors.New("event not found")
)

// TagService manages tags and their links to events.
type TagService struct {
	tags   port.TagRepository
	events port.EventRepository
}

// NewTagService constructs TagService.
func NewTagService(tags port.TagRepository, events port.EventRepository) *TagService {
	return &TagService{tags: tags, events: events}
}

// CreateTag persists a new tag with a unique name.
func (s *TagService) CreateTag(ctx context.Context, name string) (domain.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Tag{}, fmt.Errorf("tag name is required")
	}

	tag := domain.Tag{ID: uuid.NewString(), Name: name}
	if err := s.tags.Create(ctx, tag); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return domain.Tag{}, ErrTagExists
		}
		return domain.Tag{}, fmt.Errorf("create tag: %w", err)
	}

	return tag, nil
}

// GetTag retrieves a tag by identifier.
func (s *TagService) GetTag(ctx context.Context, id string) (*domain.Tag, error) {
	tag, err := s.tags.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTagNotFound
		}
		return nil, err
	}
	return tag, nil
}

// Associate links an existing tag to an existing event.
func (s *TagService) Associate(ctx context.Context, tagID, eventID string) error {
	if _, err := s.tags.GetByID(ctx, tagID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTagNotFound
		}
		return fmt.Errorf("lookup tag: %w", err)
	}
	if _, err := s.events.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrEventNotFound
		}
		return fmt.Errorf("lookup event: %w", err)
	}

	if err := s.tags.Associate(ctx, tagID, eventID); err != nil {
		return fmt.Errorf("associate tag: %w", err)
	}

	return nil
}
