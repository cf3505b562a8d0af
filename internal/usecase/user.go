package usecase

import (
	"context"
	"fmt"

	"github.com/ClairKirsch/raichi/internal/core/domain"
	"github.com/ClairKirsch/raichi/internal/core/port"
)

// UpdateProfileInput carries optional profile fields; nil leaves a field unchanged.
type UpdateProfileInput struct {
	Email        *string
	FullName     *string
	Bio          *string
	ProfileImage *string
}

// UserService handles user lookups and profile maintenance.
type UserService struct {
	users port.UserRepository
}

// NewUserService constructs UserService.
func NewUserService(users port.UserRepository) *UserService {
	return &UserService{users: users}
}

// GetUser retrieves a user by identifier.
func (s *UserService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

// UpdateProfile applies the provided fields to the user's profile.
func (s *UserService) UpdateProfile(ctx context.Context, user domain.User, input UpdateProfileInput) (*domain.User, error) {
	if input.Email != nil {
		user.Email = input.Email
	}
	if input.FullName != nil {
		user.FullName = input.FullName
	}
	if input.Bio != nil {
		user.Bio = input.Bio
	}
	if input.ProfileImage != nil {
		user.ProfileImage = input.ProfileImage
	}

	if err := s.users.UpdateProfile(ctx, user); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	user.PasswordHash = ""
	return &user, nil
}
