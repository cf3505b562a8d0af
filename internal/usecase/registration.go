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
	"github.com/ClairKirsch/raichi/internal/infra/security"
	"github.com/ClairKirsch/raichi/internal/repository"
)

var (
	// ErrUsernameTaken indicates the requested username already exists.
	ErrUsernameTaken = errors.New("username already registered")
	// ErrPasswordPolicyViolation indicates the password does not satisfy the policy.
	ErrPasswordPolicyViolation = errors.New("password does not meet requirements")
)

// RegisterUserInput captures the payload for account creation.
type RegisterUserInput struct {
	Username     string
	Password     string
	Email        *string
	FullName     *string
	Bio          *string
	ProfileImage *string
}

// RegistrationService handles new account onboarding.
type RegistrationService struct {
	users     port.UserRepository
	policy    *security.PasswordPolicy
	publisher port.EventPublisher
	logger    *zap.Logger
	now       func() time.Time
}

// NewRegistrationService constructs a registration service.
func NewRegistrationService(users port.UserRepository, policy *security.PasswordPolicy, publisher port.EventPublisher, logger *zap.Logger) *RegistrationService {
	if policy == nil {
		policy = security.NewPasswordPolicy(8, 0)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RegistrationService{
		users:     users,
		policy:    policy,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// WithClock overrides the time source for deterministic tests.
func (s *RegistrationService) WithClock(now func() time.Time) *RegistrationService {
	if now != nil {
		s.now = now
	}
	return s
}

// RegisterUser validates the input, hashes the password, and persists the account.
func (s *RegistrationService) RegisterUser(ctx context.Context, input RegisterUserInput) (domain.User, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return domain.User{}, fmt.Errorf("username is required")
	}
	if input.Password == "" {
		return domain.User{}, fmt.Errorf("password is required")
	}

	if err := s.policy.Validate(input.Password); err != nil {
		return domain.User{}, fmt.Errorf("%w: %v", ErrPasswordPolicyViolation, err)
	}

	passwordHash, err := security.HashPassword(input.Password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := domain.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        input.Email,
		FullName:     input.FullName,
		PasswordHash: passwordHash,
		Bio:          input.Bio,
		ProfileImage: input.ProfileImage,
		CreatedAt:    s.now().UTC(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return domain.User{}, ErrUsernameTaken
		}
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}

	s.publishRegistered(ctx, user)

	user.PasswordHash = ""
	return user, nil
}

func (s *RegistrationService) publishRegistered(ctx context.Context, user domain.User) {
	if s.publisher == nil {
		return
	}

	event := domain.UserRegisteredEvent{
		EventID:      uuid.NewString(),
		UserID:       user.ID,
		Username:     user.Username,
		RegisteredAt: user.CreatedAt,
	}
	if err := s.publisher.PublishUserRegistered(ctx, event); err != nil {
		s.logger.Warn("failed to publish user registered event",
			zap.String("user_id", user.ID),
			zap.Error(err))
	}
}
