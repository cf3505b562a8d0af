package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	uuid "github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ClairKirsch/raichi/internal/core/domain"
	"github.com/ClairKirsch/raichi/internal/core/port"
	"github.com/ClairKirsch/raichi/internal/infra/security"
	"github.com/ClairKirsch/raichi/internal/repository"
)

// ErrOTPVerificationFailed indicates the submitted code matched none of the user's secrets.
var ErrOTPVerificationFailed = errors.New("otp verification failed")

// EnrollmentService manages the second-factor secret lifecycle: provisioning
// pending secrets and promoting them to enabled once the owner proves
// possession of the authenticator.
type EnrollmentService struct {
	users     port.UserRepository
	secrets   port.TOTPSecretRepository
	publisher port.EventPublisher
	logger    *zap.Logger
	issuer    string
	now       func() time.Time
}

// NewEnrollmentService constructs an EnrollmentService. issuer labels the
// provisioning URI shown in authenticator apps.
func NewEnrollmentService(users port.UserRepository, secrets port.TOTPSecretRepository, publisher port.EventPublisher, logger *zap.Logger, issuer string) *EnrollmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnrollmentService{
		users:     users,
		secrets:   secrets,
		publisher: publisher,
		logger:    logger,
		issuer:    issuer,
		now:       time.Now,
	}
}

// WithClock overrides the time source for deterministic tests.
func (s *EnrollmentService) WithClock(now func() time.Time) *EnrollmentService {
	if now != nil {
		s.now = now
	}
	return s
}

// BeginEnrollment creates a pending secret for the user and returns the
// otpauth:// provisioning URI to render as a QR code. A user may hold any
// number of pending secrets; none of them affect login until verified.
func (s *EnrollmentService) BeginEnrollment(ctx context.Context, user domain.User) (string, error) {
	raw, err := security.GenerateTOTPSecret()
	if err != nil {
		return "", fmt.Errorf("generate totp secret: %w", err)
	}

	secret := domain.TOTPSecret{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Secret:    raw,
		Enabled:   false,
		CreatedAt: s.now().UTC(),
	}
	if err := s.secrets.Create(ctx, secret); err != nil {
		return "", fmt.Errorf("persist totp secret: %w", err)
	}

	uri, err := security.ProvisioningURI(raw, user.Username, s.issuer)
	if err != nil {
		return "", fmt.Errorf("build provisioning uri: %w", err)
	}

	return uri, nil
}

// CompleteEnrollment verifies the submitted code against the user's secrets
// in creation order and enables the first pending secret that matches.
//
// Verification here uses zero skew: the code must belong to the current
// 30-second step. A code matching an already-enabled secret is accepted as a
// no-op so that re-submitting a verification form stays idempotent. The
// enable itself is a compare-and-set, so two racing completions produce a
// single enabled transition and a single published event.
func (s *EnrollmentService) CompleteEnrollment(ctx context.Context, userID, code string) error {
	// An account deleted between token issuance and this call has no
	// verifiable secrets.
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrOTPVerificationFailed
		}
		return fmt.Errorf("lookup user: %w", err)
	}

	secrets, err := s.secrets.ListByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("list totp secrets: %w", err)
	}

	at := s.now()
	for _, secret := range secrets {
		if !security.VerifyTOTP(secret.Secret, code, at, 0) {
			continue
		}

		if secret.Enabled {
			return nil
		}

		flipped, err := s.secrets.Enable(ctx, secret.ID)
		if err != nil {
			return fmt.Errorf("enable totp secret: %w", err)
		}
		if flipped {
			s.publishEnabled(ctx, secret)
		}
		return nil
	}

	return ErrOTPVerificationFailed
}

func (s *EnrollmentService) publishEnabled(ctx context.Context, secret domain.TOTPSecret) {
	if s.publisher == nil {
		return
	}

	event := domain.OTPEnabledEvent{
		EventID:   uuid.NewString(),
		UserID:    secret.UserID,
		SecretID:  secret.ID,
		EnabledAt: s.now().UTC(),
	}
	if err := s.publisher.PublishOTPEnabled(ctx, event); err != nil {
		s.logger.Warn("failed to publish otp enabled event",
			zap.String("user_id", secret.UserID),
			zap.Error(err))
	}
}
