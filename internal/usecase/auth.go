package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ClairKirsch/raichi/internal/core/domain"
	"github.com/ClairKirsch/raichi/internal/core/port"
	"github.com/ClairKirsch/raichi/internal/infra/security"
	"github.com/ClairKirsch/raichi/internal/repository"
)

var (
	// ErrInvalidCredentials indicates the username, password, or OTP code did not verify.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidAccessToken indicates the provided access token is malformed or signature validation failed.
	ErrInvalidAccessToken = errors.New("invalid access token")
	// ErrExpiredAccessToken indicates the provided access token has expired.
	ErrExpiredAccessToken = errors.New("access token expired")
)

// AuthService coordinates password and second-factor authentication.
type AuthService struct {
	users   port.UserRepository
	secrets port.TOTPSecretRepository
	codec   *security.TokenCodec
	otpSkew uint
	now     func() time.Time
}

// NewAuthService constructs an AuthService instance. otpSkew is the number of
// 30-second steps accepted on either side of the current one during login.
func NewAuthService(users port.UserRepository, secrets port.TOTPSecretRepository, codec *security.TokenCodec, otpSkew uint) *AuthService {
	return &AuthService{
		users:   users,
		secrets: secrets,
		codec:   codec,
		otpSkew: otpSkew,
		now:     time.Now,
	}
}

// WithClock overrides the time source for deterministic tests.
func (s *AuthService) WithClock(now func() time.Time) *AuthService {
	if now != nil {
		s.now = now
	}
	return s
}

// Login validates the credential triple and issues a signed access token.
//
// The password is always verified before the OTP is considered. When the
// account has at least one enabled secret, a code is mandatory and must
// verify against one of the enabled secrets; when it has none, any supplied
// code is ignored.
func (s *AuthService) Login(ctx context.Context, username, password, otp string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", ErrInvalidCredentials
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("lookup user: %w", err)
	}

	ok, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return "", fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return "", ErrInvalidCredentials
	}

	enabled, err := s.secrets.ListEnabledByUser(ctx, user.ID)
	if err != nil {
		return "", fmt.Errorf("list enabled secrets: %w", err)
	}

	if domain.HasEnabled(enabled) {
		if otp == "" || !s.verifyAgainstAny(enabled, otp) {
			return "", ErrInvalidCredentials
		}
	}

	token, err := s.codec.Issue(user.ID, user.Username)
	if err != nil {
		return "", fmt.Errorf("issue access token: %w", err)
	}

	return token, nil
}

func (s *AuthService) verifyAgainstAny(secrets []domain.TOTPSecret, otp string) bool {
	at := s.now()
	for _, secret := range secrets {
		if !secret.Enabled {
			continue
		}
		if security.VerifyTOTP(secret.Secret, otp, at, s.otpSkew) {
			return true
		}
	}
	return false
}

// ParseAccessToken validates the token and returns its claims, distinguishing
// expiry from every other failure mode.
func (s *AuthService) ParseAccessToken(token string) (*security.AccessTokenClaims, error) {
	claims, err := s.codec.Parse(token)
	if err != nil {
		switch {
		case errors.Is(err, security.ErrTokenExpired):
			return nil, ErrExpiredAccessToken
		default:
			return nil, ErrInvalidAccessToken
		}
	}
	return claims, nil
}

// ResolveToken parses the token and loads the account it names. A token whose
// subject no longer exists is treated as invalid.
func (s *AuthService) ResolveToken(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.ParseAccessToken(token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidAccessToken
		}
		return nil, fmt.Errorf("lookup token subject: %w", err)
	}

	return user, nil
}
