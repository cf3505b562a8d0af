package port

import (
	"context"

	"github.com/ClairKirsch/raichi/internal/core/domain"
)

// TOTPSecretRepository persists second-factor secrets.
type TOTPSecretRepository interface {
	Create(ctx context.Context, secret domain.TOTPSecret) error
	// ListByUser returns every secret for the user ordered by created_at
	// ascending, so enrollment verification scans in a deterministic order.
	ListByUser(ctx context.Context, userID string) ([]domain.TOTPSecret, error)
	// ListEnabledByUser returns only enabled secrets, same ordering.
	ListEnabledByUser(ctx context.Context, userID string) ([]domain.TOTPSecret, error)
	// Enable flips the enabled flag in a single compare-and-set statement.
	// It reports false when the row was already enabled (or missing), so
	// concurrent completions cannot both observe the transition.
	Enable(ctx context.Context, id string) (bool, error)
}
