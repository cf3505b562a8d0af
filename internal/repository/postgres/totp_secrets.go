package postgres

import (
	"context"
	"fmt"

	squirrel "github.com/Masterminds/squirrel"

	"github.com/ClairKirsch/raichi/internal/core/domain"
	"github.com/ClairKirsch/raichi/internal/core/port"
)

// TOTPSecretRepository implements port.TOTPSecretRepository using PostgreSQL.
type TOTPSecretRepository struct {
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

// NewTOTPSecretRepository constructs a repository backed by any executor that satisfies pgExecutor.
func NewTOTPSecretRepository(exec pgExecutor) *TOTPSecretRepository {
	return &TOTPSecretRepository{
		exec:    exec,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new pending secret row.
func (r *TOTPSecretRepository) Create(ctx context.Context, secret domain.TOTPSecret) error {
	stmt, args, err := r.builder.Insert("raichi.totp_secrets").
		Columns("id", "user_id", "secret", "enabled", "created_at").
		Values(secret.ID, secret.UserID, secret.Secret, secret.Enabled, secret.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert totp secret sql: %w", err)
	}

	if _, err := r.exec.Exec(ctx, stmt, args...); err != nil {
		return fmt.Errorf("insert totp secret: %w", err)
	}

	return nil
}

// ListByUser returns all of a user's secrets ordered by creation time.
func (r *TOTPSecretRepository) ListByUser(ctx context.Context, userID string) ([]domain.TOTPSecret, error) {
	return r.list(ctx, squirrel.Eq{"user_id": userID})
}

// ListEnabledByUser returns only the user's enabled secrets.
func (r *TOTPSecretRepository) ListEnabledByUser(ctx context.Context, userID string) ([]domain.TOTPSecret, error) {
	return r.list(ctx, squirrel.Eq{"user_id": userID, "enabled": true})
}

func (r *TOTPSecretRepository) list(ctx context.Context, where squirrel.Eq) ([]domain.TOTPSecret, error) {
	stmt, args, err := r.builder.
		Select("id", "user_id", "secret", "enabled", "created_at").
		From("raichi.totp_secrets").
		Where(where).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select totp secrets sql: %w", err)
	}

	rows, err := r.exec.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query totp secrets: %w", err)
	}
	defer rows.Close()

	secrets := make([]domain.TOTPSecret, 0)
	for rows.Next() {
		var secret domain.TOTPSecret
		if err := rows.Scan(&secret.ID, &secret.UserID, &secret.Secret, &secret.Enabled, &secret.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan totp secret: %w", err)
		}
		secrets = append(secrets, secret)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate totp secrets: %w", err)
	}

	return secrets, nil
}

// Enable flips the enabled flag using a compare-and-set predicate so two
// concurrent enrollment completions cannot both observe the transition.
func (r *TOTPSecretRepository) Enable(ctx context.Context, id string) (bool, error) {
	stmt, args, err := r.builder.Update("raichi.totp_secrets").
		Set("enabled", true).
		Where(squirrel.Eq{"id": id, "enabled": false}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build enable totp secret sql: %w", err)
	}

	ct, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return false, fmt.Errorf("enable totp secret: %w", err)
	}

	return ct.RowsAffected() == 1, nil
}

var _ port.TOTPSecretRepository = (*TOTPSecretRepository)(nil)
