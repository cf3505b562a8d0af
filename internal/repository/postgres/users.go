package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	squirrel "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ClairKirsch/raichi/internal/core/domain"
	"github.com/ClairKirsch/raichi/internal/core/port"
	"github.com/ClairKirsch/raichi/internal/repository"
)

const uniqueViolationCode = "23505"

// UserRepository implements port.UserRepository using PostgreSQL.
type UserRepository struct {
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

// NewUserRepository constructs a repository backed by any executor that satisfies pgExecutor.
func NewUserRepository(exec pgExecutor) *UserRepository {
	return &UserRepository{
		exec:    exec,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new user row.
func (r *UserRepository) Create(ctx context.Context, user domain.User) error {
	query := r.builder.Insert("raichi.users").
		Columns("id", "username", "email", "full_name", "password_hash", "bio", "profile_image", "created_at").
		Values(
			user.ID,
			user.Username,
			user.Email,
			user.FullName,
			user.PasswordHash,
			user.Bio,
			user.ProfileImage,
			user.CreatedAt,
		)

	stmt, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build insert user sql: %w", err)
	}

	if _, err := r.exec.Exec(ctx, stmt, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("insert user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by identifier.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	stmt, args, err := r.builder.
		Select("id", "username", "email", "full_name", "password_hash", "bio", "profile_image", "created_at").
		From("raichi.users").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select user sql: %w", err)
	}

	return r.scanUser(r.exec.QueryRow(ctx, stmt, args...))
}

// GetByUsername retrieves a user by unique username.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	stmt, args, err := r.builder.
		Select("id", "username", "email", "full_name", "password_hash", "bio", "profile_image", "created_at").
		From("raichi.users").
		Where(squirrel.Eq{"username": username}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select user by username sql: %w", err)
	}

	return r.scanUser(r.exec.QueryRow(ctx, stmt, args...))
}

// UpdateProfile modifies an existing user's profile fields.
func (r *UserRepository) UpdateProfile(ctx context.Context, user domain.User) error {
	stmt, args, err := r.builder.Update("raichi.users").
		Set("email", user.Email).
		Set("full_name", user.FullName).
		Set("bio", user.Bio).
		Set("profile_image", user.ProfileImage).
		Where(squirrel.Eq{"id": user.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update user sql: %w", err)
	}

	ct, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func (r *UserRepository) scanUser(row pgx.Row) (*domain.User, error) {
	var (
		user         domain.User
		email        sql.NullString
		fullName     sql.NullString
		bio          sql.NullString
		profileImage sql.NullString
	)

	if err := row.Scan(
		&user.ID,
		&user.Username,
		&email,
		&fullName,
		&user.PasswordHash,
		&bio,
		&profileImage,
		&user.CreatedAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}

	if email.Valid {
		user.Email = &email.String
	}
	if fullName.Valid {
		user.FullName = &fullName.String
	}
	if bio.Valid {
		user.Bio = &bio.String
	}
	if profileImage.Valid {
		user.ProfileImage = &profileImage.String
	}

	return &user, nil
}

var _ port.UserRepository = (*UserRepository)(nil)
