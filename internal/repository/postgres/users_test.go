package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v2"

	"github.com/ClairKirsch/raichi/internal/core/domain"
	"github.com/ClairKirsch/raichi/internal/repository"
)

func TestUserRepository_CreateDuplicateUsername(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewUserRepository(mock)

	user := domain.User{
		ID:           "user-1",
		Username:     "alice",
		PasswordHash: "$argon2id$...",
		CreatedAt:    time.Now().UTC(),
	}

	mock.ExpectExec(`INSERT INTO raichi\.users`).
		WithArgs(user.ID, user.Username, user.Email, user.FullName, user.PasswordHash, user.Bio, user.ProfileImage, user.CreatedAt).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	if err := repo.Create(context.Background(), user); !errors.Is(err, repository.ErrDuplicate) {
		t.Fatalf("error = %v, want ErrDuplicate", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserRepository_GetByUsername(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewUserRepository(mock)

	createdAt := time.Now().UTC()
	email := "alice@example.com"

	rows := pgxmock.NewRows([]string{"id", "username", "email", "full_name", "password_hash", "bio", "profile_image", "created_at"}).
		AddRow("user-1", "alice", email, nil, "$argon2id$...", nil, nil, createdAt)

	mock.ExpectQuery(`SELECT id, username, email, full_name, password_hash, bio, profile_image, created_at FROM raichi\.users`).
		WithArgs("alice").
		WillReturnRows(rows)

	user, err := repo.GetByUsername(context.Background(), "alice")
	if err != nil {
		t.Fatalf("GetByUsername returned error: %v", err)
	}

	if user.ID != "user-1" || user.Username != "alice" {
		t.Fatalf("unexpected user: %+v", user)
	}
	if user.Email == nil || *user.Email != email {
		t.Fatalf("email = %v, want %q", user.Email, email)
	}
	if user.FullName != nil || user.Bio != nil || user.ProfileImage != nil {
		t.Fatalf("expected nullable fields to stay nil: %+v", user)
	}
}

func TestUserRepository_GetByUsernameNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewUserRepository(mock)

	mock.ExpectQuery(`SELECT id, username, email, full_name, password_hash, bio, profile_image, created_at FROM raichi\.users`).
		WithArgs("ghost").
		WillReturnError(pgx.ErrNoRows)

	if _, err := repo.GetByUsername(context.Background(), "ghost"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestUserRepository_UpdateProfileMissingRow(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewUserRepository(mock)

	user := domain.User{ID: "ghost"}

	mock.ExpectExec(`UPDATE raichi\.users SET`).
		WithArgs(user.Email, user.FullName, user.Bio, user.ProfileImage, user.ID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	if err := repo.UpdateProfile(context.Background(), user); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}
