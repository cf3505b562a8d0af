package postgres

import (
	"context"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v2"

	"github.com/ClairKirsch/raichi/internal/core/domain"
)

func TestTOTPSecretRepository_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewTOTPSecretRepository(mock)

	createdAt := time.Now().UTC()
	secret := domain.TOTPSecret{
		ID:        "sec-1",
		UserID:    "user-1",
		Secret:    "GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ",
		Enabled:   false,
		CreatedAt: createdAt,
	}

	mock.ExpectExec(`INSERT INTO raichi\.totp_secrets`).
		WithArgs(secret.ID, secret.UserID, secret.Secret, secret.Enabled, secret.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	if err := repo.Create(context.Background(), secret); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTOTPSecretRepository_ListByUserOrdersByCreation(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewTOTPSecretRepository(mock)

	older := time.Now().UTC().Add(-time.Hour)
	newer := time.Now().UTC()

	rows := pgxmock.NewRows([]string{"id", "user_id", "secret", "enabled", "created_at"}).
		AddRow("sec-1", "user-1", "AAAA", true, older).
		AddRow("sec-2", "user-1", "BBBB", false, newer)

	mock.ExpectQuery(`SELECT id, user_id, secret, enabled, created_at FROM raichi\.totp_secrets WHERE user_id = \$1 ORDER BY created_at ASC`).
		WithArgs("user-1").
		WillReturnRows(rows)

	secrets, err := repo.ListByUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("ListByUser returned error: %v", err)
	}

	if len(secrets) != 2 {
		t.Fatalf("expected 2 secrets, got %d", len(secrets))
	}
	if secrets[0].ID != "sec-1" || secrets[1].ID != "sec-2" {
		t.Fatalf("unexpected order: %+v", secrets)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTOTPSecretRepository_ListEnabledByUser(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewTOTPSecretRepository(mock)

	rows := pgxmock.NewRows([]string{"id", "user_id", "secret", "enabled", "created_at"}).
		AddRow("sec-1", "user-1", "AAAA", true, time.Now().UTC())

	mock.ExpectQuery(`SELECT id, user_id, secret, enabled, created_at FROM raichi\.totp_secrets WHERE enabled = \$1 AND user_id = \$2 ORDER BY created_at ASC`).
		WithArgs(true, "user-1").
		WillReturnRows(rows)

	secrets, err := repo.ListEnabledByUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("ListEnabledByUser returned error: %v", err)
	}
	if len(secrets) != 1 || !secrets[0].Enabled {
		t.Fatalf("unexpected secrets: %+v", secrets)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTOTPSecretRepository_EnableFlipsPendingRow(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewTOTPSecretRepository(mock)

	mock.ExpectExec(`UPDATE raichi\.totp_secrets SET enabled = \$1 WHERE enabled = \$2 AND id = \$3`).
		WithArgs(true, false, "sec-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	flipped, err := repo.Enable(context.Background(), "sec-1")
	if err != nil {
		t.Fatalf("Enable returned error: %v", err)
	}
	if !flipped {
		t.Fatal("expected enable to report the transition")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTOTPSecretRepository_EnableAlreadyEnabled(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewTOTPSecretRepository(mock)

	mock.ExpectExec(`UPDATE raichi\.totp_secrets SET enabled = \$1 WHERE enabled = \$2 AND id = \$3`).
		WithArgs(true, false, "sec-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	flipped, err := repo.Enable(context.Background(), "sec-1")
	if err != nil {
		t.Fatalf("Enable returned error: %v", err)
	}
	if flipped {
		t.Fatal("an already-enabled row must not report a transition")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
