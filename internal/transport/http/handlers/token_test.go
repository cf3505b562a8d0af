package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ClairKirsch/raichi/internal/core/domain"
	"github.com/ClairKirsch/raichi/internal/infra/security"
	"github.com/ClairKirsch/raichi/internal/repository"
	"github.com/ClairKirsch/raichi/internal/usecase"
)

type fixedUserRepository struct {
	user domain.User
}

func (f *fixedUserRepository) Create(context.Context, domain.User) error { return nil }

func (f *fixedUserRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	if id == f.user.ID {
		copy := f.user
		return &copy, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fixedUserRepository) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	if username == f.user.Username {
		copy := f.user
		return &copy, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fixedUserRepository) UpdateProfile(context.Context, domain.User) error { return nil }

type noSecretRepository struct{}

func (noSecretRepository) Create(context.Context, domain.TOTPSecret) error { return nil }
func (noSecretRepository) ListByUser(context.Context, string) ([]domain.TOTPSecret, error) {
	return nil, nil
}
func (noSecretRepository) ListEnabledByUser(context.Context, string) ([]domain.TOTPSecret, error) {
	return nil, nil
}
func (noSecretRepository) Enable(context.Context, string) (bool, error) { return false, nil }

func newTokenTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	digest, err := security.HashPassword("S3cure-pass!")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	codec, err := security.NewTokenCodec("handler-test-secret", "Raichi", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenCodec: %v", err)
	}

	users := &fixedUserRepository{user: domain.User{ID: "user-1", Username: "alice", PasswordHash: digest}}
	auth := usecase.NewAuthService(users, noSecretRepository{}, codec, 1)

	router := gin.New()
	NewTokenHandler(auth).RegisterRoutes(router.Group(""))
	return router
}

func postForm(router *gin.Engine, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestIssueTokenSuccess(t *testing.T) {
	router := newTokenTestRouter(t)

	rr := postForm(router, url.Values{
		"grant_type": {"password"},
		"username":   {"alice"},
		"password":   {"S3cure-pass!"},
	})

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rr.Code, rr.Body.String())
	}

	var body TokenResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.TokenType != "bearer" {
		t.Fatalf("token_type = %q, want bearer", body.TokenType)
	}
	if body.AccessToken == "" {
		t.Fatal("expected a non-empty access token")
	}
}

func TestIssueTokenRejectsBadCredentials(t *testing.T) {
	router := newTokenTestRouter(t)

	cases := []url.Values{
		{"username": {"alice"}, "password": {"wrong"}},
		{"username": {"mallory"}, "password": {"S3cure-pass!"}},
		{"username": {"alice"}},
		{},
	}

	for _, form := range cases {
		rr := postForm(router, form)
		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("form %v: status = %d, want 401", form, rr.Code)
		}
		if got := rr.Header().Get("WWW-Authenticate"); got != "Bearer" {
			t.Fatalf("form %v: WWW-Authenticate = %q, want Bearer", form, got)
		}

		var body DetailResponse
		if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body.Detail != "Incorrect username, password, or OTP" {
			t.Fatalf("form %v: detail = %q", form, body.Detail)
		}
	}
}
