package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ClairKirsch/raichi/internal/usecase"
)

const detailIncorrectCredentials = "Incorrect username, password, or OTP"

// TokenRequest is the form-encoded payload accepted by the token endpoint.
// It mirrors the OAuth2 password grant shape; grant_type, scope, and client
// fields are accepted and ignored.
type TokenRequest struct {
	GrantType    string `form:"grant_type"`
	Username     string `form:"username" binding:"required"`
	Password     string `form:"password" binding:"required"`
	OTP          string `form:"otp"`
	Scope        string `form:"scope"`
	ClientID     string `form:"client_id"`
	ClientSecret string `form:"client_secret"`
}

// TokenHandler exposes the password-grant token endpoint.
type TokenHandler struct {
	auth *usecase.AuthService
}

// NewTokenHandler constructs a TokenHandler.
func NewTokenHandler(auth *usecase.AuthService) *TokenHandler {
	return &TokenHandler{auth: auth}
}

// RegisterRoutes binds token endpoints.
func (h *TokenHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/token", h.IssueToken)
}

// IssueToken exchanges a username/password pair, plus an OTP code when the
// account has an enabled second factor, for a bearer access token. All
// credential failures collapse into one indistinguishable 401 response.
func (h *TokenHandler) IssueToken(c *gin.Context) {
	var req TokenRequest
	if err := c.ShouldBind(&req); err != nil {
		h.rejectCredentials(c)
		return
	}

	token, err := h.auth.Login(c.Request.Context(), req.Username, req.Password, req.OTP)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			h.rejectCredentials(c)
			return
		}
		c.JSON(http.StatusInternalServerError, DetailResponse{Detail: "failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, TokenResponse{AccessToken: token, TokenType: "bearer"})
}

func (h *TokenHandler) rejectCredentials(c *gin.Context) {
	c.Header("WWW-Authenticate", "Bearer")
	c.JSON(http.StatusUnauthorized, DetailResponse{Detail: detailIncorrectCredentials})
}
