package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ClairKirsch/raichi/internal/usecase"
)

const (
	detailCouldNotValidate = "Could not validate credentials"
	detailTokenExpired     = "The access token expired"
)

// DetailResponse mirrors the handlers.DetailResponse payload shape.
type DetailResponse struct {
	Detail string `json:"detail"`
}

// RequireAuth validates the Authorization header, resolves the bearer token
// to an account, and stores it in the request context.
//
// Failure responses carry a WWW-Authenticate challenge: a generic Bearer
// challenge for missing or invalid credentials, and an invalid_token error
// attribute when the token parsed but had expired.
func RequireAuth(auth *usecase.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			challenge(c, "Bearer", detailCouldNotValidate)
			return
		}

		user, err := auth.ResolveToken(c.Request.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, usecase.ErrExpiredAccessToken):
				challenge(c, `Bearer error='invalid_token'`, detailTokenExpired)
			case errors.Is(err, usecase.ErrInvalidAccessToken):
				challenge(c, "Bearer", detailCouldNotValidate)
			default:
				c.AbortWithStatusJSON(http.StatusInternalServerError,
					DetailResponse{Detail: "authentication failed"})
			}
			return
		}

		c.Set(CurrentUserKey, *user)

		c.Next()
	}
}

func bearerToken(header string) string {
	if header == "" {
		return ""
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}

func challenge(c *gin.Context, wwwAuthenticate, detail string) {
	c.Header("WWW-Authenticate", wwwAuthenticate)
	c.AbortWithStatusJSON(http.StatusUnauthorized, DetailResponse{Detail: detail})
}
