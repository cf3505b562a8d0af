package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ClairKirsch/raichi/internal/repository"
	"github.com/ClairKirsch/raichi/internal/transport/http/middleware"
	"github.com/ClairKirsch/raichi/internal/usecase"
)

// RegisterUserRequest is the payload for account creation.
type RegisterUserRequest struct {
	Username     string  `json:"username" binding:"required"`
	Password     string  `json:"password" binding:"required"`
	Email        *string `json:"email"`
	FullName     *string `json:"full_name"`
	Bio          *string `json:"bio"`
	ProfileImage *string `json:"profile_image"`
}

// UpdateProfileRequest carries optional profile fields; absent fields stay unchanged.
type UpdateProfileRequest struct {
	Email        *string `json:"email"`
	FullName     *string `json:"full_name"`
	Bio          *string `json:"bio"`
	ProfileImage *string `json:"profile_image"`
}

// UserHandler exposes registration and profile endpoints.
type UserHandler struct {
	registration *usecase.RegistrationService
	users        *usecase.UserService
}

// NewUserHandler constructs a UserHandler.
func NewUserHandler(registration *usecase.RegistrationService, users *usecase.UserService) *UserHandler {
	return &UserHandler{registration: registration, users: users}
}

// RegisterPublicRoutes binds endpoints that do not require authentication.
func (h *UserHandler) RegisterPublicRoutes(r *gin.RouterGroup) {
	r.POST("/users/", h.Register)
}

// RegisterProtectedRoutes binds endpoints that require authentication.
func (h *UserHandler) RegisterProtectedRoutes(r *gin.RouterGroup) {
	r.GET("/users/me/", h.Me)
	r.PUT("/users/me/", h.UpdateProfile)
	r.GET("/users/:id", h.GetUser)
}

// Register creates a new account.
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, DetailResponse{Detail: "invalid request payload"})
		return
	}

	user, err := h.registration.RegisterUser(c.Request.Context(), usecase.RegisterUserInput{
		Username:     req.Username,
		Password:     req.Password,
		Email:        req.Email,
		FullName:     req.FullName,
		Bio:          req.Bio,
		ProfileImage: req.ProfileImage,
	})
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrUsernameTaken, Status: http.StatusBadRequest, Detail: "Username already registered"},
			{Err: usecase.ErrPasswordPolicyViolation, Status: http.StatusBadRequest, Detail: "Password does not meet requirements"},
		}, http.StatusInternalServerError, "failed to register user")
		return
	}

	c.JSON(http.StatusCreated, newUserResponse(user))
}

// Me returns the authenticated user's own profile.
func (h *UserHandler) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, DetailResponse{Detail: "Could not validate credentials"})
		return
	}

	user.PasswordHash = ""
	c.JSON(http.StatusOK, newUserResponse(user))
}

// UpdateProfile applies profile changes to the authenticated user.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, DetailResponse{Detail: "Could not validate credentials"})
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, DetailResponse{Detail: "invalid request payload"})
		return
	}

	updated, err := h.users.UpdateProfile(c.Request.Context(), user, usecase.UpdateProfileInput{
		Email:        req.Email,
		FullName:     req.FullName,
		Bio:          req.Bio,
		ProfileImage: req.ProfileImage,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, DetailResponse{Detail: "failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, newUserResponse(*updated))
}

// GetUser returns another user's public profile.
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.users.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, DetailResponse{Detail: "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, DetailResponse{Detail: "failed to load user"})
		return
	}

	c.JSON(http.StatusOK, newUserResponse(*user))
}
