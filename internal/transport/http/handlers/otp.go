package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ClairKirsch/raichi/internal/transport/http/middleware"
	"github.com/ClairKirsch/raichi/internal/usecase"
)

// OTPVerifyRequest carries the code submitted to enable a pending secret.
type OTPVerifyRequest struct {
	OTP string `json:"otp" binding:"required"`
}

// OTPHandler exposes second-factor enrollment endpoints.
type OTPHandler struct {
	enrollment *usecase.EnrollmentService
}

// NewOTPHandler constructs an OTPHandler.
func NewOTPHandler(enrollment *usecase.EnrollmentService) *OTPHandler {
	return &OTPHandler{enrollment: enrollment}
}

// RegisterRoutes binds enrollment endpoints; all require authentication.
func (h *OTPHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/otp/new/", h.NewSecret)
	r.POST("/otp/verify/", h.VerifySecret)
}

// NewSecret provisions a pending secret and returns its otpauth:// URI.
func (h *OTPHandler) NewSecret(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, DetailResponse{Detail: "Could not validate credentials"})
		return
	}

	uri, err := h.enrollment.BeginEnrollment(c.Request.Context(), user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, DetailResponse{Detail: "failed to provision secret"})
		return
	}

	c.JSON(http.StatusOK, ProvisionedSecretResponse{Secret: uri})
}

// VerifySecret checks the submitted code against the caller's secrets and
// enables the first pending one that matches.
func (h *OTPHandler) VerifySecret(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, DetailResponse{Detail: "Could not validate credentials"})
		return
	}

	var req OTPVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, DetailResponse{Detail: "TOTP verification failure."})
		return
	}

	if err := h.enrollment.CompleteEnrollment(c.Request.Context(), user.ID, req.OTP); err != nil {
		if errors.Is(err, usecase.ErrOTPVerificationFailed) {
			c.JSON(http.StatusBadRequest, DetailResponse{Detail: "TOTP verification failure."})
			return
		}
		c.JSON(http.StatusInternalServerError, DetailResponse{Detail: "failed to verify secret"})
		return
	}

	c.JSON(http.StatusOK, DetailResponse{Detail: "OTP verified successfully."})
}
