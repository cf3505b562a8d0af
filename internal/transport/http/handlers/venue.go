package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ClairKirsch/raichi/internal/repository"
	"github.com/ClairKirsch/raichi/internal/usecase"
)

// CreateVenueRequest is the payload for venue creation.
type CreateVenueRequest struct {
	Name      string  `json:"name" binding:"required"`
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude" binding:"min=-90,max=90"`
	Longitude float64 `json:"longitude" binding:"min=-180,max=180"`
}

// VenueHandler exposes venue endpoints.
type VenueHandler struct {
	venues *usecase.VenueService
}

// NewVenueHandler constructs a VenueHandler.
func NewVenueHandler(venues *usecase.VenueService) *VenueHandler {
	return &VenueHandler{venues: venues}
}

// RegisterRoutes binds venue endpoints; all require authentication.
func (h *VenueHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/venues/", h.Create)
	r.GET("/venues/:id", h.Get)
}

// Create persists a venue and indexes its coordinates.
func (h *VenueHandler) Create(c *gin.Context) {
	var req CreateVenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, DetailResponse{Detail: "invalid request payload"})
		return
	}

	venue, err := h.venues.CreateVenue(c.Request.Context(), usecase.CreateVenueInput{
		Name:      req.Name,
		Address:   req.Address,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, DetailResponse{Detail: "failed to create venue"})
		return
	}

	c.JSON(http.StatusCreated, newVenueResponse(venue))
}

// Get returns a venue by identifier.
func (h *VenueHandler) Get(c *gin.Context) {
	venue, err := h.venues.GetVenue(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, DetailResponse{Detail: "Venue not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, DetailResponse{Detail: "failed to load venue"})
		return
	}

	c.JSON(http.StatusOK, newVenueResponse(*venue))
}
