package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ClairKirsch/raichi/internal/usecase"
)

// SearchHandler exposes event discovery endpoints.
type SearchHandler struct {
	search *usecase.SearchService
}

// NewSearchHandler constructs a SearchHandler.
func NewSearchHandler(search *usecase.SearchService) *SearchHandler {
	return &SearchHandler{search: search}
}

// RegisterRoutes binds search endpoints; all require authentication.
func (h *SearchHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/search/by-tag", h.ByTag)
	r.POST("/search/by-location", h.ByLocation)
}

// ByTag returns events tagged with any tag containing the query fragment.
func (h *SearchHandler) ByTag(c *gin.Context) {
	tagName := c.Query("tag_name")
	if tagName == "" {
		c.JSON(http.StatusBadRequest, DetailResponse{Detail: "tag_name is required"})
		return
	}

	events, err := h.search.EventsByTag(c.Request.Context(), tagName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, DetailResponse{Detail: "failed to search events"})
		return
	}

	c.JSON(http.StatusOK, newEventResponses(events))
}

// ByLocation returns events at venues within radius_miles of the given point.
func (h *SearchHandler) ByLocation(c *gin.Context) {
	latitude, err := strconv.ParseFloat(c.Query("latitude"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, DetailResponse{Detail: "latitude is invalid"})
		return
	}
	longitude, err := strconv.ParseFloat(c.Query("longitude"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, DetailResponse{Detail: "longitude is invalid"})
		return
	}
	radiusMiles, err := strconv.ParseFloat(c.Query("radius_miles"), 64)
	if err != nil || radiusMiles <= 0 {
		c.JSON(http.StatusBadRequest, DetailResponse{Detail: "radius_miles is invalid"})
		return
	}

	events, err := h.search.EventsByLocation(c.Request.Context(), latitude, longitude, radiusMiles)
	if err != nil {
		c.JSON(http.StatusInternalServerError, DetailResponse{Detail: "failed to search events"})
		return
	}

	c.JSON(http.StatusOK, newEventResponses(events))
}
