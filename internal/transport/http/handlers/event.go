package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ClairKirsch/raichi/internal/repository"
	"github.com/ClairKirsch/raichi/internal/transport/http/middleware"
	"github.com/ClairKirsch/raichi/internal/usecase"
)

// CreateEventRequest is the payload for event creation.
type CreateEventRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	Date        time.Time `json:"date" binding:"required"`
	VenueID     string    `json:"venue_id" binding:"required"`
}

// EventHandler exposes event and attendance endpoints.
type EventHandler struct {
	events *usecase.EventService
}

// NewEventHandler constructs an EventHandler.
func NewEventHandler(events *usecase.EventService) *EventHandler {
	return &EventHandler{events: events}
}

// RegisterRoutes binds event endpoints; all require authentication.
func (h *EventHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/events/", h.Create)
	r.GET("/events/", h.List)
	r.GET("/events/:id", h.Get)
	r.POST("/events/:id/attend", h.Attend)
	r.POST("/events/:id/unattend", h.Unattend)
	r.GET("/events/attending/", h.ListAttending)
}

// Create persists an event at an existing venue.
func (h *EventHandler) Create(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, DetailResponse{Detail: "Could not validate credentials"})
		return
	}

	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, DetailResponse{Detail: "invalid request payload"})
		return
	}

	event, err := h.events.CreateEvent(c.Request.Context(), usecase.CreateEventInput{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		VenueID:     req.VenueID,
		CreatedBy:   user.ID,
	})
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrVenueNotFound, Status: http.StatusBadRequest, Detail: "Venue not found"},
		}, http.StatusInternalServerError, "failed to create event")
		return
	}

	c.JSON(http.StatusCreated, newEventResponse(event))
}

// List returns every event.
func (h *EventHandler) List(c *gin.Context) {
	events, err := h.events.ListEvents(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, DetailResponse{Detail: "failed to list events"})
		return
	}

	c.JSON(http.StatusOK, newEventResponses(events))
}

// Get returns an event with its venue embedded.
func (h *EventHandler) Get(c *gin.Context) {
	event, err := h.events.GetEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, DetailResponse{Detail: "Event not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, DetailResponse{Detail: "failed to load event"})
		return
	}

	c.JSON(http.StatusOK, newEventResponse(*event))
}

// Attend records the caller's attendance at the event.
func (h *EventHandler) Attend(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, DetailResponse{Detail: "Could not validate credentials"})
		return
	}

	if err := h.events.Attend(c.Request.Context(), c.Param("id"), user.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, DetailResponse{Detail: "Event not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, DetailResponse{Detail: "failed to record attendance"})
		return
	}

	c.JSON(http.StatusOK, DetailResponse{Detail: "User is now attending the event"})
}

// Unattend removes the caller's attendance record.
func (h *EventHandler) Unattend(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, DetailResponse{Detail: "Could not validate credentials"})
		return
	}

	if err := h.events.Unattend(c.Request.Context(), c.Param("id"), user.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, DetailResponse{Detail: "Event not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, DetailResponse{Detail: "failed to remove attendance"})
		return
	}

	c.JSON(http.StatusOK, DetailResponse{Detail: "User has unattended the event"})
}

// ListAttending returns the events the caller attends.
func (h *EventHandler) ListAttending(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, DetailResponse{Detail: "Could not validate credentials"})
		return
	}

	events, err := h.events.ListAttending(c.Request.Context(), user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, DetailResponse{Detail: "failed to list events"})
		return
	}

	c.JSON(http.StatusOK, newEventResponses(events))
}
