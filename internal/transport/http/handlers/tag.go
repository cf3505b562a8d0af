package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ClairKirsch/raichi/internal/usecase"
)

// CreateTagRequest is the payload for tag creation.
type CreateTagRequest struct {
	Name string `json:"name" binding:"required"`
}

// TagHandler exposes tag endpoints.
type TagHandler struct {
	tags *usecase.TagService
}

// NewTagHandler constructs a TagHandler.
func NewTagHandler(tags *usecase.TagService) *TagHandler {
	return &TagHandler{tags: tags}
}

// RegisterRoutes binds tag endpoints; all require authentication.
func (h *TagHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/tags/", h.Create)
	r.GET("/tags/:tag_id", h.Get)
	r.POST("/tags/:tag_id/associate/:event_id", h.Associate)
}

// Create persists a tag with a unique name.
func (h *TagHandler) Create(c *gin.Context) {
	var req CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, DetailResponse{Detail: "invalid request payload"})
		return
	}

	tag, err := h.tags.CreateTag(c.Request.Context(), req.Name)
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrTagExists, Status: http.StatusBadRequest, Detail: "Tag already exists"},
		}, http.StatusInternalServerError, "failed to create tag")
		return
	}

	c.JSON(http.StatusCreated, TagResponse{ID: tag.ID, Name: tag.Name})
}

// Get returns a tag by identifier.
func (h *TagHandler) Get(c *gin.Context) {
	tag, err := h.tags.GetTag(c.Request.Context(), c.Param("tag_id"))
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrTagNotFound, Status: http.StatusNotFound, Detail: "Tag not found"},
		}, http.StatusInternalServerError, "failed to load tag")
		return
	}

	c.JSON(http.StatusOK, TagResponse{ID: tag.ID, Name: tag.Name})
}

// Associate links a tag to an event.
func (h *TagHandler) Associate(c *gin.Context) {
	err := h.tags.Associate(c.Request.Context(), c.Param("tag_id"), c.Param("event_id"))
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrTagNotFound, Status: http.StatusNotFound, Detail: "Tag not found"},
			{Err: usecase.ErrEventNotFound, Status: http.StatusNotFound, Detail: "Event not found"},
		}, http.StatusInternalServerError, "failed to associate tag")
		return
	}

	c.JSON(http.StatusOK, DetailResponse{Detail: "Tag associated with event successfully"})
}
