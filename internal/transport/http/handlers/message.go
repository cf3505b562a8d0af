package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ClairKirsch/raichi/internal/transport/http/middleware"
	"github.com/ClairKirsch/raichi/internal/usecase"
)

// MessageHandler exposes direct messaging endpoints.
type MessageHandler struct {
	messages *usecase.MessageService
}

// NewMessageHandler constructs a MessageHandler.
func NewMessageHandler(messages *usecase.MessageService) *MessageHandler {
	return &MessageHandler{messages: messages}
}

// RegisterRoutes binds messaging endpoints; all require authentication.
func (h *MessageHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/message/:recipient_id/send", h.Send)
	r.GET("/message/inbox/", h.Inbox)
}

// Send delivers a message to another attendee. Senders may only reach users
// who share at least one attended event with them.
func (h *MessageHandler) Send(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, DetailResponse{Detail: "Could not validate credentials"})
		return
	}

	subject := c.Query("subject")
	content := c.Query("message")
	if content == "" {
		c.JSON(http.StatusBadRequest, DetailResponse{Detail: "message is required"})
		return
	}

	message, err := h.messages.Send(c.Request.Context(), user.ID, c.Param("recipient_id"), subject, content)
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrRecipientNotFound, Status: http.StatusNotFound, Detail: "Recipient not found"},
			{Err: usecase.ErrNoSharedEvent, Status: http.StatusForbidden, Detail: "You can only message users who share an event with you"},
		}, http.StatusInternalServerError, "failed to send message")
		return
	}

	c.JSON(http.StatusCreated, newMessageResponse(message))
}

// Inbox returns the caller's received messages, newest first.
func (h *MessageHandler) Inbox(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, DetailResponse{Detail: "Could not validate credentials"})
		return
	}

	messages, err := h.messages.Inbox(c.Request.Context(), user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, DetailResponse{Detail: "failed to load inbox"})
		return
	}

	out := make([]MessageResponse, 0, len(messages))
	for _, message := range messages {
		out = append(out, newMessageResponse(message))
	}
	c.JSON(http.StatusOK, out)
}
