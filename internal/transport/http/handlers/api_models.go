package handlers

import (
	"time"

	"github.com/ClairKirsch/raichi/internal/core/domain"
)

// DetailResponse is the generic payload for status and error messages.
type DetailResponse struct {
	Detail string `json:"detail"`
}

// TokenResponse is the payload returned by a successful token request.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// ProvisionedSecretResponse carries the otpauth:// URI for a new second factor.
type ProvisionedSecretResponse struct {
	Secret string `json:"secret"`
}

// UserResponse describes the public view of a user.
type UserResponse struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        *string   `json:"email,omitempty"`
	FullName     *string   `json:"full_name,omitempty"`
	Bio          *string   `json:"bio,omitempty"`
	ProfileImage *string   `json:"profile_image,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// VenueResponse describes a venue.
type VenueResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	CreatedAt time.Time `json:"created_at"`
}

// EventResponse describes an event; Venue is embedded when loaded.
type EventResponse struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Date        time.Time      `json:"date"`
	VenueID     string         `json:"venue_id"`
	CreatedAt   time.Time      `json:"created_at"`
	Venue       *VenueResponse `json:"venue,omitempty"`
}

// TagResponse describes a tag.
type TagResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// MessageResponse describes a delivered direct message.
type MessageResponse struct {
	ID          string    `json:"id"`
	SenderID    string    `json:"sender_id"`
	RecipientID string    `json:"recipient_id"`
	Subject     string    `json:"subject"`
	Content     string    `json:"content"`
	SentAt      time.Time `json:"sent_at"`
}

// HealthResponse reports liveness.
type HealthResponse struct {
	Status    string    `json:"status"`
	StartedAt time.Time `json:"started_at"`
}

// ReadinessResponse reports dependency readiness per component.
type ReadinessResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func newUserResponse(user domain.User) UserResponse {
	return UserResponse{
		ID:           user.ID,
		Username:     user.Username,
		Email:        user.Email,
		FullName:     user.FullName,
		Bio:          user.Bio,
		ProfileImage: user.ProfileImage,
		CreatedAt:    user.CreatedAt,
	}
}

func newVenueResponse(venue domain.Venue) VenueResponse {
	return VenueResponse{
		ID:        venue.ID,
		Name:      venue.Name,
		Address:   venue.Address,
		Latitude:  venue.Latitude,
		Longitude: venue.Longitude,
		CreatedAt: venue.CreatedAt,
	}
}

func newEventResponse(event domain.Event) EventResponse {
	resp := EventResponse{
		ID:          event.ID,
		Title:       event.Title,
		Description: event.Description,
		Date:        event.Date,
		VenueID:     event.VenueID,
		CreatedAt:   event.CreatedAt,
	}
	if event.Venue != nil {
		venue := newVenueResponse(*event.Venue)
		resp.Venue = &venue
	}
	return resp
}

func newEventResponses(events []domain.Event) []EventResponse {
	out := make([]EventResponse, 0, len(events))
	for _, event := range events {
		out = append(out, newEventResponse(event))
	}
	return out
}

func newMessageResponse(message domain.Message) MessageResponse {
	return MessageResponse{
		ID:          message.ID,
		SenderID:    message.SenderID,
		RecipientID: message.RecipientID,
		Subject:     message.Subject,
		Content:     message.Content,
		SentAt:      message.SentAt,
	}
}
