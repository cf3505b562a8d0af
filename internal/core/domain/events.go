package domain

import "time"

// UserRegisteredEvent announces a newly created account.
type UserRegisteredEvent struct {
	EventID      string
	UserID       string
	Username     string
	RegisteredAt time.Time
}

// OTPEnabledEvent announces a second-factor secret transitioning to enabled.
type OTPEnabledEvent struct {
	EventID   string
	UserID    string
	SecretID  string
	EnabledAt time.Time
}

// EventCreatedEvent announces a newly published platform event.
type EventCreatedEvent struct {
	EventID     string
	PlatformID  string
	Title       string
	VenueID     string
	CreatedBy   string
	ScheduledAt time.Time
	CreatedAt   time.Time
}
