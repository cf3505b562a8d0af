package domain

import "time"

// Venue is a physical location events take place at.
type Venue struct {
	ID        string
	Name      string
	Address   string
	Latitude  float64
	Longitude float64
	CreatedAt time.Time
}

// Event is a scheduled gathering at a venue.
type Event struct {
	ID          string
	Title       string
	Description string
	Date        time.Time
	VenueID     string
	CreatedAt   time.Time

	// Venue is populated by read paths that join the venues table.
	Venue *Venue
	// Tags is populated by read paths that join the event_tags table.
	Tags []Tag
}

// Tag labels events for discovery.
type Tag struct {
	ID   string
	Name string
}

// Message is a direct message between two users who share an event.
type Message struct {
	ID          string
	SenderID    string
	RecipientID string
	Subject     string
	Content     string
	SentAt      time.Time
}
