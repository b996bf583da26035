package models

import "time"

// Event is a single table-tennis event. Players and matches belong to
// exactly one event; deactivated events are hidden from listings (soft
// delete) but their data is kept.
type Event struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Date      string    `json:"date"` // YYYY-MM-DD
	Time      string    `json:"time"` // HH:MM
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// EventOrganizer links a user to an event they manage. Creator marks the
// user who originally created the event.
type EventOrganizer struct {
	ID        int       `json:"id"`
	EventID   int       `json:"event_id"`
	UserID    int       `json:"user_id"`
	Creator   bool      `json:"creator"`
	CreatedAt time.Time `json:"created_at"`

	// Optional linked data, populated by the service layer.
	User *User `json:"user,omitempty"`
}
