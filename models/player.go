package models

import "time"

// Player is a participant of one event. Rating is the player's current Elo
// value; it is mutated only by the match create/update/delete flows and is
// never clamped or rounded in storage.
type Player struct {
	ID        int       `json:"id"`
	EventID   int       `json:"event_id"`
	Name      string    `json:"name"`
	Rating    float64   `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
}
