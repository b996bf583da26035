package models

import "time"

// Match records one pairing within an event. WinnerID is nil while the
// result is undecided; when set it must reference one of the two players.
type Match struct {
	ID        int       `json:"id"`
	EventID   int       `json:"event_id"`
	Player1ID int       `json:"player_1_id"`
	Player2ID int       `json:"player_2_id"`
	WinnerID  *int      `json:"winner_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Optional linked data, populated by the service layer for responses.
	Player1Name   *string  `json:"player_1_name,omitempty"`
	Player2Name   *string  `json:"player_2_name,omitempty"`
	WinnerName    *string  `json:"winner_name,omitempty"`
	Player1Rating *float64 `json:"player_1_rating,omitempty"`
	Player2Rating *float64 `json:"player_2_rating,omitempty"`
}
