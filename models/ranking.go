package models

// RankingEntry is one row of an event leaderboard. Entries are derived from
// the current players and matches on every query; nothing here is persisted.
type RankingEntry struct {
	Rank          int     `json:"rank"`
	PlayerID      int     `json:"player_id"`
	Name          string  `json:"name"`
	Rating        float64 `json:"rating"`
	Victories     int     `json:"victories"`
	MatchesPlayed int     `json:"matches_played"`
	WinPercentage float64 `json:"win_percentage"`
}
