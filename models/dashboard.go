package models

type DashboardStats struct {
	UsersTotal    int `json:"users_total"`
	EventsTotal   int `json:"events_total"`
	ActiveEvents  int `json:"active_events"`
	PlayersTotal  int `json:"players_total"`
	MatchesTotal  int `json:"matches_total"`
	BackupsStored int `json:"backups_stored"`
}
