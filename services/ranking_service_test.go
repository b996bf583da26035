package services

import (
	"testing"

	"github.com/hirohaya/racket-hero/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func player(id int, name string, rating float64) *models.Player {
	return &models.Player{ID: id, EventID: 1, Name: name, Rating: rating}
}

func decidedMatch(p1, p2, winner int) *models.Match {
	return &models.Match{EventID: 1, Player1ID: p1, Player2ID: p2, WinnerID: &winner}
}

func TestComputeRankingOrdersByRatingDescending(t *testing.T) {
	players := []*models.Player{
		player(1, "Ana", 1584.0),
		player(2, "Bruno", 1616.0),
		player(3, "Carla", 1700.5),
	}

	entries := ComputeRanking(players, nil)
	require.Len(t, entries, 3)

	assert.Equal(t, "Carla", entries[0].Name)
	assert.Equal(t, "Bruno", entries[1].Name)
	assert.Equal(t, "Ana", entries[2].Name)

	for i, e := range entries {
		assert.Equal(t, i+1, e.Rank)
	}
	for i := 1; i < len(entries); i++ {
		assert.GreaterOrEqual(t, entries[i-1].Rating, entries[i].Rating)
	}
}

func TestComputeRankingTieBreaksByPlayerID(t *testing.T) {
	players := []*models.Player{
		player(7, "Late", 1600.0),
		player(3, "Early", 1600.0),
	}

	entries := ComputeRanking(players, nil)
	require.Len(t, entries, 2)

	// Equal ratings get consecutive distinct ranks, lower id first.
	assert.Equal(t, 3, entries[0].PlayerID)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, 7, entries[1].PlayerID)
	assert.Equal(t, 2, entries[1].Rank)
}

func TestComputeRankingStatistics(t *testing.T) {
	players := []*models.Player{
		player(1, "Ana", 1632.0),
		player(2, "Bruno", 1584.0),
		player(3, "Carla", 1584.0),
	}
	undecided := &models.Match{EventID: 1, Player1ID: 2, Player2ID: 3}
	matches := []*models.Match{
		decidedMatch(1, 2, 1),
		decidedMatch(1, 3, 1),
		decidedMatch(2, 3, 3),
		undecided,
	}

	entries := ComputeRanking(players, matches)
	require.Len(t, entries, 3)

	ana := entries[0]
	assert.Equal(t, 2, ana.Victories)
	assert.Equal(t, 2, ana.MatchesPlayed)
	assert.InDelta(t, 100.0, ana.WinPercentage, 1e-9)

	byID := map[int]models.RankingEntry{}
	for _, e := range entries {
		byID[e.PlayerID] = e
	}
	// Bruno lost twice and has an undecided match; it counts as played.
	assert.Equal(t, 0, byID[2].Victories)
	assert.Equal(t, 3, byID[2].MatchesPlayed)
	assert.InDelta(t, 0.0, byID[2].WinPercentage, 1e-9)
	// Carla: one win out of three played, rounded for display.
	assert.Equal(t, 1, byID[3].Victories)
	assert.Equal(t, 3, byID[3].MatchesPlayed)
	assert.InDelta(t, 33.3, byID[3].WinPercentage, 1e-9)
}

func TestComputeRankingNoMatchesZeroPercentage(t *testing.T) {
	entries := ComputeRanking([]*models.Player{player(1, "Solo", 1600.0)}, nil)
	require.Len(t, entries, 1)
	assert.Equal(t, 0, entries[0].MatchesPlayed)
	assert.Equal(t, 0.0, entries[0].WinPercentage)
}

func TestComputeRankingEmptyEvent(t *testing.T) {
	entries := ComputeRanking(nil, nil)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}
