package services

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/hirohaya/racket-hero/models"
	"github.com/hirohaya/racket-hero/repositories"
	"golang.org/x/sync/errgroup"
)

type RankingService interface {
	GetByEvent(ctx context.Context, eventID int) ([]models.RankingEntry, error)
}

type rankingService struct {
	playerRepo repositories.PlayerRepository
	matchRepo  repositories.MatchRepository
}

func NewRankingService(
	playerRepo repositories.PlayerRepository,
	matchRepo repositories.MatchRepository,
) RankingService {
	return &rankingService{
		playerRepo: playerRepo,
		matchRepo:  matchRepo,
	}
}

// GetByEvent recomputes the leaderboard from current state on every call;
// no ranking data is cached or persisted anywhere.
func (s *rankingService) GetByEvent(ctx context.Context, eventID int) ([]models.RankingEntry, error) {
	var (
		players []*models.Player
		matches []*models.Match
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		players, err = s.playerRepo.ListByEvent(gCtx, eventID)
		return err
	})
	g.Go(func() error {
		var err error
		matches, err = s.matchRepo.ListByEvent(gCtx, eventID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load ranking data for event %d: %w", eventID, err)
	}

	return ComputeRanking(players, matches), nil
}

// ComputeRanking orders players by rating (descending, ties broken by
// ascending player id) and annotates each entry with match statistics.
// Ratings and win percentages are rounded to one decimal for display only;
// the stored ratings stay untouched.
func ComputeRanking(players []*models.Player, matches []*models.Match) []models.RankingEntry {
	victories := make(map[int]int, len(players))
	played := make(map[int]int, len(players))
	for _, m := range matches {
		played[m.Player1ID]++
		played[m.Player2ID]++
		if m.WinnerID != nil {
			victories[*m.WinnerID]++
		}
	}

	sorted := make([]*models.Player, len(players))
	copy(sorted, players)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Rating != sorted[j].Rating {
			return sorted[i].Rating > sorted[j].Rating
		}
		return sorted[i].ID < sorted[j].ID
	})

	entries := make([]models.RankingEntry, 0, len(sorted))
	for i, p := range sorted {
		wins := victories[p.ID]
		total := played[p.ID]
		winPct := 0.0
		if total > 0 {
			winPct = round1(float64(wins) / float64(total) * 100)
		}
		entries = append(entries, models.RankingEntry{
			Rank:          i + 1,
			PlayerID:      p.ID,
			Name:          p.Name,
			Rating:        round1(p.Rating),
			Victories:     wins,
			MatchesPlayed: total,
			WinPercentage: winPct,
		})
	}
	return entries
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
