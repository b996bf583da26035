package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hirohaya/racket-hero/elo"
	"github.com/hirohaya/racket-hero/models"
	"github.com/hirohaya/racket-hero/repositories"
)

type CreateMatchInput struct {
	EventID   int  `json:"event_id"`
	Player1ID int  `json:"player_1_id"`
	Player2ID int  `json:"player_2_id"`
	WinnerID  *int `json:"winner_id"`
}

type UpdateMatchInput struct {
	WinnerID *int `json:"winner_id"`
}

// RankingNotifier is told which event's standings changed after every
// committed match mutation. The live hub implements it.
type RankingNotifier interface {
	RankingChanged(eventID int)
}

type MatchService interface {
	Create(ctx context.Context, input CreateMatchInput) (*models.Match, error)
	Update(ctx context.Context, matchID int, input UpdateMatchInput) (*models.Match, error)
	Delete(ctx context.Context, matchID int) error
	ListByEvent(ctx context.Context, eventID int) ([]*models.Match, error)
}

type matchService struct {
	db         *sql.DB
	matchRepo  repositories.MatchRepository
	playerRepo repositories.PlayerRepository
	notifier   RankingNotifier
	logger     *slog.Logger
}

func NewMatchService(
	db *sql.DB,
	matchRepo repositories.MatchRepository,
	playerRepo repositories.PlayerRepository,
	notifier RankingNotifier,
	logger *slog.Logger,
) MatchService {
	return &matchService{
		db:         db,
		matchRepo:  matchRepo,
		playerRepo: playerRepo,
		notifier:   notifier,
		logger:     logger,
	}
}

// lockPlayers fetches both players FOR UPDATE in ascending id order. The
// fixed order prevents deadlocks between concurrent edits touching the same
// pair. Returned in the argument order, not lock order.
func (s *matchService) lockPlayers(ctx context.Context, tx *sql.Tx, p1ID, p2ID int) (*models.Player, *models.Player, error) {
	firstID, secondID := p1ID, p2ID
	if secondID < firstID {
		firstID, secondID = secondID, firstID
	}

	first, err := s.playerRepo.GetForUpdate(ctx, tx, firstID)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, nil, ErrPlayerNotFound
		}
		return nil, nil, err
	}
	second, err := s.playerRepo.GetForUpdate(ctx, tx, secondID)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, nil, ErrPlayerNotFound
		}
		return nil, nil, err
	}

	if first.ID == p1ID {
		return first, second, nil
	}
	return second, first, nil
}

func (s *matchService) saveRatings(ctx context.Context, tx *sql.Tx, p1, p2 elo.Rated) error {
	if err := s.playerRepo.UpdateRating(ctx, tx, p1.ID, p1.Rating); err != nil {
		return err
	}
	return s.playerRepo.UpdateRating(ctx, tx, p2.ID, p2.Rating)
}

func (s *matchService) inTx(ctx context.Context, fn func(tx *sql.Tx) error) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		} else if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				s.logger.Error("rollback failed", slog.Any("error", rbErr))
			}
		} else {
			if cErr := tx.Commit(); cErr != nil {
				err = fmt.Errorf("failed to commit transaction: %w", cErr)
			}
		}
	}()
	err = fn(tx)
	return err
}

func (s *matchService) Create(ctx context.Context, input CreateMatchInput) (*models.Match, error) {
	if input.Player1ID == input.Player2ID {
		return nil, ErrSamePlayer
	}
	if input.WinnerID != nil && *input.WinnerID != input.Player1ID && *input.WinnerID != input.Player2ID {
		return nil, ErrMatchInvalidWinner
	}

	match := &models.Match{
		EventID:   input.EventID,
		Player1ID: input.Player1ID,
		Player2ID: input.Player2ID,
		WinnerID:  input.WinnerID,
	}

	err := s.inTx(ctx, func(tx *sql.Tx) error {
		p1, p2, err := s.lockPlayers(ctx, tx, input.Player1ID, input.Player2ID)
		if err != nil {
			return err
		}
		if p1.EventID != p2.EventID || p1.EventID != input.EventID {
			return ErrCrossEventPlayers
		}

		n1, n2, err := elo.ApplyOutcome(
			elo.Rated{ID: p1.ID, Rating: p1.Rating},
			elo.Rated{ID: p2.ID, Rating: p2.Rating},
			input.WinnerID,
		)
		if err != nil {
			return ErrMatchInvalidWinner
		}

		if err := s.matchRepo.Create(ctx, tx, match); err != nil {
			return s.mapMatchRepoError(err)
		}
		if input.WinnerID != nil {
			if err := s.saveRatings(ctx, tx, n1, n2); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("match created",
		slog.Int("match_id", match.ID),
		slog.Int("event_id", match.EventID),
		slog.Any("winner_id", match.WinnerID),
	)
	if s.notifier != nil {
		s.notifier.RankingChanged(match.EventID)
	}
	return match, nil
}

func (s *matchService) Update(ctx context.Context, matchID int, input UpdateMatchInput) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}

	if input.WinnerID != nil && *input.WinnerID != match.Player1ID && *input.WinnerID != match.Player2ID {
		return nil, ErrMatchInvalidWinner
	}

	err = s.inTx(ctx, func(tx *sql.Tx) error {
		p1, p2, err := s.lockPlayers(ctx, tx, match.Player1ID, match.Player2ID)
		if err != nil {
			return err
		}

		r1 := elo.Rated{ID: p1.ID, Rating: p1.Rating}
		r2 := elo.Rated{ID: p2.ID, Rating: p2.Rating}

		// Back out the old result first, using the ratings as they stand
		// now, then apply the new one on top.
		r1, r2, err = elo.ReverseOutcome(r1, r2, match.WinnerID)
		if err != nil {
			return ErrMatchInvalidWinner
		}
		r1, r2, err = elo.ApplyOutcome(r1, r2, input.WinnerID)
		if err != nil {
			return ErrMatchInvalidWinner
		}

		if err := s.matchRepo.UpdateWinner(ctx, tx, matchID, input.WinnerID); err != nil {
			return s.mapMatchRepoError(err)
		}
		return s.saveRatings(ctx, tx, r1, r2)
	})
	if err != nil {
		return nil, err
	}

	match.WinnerID = input.WinnerID
	s.logger.Info("match updated",
		slog.Int("match_id", matchID),
		slog.Any("winner_id", input.WinnerID),
	)
	if s.notifier != nil {
		s.notifier.RankingChanged(match.EventID)
	}
	return match, nil
}

func (s *matchService) Delete(ctx context.Context, matchID int) error {
	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return ErrMatchNotFound
		}
		return err
	}

	err = s.inTx(ctx, func(tx *sql.Tx) error {
		p1, p2, err := s.lockPlayers(ctx, tx, match.Player1ID, match.Player2ID)
		if err != nil {
			return err
		}

		r1, r2, err := elo.ReverseOutcome(
			elo.Rated{ID: p1.ID, Rating: p1.Rating},
			elo.Rated{ID: p2.ID, Rating: p2.Rating},
			match.WinnerID,
		)
		if err != nil {
			return ErrMatchInvalidWinner
		}

		if match.WinnerID != nil {
			if err := s.saveRatings(ctx, tx, r1, r2); err != nil {
				return err
			}
		}
		if err := s.matchRepo.Delete(ctx, tx, matchID); err != nil {
			if errors.Is(err, repositories.ErrMatchNotFound) {
				return ErrMatchNotFound
			}
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("match deleted", slog.Int("match_id", matchID), slog.Int("event_id", match.EventID))
	if s.notifier != nil {
		s.notifier.RankingChanged(match.EventID)
	}
	return nil
}

func (s *matchService) ListByEvent(ctx context.Context, eventID int) ([]*models.Match, error) {
	matches, err := s.matchRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches for event %d: %w", eventID, err)
	}
	return matches, nil
}

func (s *matchService) mapMatchRepoError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrMatchNotFound):
		return ErrMatchNotFound
	case errors.Is(err, repositories.ErrMatchPlayerInvalid),
		errors.Is(err, repositories.ErrMatchWinnerInvalid):
		return ErrPlayerNotFound
	case errors.Is(err, repositories.ErrMatchEventInvalid):
		return ErrEventNotFound
	default:
		return err
	}
}
