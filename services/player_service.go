package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hirohaya/racket-hero/elo"
	"github.com/hirohaya/racket-hero/models"
	"github.com/hirohaya/racket-hero/repositories"
)

type EnrollPlayerInput struct {
	EventID int      `json:"event_id"`
	Name    string   `json:"name"`
	Rating  *float64 `json:"rating"`
}

type PlayerService interface {
	Enroll(ctx context.Context, input EnrollPlayerInput) (*models.Player, error)
	GetByID(ctx context.Context, id int) (*models.Player, error)
	ListByEvent(ctx context.Context, eventID int) ([]*models.Player, error)
	Rename(ctx context.Context, id int, name string) (*models.Player, error)
	Remove(ctx context.Context, id int) error
}

type playerService struct {
	playerRepo repositories.PlayerRepository
	eventRepo  repositories.EventRepository
}

func NewPlayerService(
	playerRepo repositories.PlayerRepository,
	eventRepo repositories.EventRepository,
) PlayerService {
	return &playerService{
		playerRepo: playerRepo,
		eventRepo:  eventRepo,
	}
}

func (s *playerService) Enroll(ctx context.Context, input EnrollPlayerInput) (*models.Player, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return nil, ErrPlayerNameRequired
	}

	if _, err := s.eventRepo.GetByID(ctx, input.EventID); err != nil {
		if errors.Is(err, repositories.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event %d: %w", input.EventID, err)
	}

	rating := elo.DefaultRating
	if input.Rating != nil {
		rating = *input.Rating
	}

	player := &models.Player{
		EventID: input.EventID,
		Name:    input.Name,
		Rating:  rating,
	}
	if err := s.playerRepo.Create(ctx, player); err != nil {
		if errors.Is(err, repositories.ErrPlayerEventInvalid) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to enroll player: %w", err)
	}
	return player, nil
}

func (s *playerService) GetByID(ctx context.Context, id int) (*models.Player, error) {
	player, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player %d: %w", id, err)
	}
	return player, nil
}

func (s *playerService) ListByEvent(ctx context.Context, eventID int) ([]*models.Player, error) {
	players, err := s.playerRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list players for event %d: %w", eventID, err)
	}
	return players, nil
}

func (s *playerService) Rename(ctx context.Context, id int, name string) (*models.Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrPlayerNameRequired
	}
	if err := s.playerRepo.UpdateName(ctx, id, name); err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to rename player %d: %w", id, err)
	}
	return s.GetByID(ctx, id)
}

func (s *playerService) Remove(ctx context.Context, id int) error {
	if err := s.playerRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return ErrPlayerNotFound
		}
		return fmt.Errorf("failed to remove player %d: %w", id, err)
	}
	return nil
}
