package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hirohaya/racket-hero/models"
	"github.com/hirohaya/racket-hero/repositories"
	"golang.org/x/crypto/bcrypt"
)

// SeedService fills an empty database with demo data for local development.
type SeedService interface {
	Run(ctx context.Context) error
}

type seedService struct {
	userRepo  repositories.UserRepository
	eventSvc  EventService
	playerSvc PlayerService
	matchSvc  MatchService
	logger    *slog.Logger
}

func NewSeedService(
	userRepo repositories.UserRepository,
	eventSvc EventService,
	playerSvc PlayerService,
	matchSvc MatchService,
	logger *slog.Logger,
) SeedService {
	return &seedService{
		userRepo:  userRepo,
		eventSvc:  eventSvc,
		playerSvc: playerSvc,
		matchSvc:  matchSvc,
		logger:    logger,
	}
}

func (s *seedService) Run(ctx context.Context) error {
	admin, err := s.seedUser(ctx, "admin@racket-hero.local", "Admin", models.RoleAdmin)
	if err != nil {
		return err
	}
	organizer, err := s.seedUser(ctx, "organizer@racket-hero.local", "Olivia Organizer", models.RoleOrganizer)
	if err != nil {
		return err
	}
	if _, err := s.seedUser(ctx, "player@racket-hero.local", "Pat Player", models.RolePlayer); err != nil {
		return err
	}

	event, err := s.eventSvc.Create(ctx, CreateEventInput{
		Name: "Friday Night Open",
		Date: "2026-09-04",
		Time: "19:00",
	}, organizer.ID)
	if err != nil {
		return fmt.Errorf("seed: failed to create event: %w", err)
	}
	if _, err := s.eventSvc.AddOrganizer(ctx, event.ID, admin.ID); err != nil && !errors.Is(err, ErrOrganizerConflict) {
		return fmt.Errorf("seed: failed to add admin organizer: %w", err)
	}

	names := []string{"Ana", "Bruno", "Carla", "Diego", "Elisa", "Fabio"}
	players := make([]*models.Player, 0, len(names))
	for _, name := range names {
		player, err := s.playerSvc.Enroll(ctx, EnrollPlayerInput{EventID: event.ID, Name: name})
		if err != nil {
			return fmt.Errorf("seed: failed to enroll player %s: %w", name, err)
		}
		players = append(players, player)
	}

	// A handful of decided matches plus one still undecided.
	pairings := []struct {
		a, b   int
		winner int // index into players; -1 for undecided
	}{
		{0, 1, 0},
		{2, 3, 3},
		{4, 5, 4},
		{0, 2, 0},
		{1, 3, -1},
	}
	for _, p := range pairings {
		input := CreateMatchInput{
			EventID:   event.ID,
			Player1ID: players[p.a].ID,
			Player2ID: players[p.b].ID,
		}
		if p.winner >= 0 {
			winnerID := players[p.winner].ID
			input.WinnerID = &winnerID
		}
		if _, err := s.matchSvc.Create(ctx, input); err != nil {
			return fmt.Errorf("seed: failed to create match: %w", err)
		}
	}

	s.logger.Info("seed data loaded",
		slog.Int("event_id", event.ID),
		slog.Int("players", len(players)),
		slog.Int("matches", len(pairings)),
	)
	return nil
}

func (s *seedService) seedUser(ctx context.Context, email, name string, role models.UserRole) (*models.User, error) {
	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, fmt.Errorf("seed: failed to look up %s: %w", email, err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("changeme123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("seed: failed to hash password: %w", err)
	}
	user := &models.User{
		Email:        email,
		Name:         name,
		PasswordHash: string(hashed),
		Role:         role,
		Active:       true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("seed: failed to create user %s: %w", email, err)
	}
	return user, nil
}
